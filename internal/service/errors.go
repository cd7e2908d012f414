package service

import "errors"

// ErrArticleNotFound is returned when the requested article does not exist
var ErrArticleNotFound = errors.New("Article not found")
