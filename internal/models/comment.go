package models

import (
	"time"
)

// DefaultCommentAuthor is used when a comment is posted without an author
const DefaultCommentAuthor = "Гость"

// Comment represents a comment as shown under an article
type Comment struct {
	ID           int64     `json:"id" db:"id"`
	Author       string    `json:"author" db:"author"`
	AuthorAvatar *string   `json:"author_avatar" db:"author_avatar"`
	Content      string    `json:"content" db:"content"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	MinutesAgo   float64   `json:"minutes_ago"`
}

// NewComment is a validated comment ready to be inserted
type NewComment struct {
	ArticleID int64
	Author    string
	Content   string
}

// CreatedComment is the row returned after inserting a comment
type CreatedComment struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
