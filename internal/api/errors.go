package api

import (
	"errors"
	"net/http"

	"github.com/blog-articles-api/internal/service"
	"github.com/blog-articles-api/internal/validation"
)

// HTTPError is a request-level failure with a fixed status and message
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

var (
	errMethodNotAllowed = &HTTPError{Status: http.StatusMethodNotAllowed, Message: "Method not allowed"}
	errUnknownAction    = &HTTPError{Status: http.StatusBadRequest, Message: "Unknown action"}
)

// classify maps an error from dispatch to a status and client message.
// Anything unrecognized is an infrastructure failure and reports its raw text.
func classify(err error) (int, string) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status, httpErr.Message
	}

	if errors.Is(err, service.ErrArticleNotFound) {
		return http.StatusNotFound, service.ErrArticleNotFound.Error()
	}

	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, vErr.Message
	}

	return http.StatusInternalServerError, err.Error()
}
