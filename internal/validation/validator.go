package validation

import (
	"math"

	"github.com/blog-articles-api/internal/models"
)

// Messages reported to clients
const (
	MsgMissingFields = "Missing required fields"
	MsgInvalidRating = "Invalid rating data"
)

// Error is a client input error reported as 400
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Comment validates a comment action and applies the author default
func Comment(a *models.CommentAction) (*models.NewComment, error) {
	if a.ArticleID == 0 {
		return nil, &Error{Field: "article_id", Message: MsgMissingFields}
	}
	if a.Content == "" {
		return nil, &Error{Field: "content", Message: MsgMissingFields}
	}

	author := models.DefaultCommentAuthor
	if a.Author != nil {
		author = *a.Author
	}

	return &models.NewComment{
		ArticleID: int64(a.ArticleID),
		Author:    author,
		Content:   a.Content,
	}, nil
}

// Rating validates a rate action and applies the user default.
// The rating must be a whole number within [MinRating, MaxRating].
func Rating(a *models.RateAction) (*models.Rating, error) {
	if a.ArticleID == 0 {
		return nil, &Error{Field: "article_id", Message: MsgInvalidRating}
	}
	if a.Rating == nil {
		return nil, &Error{Field: "rating", Message: MsgInvalidRating}
	}

	value, err := a.Rating.Float64()
	if err != nil || value != math.Trunc(value) {
		return nil, &Error{Field: "rating", Message: MsgInvalidRating}
	}
	if value < models.MinRating || value > models.MaxRating {
		return nil, &Error{Field: "rating", Message: MsgInvalidRating}
	}

	userID := models.DefaultRatingUser
	if a.UserID != nil {
		userID = *a.UserID
	}

	return &models.Rating{
		ArticleID: int64(a.ArticleID),
		UserID:    userID,
		Value:     int(value),
	}, nil
}
