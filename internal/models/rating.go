package models

const (
	// DefaultRatingUser is used when a rating is posted without a user_id
	DefaultRatingUser = "anonymous"

	MinRating = 1
	MaxRating = 5
)

// Rating is a validated per-user rating of an article
type Rating struct {
	ArticleID int64  `json:"article_id" db:"article_id"`
	UserID    string `json:"user_id" db:"user_id"`
	Value     int    `json:"rating" db:"rating"`
}

// RatingResult is the response to a rate action
type RatingResult struct {
	AvgRating float64 `json:"avg_rating"`
}
