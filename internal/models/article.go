package models

import (
	"time"
)

// AllCategories is the category sentinel meaning "no category filter"
const AllCategories = "Все"

// Article represents an article as stored in the articles table
type Article struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Excerpt      string    `json:"excerpt" db:"excerpt"`
	Content      string    `json:"content" db:"content"`
	Category     string    `json:"category" db:"category"`
	Author       string    `json:"author" db:"author"`
	AuthorAvatar *string   `json:"author_avatar" db:"author_avatar"`
	Image        *string   `json:"image" db:"image"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ArticleDetail is the single-article view with aggregates and comments
type ArticleDetail struct {
	Article
	AvgRating     float64   `json:"avg_rating"`
	CommentsCount int       `json:"comments_count"`
	MinutesAgo    float64   `json:"minutes_ago"`
	Comments      []Comment `json:"comments"`
	ReadTime      string    `json:"readTime"`
}

// ArticleSummary is one entry of the article list
type ArticleSummary struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt"`
	Category   string    `json:"category"`
	Author     string    `json:"author"`
	Image      *string   `json:"image"`
	CreatedAt  time.Time `json:"created_at"`
	Rating     float64   `json:"rating"`
	Comments   int       `json:"comments"`
	MinutesAgo float64   `json:"minutes_ago"`
	ReadTime   string    `json:"readTime"`
}

// ArticleFilter narrows the article list. Zero values mean no filter.
type ArticleFilter struct {
	Category string
	Search   string
}

// NewArticleFilter builds a filter from raw query parameters,
// dropping the "all categories" sentinel.
func NewArticleFilter(category, search string) ArticleFilter {
	if category == AllCategories {
		category = ""
	}
	return ArticleFilter{Category: category, Search: search}
}
