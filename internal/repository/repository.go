package repository

import (
	"context"

	"github.com/blog-articles-api/internal/database"
	"github.com/blog-articles-api/internal/models"
)

// ArticleRepository defines the interface for article read operations
type ArticleRepository interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.ArticleSummary, error)
	GetByID(ctx context.Context, id string) (*models.ArticleDetail, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int64) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.NewComment) (*models.CreatedComment, error)
}

// RatingRepository defines the interface for rating data operations
type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	Average(ctx context.Context, articleID int64) (float64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Comment CommentRepository
	Rating  RatingRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Rating:  NewRatingRepo(db),
	}
}
