package service

import (
	"context"

	"github.com/blog-articles-api/internal/models"
	"github.com/blog-articles-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article reads
type ArticleService interface {
	ListArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.ArticleSummary, error)
	GetArticle(ctx context.Context, id string) (*models.ArticleDetail, error)
}

// CommentService defines the interface for posting comments
type CommentService interface {
	AddComment(ctx context.Context, action *models.CommentAction) (*models.CreatedComment, error)
}

// RatingService defines the interface for rating articles
type RatingService interface {
	RateArticle(ctx context.Context, action *models.RateAction) (*models.RatingResult, error)
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Comment CommentService
	Rating  RatingService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Article: newArticleService(repos, log),
		Comment: newCommentService(repos.Comment, log),
		Rating:  newRatingService(repos.Rating, log),
	}
}
