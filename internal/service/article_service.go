package service

import (
	"context"

	"github.com/blog-articles-api/internal/models"
	"github.com/blog-articles-api/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	log      zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(repos *repository.Repositories, log zerolog.Logger) *articleService {
	return &articleService{
		articles: repos.Article,
		comments: repos.Comment,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// ListArticles returns matching articles with read time estimates
func (s *articleService) ListArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.ArticleSummary, error) {
	articles, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = make([]*models.ArticleSummary, 0)
	}

	for _, a := range articles {
		a.ReadTime = ExcerptReadTime(a.Excerpt)
	}

	s.log.Debug().
		Str("category", filter.Category).
		Str("search", filter.Search).
		Int("count", len(articles)).
		Msg("Listed articles")

	return articles, nil
}

// GetArticle returns one article with its comments, newest first
func (s *articleService) GetArticle(ctx context.Context, id string) (*models.ArticleDetail, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	comments, err := s.comments.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = make([]models.Comment, 0)
	}

	article.Comments = comments
	article.ReadTime = ContentReadTime(article.Content)

	return article, nil
}
