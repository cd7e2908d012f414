package service

import (
	"context"

	"github.com/blog-articles-api/internal/models"
	"github.com/blog-articles-api/internal/repository"
	"github.com/blog-articles-api/internal/validation"
	"github.com/rs/zerolog"
)

type commentService struct {
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// AddComment validates and stores a comment
func (s *commentService) AddComment(ctx context.Context, action *models.CommentAction) (*models.CreatedComment, error) {
	comment, err := validation.Comment(action)
	if err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("article_id", comment.ArticleID).
		Int64("comment_id", created.ID).
		Msg("Comment added")

	return created, nil
}
