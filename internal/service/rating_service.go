package service

import (
	"context"

	"github.com/blog-articles-api/internal/models"
	"github.com/blog-articles-api/internal/repository"
	"github.com/blog-articles-api/internal/validation"
	"github.com/rs/zerolog"
)

type ratingService struct {
	ratings repository.RatingRepository
	log     zerolog.Logger
}

func newRatingService(ratings repository.RatingRepository, log zerolog.Logger) *ratingService {
	return &ratingService{
		ratings: ratings,
		log:     log.With().Str("service", "rating").Logger(),
	}
}

// RateArticle stores the user's rating and returns the new average
func (s *ratingService) RateArticle(ctx context.Context, action *models.RateAction) (*models.RatingResult, error) {
	rating, err := validation.Rating(action)
	if err != nil {
		return nil, err
	}

	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	avg, err := s.ratings.Average(ctx, rating.ArticleID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("article_id", rating.ArticleID).
		Int("rating", rating.Value).
		Float64("avg_rating", avg).
		Msg("Article rated")

	return &models.RatingResult{AvgRating: avg}, nil
}
