package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blog-articles-api/internal/database"
	"github.com/blog-articles-api/internal/models"
)

// ratingRepo is the concrete implementation of RatingRepository
type ratingRepo struct {
	db *database.DB
}

// NewRatingRepo creates a new rating repository
func NewRatingRepo(db *database.DB) RatingRepository {
	return &ratingRepo{db: db}
}

// Upsert stores the rating, replacing any earlier rating by the same user
// for the same article. Relies on UNIQUE (article_id, user_id).
func (r *ratingRepo) Upsert(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (article_id, user_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (article_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating
	`
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, rating.ArticleID, rating.UserID, rating.Value)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// Average returns the article's mean rating rounded to one decimal, 0 when unrated
func (r *ratingRepo) Average(ctx context.Context, articleID int64) (float64, error) {
	query := `
		SELECT ROUND(AVG(rating)::numeric, 1) AS avg_rating
		FROM ratings
		WHERE article_id = $1
	`
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, articleID).Scan(&avg); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
