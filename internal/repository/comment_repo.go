package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blog-articles-api/internal/database"
	"github.com/blog-articles-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByArticle returns the comments of an article, newest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int64) ([]models.Comment, error) {
	query := `
		SELECT id, author, author_avatar, content, created_at,
		       EXTRACT(EPOCH FROM (CURRENT_TIMESTAMP - created_at))/60 AS minutes_ago
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		var authorAvatar sql.NullString

		err := rows.Scan(
			&comment.ID, &comment.Author, &authorAvatar, &comment.Content,
			&comment.CreatedAt, &comment.MinutesAgo,
		)
		if err != nil {
			return nil, err
		}
		comment.AuthorAvatar = nullString(authorAvatar)

		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

// Create inserts a comment and commits before returning the stored row
func (r *commentRepo) Create(ctx context.Context, comment *models.NewComment) (*models.CreatedComment, error) {
	query := `
		INSERT INTO comments (article_id, author, content)
		VALUES ($1, $2, $3)
		RETURNING id, author, content, created_at
	`

	var created models.CreatedComment
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, comment.ArticleID, comment.Author, comment.Content).Scan(
			&created.ID, &created.Author, &created.Content, &created.CreatedAt,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	return &created, nil
}
