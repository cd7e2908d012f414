package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/blog-articles-api/internal/database"
	"github.com/blog-articles-api/internal/models"
)

const articleDetailQuery = `
		SELECT a.id, a.title, a.excerpt, a.content, a.category, a.author, a.author_avatar, a.image, a.created_at,
		       COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0) AS avg_rating,
		       COUNT(DISTINCT c.id) AS comments_count,
		       EXTRACT(EPOCH FROM (CURRENT_TIMESTAMP - a.created_at))/60 AS minutes_ago
		FROM articles a
		LEFT JOIN ratings r ON a.id = r.article_id
		LEFT JOIN comments c ON a.id = c.article_id
		WHERE a.id = $1
		GROUP BY a.id
	`

const articleListQuery = `
		SELECT a.id, a.title, a.excerpt, a.category, a.author, a.image, a.created_at,
		       COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0) AS rating,
		       COUNT(DISTINCT c.id) AS comments,
		       EXTRACT(EPOCH FROM (CURRENT_TIMESTAMP - a.created_at))/60 AS minutes_ago
		FROM articles a
		LEFT JOIN ratings r ON a.id = r.article_id
		LEFT JOIN comments c ON a.id = c.article_id`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// GetByID retrieves an article with its rating and comment aggregates.
// Returns nil when no article matches.
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.ArticleDetail, error) {
	var article models.ArticleDetail
	var authorAvatar, image sql.NullString

	err := r.db.QueryRowContext(ctx, articleDetailQuery, id).Scan(
		&article.ID, &article.Title, &article.Excerpt, &article.Content, &article.Category,
		&article.Author, &authorAvatar, &image, &article.CreatedAt,
		&article.AvgRating, &article.CommentsCount, &article.MinutesAgo,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	article.AuthorAvatar = nullString(authorAvatar)
	article.Image = nullString(image)

	return &article, nil
}

// List retrieves article summaries matching the filter, newest first
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.ArticleSummary, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.ArticleSummary, 0)
	for rows.Next() {
		var article models.ArticleSummary
		var image sql.NullString

		err := rows.Scan(
			&article.ID, &article.Title, &article.Excerpt, &article.Category, &article.Author,
			&image, &article.CreatedAt,
			&article.Rating, &article.Comments, &article.MinutesAgo,
		)
		if err != nil {
			return nil, err
		}
		article.Image = nullString(image)

		articles = append(articles, &article)
	}

	return articles, rows.Err()
}

// buildListQuery appends the optional category and search predicates.
// User input only ever travels as bind parameters.
func buildListQuery(filter models.ArticleFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" && filter.Category != models.AllCategories {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("a.category = $%d", len(args)))
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
		conditions = append(conditions, fmt.Sprintf("(a.title ILIKE $%d OR a.excerpt ILIKE $%d)", len(args)-1, len(args)))
	}

	var b strings.Builder
	b.WriteString(articleListQuery)
	if len(conditions) > 0 {
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString("\n\t\tGROUP BY a.id ORDER BY a.created_at DESC")

	return b.String(), args
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
