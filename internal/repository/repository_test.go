package repository

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/blog-articles-api/internal/database"
	"github.com/blog-articles-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) (*Repositories, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return New(database.Wrap(sqlDB, zerolog.Nop())), mock
}

var summaryColumns = []string{
	"id", "title", "excerpt", "category", "author", "image", "created_at",
	"rating", "comments", "minutes_ago",
}

func TestBuildListQuery_NoFilter(t *testing.T) {
	query, args := buildListQuery(models.ArticleFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
	assert.True(t, strings.HasSuffix(query, "GROUP BY a.id ORDER BY a.created_at DESC"))
}

func TestBuildListQuery_AllCategoriesSentinel(t *testing.T) {
	sentinel, sentinelArgs := buildListQuery(models.ArticleFilter{Category: models.AllCategories})
	none, noneArgs := buildListQuery(models.ArticleFilter{})

	assert.Equal(t, none, sentinel)
	assert.Equal(t, noneArgs, sentinelArgs)
}

func TestBuildListQuery_SearchIsBound(t *testing.T) {
	search := "foo'; DROP TABLE articles; --"
	query, args := buildListQuery(models.ArticleFilter{Search: search})

	assert.NotContains(t, query, "foo")
	assert.NotContains(t, query, "DROP TABLE")
	assert.Contains(t, query, "(a.title ILIKE $1 OR a.excerpt ILIKE $2)")
	assert.Equal(t, []interface{}{"%" + search + "%", "%" + search + "%"}, args)
}

func TestBuildListQuery_CategoryAndSearch(t *testing.T) {
	query, args := buildListQuery(models.ArticleFilter{Category: "Технологии", Search: "go"})

	assert.Contains(t, query, "WHERE a.category = $1 AND (a.title ILIKE $2 OR a.excerpt ILIKE $3)")
	assert.Equal(t, []interface{}{"Технологии", "%go%", "%go%"}, args)
}

func TestArticleRepo_List(t *testing.T) {
	repos, mock := newTestRepos(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(summaryColumns).
		AddRow(int64(2), "Foo in production", "Short", "Технологии", "Иван", nil, created, 4.5, int64(3), 90.0).
		AddRow(int64(1), "Bar", "About foo", "Жизнь", "Мария", "https://img/1.png", created.Add(-time.Hour), 0.0, int64(0), 150.0)

	mock.ExpectQuery(regexp.QuoteMeta("(a.title ILIKE $1 OR a.excerpt ILIKE $2)")).
		WithArgs("%foo%", "%foo%").
		WillReturnRows(rows)

	articles, err := repos.Article.List(context.Background(), models.ArticleFilter{Search: "foo"})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, int64(2), articles[0].ID)
	assert.Equal(t, 4.5, articles[0].Rating)
	assert.Equal(t, 3, articles[0].Comments)
	assert.Nil(t, articles[0].Image)
	require.NotNil(t, articles[1].Image)
	assert.Equal(t, "https://img/1.png", *articles[1].Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_ListEmpty(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery("FROM articles a").WillReturnRows(sqlmock.NewRows(summaryColumns))

	articles, err := repos.Article.List(context.Background(), models.ArticleFilter{})
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestArticleRepo_GetByID(t *testing.T) {
	repos, mock := newTestRepos(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "title", "excerpt", "content", "category", "author", "author_avatar", "image", "created_at",
		"avg_rating", "comments_count", "minutes_ago",
	}).AddRow(int64(7), "Title", "Excerpt", "Body", "Технологии", "Иван", "https://a/1.png", nil, created, 3.7, int64(2), 12.5)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1")).WithArgs("7").WillReturnRows(rows)

	article, err := repos.Article.GetByID(context.Background(), "7")
	require.NoError(t, err)
	require.NotNil(t, article)

	assert.Equal(t, int64(7), article.ID)
	assert.Equal(t, 3.7, article.AvgRating)
	assert.Equal(t, 2, article.CommentsCount)
	assert.Equal(t, 12.5, article.MinutesAgo)
	require.NotNil(t, article.AuthorAvatar)
	assert.Nil(t, article.Image)
}

func TestArticleRepo_GetByIDNotFound(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1")).
		WithArgs("404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	article, err := repos.Article.GetByID(context.Background(), "404")
	require.NoError(t, err)
	assert.Nil(t, article)
}

func TestCommentRepo_ListByArticle(t *testing.T) {
	repos, mock := newTestRepos(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "author", "author_avatar", "content", "created_at", "minutes_ago"}).
		AddRow(int64(3), "Гость", nil, "newest", now, 1.0).
		AddRow(int64(1), "Анна", "https://a/2.png", "oldest", now.Add(-time.Hour), 61.0)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).WithArgs(int64(7)).WillReturnRows(rows)

	comments, err := repos.Comment.ListByArticle(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "newest", comments[0].Content)
	assert.Nil(t, comments[0].AuthorAvatar)
	assert.Equal(t, 61.0, comments[1].MinutesAgo)
}

func TestCommentRepo_CreateCommits(t *testing.T) {
	repos, mock := newTestRepos(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (article_id, author, content)")).
		WithArgs(int64(5), "Гость", "Nice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author", "content", "created_at"}).
			AddRow(int64(42), "Гость", "Nice", now))
	mock.ExpectCommit()

	created, err := repos.Comment.Create(context.Background(), &models.NewComment{
		ArticleID: 5, Author: "Гость", Content: "Nice",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, "Гость", created.Author)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepo_CreateRollsBackOnError(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO comments").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repos.Comment.Create(context.Background(), &models.NewComment{ArticleID: 5, Author: "x", Content: "y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepo_UpsertUsesConflictClause(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (article_id, user_id)")).
		WithArgs(int64(1), "anonymous", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repos.Rating.Upsert(context.Background(), &models.Rating{ArticleID: 1, UserID: "anonymous", Value: 5})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepo_Average(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery("SELECT ROUND").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"avg_rating"}).AddRow(4.3))
	mock.ExpectQuery("SELECT ROUND").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"avg_rating"}).AddRow(nil))

	avg, err := repos.Rating.Average(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4.3, avg)

	avg, err = repos.Rating.Average(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}
