package mocks

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blog-articles-api/internal/models"
	"github.com/blog-articles-api/internal/repository"
)

// Store is an in-memory stand-in for the articles, comments and ratings
// tables. Its repositories share state the way the real tables do.
type Store struct {
	mu       sync.Mutex
	Articles map[int64]*models.Article
	Comments map[int64][]*StoredComment
	Ratings  map[RatingKey]int

	// Err, when set, is returned by every repository call
	Err error

	nextCommentID int64
	now           func() time.Time
}

// StoredComment is a comment row
type StoredComment struct {
	models.Comment
	ArticleID int64
}

// RatingKey mirrors UNIQUE (article_id, user_id)
type RatingKey struct {
	ArticleID int64
	UserID    string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		Articles: make(map[int64]*models.Article),
		Comments: make(map[int64][]*StoredComment),
		Ratings:  make(map[RatingKey]int),
		now:      time.Now,
	}
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Article: &MockArticleRepository{store: s},
		Comment: &MockCommentRepository{store: s},
		Rating:  &MockRatingRepository{store: s},
	}
}

// AddArticle seeds an article
func (s *Store) AddArticle(a *models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Articles[a.ID] = a
}

// AddComment seeds a comment with an explicit creation time
func (s *Store) AddComment(articleID int64, author, content string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCommentID++
	s.Comments[articleID] = append(s.Comments[articleID], &StoredComment{
		Comment: models.Comment{
			ID:        s.nextCommentID,
			Author:    author,
			Content:   content,
			CreatedAt: createdAt,
		},
		ArticleID: articleID,
	})
}

// RatingCount returns how many rating rows exist for an article
func (s *Store) RatingCount(articleID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.Ratings {
		if k.ArticleID == articleID {
			n++
		}
	}
	return n
}

// average mirrors ROUND(AVG(rating)::numeric, 1); callers hold the lock
func (s *Store) average(articleID int64) (float64, bool) {
	sum, n := 0, 0
	for k, v := range s.Ratings {
		if k.ArticleID == articleID {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return math.Round(float64(sum)/float64(n)*10) / 10, true
}

func minutesSince(now, t time.Time) float64 {
	return now.Sub(t).Minutes()
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	store *Store
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]*models.ArticleSummary, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	now := s.now()
	search := strings.ToLower(filter.Search)
	result := make([]*models.ArticleSummary, 0)
	for _, a := range s.Articles {
		if filter.Category != "" && filter.Category != models.AllCategories && a.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Excerpt), search) {
			continue
		}
		avg, _ := s.average(a.ID)
		result = append(result, &models.ArticleSummary{
			ID:         a.ID,
			Title:      a.Title,
			Excerpt:    a.Excerpt,
			Category:   a.Category,
			Author:     a.Author,
			Image:      a.Image,
			CreatedAt:  a.CreatedAt,
			Rating:     avg,
			Comments:   len(s.Comments[a.ID]),
			MinutesAgo: minutesSince(now, a.CreatedAt),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.ArticleDetail, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, a := range s.Articles {
		if strconv.FormatInt(a.ID, 10) != id {
			continue
		}
		avg, _ := s.average(a.ID)
		return &models.ArticleDetail{
			Article:       *a,
			AvgRating:     avg,
			CommentsCount: len(s.Comments[a.ID]),
			MinutesAgo:    minutesSince(s.now(), a.CreatedAt),
		}, nil
	}
	return nil, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	store *Store
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int64) ([]models.Comment, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	now := s.now()
	comments := make([]models.Comment, 0, len(s.Comments[articleID]))
	for _, c := range s.Comments[articleID] {
		comment := c.Comment
		comment.MinutesAgo = minutesSince(now, c.CreatedAt)
		comments = append(comments, comment)
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.NewComment) (*models.CreatedComment, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	s.nextCommentID++
	stored := &StoredComment{
		Comment: models.Comment{
			ID:        s.nextCommentID,
			Author:    comment.Author,
			Content:   comment.Content,
			CreatedAt: s.now(),
		},
		ArticleID: comment.ArticleID,
	}
	s.Comments[comment.ArticleID] = append(s.Comments[comment.ArticleID], stored)

	return &models.CreatedComment{
		ID:        stored.ID,
		Author:    stored.Author,
		Content:   stored.Content,
		CreatedAt: stored.CreatedAt,
	}, nil
}

// MockRatingRepository is a mock implementation of RatingRepository
type MockRatingRepository struct {
	store *Store
}

var _ repository.RatingRepository = (*MockRatingRepository)(nil)

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Ratings[RatingKey{ArticleID: rating.ArticleID, UserID: rating.UserID}] = rating.Value
	return nil
}

func (m *MockRatingRepository) Average(ctx context.Context, articleID int64) (float64, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	avg, _ := s.average(articleID)
	return avg, nil
}
