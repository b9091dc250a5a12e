package newsroom

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/daniilsolovey/football-news/internal/db"
	"github.com/google/uuid"
)

// memStore is an in-memory Store honouring slug uniqueness, newest-first
// ordering and per-article thread order.
type memStore struct {
	mu       sync.Mutex
	articles map[string]db.Article
	updates  []db.ThreadUpdate
	seq      int64

	// failWith makes every call fail, simulating an unavailable database.
	failWith error
	// stealSlugs makes AddArticle lose the insert race that many times: a
	// competing article grabs the slug first.
	stealSlugs int
	// blindSlugs hides existing slugs from SlugExists so every insert collides.
	blindSlugs bool
}

func newMemStore() *memStore {
	return &memStore{articles: map[string]db.Article{}}
}

func (s *memStore) Articles(_ context.Context, filter db.ArticleFilter, page, pageSize int) ([]db.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("page or pageSize must be greater than 0: page=%d, pageSize=%d", page, pageSize)
	}

	matched := s.filtered(filter)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	offset := (page - 1) * pageSize
	if offset >= len(matched) {
		return []db.Article{}, nil
	}

	end := min(offset+pageSize, len(matched))
	return matched[offset:end], nil
}

func (s *memStore) ArticlesCount(_ context.Context, filter db.ArticleFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return 0, s.failWith
	}

	return len(s.filtered(filter)), nil
}

func (s *memStore) filtered(filter db.ArticleFilter) []db.Article {
	var out []db.Article
	for _, a := range s.articles {
		if filter.Category != nil && a.Category != *filter.Category {
			continue
		}
		if filter.IsFeatured != nil && a.IsFeatured != *filter.IsFeatured {
			continue
		}
		if filter.IsTrending != nil && a.IsTrending != *filter.IsTrending {
			continue
		}
		out = append(out, a)
	}

	return out
}

func (s *memStore) ArticleByID(_ context.Context, articleID string) (*db.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	a, ok := s.articles[articleID]
	if !ok {
		return nil, nil
	}

	return &a, nil
}

func (s *memStore) ArticleBySlug(_ context.Context, slug string) (*db.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	for _, a := range s.articles {
		if a.Slug == slug {
			return &a, nil
		}
	}

	return nil, nil
}

func (s *memStore) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return false, s.failWith
	}
	if s.blindSlugs {
		return false, nil
	}

	return s.slugTaken(slug), nil
}

func (s *memStore) slugTaken(slug string) bool {
	for _, a := range s.articles {
		if a.Slug == slug {
			return true
		}
	}

	return false
}

func (s *memStore) AddArticle(_ context.Context, article *db.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	if s.stealSlugs > 0 {
		s.stealSlugs--
		competitor := *article
		competitor.ID = uuid.NewString()
		s.articles[competitor.ID] = competitor
	}

	if s.slugTaken(article.Slug) {
		return fmt.Errorf("insert article %q: %w", article.Slug, db.ErrDuplicateSlug)
	}

	s.articles[article.ID] = *article
	return nil
}

func (s *memStore) UpdateArticle(_ context.Context, article *db.Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return false, s.failWith
	}

	current, ok := s.articles[article.ID]
	if !ok {
		return false, nil
	}

	article.Slug = current.Slug
	article.CreatedAt = current.CreatedAt
	s.articles[article.ID] = *article
	return true, nil
}

func (s *memStore) DeleteArticle(_ context.Context, articleID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return false, s.failWith
	}

	if _, ok := s.articles[articleID]; !ok {
		return false, nil
	}

	delete(s.articles, articleID)
	kept := s.updates[:0]
	for _, u := range s.updates {
		if u.ArticleID != articleID {
			kept = append(kept, u)
		}
	}
	s.updates = kept

	return true, nil
}

func (s *memStore) ThreadUpdatesByArticleIDs(_ context.Context, articleIDs []string) ([]db.ThreadUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	wanted := make(map[string]struct{}, len(articleIDs))
	for _, id := range articleIDs {
		wanted[id] = struct{}{}
	}

	out := []db.ThreadUpdate{}
	for _, u := range s.updates {
		if _, ok := wanted[u.ArticleID]; ok {
			out = append(out, u)
		}
	}

	return out, nil
}

func (s *memStore) AddThreadUpdate(_ context.Context, update *db.ThreadUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return false, s.failWith
	}
	if !s.touch(update.ArticleID, update.CreatedAt) {
		return false, nil
	}

	s.seq++
	update.Seq = s.seq
	s.updates = append(s.updates, *update)
	return true, nil
}

func (s *memStore) UpdateThreadUpdateBody(_ context.Context, articleID, updateID, body string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return false, s.failWith
	}

	for i := range s.updates {
		if s.updates[i].ArticleID == articleID && s.updates[i].ID == updateID {
			s.updates[i].Body = body
			return s.touch(articleID, now), nil
		}
	}

	return false, nil
}

func (s *memStore) DeleteThreadUpdate(_ context.Context, articleID, updateID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return false, s.failWith
	}

	for i := range s.updates {
		if s.updates[i].ArticleID == articleID && s.updates[i].ID == updateID {
			s.updates = append(s.updates[:i], s.updates[i+1:]...)
			return s.touch(articleID, now), nil
		}
	}

	return false, nil
}

func (s *memStore) touch(articleID string, now time.Time) bool {
	a, ok := s.articles[articleID]
	if !ok {
		return false
	}

	a.UpdatedAt = now
	s.articles[articleID] = a
	return true
}

// noOpLogger creates a logger that discards all output for tests
func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// newTestManager returns a manager whose clock advances one second per call,
// so creation order is reflected in createdAt.
func newTestManager(store Store) *Manager {
	m := NewArticleManager(store, noOpLogger())

	var mu sync.Mutex
	clock := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}

	return m
}
