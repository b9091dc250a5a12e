package newsroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daniilsolovey/football-news/internal/db"
	"github.com/google/uuid"
)

// createAttempts bounds slug disambiguation: the first pass plus one retry
// after losing an insert race on the unique slug index.
const createAttempts = 2

// Store is the persistence the manager needs. *db.Repository implements it.
type Store interface {
	Articles(ctx context.Context, filter db.ArticleFilter, page, pageSize int) ([]db.Article, error)
	ArticlesCount(ctx context.Context, filter db.ArticleFilter) (int, error)
	ArticleByID(ctx context.Context, articleID string) (*db.Article, error)
	ArticleBySlug(ctx context.Context, slug string) (*db.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	AddArticle(ctx context.Context, article *db.Article) error
	UpdateArticle(ctx context.Context, article *db.Article) (bool, error)
	DeleteArticle(ctx context.Context, articleID string) (bool, error)
	ThreadUpdatesByArticleIDs(ctx context.Context, articleIDs []string) ([]db.ThreadUpdate, error)
	AddThreadUpdate(ctx context.Context, update *db.ThreadUpdate) (bool, error)
	UpdateThreadUpdateBody(ctx context.Context, articleID, updateID, body string, now time.Time) (bool, error)
	DeleteThreadUpdate(ctx context.Context, articleID, updateID string, now time.Time) (bool, error)
}

// Manager owns the article lifecycle. Callers of mutating methods are
// expected to be authorised already.
type Manager struct {
	store Store
	log   *slog.Logger
	check *inputChecker
	now   func() time.Time
}

func NewArticleManager(store Store, logger *slog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   logger,
		check: newInputChecker(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new article under a unique slug derived from its title.
func (m *Manager) Create(ctx context.Context, in ArticleInput) (*Article, error) {
	in, err := m.check.article(in)
	if err != nil {
		return nil, err
	}

	now := m.now()
	article := db.Article{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Summary:    in.Summary,
		Body:       in.Body,
		ImageURL:   in.ImageURL,
		ImageAlt:   in.ImageAlt,
		Category:   in.Category,
		IsFeatured: in.IsFeatured,
		IsTrending: in.IsTrending,
		SeoTags:    in.SeoTags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for attempt := 1; attempt <= createAttempts; attempt++ {
		slug, err := m.uniqueSlug(ctx, in.Title)
		if err != nil {
			return nil, m.storageError(ctx, "resolve slug", err, "title", in.Title)
		}

		article.Slug = slug
		err = m.store.AddArticle(ctx, &article)
		if errors.Is(err, db.ErrDuplicateSlug) {
			m.log.WarnContext(ctx, "slug taken concurrently", "slug", slug, "attempt", attempt)
			continue
		} else if err != nil {
			return nil, m.storageError(ctx, "add article", err, "slug", slug)
		}

		m.log.InfoContext(ctx, "article created", "articleID", article.ID, "slug", slug)
		created := NewArticle(&article)
		return &created, nil
	}

	return nil, fmt.Errorf("create article %q: %w", in.Title, ErrConflict)
}

// uniqueSlug returns the first of base, base-1, base-2, ... that is not taken.
func (m *Manager) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = fallbackSlug
	}

	slug := base
	for i := 1; ; i++ {
		exists, err := m.store.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		} else if !exists {
			return slug, nil
		}

		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// List returns one page of articles newest first and the total number of
// matches for the filter.
func (m *Manager) List(ctx context.Context, filter ArticleFilter, page, pageSize int) ([]Article, int, error) {
	if err := pagination(page, pageSize); err != nil {
		return nil, 0, err
	}

	total, err := m.store.ArticlesCount(ctx, filter.toDB())
	if err != nil {
		return nil, 0, m.storageError(ctx, "count articles", err)
	}

	dbArticles, err := m.store.Articles(ctx, filter.toDB(), page, pageSize)
	if err != nil {
		return nil, 0, m.storageError(ctx, "list articles", err, "page", page, "pageSize", pageSize)
	}

	list := NewArticleList(dbArticles)
	if err := m.fillUpdates(ctx, list); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (m *Manager) ByID(ctx context.Context, articleID string) (*Article, error) {
	if !isUUID(articleID) {
		return nil, fmt.Errorf("article %q: %w", articleID, ErrNotFound)
	}

	dbArticle, err := m.store.ArticleByID(ctx, articleID)
	if err != nil {
		return nil, m.storageError(ctx, "get article by id", err, "articleID", articleID)
	}

	return m.withUpdates(ctx, dbArticle, articleID)
}

func (m *Manager) BySlug(ctx context.Context, slug string) (*Article, error) {
	dbArticle, err := m.store.ArticleBySlug(ctx, slug)
	if err != nil {
		return nil, m.storageError(ctx, "get article by slug", err, "slug", slug)
	}

	return m.withUpdates(ctx, dbArticle, slug)
}

func (m *Manager) withUpdates(ctx context.Context, dbArticle *db.Article, key string) (*Article, error) {
	if dbArticle == nil {
		return nil, fmt.Errorf("article %q: %w", key, ErrNotFound)
	}

	list := NewArticleList([]db.Article{*dbArticle})
	if err := m.fillUpdates(ctx, list); err != nil {
		return nil, err
	}

	return &list[0], nil
}

func (m *Manager) fillUpdates(ctx context.Context, list ArticleList) error {
	if len(list) == 0 {
		return nil
	}

	updates, err := m.store.ThreadUpdatesByArticleIDs(ctx, list.IDs())
	if err != nil {
		return m.storageError(ctx, "load thread updates", err)
	}

	list.SetUpdates(updates)
	return nil
}

// Replace overwrites every editable field. The slug is kept even when the
// title changes, so published links stay valid.
func (m *Manager) Replace(ctx context.Context, articleID string, in ArticleInput) (*Article, error) {
	in, err := m.check.article(in)
	if err != nil {
		return nil, err
	}

	if !isUUID(articleID) {
		return nil, fmt.Errorf("article %q: %w", articleID, ErrNotFound)
	}

	ok, err := m.store.UpdateArticle(ctx, &db.Article{
		ID:         articleID,
		Title:      in.Title,
		Summary:    in.Summary,
		Body:       in.Body,
		ImageURL:   in.ImageURL,
		ImageAlt:   in.ImageAlt,
		Category:   in.Category,
		IsFeatured: in.IsFeatured,
		IsTrending: in.IsTrending,
		SeoTags:    in.SeoTags,
		UpdatedAt:  m.now(),
	})
	if err != nil {
		return nil, m.storageError(ctx, "update article", err, "articleID", articleID)
	} else if !ok {
		return nil, fmt.Errorf("article %q: %w", articleID, ErrNotFound)
	}

	m.log.InfoContext(ctx, "article replaced", "articleID", articleID)
	return m.ByID(ctx, articleID)
}

// Delete removes the article together with its thread updates.
func (m *Manager) Delete(ctx context.Context, articleID string) error {
	if !isUUID(articleID) {
		return fmt.Errorf("article %q: %w", articleID, ErrNotFound)
	}

	ok, err := m.store.DeleteArticle(ctx, articleID)
	if err != nil {
		return m.storageError(ctx, "delete article", err, "articleID", articleID)
	} else if !ok {
		return fmt.Errorf("article %q: %w", articleID, ErrNotFound)
	}

	m.log.InfoContext(ctx, "article deleted", "articleID", articleID)
	return nil
}

// AppendUpdate adds a thread update at the end of the article's thread.
func (m *Manager) AppendUpdate(ctx context.Context, articleID string, in ThreadUpdateInput) (*Article, error) {
	body, err := m.check.threadBody(in.Body)
	if err != nil {
		return nil, err
	}

	if !isUUID(articleID) {
		return nil, fmt.Errorf("article %q: %w", articleID, ErrNotFound)
	}

	update := &db.ThreadUpdate{
		ID:        uuid.NewString(),
		ArticleID: articleID,
		Title:     optional(in.Title),
		Summary:   optional(in.Summary),
		Body:      body,
		CreatedAt: m.now(),
	}

	ok, err := m.store.AddThreadUpdate(ctx, update)
	if err != nil {
		return nil, m.storageError(ctx, "add thread update", err, "articleID", articleID)
	} else if !ok {
		return nil, fmt.Errorf("article %q: %w", articleID, ErrNotFound)
	}

	m.log.InfoContext(ctx, "thread update appended", "articleID", articleID, "updateID", update.ID)
	return m.ByID(ctx, articleID)
}

// EditUpdateBody rewrites only the body of one thread update.
func (m *Manager) EditUpdateBody(ctx context.Context, articleID, updateID, body string) (*Article, error) {
	body, err := m.check.threadBody(body)
	if err != nil {
		return nil, err
	}

	if !isUUID(articleID) || !isUUID(updateID) {
		return nil, fmt.Errorf("thread update %q of article %q: %w", updateID, articleID, ErrNotFound)
	}

	ok, err := m.store.UpdateThreadUpdateBody(ctx, articleID, updateID, body, m.now())
	if err != nil {
		return nil, m.storageError(ctx, "edit thread update", err, "articleID", articleID, "updateID", updateID)
	} else if !ok {
		return nil, fmt.Errorf("thread update %q of article %q: %w", updateID, articleID, ErrNotFound)
	}

	return m.ByID(ctx, articleID)
}

// DeleteUpdate removes exactly one thread update. An unknown article or
// update id is reported as ErrNotFound.
func (m *Manager) DeleteUpdate(ctx context.Context, articleID, updateID string) error {
	if !isUUID(articleID) || !isUUID(updateID) {
		return fmt.Errorf("thread update %q of article %q: %w", updateID, articleID, ErrNotFound)
	}

	ok, err := m.store.DeleteThreadUpdate(ctx, articleID, updateID, m.now())
	if err != nil {
		return m.storageError(ctx, "delete thread update", err, "articleID", articleID, "updateID", updateID)
	} else if !ok {
		return fmt.Errorf("thread update %q of article %q: %w", updateID, articleID, ErrNotFound)
	}

	m.log.InfoContext(ctx, "thread update deleted", "articleID", articleID, "updateID", updateID)
	return nil
}

// storageError logs the infrastructure failure and hides it behind ErrStorage.
func (m *Manager) storageError(ctx context.Context, op string, err error, args ...any) error {
	m.log.ErrorContext(ctx, op+" failed", append([]any{"error", err}, args...)...)
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}

	return &s
}
