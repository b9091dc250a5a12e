package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const (
	uniqueViolation = "23505"
	slugConstraint  = "articles_slug_key"
)

// ErrDuplicateSlug is returned when an insert hits the unique slug index.
var ErrDuplicateSlug = errors.New("duplicate slug")

var errNoRows = errors.New("no rows affected")

// ArticleFilter narrows article listings. Nil fields are not applied.
type ArticleFilter struct {
	Category   *string
	IsFeatured *bool
	IsTrending *bool
}

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// inTx runs fn inside a transaction. A repository that already wraps a
// transaction runs fn directly so callers can compose it with outer txs.
func (r *Repository) inTx(ctx context.Context, fn func(*Repository) error) error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.RunInTransaction(ctx, func(tx *pg.Tx) error {
			return fn(New(tx))
		})
	}

	return fn(r)
}

// Articles retrieves articles matching the filter, newest first, with pagination.
func (r *Repository) Articles(ctx context.Context, filter ArticleFilter, page, pageSize int) ([]Article, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf(
			"page or pageSize must be greater than 0: page=%d, pageSize=%d",
			page, pageSize,
		)
	}

	offset := (page - 1) * pageSize

	var articles []Article
	err := applyFilter(r.db.ModelContext(ctx, &articles), filter).
		OrderExpr(`"t"."createdAt" DESC`).
		OrderExpr(`"t"."articleId" ASC`).
		Limit(pageSize).
		Offset(offset).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	return articles, nil
}

func (r *Repository) ArticlesCount(ctx context.Context, filter ArticleFilter) (int, error) {
	count, err := applyFilter(r.db.ModelContext(ctx, (*Article)(nil)), filter).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get articles count: %w", err)
	}

	return count, nil
}

func applyFilter(query *orm.Query, filter ArticleFilter) *orm.Query {
	if filter.Category != nil {
		query = query.Where(`"t"."category" = ?`, *filter.Category)
	}

	if filter.IsFeatured != nil {
		query = query.Where(`"t"."isFeatured" = ?`, *filter.IsFeatured)
	}

	if filter.IsTrending != nil {
		query = query.Where(`"t"."isTrending" = ?`, *filter.IsTrending)
	}

	return query
}

// ArticleByID returns nil without error when the article does not exist.
func (r *Repository) ArticleByID(ctx context.Context, articleID string) (*Article, error) {
	return r.oneArticle(ctx, Columns.Article.ID, articleID)
}

// ArticleBySlug returns nil without error when the article does not exist.
func (r *Repository) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	return r.oneArticle(ctx, Columns.Article.Slug, slug)
}

func (r *Repository) oneArticle(ctx context.Context, column, value string) (*Article, error) {
	article := &Article{}
	err := r.db.ModelContext(ctx, article).
		Where(`"t".? = ?`, pg.Ident(column), value).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get article by %s: %w", column, err)
	}

	return article, nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Where(`"t"."slug" = ?`, slug).
		Exists()

	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return exists, nil
}

// AddArticle inserts a new article. A slug collision is reported as ErrDuplicateSlug.
func (r *Repository) AddArticle(ctx context.Context, article *Article) error {
	if article.SeoTags == nil {
		article.SeoTags = []string{}
	}

	_, err := r.db.ModelContext(ctx, article).Insert()
	if isSlugViolation(err) {
		return fmt.Errorf("insert article %q: %w", article.Slug, ErrDuplicateSlug)
	} else if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

// UpdateArticle overwrites the editable fields of an article. Slug and
// createdAt are left untouched. Returns false when the article does not exist.
func (r *Repository) UpdateArticle(ctx context.Context, article *Article) (bool, error) {
	if article.SeoTags == nil {
		article.SeoTags = []string{}
	}

	res, err := r.db.ModelContext(ctx, article).
		Column(
			Columns.Article.Title,
			Columns.Article.Summary,
			Columns.Article.Body,
			Columns.Article.ImageURL,
			Columns.Article.ImageAlt,
			Columns.Article.Category,
			Columns.Article.IsFeatured,
			Columns.Article.IsTrending,
			Columns.Article.SeoTags,
			Columns.Article.UpdatedAt,
		).
		WherePK().
		Update()

	if err != nil {
		return false, fmt.Errorf("failed to update article: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// DeleteArticle removes the article; its thread updates go with it through
// the ON DELETE CASCADE foreign key.
func (r *Repository) DeleteArticle(ctx context.Context, articleID string) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Where(`"t"."articleId" = ?`, articleID).
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// ThreadUpdatesByArticleIDs loads the updates of several articles in append order.
func (r *Repository) ThreadUpdatesByArticleIDs(ctx context.Context, articleIDs []string) ([]ThreadUpdate, error) {
	if len(articleIDs) == 0 {
		return []ThreadUpdate{}, nil
	}

	updates := []ThreadUpdate{}
	err := r.db.ModelContext(ctx, &updates).
		Where(`"t"."articleId" IN (?)`, pg.In(articleIDs)).
		OrderExpr(`"t"."seq" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query thread updates: %w", err)
	}

	return updates, nil
}

// AddThreadUpdate appends an update to its article. Returns false when the
// article does not exist.
func (r *Repository) AddThreadUpdate(ctx context.Context, update *ThreadUpdate) (bool, error) {
	err := r.inTx(ctx, func(tx *Repository) error {
		if err := tx.touchArticle(ctx, update.ArticleID, update.CreatedAt); err != nil {
			return err
		}

		if _, err := tx.db.ModelContext(ctx, update).Insert(); err != nil {
			return fmt.Errorf("failed to insert thread update: %w", err)
		}

		return nil
	})

	return found(err)
}

// UpdateThreadUpdateBody rewrites the body of one update. Returns false when
// either the article or the update does not exist.
func (r *Repository) UpdateThreadUpdateBody(ctx context.Context, articleID, updateID, body string, now time.Time) (bool, error) {
	err := r.inTx(ctx, func(tx *Repository) error {
		if err := tx.touchArticle(ctx, articleID, now); err != nil {
			return err
		}

		res, err := tx.db.ModelContext(ctx, (*ThreadUpdate)(nil)).
			Set(`"body" = ?`, body).
			Where(`"t"."articleId" = ?`, articleID).
			Where(`"t"."updateId" = ?`, updateID).
			Update()

		if err != nil {
			return fmt.Errorf("failed to update thread update: %w", err)
		} else if res.RowsAffected() == 0 {
			return errNoRows
		}

		return nil
	})

	return found(err)
}

// DeleteThreadUpdate removes one update. Returns false when either the
// article or the update does not exist.
func (r *Repository) DeleteThreadUpdate(ctx context.Context, articleID, updateID string, now time.Time) (bool, error) {
	err := r.inTx(ctx, func(tx *Repository) error {
		if err := tx.touchArticle(ctx, articleID, now); err != nil {
			return err
		}

		res, err := tx.db.ModelContext(ctx, (*ThreadUpdate)(nil)).
			Where(`"t"."articleId" = ?`, articleID).
			Where(`"t"."updateId" = ?`, updateID).
			Delete()

		if err != nil {
			return fmt.Errorf("failed to delete thread update: %w", err)
		} else if res.RowsAffected() == 0 {
			return errNoRows
		}

		return nil
	})

	return found(err)
}

// touchArticle bumps updatedAt. The UPDATE row-locks the article until the
// surrounding transaction ends, serialising thread mutations per article.
func (r *Repository) touchArticle(ctx context.Context, articleID string, now time.Time) error {
	res, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Set(`"updatedAt" = ?`, now).
		Where(`"t"."articleId" = ?`, articleID).
		Update()

	if err != nil {
		return fmt.Errorf("failed to touch article: %w", err)
	} else if res.RowsAffected() == 0 {
		return errNoRows
	}

	return nil
}

func found(err error) (bool, error) {
	if errors.Is(err, errNoRows) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}

func isSlugViolation(err error) bool {
	var pgErr pg.Error
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Field('C') == uniqueViolation && pgErr.Field('n') == slugConstraint
}
