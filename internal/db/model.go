// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Article struct {
		ID, Title, Summary, Body, ImageURL, ImageAlt, Category, IsFeatured, IsTrending, Slug, SeoTags, CreatedAt, UpdatedAt string
	}
	ThreadUpdate struct {
		ID, ArticleID, Seq, Title, Summary, Body, CreatedAt string
	}
}{
	Article: struct {
		ID, Title, Summary, Body, ImageURL, ImageAlt, Category, IsFeatured, IsTrending, Slug, SeoTags, CreatedAt, UpdatedAt string
	}{
		ID:         "articleId",
		Title:      "title",
		Summary:    "summary",
		Body:       "body",
		ImageURL:   "imageUrl",
		ImageAlt:   "imageAlt",
		Category:   "category",
		IsFeatured: "isFeatured",
		IsTrending: "isTrending",
		Slug:       "slug",
		SeoTags:    "seoTags",
		CreatedAt:  "createdAt",
		UpdatedAt:  "updatedAt",
	},
	ThreadUpdate: struct {
		ID, ArticleID, Seq, Title, Summary, Body, CreatedAt string
	}{
		ID:        "updateId",
		ArticleID: "articleId",
		Seq:       "seq",
		Title:     "title",
		Summary:   "summary",
		Body:      "body",
		CreatedAt: "createdAt",
	},
}

var Tables = struct {
	Article struct {
		Name, Alias string
	}
	ThreadUpdate struct {
		Name, Alias string
	}
}{
	Article: struct {
		Name, Alias string
	}{
		Name:  "articles",
		Alias: "t",
	},
	ThreadUpdate: struct {
		Name, Alias string
	}{
		Name:  "thread_updates",
		Alias: "t",
	},
}

type Article struct {
	tableName struct{} `pg:"articles,alias:t,discard_unknown_columns"`

	ID         string    `pg:"articleId,pk,type:uuid"`
	Title      string    `pg:"title,use_zero"`
	Summary    string    `pg:"summary,use_zero"`
	Body       string    `pg:"body,use_zero"`
	ImageURL   string    `pg:"imageUrl,use_zero"`
	ImageAlt   string    `pg:"imageAlt,use_zero"`
	Category   string    `pg:"category,use_zero"`
	IsFeatured bool      `pg:"isFeatured,use_zero"`
	IsTrending bool      `pg:"isTrending,use_zero"`
	Slug       string    `pg:"slug,use_zero"`
	SeoTags    []string  `pg:"seoTags,array,use_zero"`
	CreatedAt  time.Time `pg:"createdAt,use_zero"`
	UpdatedAt  time.Time `pg:"updatedAt,use_zero"`
}

type ThreadUpdate struct {
	tableName struct{} `pg:"thread_updates,alias:t,discard_unknown_columns"`

	ID        string    `pg:"updateId,pk,type:uuid"`
	ArticleID string    `pg:"articleId,type:uuid,use_zero"`
	Seq       int64     `pg:"seq"`
	Title     *string   `pg:"title"`
	Summary   *string   `pg:"summary"`
	Body      string    `pg:"body,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`
}
