package newsroom

import (
	"strings"

	"github.com/daniilsolovey/football-news/internal/db"
)

type ThreadUpdate struct {
	db.ThreadUpdate
}

type Article struct {
	db.Article
	Updates []ThreadUpdate
}

// ArticleInput carries the editable fields of an article for create and replace.
type ArticleInput struct {
	Title      string   `json:"title" validate:"required"`
	Summary    string   `json:"summary" validate:"required"`
	Body       string   `json:"body" validate:"required"`
	ImageURL   string   `json:"imageUrl" validate:"required"`
	Category   string   `json:"category" validate:"required"`
	IsFeatured bool     `json:"isFeatured"`
	IsTrending bool     `json:"isTrending"`
	ImageAlt   string   `json:"imageAlt"`
	SeoTags    []string `json:"seoTags"`
}

// ThreadUpdateInput is a live-coverage addendum. Title and summary are optional.
type ThreadUpdateInput struct {
	Title   string
	Summary string
	Body    string
}

// ArticleFilter narrows a listing. Nil fields, and a blank category, match
// everything.
type ArticleFilter struct {
	Category *string
	Featured *bool
	Trending *bool
}

func (f ArticleFilter) toDB() db.ArticleFilter {
	category := f.Category
	if category != nil && strings.TrimSpace(*category) == "" {
		category = nil
	}

	return db.ArticleFilter{
		Category:   category,
		IsFeatured: f.Featured,
		IsTrending: f.Trending,
	}
}

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// PageParams resolves optional paging input. A missing page is 1, a missing
// limit is DefaultPageSize and limits above MaxPageSize are capped. Values
// below 1 pass through for List to reject.
func PageParams(page, limit *int) (int, int) {
	p, l := 1, DefaultPageSize
	if page != nil {
		p = *page
	}
	if limit != nil {
		l = min(*limit, MaxPageSize)
	}

	return p, l
}
