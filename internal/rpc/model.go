package rpc

import (
	"time"

	"github.com/daniilsolovey/football-news/internal/newsroom"
)

type ArticleFilter struct {
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
	//limit=12 items per page, at most 100
	Limit *int `json:"limit,omitempty"`
	//category optional category filter
	Category *string `json:"category,omitempty"`
	//featured optional featured flag filter
	Featured *bool `json:"featured,omitempty"`
	//trending optional trending flag filter
	Trending *bool `json:"trending,omitempty"`
}

func (f ArticleFilter) ToModel() newsroom.ArticleFilter {
	return newsroom.ArticleFilter{
		Category: f.Category,
		Featured: f.Featured,
		Trending: f.Trending,
	}
}

type ThreadUpdate struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title,omitempty"`
	Summary   *string   `json:"summary,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type Article struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	Body       string         `json:"body"`
	ImageURL   string         `json:"imageUrl"`
	ImageAlt   string         `json:"imageAlt"`
	Category   string         `json:"category"`
	IsFeatured bool           `json:"isFeatured"`
	IsTrending bool           `json:"isTrending"`
	Slug       string         `json:"slug"`
	SeoTags    []string       `json:"seoTags"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Updates    []ThreadUpdate `json:"updates"`
}

type ArticlePage struct {
	Articles []Article `json:"articles"`
	Total    int       `json:"total"`
}
