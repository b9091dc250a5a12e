package rest

import "time"

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

type ArticlesRequest struct {
	Page     *int    `query:"page"`
	Limit    *int    `query:"limit"`
	Category *string `query:"category"`
	Featured *bool   `query:"featured"`
	Trending *bool   `query:"trending"`
}

type ArticleRequest struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Body       string   `json:"body"`
	ImageURL   string   `json:"imageUrl"`
	ImageAlt   string   `json:"imageAlt"`
	Category   string   `json:"category"`
	IsFeatured bool     `json:"isFeatured"`
	IsTrending bool     `json:"isTrending"`
	SeoTags    []string `json:"seoTags"`
}

type ThreadUpdateRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

type EditThreadUpdateRequest struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}
