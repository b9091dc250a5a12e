package rest

import (
	"strings"

	"github.com/daniilsolovey/football-news/internal/newsroom"
)

func NewArticle(a newsroom.Article) Article {
	seoTags := a.SeoTags
	if seoTags == nil {
		seoTags = []string{}
	}

	return Article{
		ID:         a.ID,
		Title:      a.Title,
		Summary:    a.Summary,
		Body:       a.Body,
		ImageURL:   a.ImageURL,
		ImageAlt:   a.ImageAlt,
		Category:   a.Category,
		IsFeatured: a.IsFeatured,
		IsTrending: a.IsTrending,
		Slug:       a.Slug,
		SeoTags:    seoTags,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		Updates:    NewThreadUpdates(a.Updates),
	}
}

func NewThreadUpdate(u newsroom.ThreadUpdate) ThreadUpdate {
	return ThreadUpdate{
		ID:        u.ID,
		Title:     u.Title,
		Summary:   u.Summary,
		Body:      u.Body,
		CreatedAt: u.CreatedAt,
	}
}

func (r ArticleRequest) ToModel() newsroom.ArticleInput {
	return newsroom.ArticleInput{
		Title:      r.Title,
		Summary:    r.Summary,
		Body:       r.Body,
		ImageURL:   r.ImageURL,
		ImageAlt:   r.ImageAlt,
		Category:   r.Category,
		IsFeatured: r.IsFeatured,
		IsTrending: r.IsTrending,
		SeoTags:    r.SeoTags,
	}
}

func (r ThreadUpdateRequest) ToModel() newsroom.ThreadUpdateInput {
	return newsroom.ThreadUpdateInput{
		Title:   r.Title,
		Summary: r.Summary,
		Body:    r.Body,
	}
}

// ToModel treats an empty category (?category=) as no category filter.
func (r ArticlesRequest) ToModel() newsroom.ArticleFilter {
	category := r.Category
	if category != nil && strings.TrimSpace(*category) == "" {
		category = nil
	}

	return newsroom.ArticleFilter{
		Category: category,
		Featured: r.Featured,
		Trending: r.Trending,
	}
}
