package rpc

import "github.com/daniilsolovey/football-news/internal/newsroom"

func NewArticle(a newsroom.Article) Article {
	seoTags := a.SeoTags
	if seoTags == nil {
		seoTags = []string{}
	}

	updates := make([]ThreadUpdate, len(a.Updates))
	for i, u := range a.Updates {
		updates[i] = NewThreadUpdate(u)
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
		Updates:    updates,
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

func NewArticles(in []newsroom.Article) []Article {
	out := make([]Article, len(in))
	for i := range in {
		out[i] = NewArticle(in[i])
	}

	return out
}
