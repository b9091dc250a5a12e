package rest

import "github.com/daniilsolovey/football-news/internal/newsroom"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewArticles(in []newsroom.Article) []Article {
	return Map(in, NewArticle)
}

func NewThreadUpdates(in []newsroom.ThreadUpdate) []ThreadUpdate {
	return Map(in, NewThreadUpdate)
}
