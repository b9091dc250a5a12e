package newsroom

import "github.com/daniilsolovey/football-news/internal/db"

type ArticleList []Article

func NewArticle(a *db.Article) Article {
	return Article{
		Article: *a,
		Updates: []ThreadUpdate{},
	}
}

func NewArticleList(in []db.Article) ArticleList {
	ll := make(ArticleList, len(in))
	for i := range in {
		ll[i] = NewArticle(&in[i])
	}

	return ll
}

func (ll ArticleList) IDs() []string {
	ids := make([]string, len(ll))
	for i := range ll {
		ids[i] = ll[i].ID
	}

	return ids
}

// SetUpdates distributes updates to their articles, keeping the input order
// within each article.
func (ll ArticleList) SetUpdates(updates []db.ThreadUpdate) {
	index := make(map[string]int, len(ll))
	for i := range ll {
		index[ll[i].ID] = i
	}

	for _, u := range updates {
		if i, ok := index[u.ArticleID]; ok {
			ll[i].Updates = append(ll[i].Updates, ThreadUpdate{ThreadUpdate: u})
		}
	}
}
