package rpc

import (
	"context"
	"errors"

	"github.com/daniilsolovey/football-news/internal/newsroom"
	"github.com/vmkteam/zenrpc/v2"
)

//go:generate zenrpc

// ArticleReader is the read side of newsroom.Manager.
type ArticleReader interface {
	List(ctx context.Context, filter newsroom.ArticleFilter, page, pageSize int) ([]newsroom.Article, int, error)
	ByID(ctx context.Context, articleID string) (*newsroom.Article, error)
	BySlug(ctx context.Context, slug string) (*newsroom.Article, error)
}

// ArticleService provides read-only RPC methods for articles.
type ArticleService struct {
	zenrpc.Service
	manager ArticleReader
}

func NewArticleService(manager ArticleReader) *ArticleService {
	return &ArticleService{manager: manager}
}

// List retrieves one page of articles sorted by createdAt DESC with the total number of matches.
//
//zenrpc:filter optional paging and filters
//zenrpc:return page of articles with total
//zenrpc:400 page and limit must be greater than 0
//zenrpc:500 internal server error
func (s *ArticleService) List(ctx context.Context, filter ArticleFilter) (*ArticlePage, error) {
	page, limit := newsroom.PageParams(filter.Page, filter.Limit)

	articles, total, err := s.manager.List(ctx, filter.ToModel(), page, limit)
	if err != nil {
		return nil, rpcError(err)
	}

	return &ArticlePage{Articles: NewArticles(articles), Total: total}, nil
}

// ByID retrieves a single article with its thread updates.
//
//zenrpc:id article uuid
//zenrpc:return article
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s *ArticleService) ByID(ctx context.Context, id string) (*Article, error) {
	article, err := s.manager.ByID(ctx, id)
	if err != nil {
		return nil, rpcError(err)
	}

	result := NewArticle(*article)
	return &result, nil
}

// BySlug retrieves a single article by its slug.
//
//zenrpc:slug article slug
//zenrpc:return article
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s *ArticleService) BySlug(ctx context.Context, slug string) (*Article, error) {
	article, err := s.manager.BySlug(ctx, slug)
	if err != nil {
		return nil, rpcError(err)
	}

	result := NewArticle(*article)
	return &result, nil
}

func rpcError(err error) error {
	var verr *newsroom.ValidationError
	switch {
	case errors.As(err, &verr):
		return zenrpc.NewStringError(400, verr.Error())
	case errors.Is(err, newsroom.ErrNotFound):
		return zenrpc.NewStringError(404, "article not found")
	default:
		return zenrpc.NewStringError(500, "internal server error")
	}
}
