package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/daniilsolovey/football-news/internal/newsroom"
	"github.com/labstack/echo/v4"
)

// ArticleManager is the part of newsroom.Manager the handlers use.
type ArticleManager interface {
	Create(ctx context.Context, in newsroom.ArticleInput) (*newsroom.Article, error)
	List(ctx context.Context, filter newsroom.ArticleFilter, page, pageSize int) ([]newsroom.Article, int, error)
	ByID(ctx context.Context, articleID string) (*newsroom.Article, error)
	BySlug(ctx context.Context, slug string) (*newsroom.Article, error)
	Replace(ctx context.Context, articleID string, in newsroom.ArticleInput) (*newsroom.Article, error)
	Delete(ctx context.Context, articleID string) error
	AppendUpdate(ctx context.Context, articleID string, in newsroom.ThreadUpdateInput) (*newsroom.Article, error)
	EditUpdateBody(ctx context.Context, articleID, updateID, body string) (*newsroom.Article, error)
	DeleteUpdate(ctx context.Context, articleID, updateID string) error
}

type ArticleHandler struct {
	uc  ArticleManager
	log *slog.Logger
}

func NewArticleHandler(uc ArticleManager, log *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		uc:  uc,
		log: log,
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *ArticleHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// respondError maps manager errors onto HTTP statuses. Storage details are
// logged, never returned.
func (h *ArticleHandler) respondError(c echo.Context, err error) error {
	var verr *newsroom.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, newsroom.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, newsroom.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": "slug conflict, retry the request"})
	default:
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
}

// CreateArticle handles POST /api/v1/articles
// @Summary Create article
// @Description Creates an article with a unique slug derived from its title
// @Tags articles
// @Accept json
// @Produce json
// @Param article body rest.ArticleRequest true "Article"
// @Success 201 {object} rest.Article
// @Failure 400,401,409,500 {object} map[string]string
// @Router /api/v1/articles [post]
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	article, err := h.uc.Create(c.Request().Context(), req.ToModel())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, NewArticle(*article))
}

// Articles handles GET /api/v1/articles
// @Summary List articles
// @Description Returns one page of articles sorted by createdAt DESC with the total number of matches
// @Tags articles
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 12, max: 100)"
// @Param category query string false "Filter by category"
// @Param featured query bool false "Filter by featured flag"
// @Param trending query bool false "Filter by trending flag"
// @Success 200 {object} rest.ArticlePage
// @Failure 400,500 {object} map[string]string
// @Router /api/v1/articles [get]
func (h *ArticleHandler) Articles(c echo.Context) error {
	var req ArticlesRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	page, limit := newsroom.PageParams(req.Page, req.Limit)
	articles, total, err := h.uc.List(c.Request().Context(), req.ToModel(), page, limit)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, ArticlePage{
		Articles: NewArticles(articles),
		Total:    total,
	})
}

// ArticleByID handles GET /api/v1/articles/:id
// @Summary Get article by ID
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 404,500 {object} map[string]string
// @Router /api/v1/articles/{id} [get]
func (h *ArticleHandler) ArticleByID(c echo.Context) error {
	article, err := h.uc.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// ArticleBySlug handles GET /api/v1/articles/slug/:slug
// @Summary Get article by slug
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} rest.Article
// @Failure 404,500 {object} map[string]string
// @Router /api/v1/articles/slug/{slug} [get]
func (h *ArticleHandler) ArticleBySlug(c echo.Context) error {
	article, err := h.uc.BySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// ReplaceArticle handles PUT /api/v1/articles/:id
// @Summary Replace article
// @Description Overwrites every editable field. The slug is kept.
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param article body rest.ArticleRequest true "Article"
// @Success 200 {object} rest.Article
// @Failure 400,401,404,500 {object} map[string]string
// @Router /api/v1/articles/{id} [put]
func (h *ArticleHandler) ReplaceArticle(c echo.Context) error {
	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	article, err := h.uc.Replace(c.Request().Context(), c.Param("id"), req.ToModel())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// DeleteArticle handles DELETE /api/v1/articles/:id
// @Summary Delete article
// @Description Deletes the article with all its thread updates
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.successResponse
// @Failure 401,404,500 {object} map[string]string
// @Router /api/v1/articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// AppendThreadUpdate handles POST /api/v1/articles/:id/updates
// @Summary Append thread update
// @Tags thread updates
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param update body rest.ThreadUpdateRequest true "Thread update"
// @Success 200 {object} rest.Article
// @Failure 400,401,404,500 {object} map[string]string
// @Router /api/v1/articles/{id}/updates [post]
func (h *ArticleHandler) AppendThreadUpdate(c echo.Context) error {
	var req ThreadUpdateRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	article, err := h.uc.AppendUpdate(c.Request().Context(), c.Param("id"), req.ToModel())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// EditThreadUpdate handles PATCH /api/v1/articles/:id/updates
// @Summary Edit thread update body
// @Tags thread updates
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param update body rest.EditThreadUpdateRequest true "Update id and new body"
// @Success 200 {object} rest.Article
// @Failure 400,401,404,500 {object} map[string]string
// @Router /api/v1/articles/{id}/updates [patch]
func (h *ArticleHandler) EditThreadUpdate(c echo.Context) error {
	var req EditThreadUpdateRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	article, err := h.uc.EditUpdateBody(c.Request().Context(), c.Param("id"), req.ID, req.Body)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// DeleteThreadUpdate handles DELETE /api/v1/articles/:id/updates?updateId=
// @Summary Delete thread update
// @Tags thread updates
// @Produce json
// @Param id path string true "Article ID"
// @Param updateId query string true "Thread update ID"
// @Success 200 {object} rest.successResponse
// @Failure 400,401,404,500 {object} map[string]string
// @Router /api/v1/articles/{id}/updates [delete]
func (h *ArticleHandler) DeleteThreadUpdate(c echo.Context) error {
	updateID := c.QueryParam("updateId")
	if updateID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "updateId is required"})
	}

	if err := h.uc.DeleteUpdate(c.Request().Context(), c.Param("id"), updateID); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}
