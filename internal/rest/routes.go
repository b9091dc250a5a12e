package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// API paths
	apiV1Prefix  = "/api/v1"
	articlesPath = apiV1Prefix + "/articles"

	healthPath  = "/health"
	metricsPath = "/metrics"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewServer returns an echo instance with request logging, metrics and the
// health and metrics endpoints registered.
func NewServer(logger *slog.Logger, metrics *Metrics, db Pinger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(loggingMiddleware(logger))
	e.Use(metrics.Middleware())

	e.GET(healthPath, healthHandler(logger, db))
	e.GET(metricsPath, echo.WrapHandler(metrics.Handler()))

	return e
}

// RegisterRoutes mounts the article API. Mutating routes go through admin.
func (h *ArticleHandler) RegisterRoutes(e *echo.Echo, admin echo.MiddlewareFunc) {
	api := e.Group(articlesPath)

	api.GET("", h.Articles)
	api.GET("/:id", h.ArticleByID)
	api.GET("/slug/:slug", h.ArticleBySlug)

	api.POST("", h.CreateArticle, admin)
	api.PUT("/:id", h.ReplaceArticle, admin)
	api.DELETE("/:id", h.DeleteArticle, admin)

	api.POST("/:id/updates", h.AppendThreadUpdate, admin)
	api.PATCH("/:id/updates", h.EditThreadUpdate, admin)
	api.DELETE("/:id/updates", h.DeleteThreadUpdate, admin)
}

func healthHandler(logger *slog.Logger, db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			logger.Error("health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}

		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
