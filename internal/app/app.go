package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/daniilsolovey/football-news/config"
	"github.com/daniilsolovey/football-news/internal/auth"
	"github.com/daniilsolovey/football-news/internal/db"
	"github.com/daniilsolovey/football-news/internal/newsroom"
	"github.com/daniilsolovey/football-news/internal/rest"
	"github.com/daniilsolovey/football-news/internal/rpc"
	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
)

const rpcPath = "/v1/rpc/"

type App struct {
	DB     *db.Repository
	Logger *slog.Logger
	Echo   *echo.Echo
	Config *config.Config
}

func New(cfg *config.Config, dbConnect *pg.DB, logger *slog.Logger) *App {
	if cfg.App.LogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(logger))
	}

	repo := db.New(dbConnect)
	manager := newsroom.NewArticleManager(repo, logger)
	gate := auth.NewGate(cfg.Auth, logger)

	e := rest.NewServer(logger, rest.NewMetrics(), repo)
	rest.NewArticleHandler(manager, logger).RegisterRoutes(e, gate.Require())
	e.Any(rpcPath, echo.WrapHandler(rpc.New(logger, manager)))

	return &App{
		DB:     repo,
		Logger: logger,
		Echo:   e,
		Config: cfg,
	}
}

func (a *App) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, port)
	a.Logger.InfoContext(ctx, "service started", "addr", addr)

	if err := a.Echo.Start(addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if closeErr := a.DB.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
