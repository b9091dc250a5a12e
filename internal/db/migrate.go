package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// DSN builds a postgres connection URL from go-pg options, so the same
// config section serves the ORM and the migration runner.
func DSN(opt *pg.Options) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(opt.User, opt.Password),
		Host:     opt.Addr,
		Path:     "/" + opt.Database,
		RawQuery: "sslmode=disable",
	}
	if opt.TLSConfig != nil {
		u.RawQuery = "sslmode=require"
	}

	return u.String()
}

// Migrate applies all pending embedded migrations.
func Migrate(ctx context.Context, dsn string) error {
	return withGoose(ctx, dsn, func(sqldb *sql.DB) error {
		if err := goose.UpContext(ctx, sqldb, migrationsDir); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, dsn string) error {
	return withGoose(ctx, dsn, func(sqldb *sql.DB) error {
		if err := goose.DownContext(ctx, sqldb, migrationsDir); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		return nil
	})
}

// MigrationStatus prints the applied state of every embedded migration.
func MigrationStatus(ctx context.Context, dsn string) error {
	return withGoose(ctx, dsn, func(sqldb *sql.DB) error {
		if err := goose.StatusContext(ctx, sqldb, migrationsDir); err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		return nil
	})
}

func withGoose(ctx context.Context, dsn string, fn func(*sql.DB) error) error {
	config, err := pgx.ParseConnectionString(dsn)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return fn(sqldb)
}
