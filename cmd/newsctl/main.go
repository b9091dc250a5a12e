package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/daniilsolovey/football-news/config"
	"github.com/daniilsolovey/football-news/internal/auth"
	"github.com/daniilsolovey/football-news/internal/db"
	"github.com/urfave/cli/v2"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitDataError    = 3
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "newsctl",
		Usage:     "Operator tool for the football news service",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.toml",
				Usage:   "TOML configuration file",
				EnvVars: []string{"NEWSCTL_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL, overrides [Database]",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Manage the database schema",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "Apply all pending migrations",
						Action: migrateUp,
					},
					{
						Name:   "down",
						Usage:  "Roll back the latest migration",
						Action: migrateDown,
					},
					{
						Name:   "status",
						Usage:  "Show migration status",
						Action: migrateStatus,
					},
				},
			},
			{
				Name:  "token",
				Usage: "Issue an admin token for the mutating API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "subject",
						Aliases: []string{"s"},
						Usage:   "Token subject (default: [Auth] Admin)",
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "Token lifetime (default: [Auth] TokenTTL)",
					},
				},
				Action: issueToken,
			},
		},
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if url := c.String("database-url"); url != "" {
		if err := cfg.ApplyDatabaseURL(url); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func migrateUp(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	if err := db.Migrate(c.Context, db.DSN(&cfg.Database)); err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}

	return outputJSON(c.App.Writer, map[string]interface{}{"success": true})
}

func migrateDown(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	if err := db.MigrateDown(c.Context, db.DSN(&cfg.Database)); err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}

	return outputJSON(c.App.Writer, map[string]interface{}{"success": true})
}

func migrateStatus(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	if err := db.MigrationStatus(c.Context, db.DSN(&cfg.Database)); err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}

	return nil
}

func issueToken(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	subject := c.String("subject")
	if subject == "" {
		subject = cfg.Auth.Admin
	}
	if subject == "" {
		return cli.Exit("no subject: pass --subject or set [Auth] Admin", ExitUsageError)
	}

	ttl := c.Duration("ttl")
	if ttl == 0 {
		ttl = cfg.Auth.TokenTTL.Duration
	}

	gate := auth.NewGate(cfg.Auth, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	token, err := gate.Issue(subject, ttl)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}

	return outputJSON(c.App.Writer, map[string]interface{}{
		"token":     token,
		"subject":   subject,
		"expiresAt": time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}
