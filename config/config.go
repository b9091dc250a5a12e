package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
)

const (
	defaultPort     = 3000
	defaultCookie   = "admin_token"
	defaultTokenTTL = 12 * time.Hour
)

type Config struct {
	Database pg.Options
	App      struct {
		Host       string
		Port       int
		LogQueries bool
		Migrate    bool
	}
	Auth Auth
}

// Auth configures the admin gate in front of mutating routes.
type Auth struct {
	Secret   string
	Admin    string
	Cookie   string
	TokenTTL Duration
}

// Duration decodes TOML strings like "12h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Load decodes the TOML file at path and fills defaults for omitted keys.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %q: %w", path, err)
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.App.Port == 0 {
		c.App.Port = defaultPort
	}
	if c.Auth.Cookie == "" {
		c.Auth.Cookie = defaultCookie
	}
	if c.Auth.TokenTTL.Duration == 0 {
		c.Auth.TokenTTL.Duration = defaultTokenTTL
	}
}

// ApplyDatabaseURL replaces the connection settings with those of a
// postgres:// URL. Pool tuning from the file is kept.
func (c *Config) ApplyDatabaseURL(databaseURL string) error {
	opt, err := pg.ParseURL(databaseURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}

	opt.PoolSize = c.Database.PoolSize
	opt.MaxRetries = c.Database.MaxRetries
	opt.MaxConnAge = c.Database.MaxConnAge
	opt.ApplicationName = c.Database.ApplicationName
	c.Database = *opt

	return nil
}
