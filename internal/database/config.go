package database

import (
	"fmt"
	"net/url"
	"strings"
)

// Driver names the SQL dialect behind a store URI.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Config holds the parsed store connection settings
type Config struct {
	Driver         Driver
	DSN            string
	URL            string
	MigrationsPath string
}

// ParseURL turns a store URI into a Config. postgres:// and postgresql://
// select PostgreSQL; sqlite://<path> and file: URIs select SQLite.
func ParseURL(raw, migrationsPath string) (*Config, error) {
	cfg := &Config{URL: raw, MigrationsPath: migrationsPath}

	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		cfg.Driver = DriverSQLite
		cfg.DSN = strings.TrimPrefix(raw, "sqlite://")
	case strings.HasPrefix(raw, "file:"):
		cfg.Driver = DriverSQLite
		cfg.DSN = raw
	default:
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid store URI: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return nil, fmt.Errorf("unsupported store URI scheme %q", u.Scheme)
		}
		cfg.Driver = DriverPostgres
		cfg.DSN = raw
	}

	if cfg.DSN == "" {
		return nil, fmt.Errorf("store URI %q has no database", raw)
	}
	return cfg, nil
}
