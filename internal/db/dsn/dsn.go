// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"github.com/chao-eng/mdblog/internal/config"
)

// Create builds the SQLite Data Source Name from the configuration.
func Create(cfg *config.Config) string {
	out := cfg.DB.Path
	if cfg.DB.Extras != "" {
		out += "?" + cfg.DB.Extras
	}

	return out
}
