package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableTemplates    = "templates"
	tableEnvironments = "environments"
	tableProfiles     = "profiles"
)

var tables = []string{tableTemplates, tableEnvironments, tableProfiles}

func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("store: set busy timeout: %w", err)
	}
	for _, table := range tables {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	payload TEXT NOT NULL
)`, table)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: migrate %s: %w", table, err)
		}
	}
	return nil
}
