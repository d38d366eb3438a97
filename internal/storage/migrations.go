package storage

import (
	"context"
	"fmt"
	"log/slog"
)

type migration struct {
	description string
	sql         string
	version     int
}

var migrations = []migration{
	{
		version:     1,
		description: "create reference tables",
		sql: `
		CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			currency_id TEXT NOT NULL DEFAULT '',
			currency_name TEXT NOT NULL DEFAULT '',
			currency_symbol TEXT NOT NULL DEFAULT '',
			credit_limit TEXT NOT NULL DEFAULT '0',
			current_balance TEXT NOT NULL DEFAULT '0',
			bank_icon TEXT,
			savings BOOLEAN NOT NULL DEFAULT 0,
			archived BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			for_income BOOLEAN NOT NULL DEFAULT 0,
			for_outcome BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS places (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sync_state (
			resource TEXT PRIMARY KEY,
			synced_at TIMESTAMP NOT NULL
		);`,
	},
	{
		version:     2,
		description: "index places by description",
		sql:         `CREATE INDEX IF NOT EXISTS idx_places_description ON places(description COLLATE NOCASE);`,
	},
}

// Migrate brings the cache schema up to date.
func (c *Cache) Migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := c.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := c.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}

		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.description, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}

		slog.Debug("Applied cache migration", "version", m.version, "description", m.description)
	}

	return nil
}
