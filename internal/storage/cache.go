// Package storage is the local SQLite cache of backend reference data.
//
// The backend stays the system of record; the cache only keeps the last
// fetched accounts, categories, and places so listings and completion keep
// working offline between invocations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storksoft/cashtrack/internal/common"
	"github.com/storksoft/cashtrack/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Resource names used for sync-state tracking.
const (
	ResourceAccounts   = "accounts"
	ResourceCategories = "categories"
	ResourcePlaces     = "places"
)

// Cache is the SQLite-backed reference cache.
type Cache struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the cache database at the given path.
func Open(path string) (*Cache, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: cache path", common.ErrInvalidConfig)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}

	return &Cache{db: db, path: path}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveAccounts replaces the cached account listing.
func (c *Cache) SaveAccounts(ctx context.Context, accounts []model.ListAccount) error {
	return c.replace(ctx, ResourceAccounts, "accounts", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO accounts (id, name, type, currency_id, currency_name, currency_symbol,
				credit_limit, current_balance, bank_icon, savings, archived)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, a := range accounts {
			var bankIcon sql.NullString
			if a.BankIcon != nil {
				bankIcon = sql.NullString{String: *a.BankIcon, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx,
				a.ID, a.Name, string(a.Type),
				a.Currency.ID, a.Currency.DisplayName, a.Currency.Symbol,
				a.CreditLimit.String(), a.CurrentBalance.String(),
				bankIcon, a.SavingsAccount, a.ArchiveAccount,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Accounts returns the cached account listing in cached order.
func (c *Cache) Accounts(ctx context.Context) ([]model.ListAccount, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, type, currency_id, currency_name, currency_symbol,
			credit_limit, current_balance, bank_icon, savings, archived
		FROM accounts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.ListAccount
	for rows.Next() {
		var a model.ListAccount
		var accountType, creditLimit, currentBalance string
		var bankIcon sql.NullString

		if err := rows.Scan(&a.ID, &a.Name, &accountType,
			&a.Currency.ID, &a.Currency.DisplayName, &a.Currency.Symbol,
			&creditLimit, &currentBalance, &bankIcon,
			&a.SavingsAccount, &a.ArchiveAccount); err != nil {
			return nil, fmt.Errorf("failed to scan cached account: %w", err)
		}

		a.Type = model.AccountType(accountType)
		if a.CreditLimit, err = decimal.NewFromString(creditLimit); err != nil {
			return nil, fmt.Errorf("corrupt cached credit limit %q: %w", creditLimit, err)
		}
		if a.CurrentBalance, err = decimal.NewFromString(currentBalance); err != nil {
			return nil, fmt.Errorf("corrupt cached balance %q: %w", currentBalance, err)
		}
		if bankIcon.Valid {
			icon := bankIcon.String
			a.BankIcon = &icon
		}

		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SaveCategories replaces the cached category listing.
func (c *Cache) SaveCategories(ctx context.Context, categories []model.ListCategory) error {
	return c.replace(ctx, ResourceCategories, "categories", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO categories (id, name, for_income, for_outcome)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, cat := range categories {
			if _, err := stmt.ExecContext(ctx, cat.ID, cat.Name, cat.ForIncome, cat.ForOutcome); err != nil {
				return err
			}
		}
		return nil
	})
}

// Categories returns the cached category listing in cached order.
func (c *Cache) Categories(ctx context.Context) ([]model.ListCategory, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, for_income, for_outcome FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.ListCategory
	for rows.Next() {
		var cat model.ListCategory
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ForIncome, &cat.ForOutcome); err != nil {
			return nil, fmt.Errorf("failed to scan cached category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// SavePlaces replaces the cached places.
func (c *Cache) SavePlaces(ctx context.Context, places []model.SimplePlace) error {
	return c.replace(ctx, ResourcePlaces, "places", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO places (id, description) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, p := range places {
			if _, err := stmt.ExecContext(ctx, p.ID, p.Description); err != nil {
				return err
			}
		}
		return nil
	})
}

// SearchPlaces returns cached places whose description contains the search
// term, case-insensitively.
func (c *Cache) SearchPlaces(ctx context.Context, search string) ([]model.SimplePlace, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, description FROM places
		WHERE description LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY description`, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search cached places: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var places []model.SimplePlace
	for rows.Next() {
		var p model.SimplePlace
		if err := rows.Scan(&p.ID, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan cached place: %w", err)
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// LastSync reports when a resource was last cached. Returns ErrNotFound for
// a resource that was never synced.
func (c *Cache) LastSync(ctx context.Context, resource string) (time.Time, error) {
	var syncedAt time.Time
	err := c.db.QueryRowContext(ctx,
		`SELECT synced_at FROM sync_state WHERE resource = ?`, resource).Scan(&syncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, common.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query sync state: %w", err)
	}
	return syncedAt, nil
}

// Clear drops all cached rows and sync state.
func (c *Cache) Clear(ctx context.Context) error {
	for _, table := range []string{"accounts", "categories", "places", "sync_state"} {
		if _, err := c.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// replace swaps a table's contents and stamps the resource's sync time in
// one transaction.
func (c *Cache) replace(ctx context.Context, resource, table string, insert func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("failed to cache %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sync_state (resource, synced_at) VALUES (?, ?)
		ON CONFLICT(resource) DO UPDATE SET synced_at = excluded.synced_at`,
		resource, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}

	return tx.Commit()
}
