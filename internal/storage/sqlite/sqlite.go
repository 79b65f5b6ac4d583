// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers and keeps per-connection
	// pragmas in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveBill inserts a new bill, or replaces an existing bill and its items.
func (s *SQLiteStore) SaveBill(ctx context.Context, bill *models.Bill) error {
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if bill.ID == 0 {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO bills (store_name, subtotal, tax, created_at) VALUES (?, ?, ?, ?)",
			bill.StoreName, bill.Subtotal, bill.Tax, bill.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}
		if bill.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read bill id: %w", err)
		}
	} else {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bills (id, store_name, subtotal, tax, created_at) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				store_name = excluded.store_name,
				subtotal = excluded.subtotal,
				tax = excluded.tax`,
			bill.ID, bill.StoreName, bill.Subtotal, bill.Tax, bill.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert bill: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE bill_id = ?", bill.ID); err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}
	}

	for i, item := range bill.Items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO items (bill_id, position, item_id, name, price) VALUES (?, ?, ?, ?, ?)",
			bill.ID, i, item.ID, item.Name, item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBill retrieves a bill by ID, including all items.
func (s *SQLiteStore) GetBill(ctx context.Context, billID int64) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, store_name, subtotal, tax, created_at FROM bills WHERE id = ?",
		billID,
	).Scan(&bill.ID, &bill.StoreName, &bill.Subtotal, &bill.Tax, &bill.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %d: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, name, price FROM items WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.BillItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		bill.Items = append(bill.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return bill, nil
}
