// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitter/internal/models"
)

// ErrNotFound is returned when the requested bill or user does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for the gateway's storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// SaveBill persists a bill, replacing its items if it already exists.
	// A zero bill.ID is populated by the store.
	SaveBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID with items in receipt order.
	// Returns ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID int64) (*models.Bill, error)

	// UpsertUsers inserts or renames users keyed by (BillID, ID).
	// Users with a zero ID are assigned the next free ID on their bill.
	// The returned slice carries the assigned IDs.
	UpsertUsers(ctx context.Context, users []models.User) ([]models.User, error)

	// ListUsers returns the roster of a bill ordered by user ID.
	ListUsers(ctx context.Context, billID int64) ([]models.User, error)

	// DeleteUser removes a user and their share rows.
	// Returns ErrNotFound if the user is not on the roster.
	DeleteUser(ctx context.Context, billID, userID int64) error

	// ReplaceShares atomically replaces every share row of a bill.
	ReplaceShares(ctx context.Context, billID int64, records []models.RemoteShareRecord) error

	// ListShares returns the share rows of a bill in submission order.
	ListShares(ctx context.Context, billID int64) ([]models.RemoteShareRecord, error)

	// Close releases any resources held by the store.
	Close() error
}
