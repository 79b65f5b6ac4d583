package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/storage"
)

// UpsertUsers inserts or renames roster entries in a single transaction.
func (s *SQLiteStore) UpsertUsers(ctx context.Context, users []models.User) ([]models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	out := make([]models.User, len(users))
	for i, user := range users {
		if user.ID == 0 {
			err := tx.QueryRowContext(ctx,
				"SELECT COALESCE(MAX(user_id), 0) + 1 FROM users WHERE bill_id = ?",
				user.BillID,
			).Scan(&user.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to assign user id: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (bill_id, user_id, name) VALUES (?, ?, ?)
			ON CONFLICT(bill_id, user_id) DO UPDATE SET name = excluded.name`,
			user.BillID, user.ID, user.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert user: %w", err)
		}
		out[i] = user
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return out, nil
}

// ListUsers returns a bill's roster ordered by user ID.
func (s *SQLiteStore) ListUsers(ctx context.Context, billID int64) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, user_id, name FROM users WHERE bill_id = ? ORDER BY user_id",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.BillID, &u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// DeleteUser removes a user from a roster together with their share rows.
func (s *SQLiteStore) DeleteUser(ctx context.Context, billID, userID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM users WHERE bill_id = ? AND user_id = ?",
		billID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %d on bill %d: %w", userID, billID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM shares WHERE bill_id = ? AND user_id = ?",
		billID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete user shares: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
