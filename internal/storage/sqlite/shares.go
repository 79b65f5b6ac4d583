package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/splitter/internal/models"
)

// ReplaceShares deletes a bill's share rows and inserts records in order.
func (s *SQLiteStore) ReplaceShares(ctx context.Context, billID int64, records []models.RemoteShareRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM shares WHERE bill_id = ?", billID); err != nil {
		return fmt.Errorf("failed to clear shares: %w", err)
	}

	for seq, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shares (id, bill_id, seq, item_id, item_name, user_id, share, cost)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), billID, seq, r.ItemID, r.ItemName, r.UserID, r.Share, r.Cost,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListShares returns a bill's share rows in submission order.
func (s *SQLiteStore) ListShares(ctx context.Context, billID int64) ([]models.RemoteShareRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, item_name, user_id, share, cost FROM shares WHERE bill_id = ? ORDER BY seq",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var records []models.RemoteShareRecord
	for rows.Next() {
		var r models.RemoteShareRecord
		if err := rows.Scan(&r.ItemID, &r.ItemName, &r.UserID, &r.Share, &r.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return records, nil
}
