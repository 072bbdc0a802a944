package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// UpsertAuction writes the single auction row for a period.
func (s *SQLiteStore) UpsertAuction(ctx context.Context, a *models.MonthlyAuction) error {
	a.UpdatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auctions (period_index, amount, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(period_index) DO UPDATE SET
		        amount = excluded.amount,
		        updated_at = excluded.updated_at`,
		a.PeriodIndex, a.Amount, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert auction: %w", err)
	}
	return nil
}

// GetAuction retrieves the auction entry for a period, or nil when none
// has been set.
func (s *SQLiteStore) GetAuction(ctx context.Context, period int) (*models.MonthlyAuction, error) {
	a := &models.MonthlyAuction{}
	err := s.db.QueryRowContext(ctx,
		`SELECT period_index, amount, updated_at FROM auctions WHERE period_index = ?`,
		period,
	).Scan(&a.PeriodIndex, &a.Amount, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return a, nil
}
