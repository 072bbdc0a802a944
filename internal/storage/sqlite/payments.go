package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// UpsertPayment writes the single record for (member_id, period_index).
// The primary key makes this a replace, never a second row.
func (s *SQLiteStore) UpsertPayment(ctx context.Context, rec *models.PaymentRecord) error {
	var receiptURL, receiptName string
	if rec.Receipt != nil {
		receiptURL = rec.Receipt.URL
		receiptName = rec.Receipt.Name
	}

	var custom interface{}
	if rec.CustomAmount != nil {
		custom = *rec.CustomAmount
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (member_id, period_index, amount, custom_amount, extra_amount,
		        status, method, payment_date, receipt_url, receipt_name, note, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(member_id, period_index) DO UPDATE SET
		        amount = excluded.amount,
		        custom_amount = excluded.custom_amount,
		        extra_amount = excluded.extra_amount,
		        status = excluded.status,
		        method = excluded.method,
		        payment_date = excluded.payment_date,
		        receipt_url = excluded.receipt_url,
		        receipt_name = excluded.receipt_name,
		        note = excluded.note,
		        updated_at = excluded.updated_at`,
		rec.MemberID, rec.PeriodIndex, rec.Amount, custom, rec.ExtraAmount,
		string(rec.Status), string(rec.Method), rec.PaymentDate, receiptURL, receiptName,
		rec.Note, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves the record for (memberID, period), or nil when no
// transition has created one yet.
func (s *SQLiteStore) GetPayment(ctx context.Context, memberID string, period int) (*models.PaymentRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT member_id, period_index, amount, custom_amount, extra_amount,
		        status, method, payment_date, receipt_url, receipt_name, note, updated_at
		 FROM payments WHERE member_id = ? AND period_index = ?`,
		memberID, period,
	)
	rec, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return rec, nil
}

// ListPaymentsForPeriod returns all stored records for one period.
func (s *SQLiteStore) ListPaymentsForPeriod(ctx context.Context, period int) ([]models.PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT member_id, period_index, amount, custom_amount, extra_amount,
		        status, method, payment_date, receipt_url, receipt_name, note, updated_at
		 FROM payments WHERE period_index = ? ORDER BY member_id`,
		period,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var records []models.PaymentRecord
	for rows.Next() {
		rec, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return records, nil
}

// CountByStatus counts stored records in the given status across all periods.
func (s *SQLiteStore) CountByStatus(ctx context.Context, status models.PaymentStatus) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE status = ?`, string(status),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return n, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row scanner) (*models.PaymentRecord, error) {
	rec := &models.PaymentRecord{}
	var custom sql.NullInt64
	var status, method, receiptURL, receiptName string

	err := row.Scan(&rec.MemberID, &rec.PeriodIndex, &rec.Amount, &custom, &rec.ExtraAmount,
		&status, &method, &rec.PaymentDate, &receiptURL, &receiptName, &rec.Note, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if custom.Valid {
		v := custom.Int64
		rec.CustomAmount = &v
	}
	rec.Status = models.PaymentStatus(status)
	rec.Method = models.PaymentMethod(method)
	if receiptURL != "" {
		rec.Receipt = &models.Receipt{URL: receiptURL, Name: receiptName}
	}
	return rec, nil
}
