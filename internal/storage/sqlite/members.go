package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// CreateMember inserts a new member into the roster.
func (s *SQLiteStore) CreateMember(ctx context.Context, m *models.Member) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt == 0 {
		m.CreatedAt = time.Now().Unix()
	}
	if m.JoinDate == "" {
		m.JoinDate = time.Now().Format("2006-01-02")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, name, phone, join_date, side_fund, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Phone, m.JoinDate, boolToInt(m.SideFund), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// UpdateMember rewrites an existing member's fields.
func (s *SQLiteStore) UpdateMember(ctx context.Context, m *models.Member) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE members SET name = ?, phone = ?, join_date = ?, side_fund = ? WHERE id = ?`,
		m.Name, m.Phone, m.JoinDate, boolToInt(m.SideFund), m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member not found: %s", m.ID)
	}
	return nil
}

// GetMember retrieves a member by ID, or nil when unknown.
func (s *SQLiteStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	m := &models.Member{}
	var sideFund int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, join_date, side_fund, created_at FROM members WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.Name, &m.Phone, &m.JoinDate, &sideFund, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	m.SideFund = sideFund != 0
	return m, nil
}

// ListMembers returns the full roster ordered by join date then name.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, join_date, side_fund, created_at
		 FROM members ORDER BY join_date, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var sideFund int
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.JoinDate, &sideFund, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.SideFund = sideFund != 0
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
