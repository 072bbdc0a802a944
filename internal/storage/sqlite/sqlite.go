// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/storage"
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

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

// GetConfig returns the singleton group config, or nil before first setup.
func (s *SQLiteStore) GetConfig(ctx context.Context) (*models.ChitConfig, error) {
	cfg := &models.ChitConfig{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, total_value, fixed_collection, payout_base, duration_months,
		        start_date, admin_phone, admin_pin_hash, upi_id, upi_name, updated_at
		 FROM chit_config LIMIT 1`,
	).Scan(&cfg.ID, &cfg.Name, &cfg.TotalChitValue, &cfg.FixedMonthlyCollection,
		&cfg.MonthlyPayoutBase, &cfg.DurationMonths, &cfg.StartDate, &cfg.AdminPhone,
		&cfg.AdminPINHash, &cfg.UPIID, &cfg.UPIName, &cfg.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return cfg, nil
}

// SaveConfig upserts the singleton group config.
func (s *SQLiteStore) SaveConfig(ctx context.Context, cfg *models.ChitConfig) error {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	cfg.UpdatedAt = time.Now().Unix()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chit_config (id, name, total_value, fixed_collection, payout_base,
		        duration_months, start_date, admin_phone, admin_pin_hash, upi_id, upi_name, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		        name = excluded.name,
		        total_value = excluded.total_value,
		        fixed_collection = excluded.fixed_collection,
		        payout_base = excluded.payout_base,
		        duration_months = excluded.duration_months,
		        start_date = excluded.start_date,
		        admin_phone = excluded.admin_phone,
		        admin_pin_hash = excluded.admin_pin_hash,
		        upi_id = excluded.upi_id,
		        upi_name = excluded.upi_name,
		        updated_at = excluded.updated_at`,
		cfg.ID, cfg.Name, cfg.TotalChitValue, cfg.FixedMonthlyCollection, cfg.MonthlyPayoutBase,
		cfg.DurationMonths, cfg.StartDate, cfg.AdminPhone, cfg.AdminPINHash, cfg.UPIID, cfg.UPIName,
		cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
