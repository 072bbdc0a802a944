// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// Store defines the interface for the chit aggregate: config, roster,
// payment records and auctions. This abstraction allows swapping storage
// backends (SQLite, PostgreSQL, etc.) without changing the service layer.
//
// Lookups of things that may legitimately be absent (a payment record, an
// auction entry, the config before first setup) return (nil, nil); callers
// synthesize defaults.
type Store interface {
	// GetConfig returns the group config, or nil before first setup.
	GetConfig(ctx context.Context) (*models.ChitConfig, error)

	// SaveConfig upserts the singleton group config.
	SaveConfig(ctx context.Context, cfg *models.ChitConfig) error

	// CreateMember adds a member to the roster, generating ID and
	// CreatedAt when unset.
	CreateMember(ctx context.Context, m *models.Member) error

	// UpdateMember rewrites an existing member. Unknown IDs error.
	UpdateMember(ctx context.Context, m *models.Member) error

	// GetMember returns one member, or nil when unknown.
	GetMember(ctx context.Context, id string) (*models.Member, error)

	// ListMembers returns the roster ordered by join date then name.
	ListMembers(ctx context.Context) ([]models.Member, error)

	// GetPayment returns the record for (memberID, period), or nil when
	// no transition has created one yet.
	GetPayment(ctx context.Context, memberID string, period int) (*models.PaymentRecord, error)

	// ListPaymentsForPeriod returns all stored records for one period.
	ListPaymentsForPeriod(ctx context.Context, period int) ([]models.PaymentRecord, error)

	// CountByStatus counts stored records in the given status across all
	// periods.
	CountByStatus(ctx context.Context, status models.PaymentStatus) (int, error)

	// UpsertPayment writes the record, inserting or replacing the single
	// row keyed (member_id, period_index).
	UpsertPayment(ctx context.Context, rec *models.PaymentRecord) error

	// GetAuction returns the auction entry for a period, or nil when none
	// has been set.
	GetAuction(ctx context.Context, period int) (*models.MonthlyAuction, error)

	// UpsertAuction writes the single auction row for a period.
	UpsertAuction(ctx context.Context, a *models.MonthlyAuction) error

	// Close releases any resources held by the store.
	Close() error
}
