package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rajkumarptv/ChitLedger/internal/calculator"
	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/storage"
)

// AuctionService owns the per-period auction register and the derived
// financial summary.
type AuctionService struct {
	store storage.Store
}

// NewAuctionService creates an auction service over the given store.
func NewAuctionService(store storage.Store) *AuctionService {
	return &AuctionService{store: store}
}

// PeriodSummary is the financial picture of one period.
// PendingVerifications counts member claims across ALL periods, so the
// admin sees outstanding reconciliation work regardless of the month
// being viewed.
type PeriodSummary struct {
	PeriodIndex int `json:"periodIndex"`
	calculator.PeriodFigures
	calculator.Progress
	MemberCount          int `json:"memberCount"`
	PendingVerifications int `json:"pendingVerifications"`
}

// SetAuction upserts the winning bid for a period. Admin only. The raw
// amount is free text: non-numeric input normalizes to zero, and zero
// means "unset".
func (s *AuctionService) SetAuction(ctx context.Context, actor Actor, period int, rawAmount string) (*models.MonthlyAuction, error) {
	if actor.Role != models.RoleAdmin {
		slog.Warn("Non-admin attempted auction write", "role", actor.Role, "period", period)
		return nil, fmt.Errorf("%w: only the admin sets auction amounts", models.ErrUnauthorized)
	}

	cfg, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: group is not configured", models.ErrNotFound)
	}
	if !cfg.ValidPeriod(period) {
		return nil, fmt.Errorf("%w: period %d outside group duration", models.ErrNotFound, period)
	}

	auction := &models.MonthlyAuction{
		PeriodIndex: period,
		Amount:      calculator.ParseAmount(rawAmount),
	}
	if err := s.store.UpsertAuction(ctx, auction); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	slog.Info("Auction set", "period", period, "amount", auction.Amount)
	return auction, nil
}

// Summary recomputes the period's derived figures from config and auction
// state, plus collection progress over the stored records.
func (s *AuctionService) Summary(ctx context.Context, period int) (*PeriodSummary, error) {
	cfg, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: group is not configured", models.ErrNotFound)
	}
	if !cfg.ValidPeriod(period) {
		return nil, fmt.Errorf("%w: period %d outside group duration", models.ErrNotFound, period)
	}

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	var auctionAmount int64
	auction, err := s.store.GetAuction(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if auction != nil {
		auctionAmount = auction.Amount
	}

	records, err := s.store.ListPaymentsForPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	claimed, err := s.store.CountByStatus(ctx, models.StatusMemberClaimed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	return &PeriodSummary{
		PeriodIndex:          period,
		PeriodFigures:        calculator.Figures(cfg, auctionAmount, len(members)),
		Progress:             calculator.Collect(records),
		MemberCount:          len(members),
		PendingVerifications: claimed,
	}, nil
}
