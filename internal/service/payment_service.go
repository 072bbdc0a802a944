package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rajkumarptv/ChitLedger/internal/ledger"
	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/storage"
	"github.com/rajkumarptv/ChitLedger/internal/upi"
)

// Actor identifies who is performing an operation. MemberID is empty for
// the admin. Every service operation takes the actor explicitly; nothing
// reads role from ambient state.
type Actor struct {
	Role     models.Role
	MemberID string
	Phone    string
}

// PaymentService owns the payment ledger: it loads the current record,
// runs the state machine, and commits the result only when both succeed.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a payment service over the given store.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// PeriodView is one member's row in the period listing. Status carries the
// derived value, so a pending installment from a past period shows OVERDUE.
type PeriodView struct {
	Member models.Member        `json:"member"`
	Record models.PaymentRecord `json:"record"`
	Status models.PaymentStatus `json:"status"`
}

// loadContext fetches and validates the config, period and member shared
// by every ledger operation.
func (s *PaymentService) loadContext(ctx context.Context, memberID string, period int) (*models.ChitConfig, *models.Member, error) {
	cfg, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if cfg == nil {
		return nil, nil, fmt.Errorf("%w: group is not configured", models.ErrNotFound)
	}
	if !cfg.ValidPeriod(period) {
		return nil, nil, fmt.Errorf("%w: period %d outside group duration", models.ErrNotFound, period)
	}

	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if member == nil {
		return nil, nil, fmt.Errorf("%w: member %s", models.ErrNotFound, memberID)
	}
	return cfg, member, nil
}

// Transition applies one ledger action to the (memberID, period) record.
// The record is created on first transition; nothing is written when the
// state machine rejects the action.
func (s *PaymentService) Transition(ctx context.Context, actor Actor, action ledger.Action, memberID string, period int, in ledger.Input) (*models.PaymentRecord, error) {
	slog.Info("Ledger transition requested",
		"action", action,
		"role", actor.Role,
		"member_id", memberID,
		"period", period,
	)

	cfg, _, err := s.loadContext(ctx, memberID, period)
	if err != nil {
		slog.Warn("Transition rejected", "action", action, "member_id", memberID, "error", err)
		return nil, err
	}

	// Members act only on their own record; the admin acts on any.
	if actor.Role == models.RoleMember && actor.MemberID != memberID {
		slog.Warn("Member attempted transition on another record",
			"actor_member", actor.MemberID, "target_member", memberID)
		return nil, fmt.Errorf("%w: members may only update their own installment", models.ErrUnauthorized)
	}

	current, err := s.store.GetPayment(ctx, memberID, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	rec := ledger.DefaultRecord(memberID, period, cfg.FixedMonthlyCollection)
	if current != nil {
		rec = *current
	}

	updated, err := ledger.Apply(actor.Role, action, rec, in, time.Now())
	if err != nil {
		slog.Warn("Transition rejected",
			"action", action, "member_id", memberID, "period", period,
			"from_status", rec.Status, "error", err)
		return nil, err
	}

	if err := s.store.UpsertPayment(ctx, &updated); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	slog.Info("Ledger transition committed",
		"action", action,
		"member_id", memberID,
		"period", period,
		"status", updated.Status,
	)
	return &updated, nil
}

// ListPeriod returns the full roster view for one period: stored records
// merged with synthesized pending records for members who have none, with
// the derived status applied.
func (s *PaymentService) ListPeriod(ctx context.Context, period int) ([]PeriodView, error) {
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
	records, err := s.store.ListPaymentsForPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	byMember := make(map[string]models.PaymentRecord, len(records))
	for _, r := range records {
		byMember[r.MemberID] = r
	}

	currentPeriod := cfg.PeriodIndexAt(time.Now())
	views := make([]PeriodView, 0, len(members))
	for _, m := range members {
		rec, ok := byMember[m.ID]
		if !ok {
			rec = ledger.DefaultRecord(m.ID, period, cfg.FixedMonthlyCollection)
		}
		views = append(views, PeriodView{
			Member: m,
			Record: rec,
			Status: ledger.EffectiveStatus(&rec, currentPeriod),
		})
	}

	slog.Info("Period listed", "period", period, "members", len(views))
	return views, nil
}

// PaymentLink builds the UPI deep link a member uses to pay their
// installment for the period. Dispatching the link proves nothing; the
// ledger is updated only by the member's explicit claim afterwards.
func (s *PaymentService) PaymentLink(ctx context.Context, actor Actor, period int, app upi.App) (string, error) {
	if actor.Role != models.RoleMember {
		return "", fmt.Errorf("%w: payment links are for members", models.ErrUnauthorized)
	}

	cfg, _, err := s.loadContext(ctx, actor.MemberID, period)
	if err != nil {
		return "", err
	}

	rec, err := s.store.GetPayment(ctx, actor.MemberID, period)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	amount := cfg.FixedMonthlyCollection
	if rec != nil {
		amount = rec.EffectiveAmount()
	}

	note := fmt.Sprintf("%s installment %d", cfg.Name, period+1)
	link, err := upi.BuildPaymentLink(cfg.UPIID, cfg.UPIName, amount, note, app)
	if err != nil {
		slog.Warn("Payment link rejected", "member_id", actor.MemberID, "app", app, "error", err)
		return "", err
	}

	slog.Info("Payment link built", "member_id", actor.MemberID, "period", period, "app", app)
	return link, nil
}
