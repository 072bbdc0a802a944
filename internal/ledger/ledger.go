// Package ledger implements the reconciliation state machine for payment
// records. Transitions are pure: Apply takes the current record and returns
// an updated copy or an error, and never mutates its input, so a rejected
// transition leaves the record exactly as it was.
package ledger

import (
	"fmt"
	"time"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// Action is one of the five ledger transitions.
type Action string

const (
	// ActionCollect records a payment directly, admin only. PENDING -> PAID.
	ActionCollect Action = "collect"

	// ActionClaim is the member's "I've Paid" assertion. PENDING -> MEMBER_CLAIMED.
	ActionClaim Action = "claim"

	// ActionConfirm accepts a member claim, admin only. MEMBER_CLAIMED -> PAID.
	ActionConfirm Action = "confirm"

	// ActionReject disputes a member claim, admin only. MEMBER_CLAIMED -> PENDING.
	ActionReject Action = "reject"

	// ActionUndo reverses a confirmed payment, admin only. PAID -> PENDING.
	ActionUndo Action = "undo"
)

// ParseAction maps a URL path segment to an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionCollect, ActionClaim, ActionConfirm, ActionReject, ActionUndo:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: unknown action %q", models.ErrValidation, s)
}

// rule describes one legal transition.
type rule struct {
	role models.Role
	from models.PaymentStatus
	to   models.PaymentStatus
}

// transitions is the complete transition table. Anything not listed here is
// illegal: there is no member-initiated way out of MEMBER_CLAIMED or PAID,
// and Collect on a PAID record requires an Undo first.
var transitions = map[Action]rule{
	ActionCollect: {role: models.RoleAdmin, from: models.StatusPending, to: models.StatusPaid},
	ActionClaim:   {role: models.RoleMember, from: models.StatusPending, to: models.StatusMemberClaimed},
	ActionConfirm: {role: models.RoleAdmin, from: models.StatusMemberClaimed, to: models.StatusPaid},
	ActionReject:  {role: models.RoleAdmin, from: models.StatusMemberClaimed, to: models.StatusPending},
	ActionUndo:    {role: models.RoleAdmin, from: models.StatusPaid, to: models.StatusPending},
}

// Input carries the fields an actor submits with a transition.
type Input struct {
	Method       models.PaymentMethod
	Date         string // YYYY-MM-DD; defaults to today on Claim
	Receipt      *models.Receipt
	Note         string
	ExtraAmount  int64
	CustomAmount *int64 // admin override of the installment amount
}

// DefaultRecord synthesizes the implicit pending record for a (member,
// period) pair that has no stored row yet, so downstream logic always
// operates on one uniform record shape.
func DefaultRecord(memberID string, period int, baseAmount int64) models.PaymentRecord {
	return models.PaymentRecord{
		MemberID:    memberID,
		PeriodIndex: period,
		Amount:      baseAmount,
		Status:      models.StatusPending,
	}
}

// Apply runs one transition against rec and returns the updated record.
//
// Field handling:
//   - Collect and Claim require a valid method; Claim's date defaults to
//     today when the member submits none.
//   - Confirm keeps the member's declared method/date/receipt/note unless
//     the admin supplies overrides.
//   - Reject and Undo retain all historical fields: the record is the audit
//     trail, and clearing it would lose the disputed claim's evidence.
func Apply(role models.Role, action Action, rec models.PaymentRecord, in Input, now time.Time) (models.PaymentRecord, error) {
	r, ok := transitions[action]
	if !ok {
		return rec, fmt.Errorf("%w: unknown action %q", models.ErrValidation, action)
	}
	if role != r.role {
		return rec, fmt.Errorf("%w: %s requires role %s, got %s", models.ErrUnauthorized, action, r.role, role)
	}
	if rec.Status != r.from {
		return rec, fmt.Errorf("%w: cannot %s a %s record", models.ErrInvalidTransition, action, rec.Status)
	}

	updated := rec
	today := now.Format("2006-01-02")

	switch action {
	case ActionCollect:
		if !in.Method.Valid() {
			return rec, fmt.Errorf("%w: collect requires a payment method", models.ErrValidation)
		}
		updated.Method = in.Method
		updated.PaymentDate = in.Date
		if updated.PaymentDate == "" {
			updated.PaymentDate = today
		}
		updated.Receipt = in.Receipt
		updated.Note = in.Note
		updated.ExtraAmount = in.ExtraAmount
		if in.CustomAmount != nil {
			updated.CustomAmount = in.CustomAmount
		}

	case ActionClaim:
		if !in.Method.Valid() {
			return rec, fmt.Errorf("%w: claim requires a payment method", models.ErrValidation)
		}
		updated.Method = in.Method
		// Backdating is not supported: a claim is dated the day it is made.
		updated.PaymentDate = today
		updated.Receipt = in.Receipt
		updated.Note = in.Note
		if updated.Note == "" {
			updated.Note = "Payment claimed by member - awaiting admin confirmation"
		}

	case ActionConfirm:
		if in.Method != "" {
			if !in.Method.Valid() {
				return rec, fmt.Errorf("%w: unknown payment method %q", models.ErrValidation, in.Method)
			}
			updated.Method = in.Method
		}
		if in.Date != "" {
			updated.PaymentDate = in.Date
		}
		if in.Receipt != nil {
			updated.Receipt = in.Receipt
		}
		if in.Note != "" {
			updated.Note = in.Note
		}
		if in.ExtraAmount != 0 {
			updated.ExtraAmount = in.ExtraAmount
		}
		if in.CustomAmount != nil {
			updated.CustomAmount = in.CustomAmount
		}

	case ActionReject, ActionUndo:
		// Status reset only; method, date, receipt and note are retained.

	default:
		return rec, fmt.Errorf("%w: unknown action %q", models.ErrValidation, action)
	}

	updated.Status = r.to
	updated.UpdatedAt = now.Unix()

	if err := checkInvariants(&updated); err != nil {
		return rec, err
	}
	return updated, nil
}

// checkInvariants enforces the record-level guarantees after a transition.
func checkInvariants(rec *models.PaymentRecord) error {
	if rec.Status == models.StatusMemberClaimed && (rec.Method == "" || rec.PaymentDate == "") {
		return fmt.Errorf("%w: a claimed record must carry method and payment date", models.ErrValidation)
	}
	return nil
}

// EffectiveStatus derives the status to display for rec: a pending
// installment from a period before currentPeriod is overdue. The stored
// status never holds OVERDUE.
func EffectiveStatus(rec *models.PaymentRecord, currentPeriod int) models.PaymentStatus {
	if rec.Status == models.StatusPending && rec.PeriodIndex < currentPeriod {
		return models.StatusOverdue
	}
	return rec.Status
}
