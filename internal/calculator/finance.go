// Package calculator derives the per-period financial figures of the chit
// from the group config and auction state. Everything here is pure and
// recomputed on each read; nothing is stored.
package calculator

import (
	"strconv"
	"strings"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// PeriodFigures holds the derived financials for one period.
type PeriodFigures struct {
	// AuctionAmount is the winning bid, zero when no auction entry exists.
	AuctionAmount int64 `json:"auctionAmount"`

	// Payout is what the period's winner receives: base payout minus the
	// auction discount. Not clamped: a bid above the base yields a
	// negative payout and is surfaced as-is.
	Payout int64 `json:"payout"`

	// ExpectedCollection is the fixed installment times the member count.
	ExpectedCollection int64 `json:"expectedCollection"`

	// Surplus is expected collection minus payout.
	Surplus int64 `json:"surplus"`
}

// Figures computes the derived financials for one period.
func Figures(cfg *models.ChitConfig, auctionAmount int64, memberCount int) PeriodFigures {
	payout := cfg.MonthlyPayoutBase - auctionAmount
	expected := cfg.FixedMonthlyCollection * int64(memberCount)
	return PeriodFigures{
		AuctionAmount:      auctionAmount,
		Payout:             payout,
		ExpectedCollection: expected,
		Surplus:            expected - payout,
	}
}

// ParseAmount converts free-text auction input to rupees. Non-numeric or
// empty input normalizes to zero instead of erroring; this lenient policy
// applies to the auction amount field only.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Progress summarizes how much of a period's collection has landed.
type Progress struct {
	// Collected is the sum of effective amounts plus extras across PAID
	// records.
	Collected int64 `json:"collected"`

	// PaidCount is the number of PAID records.
	PaidCount int `json:"paidCount"`

	// ClaimedCount is the number of MEMBER_CLAIMED records awaiting
	// admin verification.
	ClaimedCount int `json:"claimedCount"`
}

// Collect tallies collection progress over a period's records.
func Collect(records []models.PaymentRecord) Progress {
	var p Progress
	for i := range records {
		switch records[i].Status {
		case models.StatusPaid:
			p.Collected += records[i].EffectiveAmount() + records[i].ExtraAmount
			p.PaidCount++
		case models.StatusMemberClaimed:
			p.ClaimedCount++
		}
	}
	return p
}
