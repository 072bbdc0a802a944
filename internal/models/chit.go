package models

import "time"

// ChitConfig holds the group-wide constants of the chit fund.
// There is exactly one config per group; the core treats it as read-only
// and it is mutated only through the admin settings endpoint.
type ChitConfig struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// TotalChitValue is the full value of the chit in rupees.
	TotalChitValue int64 `json:"totalChitValue"`

	// FixedMonthlyCollection is the installment every member pays each period.
	FixedMonthlyCollection int64 `json:"fixedMonthlyCollection"`

	// MonthlyPayoutBase is the payout before the auction discount is applied.
	MonthlyPayoutBase int64 `json:"monthlyPayoutBase"`

	// DurationMonths is the number of periods the group runs for.
	DurationMonths int `json:"durationMonths"`

	// StartDate is the first period's month, in YYYY-MM-DD form.
	StartDate string `json:"startDate"`

	// AdminPhone is the administrator's contact number.
	AdminPhone string `json:"adminPhone"`

	// AdminPINHash is the bcrypt hash of the admin login PIN.
	// Empty means admin logs in by phone number alone.
	AdminPINHash string `json:"-"`

	// UPIID and UPIName identify the account payment deep links point at.
	// Both optional; deep links are unavailable when UPIID is empty.
	UPIID   string `json:"upiId"`
	UPIName string `json:"upiName"`

	// UpdatedAt is the Unix timestamp of the last settings change.
	UpdatedAt int64 `json:"updatedAt"`
}

// PeriodIndexAt returns the zero-based period index at time t, counting
// calendar months from StartDate. Times before the start date map to 0.
func (c *ChitConfig) PeriodIndexAt(t time.Time) int {
	start, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return 0
	}
	idx := (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
	if idx < 0 {
		return 0
	}
	return idx
}

// ValidPeriod reports whether the period index falls within the group's run.
func (c *ChitConfig) ValidPeriod(period int) bool {
	return period >= 0 && period < c.DurationMonths
}

// MonthlyAuction holds the winning bid for one period. Entries are created
// lazily: a period with no entry has an auction amount of zero.
type MonthlyAuction struct {
	// PeriodIndex is the zero-based period this bid belongs to.
	PeriodIndex int `json:"periodIndex"`

	// Amount is the winning bid in rupees. Zero means no discount set.
	Amount int64 `json:"amount"`

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64 `json:"updatedAt"`
}
