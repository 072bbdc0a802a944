package models

// Member represents one participant in the chit group.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`

	// Phone is the member's contact number, stored as entered.
	// Identity matching normalizes it, see internal/identity.
	Phone string `json:"phone"`

	// JoinDate is the date the member joined, in YYYY-MM-DD form.
	JoinDate string `json:"joinDate"`

	// SideFund marks members who also participate in the side fund.
	SideFund bool `json:"sideFund"`

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64 `json:"createdAt"`
}
