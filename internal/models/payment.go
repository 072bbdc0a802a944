package models

// PaymentStatus is the reconciliation state of one installment.
type PaymentStatus string

const (
	// StatusPending is the implicit default: no payment recorded yet.
	StatusPending PaymentStatus = "PENDING"

	// StatusMemberClaimed means the member asserts they paid and is
	// waiting for the admin to confirm.
	StatusMemberClaimed PaymentStatus = "MEMBER_CLAIMED"

	// StatusPaid is the admin-confirmed terminal state for the period.
	StatusPaid PaymentStatus = "PAID"

	// StatusOverdue is derived on read for pending installments of past
	// periods. It is never stored and no transition produces it.
	StatusOverdue PaymentStatus = "OVERDUE"
)

// PaymentMethod identifies how an installment was paid.
type PaymentMethod string

const (
	MethodGPay    PaymentMethod = "GPay"
	MethodPhonePe PaymentMethod = "PhonePe"
	MethodPaytm   PaymentMethod = "Paytm"
	MethodCash    PaymentMethod = "CASH"
	MethodOther   PaymentMethod = "Other"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodGPay, MethodPhonePe, MethodPaytm, MethodCash, MethodOther:
		return true
	}
	return false
}

// Role identifies which side of the reconciliation an actor is on.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Receipt is a reference to an uploaded payment proof.
type Receipt struct {
	// URL is the stable reference returned by the blob store.
	URL string `json:"url"`

	// Name is the original filename of the upload.
	Name string `json:"name"`
}

// PaymentRecord is one member's payment state for one period.
// At most one record exists per (MemberID, PeriodIndex); the pair is the
// record's identity and the store enforces it with a unique key.
type PaymentRecord struct {
	// MemberID references the member who owes this installment.
	MemberID string `json:"memberId"`

	// PeriodIndex is the zero-based period this installment belongs to.
	PeriodIndex int `json:"periodIndex"`

	// Amount is the base installment, copied from the config when the
	// record is first created.
	Amount int64 `json:"amount"`

	// CustomAmount, when set, is an admin override of the base amount.
	CustomAmount *int64 `json:"customAmount,omitempty"`

	// ExtraAmount is any additional amount paid on top of the installment.
	ExtraAmount int64 `json:"extraAmount,omitempty"`

	// Status is the reconciliation state. StatusOverdue never appears
	// here; it is computed on read.
	Status PaymentStatus `json:"status"`

	// Method is how the payment was (or is claimed to have been) made.
	// Empty while the record is pending.
	Method PaymentMethod `json:"method,omitempty"`

	// PaymentDate is when the payment was made, YYYY-MM-DD. Empty while
	// the record is pending.
	PaymentDate string `json:"paymentDate,omitempty"`

	// Receipt is the uploaded proof of payment, if any.
	Receipt *Receipt `json:"receipt,omitempty"`

	// Note is optional free text from whoever recorded the payment.
	Note string `json:"note,omitempty"`

	// UpdatedAt is the Unix timestamp of the last transition.
	UpdatedAt int64 `json:"updatedAt"`
}

// EffectiveAmount is the amount actually due: the admin override when one
// is set, otherwise the base installment.
func (r *PaymentRecord) EffectiveAmount() int64 {
	if r.CustomAmount != nil {
		return *r.CustomAmount
	}
	return r.Amount
}
