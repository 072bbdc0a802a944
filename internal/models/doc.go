// Package models defines the core domain models for ChitLedger.
//
// # Models
//
//   - Member: one participant in the chit group, identified by an opaque ID
//   - ChitConfig: the group-wide constants (value, installment, duration)
//   - MonthlyAuction: the winning bid for one period
//   - PaymentRecord: one member's payment state for one period
//
// # Design Principles
//
// 1. **One record per (member, period)**: PaymentRecord is keyed by the pair
// and upserted, never duplicated. A missing record means the installment is
// still pending; callers synthesize a default record instead of handling nil.
//
// 2. **Closed enums**: status, method and role are typed string constants.
// Every transition site switches over them so an illegal value fails loudly
// instead of sliding through as a free-form string.
//
// 3. **Integer currency**: all amounts are int64 rupee units. No fractional
// currency exists in this domain, so there are no rounding rules to get wrong.
//
// 4. **Avoid circular references**: records reference members by ID string,
// never by pointer.
package models
