// Package identity resolves a submitted contact number to a role. This is
// the system's only identity mechanism: there are no user accounts, only
// the admin phone in the config and the phones on the member roster.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// Directory is the slice of storage the resolver needs. storage.Store
// satisfies it; tests can supply something smaller.
type Directory interface {
	GetConfig(ctx context.Context) (*models.ChitConfig, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
}

// Resolution is the outcome of a successful lookup.
type Resolution struct {
	Role models.Role

	// Member is set for MEMBER resolutions only.
	Member *models.Member

	// Name is the display name to greet the actor with.
	Name string
}

// Resolver looks phone numbers up against the group.
type Resolver struct {
	dir Directory
}

// NewResolver creates a resolver backed by the given directory.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve matches phone against the admin contact first, then the roster.
// An unrecognized number returns ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, phone string) (*Resolution, error) {
	cfg, err := r.dir.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: group is not configured", models.ErrNotFound)
	}

	if MatchPhone(phone, cfg.AdminPhone) {
		return &Resolution{Role: models.RoleAdmin, Name: "Administrator"}, nil
	}

	members, err := r.dir.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if MatchPhone(phone, members[i].Phone) {
			return &Resolution{Role: models.RoleMember, Member: &members[i], Name: members[i].Name}, nil
		}
	}

	return nil, fmt.Errorf("%w: number not registered with the group", models.ErrNotFound)
}

// MatchPhone compares two contact numbers leniently: both sides are
// stripped to digits, and when both have at least 10 digits only the last
// 10 are compared (so "+91 98765 43210" matches "9876543210"). Shorter
// numbers must match exactly; empty numbers never match.
func MatchPhone(a, b string) bool {
	da := digits(a)
	db := digits(b)
	if len(da) >= 10 && len(db) >= 10 {
		return da[len(da)-10:] == db[len(db)-10:]
	}
	return da != "" && da == db
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
