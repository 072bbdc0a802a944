package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/storage"
)

// MemberService manages the group roster.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a member service over the given store.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// List returns the roster. Both roles may read it.
func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return members, nil
}

// Create adds a member. Admin only.
func (s *MemberService) Create(ctx context.Context, actor Actor, m *models.Member) error {
	if actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only the admin manages the roster", models.ErrUnauthorized)
	}
	if m.Name == "" || m.Phone == "" {
		return fmt.Errorf("%w: member needs a name and phone", models.ErrValidation)
	}

	if err := s.store.CreateMember(ctx, m); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	slog.Info("Member added", "member_id", m.ID, "name", m.Name)
	return nil
}

// Update rewrites an existing member. Admin only.
func (s *MemberService) Update(ctx context.Context, actor Actor, m *models.Member) error {
	if actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only the admin manages the roster", models.ErrUnauthorized)
	}
	if m.Name == "" || m.Phone == "" {
		return fmt.Errorf("%w: member needs a name and phone", models.ErrValidation)
	}

	existing, err := s.store.GetMember(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if existing == nil {
		return fmt.Errorf("%w: member %s", models.ErrNotFound, m.ID)
	}

	if err := s.store.UpdateMember(ctx, m); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	slog.Info("Member updated", "member_id", m.ID)
	return nil
}
