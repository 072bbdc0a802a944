package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rajkumarptv/ChitLedger/internal/auth"
	"github.com/rajkumarptv/ChitLedger/internal/identity"
	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/storage"
)

// AuthService logs actors in by phone number. Admins additionally present
// the group PIN when one is configured.
type AuthService struct {
	resolver   *identity.Resolver
	jwtManager *auth.JWTManager
	store      storage.Store
}

// NewAuthService creates an authentication service.
func NewAuthService(resolver *identity.Resolver, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		resolver:   resolver,
		jwtManager: jwtManager,
		store:      store,
	}
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token    string      `json:"token"`
	Role     models.Role `json:"role"`
	Name     string      `json:"name"`
	MemberID string      `json:"memberId,omitempty"`
}

// Login resolves the phone number and issues a session token.
func (s *AuthService) Login(ctx context.Context, phone, pin string) (*LoginResult, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone number required", models.ErrValidation)
	}

	res, err := s.resolver.Resolve(ctx, phone)
	if err != nil {
		slog.Warn("Login failed", "error", err)
		return nil, err
	}

	var memberID string
	if res.Role == models.RoleAdmin {
		cfg, err := s.store.GetConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		// An empty hash means the group runs on phone-match alone.
		if cfg.AdminPINHash != "" {
			if err := auth.CheckPIN(cfg.AdminPINHash, pin); err != nil {
				slog.Warn("Admin login with wrong PIN")
				return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
			}
		}
	} else if res.Member != nil {
		memberID = res.Member.ID
	}

	token, err := s.jwtManager.Generate(phone, res.Role, memberID, res.Name)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	slog.Info("Login successful", "role", res.Role, "name", res.Name)
	return &LoginResult{
		Token:    token,
		Role:     res.Role,
		Name:     res.Name,
		MemberID: memberID,
	}, nil
}
