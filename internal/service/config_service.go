package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rajkumarptv/ChitLedger/internal/auth"
	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/storage"
)

// ConfigService reads and updates the group configuration.
type ConfigService struct {
	store storage.Store
}

// NewConfigService creates a config service over the given store.
func NewConfigService(store storage.Store) *ConfigService {
	return &ConfigService{store: store}
}

// ConfigUpdate carries the editable fields of the group configuration.
// AdminPIN, when non-empty, replaces the stored PIN.
type ConfigUpdate struct {
	Name                   string `json:"name"`
	TotalChitValue         int64  `json:"totalChitValue"`
	FixedMonthlyCollection int64  `json:"fixedMonthlyCollection"`
	MonthlyPayoutBase      int64  `json:"monthlyPayoutBase"`
	DurationMonths         int    `json:"durationMonths"`
	StartDate              string `json:"startDate"`
	AdminPhone             string `json:"adminPhone"`
	AdminPIN               string `json:"adminPin,omitempty"`
	UPIID                  string `json:"upiId"`
	UPIName                string `json:"upiName"`
}

// Get returns the group configuration. Both roles may read it; the PIN
// hash never serializes.
func (s *ConfigService) Get(ctx context.Context) (*models.ChitConfig, error) {
	cfg, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: group is not configured", models.ErrNotFound)
	}
	return cfg, nil
}

// Update rewrites the group configuration. Admin only.
func (s *ConfigService) Update(ctx context.Context, actor Actor, upd ConfigUpdate) (*models.ChitConfig, error) {
	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only the admin edits the group", models.ErrUnauthorized)
	}
	if upd.Name == "" || upd.AdminPhone == "" {
		return nil, fmt.Errorf("%w: group needs a name and admin phone", models.ErrValidation)
	}
	if upd.DurationMonths <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", models.ErrValidation)
	}

	existing, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	cfg := &models.ChitConfig{
		Name:                   upd.Name,
		TotalChitValue:         upd.TotalChitValue,
		FixedMonthlyCollection: upd.FixedMonthlyCollection,
		MonthlyPayoutBase:      upd.MonthlyPayoutBase,
		DurationMonths:         upd.DurationMonths,
		StartDate:              upd.StartDate,
		AdminPhone:             upd.AdminPhone,
		UPIID:                  upd.UPIID,
		UPIName:                upd.UPIName,
	}
	if existing != nil {
		cfg.ID = existing.ID
		cfg.AdminPINHash = existing.AdminPINHash
	}
	if upd.AdminPIN != "" {
		hash, err := auth.HashPIN(upd.AdminPIN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
		cfg.AdminPINHash = hash
	}

	if err := s.store.SaveConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	slog.Info("Group configuration updated", "name", cfg.Name, "duration", cfg.DurationMonths)
	return cfg, nil
}
