package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// SettingsRepository persists and retrieves a domain.OrganizationPricingSettings
// per org, the §6.C "Settings repository: org pricing + profitability
// thresholds" contract.
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository wraps db as a SettingsRepository.
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the pricing settings for orgID.
func (r *SettingsRepository) Get(ctx context.Context, orgID string) (domain.OrganizationPricingSettings, error) {
	var model SettingsModel
	err := r.db.WithContext(ctx).Where("org_id = ?", orgID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.OrganizationPricingSettings{}, fmt.Errorf("repo: settings %s: %w", orgID, ErrNotFound)
	}
	if err != nil {
		return domain.OrganizationPricingSettings{}, fmt.Errorf("repo: get settings: %w", err)
	}

	var s domain.OrganizationPricingSettings
	if err := json.Unmarshal([]byte(model.Data), &s); err != nil {
		return domain.OrganizationPricingSettings{}, fmt.Errorf("repo: decode settings %s: %w", orgID, err)
	}
	return s, nil
}

// Upsert creates or replaces the pricing settings row for orgID.
func (r *SettingsRepository) Upsert(ctx context.Context, orgID string, settings domain.OrganizationPricingSettings, now time.Time) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("repo: encode settings: %w", err)
	}

	model := SettingsModel{
		OrgID:           orgID,
		BaseRatePerKm:   settings.BaseRatePerKm,
		BaseRatePerHour: settings.BaseRatePerHour,
		TargetMarginPct: settings.TargetMarginPct,
		Data:            string(data),
		UpdatedAt:       now,
	}

	err = r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Assign(model).
		FirstOrCreate(&SettingsModel{OrgID: orgID}).Error
	if err != nil {
		return fmt.Errorf("repo: upsert settings: %w", err)
	}
	return nil
}
