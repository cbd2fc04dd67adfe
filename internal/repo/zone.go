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

// ZoneRepository persists and retrieves domain.Zone records.
type ZoneRepository struct {
	db *gorm.DB
}

// NewZoneRepository wraps db as a ZoneRepository.
func NewZoneRepository(db *gorm.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// ActiveForOrg returns every active zone for orgID, ordered by priority so
// callers needing PRIORITY conflict resolution can take the first match.
func (r *ZoneRepository) ActiveForOrg(ctx context.Context, orgID string) ([]domain.Zone, error) {
	var models []ZoneModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND is_active = ?", orgID, true).
		Order("priority DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("repo: list active zones: %w", err)
	}

	zones := make([]domain.Zone, 0, len(models))
	for _, m := range models {
		var z domain.Zone
		if err := json.Unmarshal([]byte(m.Data), &z); err != nil {
			return nil, fmt.Errorf("repo: decode zone %s: %w", m.ID, err)
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// Upsert creates or replaces the zone record for orgID.
func (r *ZoneRepository) Upsert(ctx context.Context, orgID string, zone domain.Zone, now time.Time) error {
	data, err := json.Marshal(zone)
	if err != nil {
		return fmt.Errorf("repo: encode zone: %w", err)
	}

	model := ZoneModel{
		ID:        zone.ID,
		OrgID:     orgID,
		Code:      zone.Code,
		IsActive:  zone.IsActive,
		Priority:  zone.EffectivePriority(),
		Data:      string(data),
		UpdatedAt: now,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ZoneModel
		err := tx.Where("id = ?", zone.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model.CreatedAt = now
			return tx.Create(&model).Error
		case err != nil:
			return err
		default:
			model.CreatedAt = existing.CreatedAt
			return tx.Save(&model).Error
		}
	})
	if err != nil {
		return fmt.Errorf("repo: upsert zone: %w", err)
	}
	return nil
}
