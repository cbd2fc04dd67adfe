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

// VehicleCategoryRepository persists and retrieves domain.VehicleCategory
// records, the §6.C "Vehicle category repository: lookup by id" contract.
type VehicleCategoryRepository struct {
	db *gorm.DB
}

// NewVehicleCategoryRepository wraps db as a VehicleCategoryRepository.
func NewVehicleCategoryRepository(db *gorm.DB) *VehicleCategoryRepository {
	return &VehicleCategoryRepository{db: db}
}

// Get loads one vehicle category by id, scoped to orgID.
func (r *VehicleCategoryRepository) Get(ctx context.Context, orgID, id string) (domain.VehicleCategory, error) {
	var model VehicleCategoryModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.VehicleCategory{}, fmt.Errorf("repo: vehicle category %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.VehicleCategory{}, fmt.Errorf("repo: get vehicle category: %w", err)
	}

	var v domain.VehicleCategory
	if err := json.Unmarshal([]byte(model.Data), &v); err != nil {
		return domain.VehicleCategory{}, fmt.Errorf("repo: decode vehicle category %s: %w", id, err)
	}
	return v, nil
}

// ListForOrg returns every vehicle category configured for orgID.
func (r *VehicleCategoryRepository) ListForOrg(ctx context.Context, orgID string) ([]domain.VehicleCategory, error) {
	var models []VehicleCategoryModel
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("repo: list vehicle categories: %w", err)
	}

	categories := make([]domain.VehicleCategory, 0, len(models))
	for _, m := range models {
		var v domain.VehicleCategory
		if err := json.Unmarshal([]byte(m.Data), &v); err != nil {
			return nil, fmt.Errorf("repo: decode vehicle category %s: %w", m.ID, err)
		}
		categories = append(categories, v)
	}
	return categories, nil
}

// Upsert creates or replaces the vehicle category record for orgID.
func (r *VehicleCategoryRepository) Upsert(ctx context.Context, orgID string, category domain.VehicleCategory, now time.Time) error {
	data, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("repo: encode vehicle category: %w", err)
	}

	model := VehicleCategoryModel{
		ID:        category.ID,
		OrgID:     orgID,
		Code:      category.Code,
		Data:      string(data),
		UpdatedAt: now,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing VehicleCategoryModel
		err := tx.Where("id = ?", category.ID).First(&existing).Error
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
		return fmt.Errorf("repo: upsert vehicle category: %w", err)
	}
	return nil
}
