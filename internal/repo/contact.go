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

// ContactRepository persists and retrieves domain.Contact records,
// including the nested PartnerContract catalog.
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository wraps db as a ContactRepository.
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Get loads one contact by id, scoped to orgID.
func (r *ContactRepository) Get(ctx context.Context, orgID, id string) (domain.Contact, error) {
	var model ContactModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Contact{}, fmt.Errorf("repo: contact %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Contact{}, fmt.Errorf("repo: get contact: %w", err)
	}

	var c domain.Contact
	if err := json.Unmarshal([]byte(model.Data), &c); err != nil {
		return domain.Contact{}, fmt.Errorf("repo: decode contact %s: %w", id, err)
	}
	return c, nil
}

// Upsert creates or replaces the contact record for orgID.
func (r *ContactRepository) Upsert(ctx context.Context, orgID string, contact domain.Contact, now time.Time) error {
	data, err := json.Marshal(contact)
	if err != nil {
		return fmt.Errorf("repo: encode contact: %w", err)
	}

	model := ContactModel{
		ID:        contact.ID,
		OrgID:     orgID,
		Name:      contact.Name,
		IsPartner: contact.IsPartner,
		Data:      string(data),
		UpdatedAt: now,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ContactModel
		err := tx.Where("id = ?", contact.ID).First(&existing).Error
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
		return fmt.Errorf("repo: upsert contact: %w", err)
	}
	return nil
}
