package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// QuoteRepository persists domain.Quote records and their append-only
// status audit trail, and implements the lookup batch_expiry.BatchExpire
// needs to find auto-expiry candidates.
type QuoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository wraps db as a QuoteRepository.
func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Get loads one quote by id, scoped to orgID.
func (r *QuoteRepository) Get(ctx context.Context, orgID, id string) (domain.Quote, error) {
	var model QuoteModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Quote{}, fmt.Errorf("repo: quote %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo: get quote: %w", err)
	}
	return decodeQuote(model)
}

// PendingExpiry returns every non-terminal quote for orgID whose
// ValidUntil has already elapsed, the candidate set BatchExpire filters
// down with domain.Quote.ShouldAutoExpire.
func (r *QuoteRepository) PendingExpiry(ctx context.Context, orgID string, now time.Time) ([]domain.Quote, error) {
	var models []QuoteModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND status IN ? AND valid_until IS NOT NULL AND valid_until < ?",
			orgID, []string{string(domain.QuoteDraft), string(domain.QuoteSent), string(domain.QuoteViewed)}, now).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("repo: list expiry candidates: %w", err)
	}

	quotes := make([]domain.Quote, 0, len(models))
	for _, m := range models {
		q, err := decodeQuote(m)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// Create inserts a new DRAFT quote.
func (r *QuoteRepository) Create(ctx context.Context, orgID string, quote domain.Quote, now time.Time) error {
	model, err := encodeQuote(orgID, quote, now, now)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("repo: create quote: %w", err)
	}
	return nil
}

// ApplyTransition persists the result of quote.Transition as one atomic
// unit: the updated quote row and the new audit log entry, per §5's "one
// atomic unit of work" requirement for status changes.
func (r *QuoteRepository) ApplyTransition(ctx context.Context, orgID string, quote domain.Quote, audit domain.QuoteStatusAuditLog, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing QuoteModel
		if err := tx.Where("org_id = ? AND id = ?", orgID, quote.ID).First(&existing).Error; err != nil {
			return fmt.Errorf("repo: load quote for transition: %w", err)
		}

		model, err := encodeQuote(orgID, quote, existing.CreatedAt, now)
		if err != nil {
			return err
		}
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("repo: save transitioned quote: %w", err)
		}

		auditModel := QuoteStatusAuditLogModel{
			ID:             audit.ID,
			QuoteID:        audit.QuoteID,
			PreviousStatus: string(audit.PreviousStatus),
			NewStatus:      string(audit.NewStatus),
			UserID:         audit.UserID,
			Reason:         audit.Reason,
			Timestamp:      audit.Timestamp,
		}
		if auditModel.ID == "" {
			auditModel.ID = uuid.NewString()
		}
		if err := tx.Create(&auditModel).Error; err != nil {
			return fmt.Errorf("repo: append audit log: %w", err)
		}
		return nil
	})
}

func encodeQuote(orgID string, quote domain.Quote, createdAt, updatedAt time.Time) (QuoteModel, error) {
	data, err := json.Marshal(quote)
	if err != nil {
		return QuoteModel{}, fmt.Errorf("repo: encode quote: %w", err)
	}
	var validUntil *time.Time
	if quote.ValidUntil != nil {
		v := *quote.ValidUntil
		validUntil = &v
	}
	return QuoteModel{
		ID:         quote.ID,
		OrgID:      orgID,
		ContactID:  quote.ContactID,
		Status:     string(quote.Status),
		ValidUntil: validUntil,
		OrderID:    quote.OrderID,
		Data:       string(data),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func decodeQuote(model QuoteModel) (domain.Quote, error) {
	var q domain.Quote
	if err := json.Unmarshal([]byte(model.Data), &q); err != nil {
		return domain.Quote{}, fmt.Errorf("repo: decode quote %s: %w", model.ID, err)
	}
	return q, nil
}
