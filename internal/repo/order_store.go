package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// OrderStore is the Postgres-backed implementation of quote.OrderStore and
// invoice.NumberStore: sequential reference generation, order creation,
// and mission relinking all run inside one transaction per call so a
// crash between the sequence bump and the order insert can never leave a
// gap that a concurrent caller silently reuses.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore wraps db as a quote.OrderStore / invoice.NumberStore.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// NextOrderReference formats "ORD-YYYY-NNN" from the next (orgID, year)
// order sequence value.
func (s *OrderStore) NextOrderReference(ctx context.Context, orgID string, year int) (string, error) {
	var reference string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := nextSequence(tx, orgID, year, "order")
		if err != nil {
			return err
		}
		reference = fmt.Sprintf("ORD-%d-%03d", year, n)
		return nil
	})
	return reference, err
}

// CreateOrder inserts order, relying on the unique (org_id, reference)
// index to reject a reference reused by a concurrent transaction; the
// caller (internal/quote) retries on that error up to
// quote.MaxReferenceCollisionRetries times.
func (s *OrderStore) CreateOrder(ctx context.Context, order domain.Order) error {
	model := OrderModel{
		ID:        order.ID,
		OrgID:     order.OrgID,
		Reference: order.Reference,
		QuoteID:   order.QuoteID,
		CreatedAt: order.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("repo: create order: %w", err)
	}
	return nil
}

// RelinkMissions points every mission created against quoteID before its
// order existed at the now-created orderID.
func (s *OrderStore) RelinkMissions(ctx context.Context, quoteID, orderID string) error {
	err := s.db.WithContext(ctx).Model(&MissionModel{}).
		Where("quote_id = ? AND order_id IS NULL", quoteID).
		Update("order_id", orderID).Error
	if err != nil {
		return fmt.Errorf("repo: relink missions: %w", err)
	}
	return nil
}

// NextInvoiceNumber formats "INV-YYYY-NNNN" from the next (orgID, year)
// invoice sequence value.
func (s *OrderStore) NextInvoiceNumber(ctx context.Context, orgID string, year int) (string, error) {
	var number string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := nextSequence(tx, orgID, year, "invoice")
		if err != nil {
			return err
		}
		number = fmt.Sprintf("INV-%d-%04d", year, n)
		return nil
	})
	return number, err
}
