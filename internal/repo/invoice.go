package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// InvoiceRepository persists domain.Invoice headers and their lines as
// real rows, unlike Zone/Contact/Quote: invoices are append-only and each
// line is small and flat enough to map one-to-one without a JSON blob.
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository wraps db as an InvoiceRepository.
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts invoice and its lines inside one transaction.
func (r *InvoiceRepository) Create(ctx context.Context, orgID string, invoice domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := InvoiceModel{
			ID:           invoice.ID,
			Number:       invoice.Number,
			OrgID:        orgID,
			OrderID:      invoice.OrderID,
			TotalExclVat: invoice.TotalExclVat,
			TotalVat:     invoice.TotalVat,
			TotalInclVat: invoice.TotalInclVat,
			IssuedAt:     invoice.IssuedAt,
			DueAt:        invoice.DueAt,
		}
		if err := tx.Create(&header).Error; err != nil {
			return fmt.Errorf("repo: create invoice: %w", err)
		}

		lines := make([]InvoiceLineModel, 0, len(invoice.Lines))
		for _, l := range invoice.Lines {
			lines = append(lines, InvoiceLineModel{
				ID:               l.ID,
				InvoiceID:        invoice.ID,
				QuoteLineID:      l.QuoteLineID,
				Type:             string(l.Type),
				Description:      l.Description,
				Quantity:         l.Quantity,
				UnitPriceExclVat: l.UnitPriceExclVat,
				VatRatePercent:   l.VatRatePercent,
				TotalExclVat:     l.TotalExclVat,
				TotalVat:         l.TotalVat,
			})
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return fmt.Errorf("repo: create invoice lines: %w", err)
			}
		}
		return nil
	})
}

// Get loads one invoice with its lines by id, scoped to orgID.
func (r *InvoiceRepository) Get(ctx context.Context, orgID, id string) (domain.Invoice, error) {
	var header InvoiceModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&header).Error
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("repo: get invoice: %w", err)
	}

	var lineModels []InvoiceLineModel
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", id).Find(&lineModels).Error; err != nil {
		return domain.Invoice{}, fmt.Errorf("repo: list invoice lines: %w", err)
	}

	lines := make([]domain.InvoiceLine, 0, len(lineModels))
	for _, l := range lineModels {
		lines = append(lines, domain.InvoiceLine{
			ID:               l.ID,
			QuoteLineID:      l.QuoteLineID,
			Type:             domain.InvoiceLineType(l.Type),
			Description:      l.Description,
			Quantity:         l.Quantity,
			UnitPriceExclVat: l.UnitPriceExclVat,
			VatRatePercent:   l.VatRatePercent,
			TotalExclVat:     l.TotalExclVat,
			TotalVat:         l.TotalVat,
		})
	}

	return domain.Invoice{
		ID:           header.ID,
		Number:       header.Number,
		OrgID:        header.OrgID,
		OrderID:      header.OrderID,
		Lines:        lines,
		TotalExclVat: header.TotalExclVat,
		TotalVat:     header.TotalVat,
		TotalInclVat: header.TotalInclVat,
		IssuedAt:     header.IssuedAt,
		DueAt:        header.DueAt,
	}, nil
}
