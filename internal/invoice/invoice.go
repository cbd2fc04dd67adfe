// Package invoice implements §4.14: the deep-copy line factory that turns
// an accepted quote's lines into frozen invoice lines, enriched
// descriptions, totals, and sequential per-(org,year) numbering.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/money"
)

// DefaultPaymentTermsDays is used when a partner contract has not
// negotiated its own payment terms.
const DefaultPaymentTermsDays = 30

// NumberStore is the persistence seam for sequential invoice numbering,
// mirroring quote.OrderStore's NextOrderReference seam. A concrete
// implementation lives in internal/repo.
type NumberStore interface {
	NextInvoiceNumber(ctx context.Context, orgID string, year int) (string, error)
}

var tripTypeLabels = map[domain.TripType]string{
	domain.TripTypeTransfer:  "Transfert",
	domain.TripTypeExcursion: "Excursion",
	domain.TripTypeDispo:     "Mise à disposition",
	domain.TripTypeStay:      "Séjour",
}

var lineTypeMapping = map[domain.QuoteLineType]domain.InvoiceLineType{
	domain.QuoteLineOptionalFee: domain.InvoiceLineOptionalFee,
	domain.QuoteLinePromotion:   domain.InvoiceLinePromotionAdjusted,
	domain.QuoteLineManual:      domain.InvoiceLineOther,
	domain.QuoteLineCalculated:  domain.InvoiceLineTransport,
}

// Input bundles everything CreateInvoiceFromOrder needs beyond the order
// and quote themselves: the context used to build enriched line
// descriptions.
type Input struct {
	Order          domain.Order
	Quote          domain.Quote
	EndCustomerName string
	TripType       domain.TripType
	PickupAt       time.Time
	PickupAddress  string
	DropoffAddress string
	PaymentTermsDays *int
}

// CreateInvoiceFromOrder deep-copies every QuoteLine of in.Quote into a
// frozen InvoiceLine, builds enriched descriptions, and computes totals.
// The returned Invoice's Number is left empty; callers assign it via
// NextNumber (numbering needs a transactional store and is intentionally
// kept out of this pure function).
func CreateInvoiceFromOrder(in Input, now time.Time) domain.Invoice {
	lines := make([]domain.InvoiceLine, 0, len(in.Quote.Lines))
	var totalExclVat, totalVat float64

	for i, ql := range in.Quote.Lines {
		line := toInvoiceLine(ql)
		line.Description = enrichedDescription(in, ql, i == 0)
		lines = append(lines, line)
		totalExclVat += line.TotalExclVat
		totalVat += line.TotalVat
	}

	totalExclVat = money.ToFloat(money.FromFloat(totalExclVat))
	totalVat = money.ToFloat(money.FromFloat(totalVat))

	return domain.Invoice{
		ID:           uuid.NewString(),
		OrgID:        in.Order.OrgID,
		OrderID:      in.Order.ID,
		Lines:        lines,
		TotalExclVat: totalExclVat,
		TotalVat:     totalVat,
		TotalInclVat: money.ToFloat(money.FromFloat(totalExclVat + totalVat)),
		IssuedAt:     now,
		DueAt:        dueAt(now, in.PaymentTermsDays),
	}
}

// toInvoiceLine performs the deep copy: every field is copied by value, so
// mutating the originating QuoteLine afterwards (or the resulting
// InvoiceLine) can never affect the other.
func toInvoiceLine(ql domain.QuoteLine) domain.InvoiceLine {
	totalVat := money.ToFloat(money.PercentOf(money.FromFloat(ql.TotalExclVat), money.FromFloat(ql.VatRatePercent)))
	return domain.InvoiceLine{
		ID:               uuid.NewString(),
		QuoteLineID:      ql.ID,
		Type:             mapLineType(ql.Type),
		Description:      ql.Description,
		Quantity:         ql.Quantity,
		UnitPriceExclVat: ql.UnitPrice,
		VatRatePercent:   ql.VatRatePercent,
		TotalExclVat:     ql.TotalExclVat,
		TotalVat:         totalVat,
	}
}

func mapLineType(t domain.QuoteLineType) domain.InvoiceLineType {
	if mapped, ok := lineTypeMapping[t]; ok {
		return mapped
	}
	return domain.InvoiceLineOther
}

func enrichedDescription(in Input, ql domain.QuoteLine, isFirstLine bool) string {
	desc := ql.Description

	if ql.Type == domain.QuoteLineCalculated {
		label, ok := tripTypeLabels[in.TripType]
		if !ok {
			label = string(in.TripType)
		}
		desc = fmt.Sprintf("%s — %s\n%s\nDépart : %s\nArrivée : %s",
			desc, label, in.PickupAt.Format("02/01/2006"), in.PickupAddress, in.DropoffAddress)
	}

	if isFirstLine && in.EndCustomerName != "" {
		desc = fmt.Sprintf("Client : %s\n%s", in.EndCustomerName, desc)
	}

	return desc
}

func dueAt(issuedAt time.Time, paymentTermsDays *int) time.Time {
	days := DefaultPaymentTermsDays
	if paymentTermsDays != nil {
		days = *paymentTermsDays
	}
	return issuedAt.AddDate(0, 0, days)
}

// NextNumber formats the sequential invoice number for (orgID, year),
// delegating uniqueness to store's underlying unique index.
func NextNumber(ctx context.Context, store NumberStore, orgID string, year int) (string, error) {
	return store.NextInvoiceNumber(ctx, orgID, year)
}
