package domain

import "time"

// InvoiceLineType is the invoice-side counterpart of QuoteLineType.
type InvoiceLineType string

const (
	InvoiceLineTransport         InvoiceLineType = "TRANSPORT"
	InvoiceLineOptionalFee       InvoiceLineType = "OPTIONAL_FEE"
	InvoiceLinePromotionAdjusted InvoiceLineType = "PROMOTION_ADJUSTMENT"
	InvoiceLineOther             InvoiceLineType = "OTHER"
)

// InvoiceLine is a frozen, deep-copied snapshot of a QuoteLine. Later
// mutation of the originating QuoteLine must never change an already
// created InvoiceLine, and vice versa.
type InvoiceLine struct {
	ID              string          `json:"id"`
	QuoteLineID     string          `json:"quote_line_id"`
	Type            InvoiceLineType `json:"type"`
	Description     string          `json:"description"`
	Quantity        float64         `json:"quantity"`
	UnitPriceExclVat float64        `json:"unit_price_excl_vat"`
	VatRatePercent  float64         `json:"vat_rate_percent"`
	TotalExclVat    float64         `json:"total_excl_vat"`
	TotalVat        float64         `json:"total_vat"`
}

// Invoice is generated from an ACCEPTED order's quotes.
type Invoice struct {
	ID             string        `json:"id"`
	Number         string        `json:"number"` // INV-YYYY-NNNN
	OrgID          string        `json:"org_id"`
	OrderID        string        `json:"order_id"`
	Lines          []InvoiceLine `json:"lines"`
	TotalExclVat   float64       `json:"total_excl_vat"`
	TotalVat       float64       `json:"total_vat"`
	TotalInclVat   float64       `json:"total_incl_vat"`
	IssuedAt       time.Time     `json:"issued_at"`
	DueAt          time.Time     `json:"due_at"`
}
