package domain

import "time"

// QuoteStatus is the lifecycle state of a commercial quote.
type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "DRAFT"
	QuoteSent      QuoteStatus = "SENT"
	QuoteViewed    QuoteStatus = "VIEWED"
	QuoteAccepted  QuoteStatus = "ACCEPTED"
	QuoteRejected  QuoteStatus = "REJECTED"
	QuoteExpired   QuoteStatus = "EXPIRED"
	QuoteCancelled QuoteStatus = "CANCELLED"
)

// QuoteLineType discriminates a QuoteLine's nature; used by the invoice
// factory to map to InvoiceLineType.
type QuoteLineType string

const (
	QuoteLineCalculated  QuoteLineType = "CALCULATED"
	QuoteLineOptionalFee QuoteLineType = "OPTIONAL_FEE"
	QuoteLinePromotion   QuoteLineType = "PROMOTION"
	QuoteLineManual      QuoteLineType = "MANUAL"
)

// QuoteLine is one commercial line item on a quote, mutable while the
// quote is a DRAFT.
type QuoteLine struct {
	ID             string        `json:"id"`
	Type           QuoteLineType `json:"type"`
	Description    string        `json:"description"`
	Quantity       float64       `json:"quantity"`
	UnitPrice      float64       `json:"unit_price"`
	VatRatePercent float64       `json:"vat_rate_percent"`
	TotalExclVat   float64       `json:"total_excl_vat"`
}

// SubcontractData records the third-party execution details once a quote's
// trip has been handed off, per §4.13.
type SubcontractData struct {
	SubcontractorID string    `json:"subcontractor_id"`
	AgreedPrice     float64   `json:"agreed_price"`
	SubcontractedAt time.Time `json:"subcontracted_at"`
}

// Quote is a commercial offer for a trip, carrying a frozen PricingResult
// snapshot plus lifecycle metadata.
type Quote struct {
	ID         string      `json:"id"`
	OrgID      string      `json:"org_id"`
	ContactID  string      `json:"contact_id"`
	Status     QuoteStatus `json:"status"`
	ValidUntil *time.Time  `json:"valid_until,omitempty"`

	SentAt      *time.Time `json:"sent_at,omitempty"`
	ViewedAt    *time.Time `json:"viewed_at,omitempty"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	ExpiredAt   *time.Time `json:"expired_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	OrderID *string `json:"order_id,omitempty"`

	Pricing PricingResult `json:"pricing"`
	Lines   []QuoteLine   `json:"lines"`

	IsSubcontracted bool             `json:"is_subcontracted"`
	Subcontract     *SubcontractData `json:"subcontract,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// IsEditable reports whether quote fields may still be changed.
func (q Quote) IsEditable() bool { return q.Status == QuoteDraft }

// IsCommerciallyFrozen reports whether the commercial terms are locked.
func (q Quote) IsCommerciallyFrozen() bool { return q.Status != QuoteDraft }

// NotesEditable reports whether the free-text notes field may still be
// changed — true for every status except the two fully-terminal ones where
// the record is considered closed for annotation.
func (q Quote) NotesEditable() bool {
	return q.Status != QuoteExpired && q.Status != QuoteCancelled
}

// CanConvertToInvoice reports whether an invoice may be generated from this
// quote.
func (q Quote) CanConvertToInvoice() bool { return q.Status == QuoteAccepted }

// ShouldAutoExpire reports whether a quote is eligible for batch
// auto-expiry at time now.
func (q Quote) ShouldAutoExpire(now time.Time) bool {
	switch q.Status {
	case QuoteDraft, QuoteSent, QuoteViewed:
	default:
		return false
	}
	return q.ValidUntil != nil && q.ValidUntil.Before(now)
}

// QuoteStatusAuditLog is one append-only transition record.
type QuoteStatusAuditLog struct {
	ID               string      `json:"id"`
	QuoteID          string      `json:"quote_id"`
	PreviousStatus   QuoteStatus `json:"previous_status"`
	NewStatus        QuoteStatus `json:"new_status"`
	UserID           *string     `json:"user_id,omitempty"`
	Reason           *string     `json:"reason,omitempty"`
	Timestamp        time.Time   `json:"timestamp"`
}
