package repo

import "time"

// ZoneModel persists a domain.Zone. The shape (polygon rings, radius,
// surcharges) varies per ZoneShape, so geometry and pricing fields are
// kept as a JSON blob rather than one column per shape variant.
type ZoneModel struct {
	ID        string `gorm:"primaryKey"`
	OrgID     string `gorm:"index"`
	Code      string `gorm:"index"`
	IsActive  bool
	Priority  int
	Data      string `gorm:"type:jsonb"` // JSON-encoded domain.Zone
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactModel persists a domain.Contact, including its PartnerContract
// catalog (zone routes, excursions, dispo packages) as a JSON blob.
type ContactModel struct {
	ID        string `gorm:"primaryKey"`
	OrgID     string `gorm:"index"`
	Name      string
	IsPartner bool
	Data      string `gorm:"type:jsonb"` // JSON-encoded domain.Contact
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuoteModel persists a domain.Quote. Status is promoted to a real column
// so AutoExpireEligible can be queried efficiently; everything else
// (pricing snapshot, lines, timestamps) is a JSON blob, since quotes are
// read whole, never joined column-by-column.
type QuoteModel struct {
	ID         string `gorm:"primaryKey"`
	OrgID      string `gorm:"index"`
	ContactID  string `gorm:"index"`
	Status     string `gorm:"index"`
	ValidUntil *time.Time `gorm:"index"`
	OrderID    *string
	Data       string `gorm:"type:jsonb"` // JSON-encoded domain.Quote
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuoteStatusAuditLogModel persists one append-only transition record.
type QuoteStatusAuditLogModel struct {
	ID             string `gorm:"primaryKey"`
	QuoteID        string `gorm:"index"`
	PreviousStatus string
	NewStatus      string
	UserID         *string
	Reason         *string
	Timestamp      time.Time
}

// OrderModel persists a domain.Order. Reference carries the unique index
// that backs collision detection for §5's order-number generation.
type OrderModel struct {
	ID        string `gorm:"primaryKey"`
	OrgID     string `gorm:"index:idx_orders_org_reference,unique"`
	Reference string `gorm:"index:idx_orders_org_reference,unique"`
	QuoteID   string `gorm:"index"`
	CreatedAt time.Time
}

// MissionModel persists a domain.Mission.
type MissionModel struct {
	ID      string `gorm:"primaryKey"`
	QuoteID string `gorm:"index"`
	OrderID *string `gorm:"index"`
}

// InvoiceModel persists a domain.Invoice header.
type InvoiceModel struct {
	ID           string `gorm:"primaryKey"`
	Number       string `gorm:"index:idx_invoices_org_number,unique"`
	OrgID        string `gorm:"index:idx_invoices_org_number,unique"`
	OrderID      string `gorm:"index"`
	TotalExclVat float64
	TotalVat     float64
	TotalInclVat float64
	IssuedAt     time.Time
	DueAt        time.Time
}

// InvoiceLineModel persists one frozen domain.InvoiceLine.
type InvoiceLineModel struct {
	ID               string `gorm:"primaryKey"`
	InvoiceID        string `gorm:"index"`
	QuoteLineID      string
	Type             string
	Description      string
	Quantity         float64
	UnitPriceExclVat float64
	VatRatePercent   float64
	TotalExclVat     float64
	TotalVat         float64
}

// SettingsModel persists a domain.OrganizationPricingSettings, one row per
// org. Base rates are promoted to columns since the dynamic pricing engine
// reads them on every request; cost parameters and thresholds stay in the
// JSON blob since most organizations leave them unset.
type SettingsModel struct {
	OrgID           string `gorm:"primaryKey"`
	BaseRatePerKm   float64
	BaseRatePerHour float64
	TargetMarginPct float64
	Data            string `gorm:"type:jsonb"` // JSON-encoded domain.OrganizationPricingSettings
	UpdatedAt       time.Time
}

// VehicleCategoryModel persists a domain.VehicleCategory.
type VehicleCategoryModel struct {
	ID        string `gorm:"primaryKey"`
	OrgID     string `gorm:"index"`
	Code      string `gorm:"index"`
	Data      string `gorm:"type:jsonb"` // JSON-encoded domain.VehicleCategory
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReferenceSequenceModel backs monotonic per-(org,year,kind) counters for
// order references (ORD-YYYY-NNN) and invoice numbers (INV-YYYY-NNNN). The
// unique index on (org_id, year, kind) makes two transactions that both
// create a key's first counter row fail with a unique-constraint violation
// instead of starting two counters; later increments serialize on the row
// lock nextSequence takes.
type ReferenceSequenceModel struct {
	ID      uint   `gorm:"primaryKey"`
	OrgID   string `gorm:"uniqueIndex:idx_reference_sequence"`
	Year    int    `gorm:"uniqueIndex:idx_reference_sequence"`
	Kind    string `gorm:"uniqueIndex:idx_reference_sequence"` // "order" | "invoice"
	Counter int
}
