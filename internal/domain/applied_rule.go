package domain

// RuleKind discriminates the payload carried by an AppliedRule. Per the
// "tagged variants over inheritance" design note, every adjustment in the
// pricing audit log is one struct with a `Type` discriminator and only the
// fields relevant to that type populated — no component class hierarchy.
type RuleKind string

const (
	RuleZoneMapping        RuleKind = "ZONE_MAPPING"
	RuleZoneMultiplier     RuleKind = "ZONE_MULTIPLIER"
	RuleAdvancedRate       RuleKind = "ADVANCED_RATE"
	RuleSeasonalMultiplier RuleKind = "SEASONAL_MULTIPLIER"
	RuleCategoryRate       RuleKind = "CATEGORY_RATE"
	RulePartnerOverride    RuleKind = "PARTNER_OVERRIDE_PRICE"
	RuleCatalogPrice       RuleKind = "CATALOG_PRICE"
	RuleManualOverride     RuleKind = "MANUAL_OVERRIDE"
)

// AppliedRule is one ordered, audit-quality record of a single pricing
// adjustment. Only the fields relevant to Type are meaningful; the rest are
// left at zero value. Fields are tagged `omitempty` so serialized output
// only carries the active payload under its `type` discriminator.
type AppliedRule struct {
	Type RuleKind `json:"type"`

	// RuleZoneMapping / RuleZoneMultiplier
	ZoneID     string  `json:"zone_id,omitempty"`
	ZoneCode   string  `json:"zone_code,omitempty"`
	Side       string  `json:"side,omitempty"` // "pickup", "dropoff", or "route" for a polyline-segmented weighted multiplier
	Multiplier float64 `json:"multiplier,omitempty"`

	// RuleAdvancedRate / RuleSeasonalMultiplier
	SourceID       string         `json:"source_id,omitempty"`
	AdjustmentType AdjustmentType `json:"adjustment_type,omitempty"`
	Value          float64        `json:"value,omitempty"`

	// RuleCategoryRate
	RatePerKm   float64 `json:"rate_per_km,omitempty"`
	RatePerHour float64 `json:"rate_per_hour,omitempty"`

	// RulePartnerOverride / RuleCatalogPrice / RuleManualOverride
	PriceChange         float64 `json:"price_change,omitempty"`
	PriceChangePercent  float64 `json:"price_change_percent,omitempty"`
	Reason              string  `json:"reason,omitempty"`
	OverriddenAt        string  `json:"overridden_at,omitempty"`
	IsContractPriceOver bool    `json:"is_contract_price_override,omitempty"`

	// Universal audit fields.
	PriceBefore float64 `json:"price_before"`
	PriceAfter  float64 `json:"price_after"`
}
