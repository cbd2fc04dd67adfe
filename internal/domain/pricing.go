package domain

import "time"

// PricingMode discriminates whether a price came from a partner catalog
// grid or from the dynamic formula.
type PricingMode string

const (
	PricingModeFixedGrid PricingMode = "FIXED_GRID"
	PricingModeDynamic   PricingMode = "DYNAMIC"
)

// FallbackReason records why the pricing engine fell through to dynamic
// pricing instead of matching a partner catalog entry.
type FallbackReason string

const (
	FallbackPrivateClient    FallbackReason = "PRIVATE_CLIENT"
	FallbackNoContract       FallbackReason = "NO_CONTRACT"
	FallbackNoZoneMatch      FallbackReason = "NO_ZONE_MATCH"
	FallbackNoRouteMatch     FallbackReason = "NO_ROUTE_MATCH"
	FallbackNoExcursionMatch FallbackReason = "NO_EXCURSION_MATCH"
	FallbackNoDispoMatch     FallbackReason = "NO_DISPO_MATCH"
)

// ProfitabilityIndicator classifies margin health.
type ProfitabilityIndicator string

const (
	ProfitabilityGreen  ProfitabilityIndicator = "green"
	ProfitabilityOrange ProfitabilityIndicator = "orange"
	ProfitabilityRed    ProfitabilityIndicator = "red"
)

// PricingRequest is the caller-supplied description of a trip to price.
type PricingRequest struct {
	ContactID                 string     `json:"contact_id"`
	Pickup                    GeoPoint   `json:"pickup"`
	Dropoff                   GeoPoint   `json:"dropoff"`
	VehicleCategoryID         string     `json:"vehicle_category_id"`
	TripType                  TripType   `json:"trip_type"`
	PickupAt                  *time.Time `json:"pickup_at,omitempty"`
	EstimatedDistanceKm       *float64   `json:"estimated_distance_km,omitempty"`
	EstimatedDurationMinutes  *float64   `json:"estimated_duration_minutes,omitempty"`
	Polyline                  string     `json:"polyline,omitempty"`
	DurationHours             float64    `json:"duration_hours,omitempty"` // DISPO trip type
}

// RejectedCandidate records why a single grid entry was not used, so the
// grid matcher never relies on exceptions to signal "no match".
type RejectedCandidate struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// GridSearchDetails captures the grid matcher's full search trace for
// audit and debugging.
type GridSearchDetails struct {
	RoutesChecked     []RejectedCandidate `json:"routes_checked,omitempty"`
	ExcursionsChecked []RejectedCandidate `json:"excursions_checked,omitempty"`
	DisposChecked     []RejectedCandidate `json:"dispos_checked,omitempty"`
}

// MatchedGrid identifies which catalog entry produced a FIXED_GRID price.
type MatchedGrid struct {
	Kind  TripType `json:"kind"`
	ID    string   `json:"id"`
	Price float64  `json:"price"`
}

// CommissionData is the effective-margin breakdown under a partner
// commission, per §4.12.
type CommissionData struct {
	CommissionPercent      float64 `json:"commission_percent"`
	CommissionAmount       float64 `json:"commission_amount"`
	EffectiveMargin        float64 `json:"effective_margin"`
	EffectiveMarginPercent float64 `json:"effective_margin_percent"`
}

// OverrideData records the manual-override audit fields once applied.
type OverrideData struct {
	Applied       bool    `json:"applied"`
	PreviousPrice float64 `json:"previous_price,omitempty"`
}

// PricingResult is the full, annotated outcome of a pricing computation —
// a frozen snapshot owned by whatever Quote (or other caller) stores it.
// Recomputing always produces a new PricingResult; engines never mutate one
// in place.
type PricingResult struct {
	Mode                PricingMode             `json:"mode"`
	Price               float64                 `json:"price"`
	InternalCost        float64                 `json:"internal_cost"`
	Margin              float64                 `json:"margin"`
	MarginPercent       float64                 `json:"margin_percent"`
	Profitability       ProfitabilityIndicator  `json:"profitability"`
	MatchedGrid         *MatchedGrid            `json:"matched_grid,omitempty"`
	AppliedRules        []AppliedRule           `json:"applied_rules"`
	IsContractPrice     bool                    `json:"is_contract_price"`
	FallbackReason      *FallbackReason         `json:"fallback_reason,omitempty"`
	GridSearch          *GridSearchDetails      `json:"grid_search,omitempty"`
	TripAnalysis        TripAnalysis            `json:"trip_analysis"`
	Commission          *CommissionData         `json:"commission,omitempty"`
	Override            *OverrideData           `json:"override,omitempty"`
	CalculatedAt        time.Time               `json:"calculated_at"`
}
