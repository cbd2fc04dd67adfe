package domain

// OrganizationPricingSettings holds a tenant's dynamic-pricing base rates,
// cost parameters and profitability thresholds. Cost parameter pointers are
// nil when the organization has not overridden the platform default; use
// cost.ResolveSettings (internal/cost) to get a struct with every field
// guaranteed non-nil, mirroring the "resolve to guaranteed-non-nil" pattern
// used for category rate resolution.
type OrganizationPricingSettings struct {
	OrgID             string  `json:"org_id"`
	BaseRatePerKm     float64 `json:"base_rate_per_km"`
	BaseRatePerHour   float64 `json:"base_rate_per_hour"`
	TargetMarginPct   float64 `json:"target_margin_percent"`

	FuelConsumptionL100Km *float64 `json:"fuel_consumption_l_100km,omitempty"`
	FuelPricePerLiter     *float64 `json:"fuel_price_per_liter,omitempty"`
	TollCostPerKm         *float64 `json:"toll_cost_per_km,omitempty"`
	WearCostPerKm         *float64 `json:"wear_cost_per_km,omitempty"`
	DriverHourlyCost      *float64 `json:"driver_hourly_cost,omitempty"`

	GreenThresholdPercent  *float64 `json:"green_threshold_percent,omitempty"`
	OrangeThresholdPercent *float64 `json:"orange_threshold_percent,omitempty"`
}
