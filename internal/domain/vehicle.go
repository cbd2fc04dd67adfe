package domain

// RegulatoryClass distinguishes light passenger vehicles from heavy ones
// for compliance-adjacent reporting; it plays no role in pricing math
// itself.
type RegulatoryClass string

const (
	RegulatoryClassLight RegulatoryClass = "LIGHT"
	RegulatoryClassHeavy RegulatoryClass = "HEAVY"
)

// VehicleCategory is a bookable class of vehicle (sedan, van, coach, ...).
type VehicleCategory struct {
	ID                 string          `json:"id"`
	Code               string          `json:"code"`
	PriceMultiplier    float64         `json:"price_multiplier"`
	DefaultRatePerKm   *float64        `json:"default_rate_per_km,omitempty"`
	DefaultRatePerHour *float64        `json:"default_rate_per_hour,omitempty"`
	RegulatoryClass    RegulatoryClass `json:"regulatory_class"`
	FuelType           string          `json:"fuel_type"`
}

// HasCategoryRates reports whether the category defines both of its own
// rates, per §4.9's "category rates replace organization rates and the
// multiplier is not re-applied" rule.
func (v VehicleCategory) HasCategoryRates() bool {
	return v.DefaultRatePerKm != nil && v.DefaultRatePerHour != nil
}
