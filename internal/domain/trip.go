package domain

// RoutingSource records where a segment's distance/duration came from.
type RoutingSource string

const (
	RoutingSourceGoogleAPI        RoutingSource = "GOOGLE_API"
	RoutingSourceHaversine        RoutingSource = "HAVERSINE_ESTIMATE"
	RoutingSourceVehicleSelection RoutingSource = "VEHICLE_SELECTION"
)

// CostComponentSource flags whether a cost component came from a live
// provider or a static estimate.
type CostComponentSource string

const (
	CostSourceGoogleAPI CostComponentSource = "GOOGLE_API"
	CostSourceEstimate  CostComponentSource = "ESTIMATE"
)

// CostComponent is one priced line of a segment's cost breakdown (fuel,
// tolls, wear, driver, parking).
type CostComponent struct {
	Amount      float64             `json:"amount"`
	Description string              `json:"description,omitempty"`
	Source      CostComponentSource `json:"source,omitempty"`
	IsFromCache bool                `json:"is_from_cache,omitempty"`
}

// CostBreakdown is the per-segment decomposition of internal cost.
type CostBreakdown struct {
	Fuel           CostComponent `json:"fuel"`
	Tolls          CostComponent `json:"tolls"`
	Wear           CostComponent `json:"wear"`
	Driver         CostComponent `json:"driver"`
	Parking        CostComponent `json:"parking"`
	TotalInternal  float64       `json:"total_internal_cost"`
}

// TripSegment is one leg of the three-segment shadow trip
// (Base→Pickup, Pickup→Dropoff, Dropoff→Base).
type TripSegment struct {
	Name         string        `json:"name"`
	DistanceKm   float64       `json:"distance_km"`
	DurationMin  float64       `json:"duration_minutes"`
	Cost         CostBreakdown `json:"cost"`
}

// TripAnalysis is the full shadow-cost decomposition of a trip.
type TripAnalysis struct {
	Approach *TripSegment `json:"approach,omitempty"` // Base -> Pickup
	Service  TripSegment  `json:"service"`            // Pickup -> Dropoff
	Return   *TripSegment `json:"return,omitempty"`   // Dropoff -> Base

	TotalDistanceKm      float64       `json:"total_distance_km"`
	TotalDurationMin     float64       `json:"total_duration_minutes"`
	TotalInternalCost    float64       `json:"total_internal_cost"`
	CombinedCost         CostBreakdown `json:"combined_cost"`

	RoutingSource   RoutingSource `json:"routing_source"`
	FuelPriceSource string        `json:"fuel_price_source,omitempty"`
	TollSource      string        `json:"toll_source,omitempty"`

	// VehicleAssignment is stripped by the subcontract workflow (§4.13)
	// when a trip is handed off to a third party.
	VehicleAssignment *VehicleAssignment `json:"vehicle_assignment,omitempty"`
}

// VehicleAssignment records the internal vehicle/driver assigned to a
// trip; it is removed from TripAnalysis once a trip is subcontracted.
type VehicleAssignment struct {
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`
}
