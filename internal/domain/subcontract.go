package domain

import "time"

// AvailabilityStatus is a subcontractor's current dispatch availability.
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "AVAILABLE"
	AvailabilityBusy      AvailabilityStatus = "BUSY"
	AvailabilityOffline   AvailabilityStatus = "OFFLINE"
)

// Subcontractor is a third-party operator eligible for mission hand-off.
type Subcontractor struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	IsActive            bool               `json:"is_active"`
	VehicleCategoryIDs  []string           `json:"vehicle_category_ids,omitempty"` // empty = any
	OperatingZoneIDs    []string           `json:"operating_zone_ids,omitempty"`
	AllZones            bool               `json:"all_zones"`
	RatePerKm           *float64           `json:"rate_per_km,omitempty"`
	RatePerHour         *float64           `json:"rate_per_hour,omitempty"`
	MinimumFare         *float64           `json:"minimum_fare,omitempty"`
	Availability        AvailabilityStatus `json:"availability"`
	AverageRatingOutOf5 float64            `json:"average_rating_out_of_5"`
}

// SubcontractRecommendation is the outcome of comparing internal vs.
// subcontracted margin for an unprofitable trip.
type SubcontractRecommendation string

const (
	RecommendSubcontract SubcontractRecommendation = "SUBCONTRACT"
	RecommendInternal    SubcontractRecommendation = "INTERNAL"
	RecommendReview      SubcontractRecommendation = "REVIEW"
)

// CandidateScore is one subcontractor's match against a pickup/dropoff,
// with a zone-coverage score in {0, 50, 100} (§4.13 "candidate search").
type CandidateScore struct {
	SubcontractorID string  `json:"subcontractor_id"`
	ZoneScore       int     `json:"zone_score"`
	SuggestedPrice  float64 `json:"suggested_price"`
}

// MatchScoreResult is the composite 0-100 ranking score used to order
// subcontractor candidates for a specific mission.
type MatchScoreResult struct {
	SubcontractorID  string  `json:"subcontractor_id"`
	ZoneMatchScore   float64 `json:"zone_match_score"`   // out of 40
	VehicleScore     float64 `json:"vehicle_score"`      // out of 30
	AvailabilityScore float64 `json:"availability_score"` // out of 20
	PerformanceScore float64 `json:"performance_score"`  // out of 10
	Total            float64 `json:"total"`
}

// EmptyLegStatus reflects time remaining until an empty leg's window ends.
type EmptyLegStatus string

const (
	EmptyLegAvailable     EmptyLegStatus = "AVAILABLE"
	EmptyLegExpiringSoon  EmptyLegStatus = "EXPIRING_SOON"
	EmptyLegExpired       EmptyLegStatus = "EXPIRED"
)

// EmptyLeg is a vehicle's return-to-base time window during which a
// cheaper booking can be offered.
type EmptyLeg struct {
	ID                 string    `json:"id"`
	IsActive           bool      `json:"is_active"`
	From               GeoPoint  `json:"from"`
	To                 GeoPoint  `json:"to"`
	WindowStart        time.Time `json:"window_start"`
	WindowEnd          time.Time `json:"window_end"`
	MaxMatchDistanceKm float64   `json:"max_match_distance_km"`
}
