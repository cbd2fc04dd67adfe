package domain

// TripType enumerates the catalog families a partner contract may price.
type TripType string

const (
	TripTypeTransfer  TripType = "TRANSFER"
	TripTypeExcursion TripType = "EXCURSION"
	TripTypeDispo     TripType = "DISPO"
	TripTypeStay      TripType = "STAY"
)

// EndpointKind discriminates how a ZoneRoute endpoint is specified.
type EndpointKind string

const (
	EndpointAddress EndpointKind = "ADDRESS"
	EndpointZones   EndpointKind = "ZONES"
)

// RouteDirection constrains which travel direction a ZoneRoute matches.
type RouteDirection string

const (
	DirectionAToB        RouteDirection = "A_TO_B"
	DirectionBToA        RouteDirection = "B_TO_A"
	DirectionBidirection RouteDirection = "BIDIRECTIONAL"
)

// RouteEndpoint is either a concrete address (with proximity tolerance) or
// a set of zone ids.
type RouteEndpoint struct {
	Kind         EndpointKind `json:"kind"`
	Address      *GeoPoint    `json:"address,omitempty"`
	ProximityKm  float64      `json:"proximity_km,omitempty"`
	ZoneIDs      []string     `json:"zone_ids,omitempty"`
}

// ZoneRoute is a partner-negotiated fixed price for a concrete
// origin/destination/category/transfer combination.
type ZoneRoute struct {
	ID                string         `json:"id"`
	Origin            RouteEndpoint  `json:"origin"`
	Destination       RouteEndpoint  `json:"destination"`
	FromZoneID        string         `json:"from_zone_id,omitempty"` // legacy fallback
	ToZoneID          string         `json:"to_zone_id,omitempty"`   // legacy fallback
	VehicleCategoryID string         `json:"vehicle_category_id"`
	FixedPrice        float64        `json:"fixed_price"`
	OverridePrice     *float64       `json:"override_price,omitempty"`
	Direction         RouteDirection `json:"direction"`
	IsActive          bool           `json:"is_active"`
}

// ExcursionPackage is a partner-priced excursion, optionally scoped to an
// origin/destination zone.
type ExcursionPackage struct {
	ID                string   `json:"id"`
	OriginZoneID      string   `json:"origin_zone_id,omitempty"`
	DestinationZoneID string   `json:"destination_zone_id,omitempty"`
	VehicleCategoryID string   `json:"vehicle_category_id"`
	Price             float64  `json:"price"`
	OverridePrice     *float64 `json:"override_price,omitempty"`
	IsActive          bool     `json:"is_active"`
}

// DispoPackage is a partner-priced disposal/charter package with an
// included-kilometers allowance and an overage rate.
type DispoPackage struct {
	ID                  string   `json:"id"`
	VehicleCategoryID   string   `json:"vehicle_category_id"`
	BasePrice           float64  `json:"base_price"`
	OverridePrice       *float64 `json:"override_price,omitempty"`
	IncludedKmPerHour   float64  `json:"included_km_per_hour"`
	OverageRatePerKm    float64  `json:"overage_rate_per_km"`
	IsActive            bool     `json:"is_active"`
}

// PartnerContract bundles the three catalog assignment lists a partner may
// hold.
type PartnerContract struct {
	ID                string             `json:"id"`
	PaymentTermsDays  *int               `json:"payment_terms_days,omitempty"`
	CommissionPercent float64            `json:"commission_percent"`
	ZoneRoutes        []ZoneRoute        `json:"zone_routes"`
	ExcursionPackages []ExcursionPackage `json:"excursion_packages"`
	DispoPackages     []DispoPackage     `json:"dispo_packages"`
}

// Contact is a customer or partner record.
type Contact struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	IsPartner       bool             `json:"is_partner"`
	PartnerContract *PartnerContract `json:"partner_contract,omitempty"`
}
