// Package grid implements the engagement-rule grid matcher of §4.7:
// partner catalog matching for TRANSFER (ZoneRoute), EXCURSION
// (ExcursionPackage) and DISPO (DispoPackage) trips, short-circuiting
// dynamic pricing on a hit and collecting a full rejection trace on a
// miss.
package grid

import (
	"sort"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/geo"
)

// AddressProximityKm is the fixed tolerance for ADDRESS endpoint matching.
const AddressProximityKm = 0.1

// Match is a successful grid hit.
type Match struct {
	Kind          domain.TripType
	ID            string
	EffectivePrice float64
	Rule          domain.AppliedRule
}

// precedence returns a sortable rank for a ZoneRoute's endpoint kinds:
// address+address is most specific, then address+zones, zones+address,
// multi-zone, and finally legacy from/to zone id fallback.
func precedence(r domain.ZoneRoute) int {
	originAddr := r.Origin.Kind == domain.EndpointAddress
	destAddr := r.Destination.Kind == domain.EndpointAddress
	switch {
	case originAddr && destAddr:
		return 0
	case originAddr && !destAddr:
		return 1
	case !originAddr && destAddr:
		return 2
	case r.Origin.Kind == domain.EndpointZones && r.Destination.Kind == domain.EndpointZones:
		return 3
	default:
		return 4 // legacy FromZoneID/ToZoneID
	}
}

func endpointMatches(endpoint domain.RouteEndpoint, point domain.GeoPoint, pointZoneID string) bool {
	switch endpoint.Kind {
	case domain.EndpointAddress:
		if endpoint.Address == nil {
			return false
		}
		tolerance := endpoint.ProximityKm
		if tolerance <= 0 {
			tolerance = AddressProximityKm
		}
		return geo.PointInRadius(
			geo.GeoPoint{Lat: point.Lat, Lng: point.Lng},
			geo.GeoPoint{Lat: endpoint.Address.Lat, Lng: endpoint.Address.Lng},
			tolerance,
		)
	case domain.EndpointZones:
		for _, z := range endpoint.ZoneIDs {
			if z == pointZoneID {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// MatchZoneRoute evaluates routes in matching-precedence order and returns
// the first hit plus the full rejection trace.
func MatchZoneRoute(routes []domain.ZoneRoute, vehicleCategoryID, pickupZoneID, dropoffZoneID string, pickup, dropoff domain.GeoPoint) (*Match, []domain.RejectedCandidate) {
	sorted := make([]domain.ZoneRoute, len(routes))
	copy(sorted, routes)
	sort.SliceStable(sorted, func(i, j int) bool { return precedence(sorted[i]) < precedence(sorted[j]) })

	var rejected []domain.RejectedCandidate

	for _, r := range sorted {
		if !r.IsActive {
			rejected = append(rejected, domain.RejectedCandidate{ID: r.ID, Reason: "INACTIVE"})
			continue
		}
		if r.VehicleCategoryID != "" && r.VehicleCategoryID != vehicleCategoryID {
			rejected = append(rejected, domain.RejectedCandidate{ID: r.ID, Reason: "CATEGORY_MISMATCH"})
			continue
		}

		forward := routeLegMatches(r, pickup, dropoff, pickupZoneID, dropoffZoneID)
		var reverse bool
		if r.Direction == domain.DirectionBToA || r.Direction == domain.DirectionBidirection {
			reverse = routeLegMatches(r, dropoff, pickup, dropoffZoneID, pickupZoneID)
		}

		directionOK := false
		switch r.Direction {
		case domain.DirectionAToB:
			directionOK = forward
		case domain.DirectionBToA:
			directionOK = reverse
		case domain.DirectionBidirection:
			directionOK = forward || reverse
		}

		if !forward && !reverse {
			if usesLegacyZoneFallback(r) {
				legacyMatch := r.FromZoneID == pickupZoneID && r.ToZoneID == dropoffZoneID
				if !legacyMatch {
					rejected = append(rejected, domain.RejectedCandidate{ID: r.ID, Reason: "ZONE_MISMATCH"})
					continue
				}
				directionOK = true
			} else {
				rejected = append(rejected, domain.RejectedCandidate{ID: r.ID, Reason: "ZONE_MISMATCH"})
				continue
			}
		}

		if !directionOK {
			rejected = append(rejected, domain.RejectedCandidate{ID: r.ID, Reason: "DIRECTION_MISMATCH"})
			continue
		}

		price := r.FixedPrice
		ruleType := domain.RuleCatalogPrice
		if r.OverridePrice != nil {
			price = *r.OverridePrice
			ruleType = domain.RulePartnerOverride
		}

		return &Match{
			Kind:           domain.TripTypeTransfer,
			ID:             r.ID,
			EffectivePrice: price,
			Rule: domain.AppliedRule{
				Type:        ruleType,
				SourceID:    r.ID,
				PriceBefore: 0,
				PriceAfter:  price,
			},
		}, rejected
	}

	return nil, rejected
}

func usesLegacyZoneFallback(r domain.ZoneRoute) bool {
	return r.Origin.Kind == "" && r.Destination.Kind == "" && r.FromZoneID != ""
}

func routeLegMatches(r domain.ZoneRoute, from, to domain.GeoPoint, fromZoneID, toZoneID string) bool {
	if r.Origin.Kind == "" || r.Destination.Kind == "" {
		return false
	}
	return endpointMatches(r.Origin, from, fromZoneID) && endpointMatches(r.Destination, to, toZoneID)
}

// MatchExcursion matches by category plus optional origin/destination
// zone scoping.
func MatchExcursion(packages []domain.ExcursionPackage, vehicleCategoryID, pickupZoneID, dropoffZoneID string) (*Match, []domain.RejectedCandidate) {
	var rejected []domain.RejectedCandidate

	for _, p := range packages {
		if !p.IsActive {
			rejected = append(rejected, domain.RejectedCandidate{ID: p.ID, Reason: "INACTIVE"})
			continue
		}
		if p.VehicleCategoryID != vehicleCategoryID {
			rejected = append(rejected, domain.RejectedCandidate{ID: p.ID, Reason: "CATEGORY_MISMATCH"})
			continue
		}
		if p.OriginZoneID != "" && p.OriginZoneID != pickupZoneID {
			rejected = append(rejected, domain.RejectedCandidate{ID: p.ID, Reason: "ZONE_MISMATCH"})
			continue
		}
		if p.DestinationZoneID != "" && p.DestinationZoneID != dropoffZoneID {
			rejected = append(rejected, domain.RejectedCandidate{ID: p.ID, Reason: "ZONE_MISMATCH"})
			continue
		}

		price := p.Price
		ruleType := domain.RuleCatalogPrice
		if p.OverridePrice != nil {
			price = *p.OverridePrice
			ruleType = domain.RulePartnerOverride
		}
		return &Match{
			Kind:           domain.TripTypeExcursion,
			ID:             p.ID,
			EffectivePrice: price,
			Rule:           domain.AppliedRule{Type: ruleType, SourceID: p.ID, PriceAfter: price},
		}, rejected
	}

	return nil, rejected
}

// MatchDispo matches a DispoPackage purely by vehicle category and
// computes the overage charge beyond IncludedKmPerHour × durationHours.
func MatchDispo(packages []domain.DispoPackage, vehicleCategoryID string, durationHours, distanceKm float64) (*Match, []domain.RejectedCandidate) {
	var rejected []domain.RejectedCandidate

	for _, p := range packages {
		if !p.IsActive {
			rejected = append(rejected, domain.RejectedCandidate{ID: p.ID, Reason: "INACTIVE"})
			continue
		}
		if p.VehicleCategoryID != vehicleCategoryID {
			rejected = append(rejected, domain.RejectedCandidate{ID: p.ID, Reason: "CATEGORY_MISMATCH"})
			continue
		}

		base := p.BasePrice
		ruleType := domain.RuleCatalogPrice
		if p.OverridePrice != nil {
			base = *p.OverridePrice
			ruleType = domain.RulePartnerOverride
		}

		includedKm := p.IncludedKmPerHour * durationHours
		overageKm := distanceKm - includedKm
		price := base
		if overageKm > 0 {
			price += overageKm * p.OverageRatePerKm
		}

		return &Match{
			Kind:           domain.TripTypeDispo,
			ID:             p.ID,
			EffectivePrice: price,
			Rule:           domain.AppliedRule{Type: ruleType, SourceID: p.ID, PriceAfter: price},
		}, rejected
	}

	return nil, rejected
}
