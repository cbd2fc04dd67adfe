// Package subcontract implements §4.13: unprofitability detection,
// candidate search and scoring, suggested pricing, the internal-vs-
// subcontract recommendation, the composite match score, and empty-leg
// validity/matching.
package subcontract

import (
	"sort"
	"time"

	"github.com/aurigo/dispatch-core/internal/config"
	"github.com/aurigo/dispatch-core/internal/domain"
)

// RecommendationThresholdPercent is the margin-delta (as a fraction of
// selling price) above which the engine recommends switching.
const RecommendationThresholdPercent = 5.0

// IsUnprofitable reports whether marginPercent is at or below threshold.
func IsUnprofitable(marginPercent, thresholdPercent float64) bool {
	return marginPercent <= thresholdPercent
}

func zoneContains(zoneIDs []string, target string) bool {
	for _, id := range zoneIDs {
		if id == target {
			return true
		}
	}
	return false
}

// zoneScore returns 100 when both pickup and dropoff zones are covered by
// the subcontractor's operating zones (or AllZones is set), 50 when either
// is, and 0 otherwise.
func zoneScore(sub domain.Subcontractor, pickupZoneID, dropoffZoneID string) int {
	if sub.AllZones {
		return 100
	}
	pickupOK := pickupZoneID != "" && zoneContains(sub.OperatingZoneIDs, pickupZoneID)
	dropoffOK := dropoffZoneID != "" && zoneContains(sub.OperatingZoneIDs, dropoffZoneID)
	switch {
	case pickupOK && dropoffOK:
		return 100
	case pickupOK || dropoffOK:
		return 50
	default:
		return 0
	}
}

func categoryMatches(sub domain.Subcontractor, vehicleCategoryID string) bool {
	if len(sub.VehicleCategoryIDs) == 0 {
		return true
	}
	for _, id := range sub.VehicleCategoryIDs {
		if id == vehicleCategoryID {
			return true
		}
	}
	return false
}

// SuggestedPrice computes max(distance·ratePerKm, durationHours·ratePerHour)
// floored at minimumFare, substituting platform defaults for any unset
// subcontractor rate.
func SuggestedPrice(sub domain.Subcontractor, distanceKm, durationHours float64, defaults config.SubcontractDefaults) float64 {
	ratePerKm := defaults.RatePerKm
	if sub.RatePerKm != nil {
		ratePerKm = *sub.RatePerKm
	}
	ratePerHour := defaults.RatePerHour
	if sub.RatePerHour != nil {
		ratePerHour = *sub.RatePerHour
	}

	price := distanceKm * ratePerKm
	if byHour := durationHours * ratePerHour; byHour > price {
		price = byHour
	}
	if sub.MinimumFare != nil && price < *sub.MinimumFare {
		price = *sub.MinimumFare
	}
	return price
}

// SearchCandidates filters active subcontractors matching vehicleCategoryID
// and scores each by zone coverage.
func SearchCandidates(subcontractors []domain.Subcontractor, vehicleCategoryID, pickupZoneID, dropoffZoneID string, distanceKm, durationHours float64, defaults config.SubcontractDefaults) []domain.CandidateScore {
	var candidates []domain.CandidateScore
	for _, sub := range subcontractors {
		if !sub.IsActive || !categoryMatches(sub, vehicleCategoryID) {
			continue
		}
		candidates = append(candidates, domain.CandidateScore{
			SubcontractorID: sub.ID,
			ZoneScore:       zoneScore(sub, pickupZoneID, dropoffZoneID),
			SuggestedPrice:  SuggestedPrice(sub, distanceKm, durationHours, defaults),
		})
	}
	return candidates
}

// Recommend compares the subcontracted margin to the internal margin as a
// percentage of selling price and returns SUBCONTRACT, INTERNAL or REVIEW.
func Recommend(sellingPrice, internalCost, subcontractPrice float64) domain.SubcontractRecommendation {
	if sellingPrice == 0 {
		return domain.RecommendReview
	}
	internalMargin := sellingPrice - internalCost
	subcontractMargin := sellingPrice - subcontractPrice
	delta := (subcontractMargin - internalMargin) / sellingPrice * 100

	switch {
	case delta > RecommendationThresholdPercent:
		return domain.RecommendSubcontract
	case delta < -RecommendationThresholdPercent:
		return domain.RecommendInternal
	default:
		return domain.RecommendReview
	}
}

// availabilityScore maps AVAILABLE/BUSY/OFFLINE to 20/10/0.
func availabilityScore(status domain.AvailabilityStatus) float64 {
	switch status {
	case domain.AvailabilityAvailable:
		return 20
	case domain.AvailabilityBusy:
		return 10
	default:
		return 0
	}
}

// MatchScore computes the composite 0-100 ranking score for one
// subcontractor against a specific mission, and returns every candidate
// sorted descending by Total.
func MatchScore(subcontractors []domain.Subcontractor, vehicleCategoryID, pickupZoneID, dropoffZoneID string) []domain.MatchScoreResult {
	var results []domain.MatchScoreResult
	for _, sub := range subcontractors {
		zone := float64(zoneScore(sub, pickupZoneID, dropoffZoneID)) * 0.4
		vehicle := 0.0
		if categoryMatches(sub, vehicleCategoryID) {
			vehicle = 30
		}
		availability := availabilityScore(sub.Availability)
		performance := sub.AverageRatingOutOf5 / 5 * 10

		results = append(results, domain.MatchScoreResult{
			SubcontractorID:   sub.ID,
			ZoneMatchScore:    zone,
			VehicleScore:      vehicle,
			AvailabilityScore: availability,
			PerformanceScore:  performance,
			Total:             zone + vehicle + availability + performance,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Total > results[j].Total })
	return results
}

// EmptyLegMatches reports whether an empty leg can serve a trip from
// pickup to dropoff at pickupAt.
func EmptyLegMatches(leg domain.EmptyLeg, pickup, dropoff domain.GeoPoint, pickupAt time.Time, distance func(a, b domain.GeoPoint) float64) bool {
	if pickupAt.Before(leg.WindowStart) || pickupAt.After(leg.WindowEnd) {
		return false
	}
	return distance(pickup, leg.From) <= leg.MaxMatchDistanceKm && distance(dropoff, leg.To) <= leg.MaxMatchDistanceKm
}

// EmptyLegStatusAt classifies an empty leg's time remaining at now.
func EmptyLegStatusAt(leg domain.EmptyLeg, now time.Time) domain.EmptyLegStatus {
	if !leg.WindowEnd.After(now) {
		return domain.EmptyLegExpired
	}
	if leg.WindowEnd.Sub(now) <= 60*time.Minute {
		return domain.EmptyLegExpiringSoon
	}
	return domain.EmptyLegAvailable
}
