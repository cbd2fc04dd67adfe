package segment

import (
	"sort"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// OutsideZoneCode marks the synthetic shell emitted when a concentric-ring
// route exits the outermost configured ring. It carries priceMultiplier
// 1.0 and Synthetic=true so billing can exclude it while route-breakdown
// display still shows it (§9 resolution of the OUTSIDE_ZONE open question).
const OutsideZoneCode = "OUTSIDE_ZONE"

// FromConcentricRings builds a FALLBACK segmentation for RADIUS zones that
// share a common center, ordering shells by radius and walking outward or
// inward depending on whether dropoff is farther from center than pickup.
// Used when a polyline is unavailable but the pickup/dropoff pair can
// exploit a concentric RADIUS zone family.
func FromConcentricRings(pickup, dropoff domain.GeoPoint, rings []domain.Zone, pickupDistKm, dropoffDistKm, totalDistanceKm, totalDurationMinutes float64) Result {
	sorted := make([]domain.Zone, len(rings))
	copy(sorted, rings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RadiusKm < sorted[j].RadiusKm })

	outward := dropoffDistKm > pickupDistKm

	var ordered []domain.Zone
	if outward {
		for _, z := range sorted {
			if z.RadiusKm >= pickupDistKm {
				ordered = append(ordered, z)
			}
		}
	} else {
		for i := len(sorted) - 1; i >= 0; i-- {
			z := sorted[i]
			if z.RadiusKm <= pickupDistKm {
				ordered = append(ordered, z)
			}
		}
	}

	if len(ordered) == 0 {
		seg := ZoneSegment{DistanceKm: totalDistanceKm, DurationMinutes: totalDurationMinutes, PriceMultiplier: 1.0}
		return Result{Segments: []ZoneSegment{seg}, WeightedMultiplier: 1.0, SegmentationMethod: MethodFallback}
	}

	segments := make([]ZoneSegment, 0, len(ordered)+1)
	prevBoundary := pickupDistKm
	totalSurcharges := 0.0
	weightedSum := 0.0

	for _, z := range ordered {
		boundary := z.RadiusKm
		if outward && boundary > totalDistanceKm {
			boundary = totalDistanceKm
		}
		dist := boundary - prevBoundary
		if dist < 0 {
			dist = 0
		}
		surcharge := z.TotalFixedSurcharge()
		totalSurcharges += surcharge
		weightedSum += dist * z.EffectiveMultiplier()

		durationFraction := 0.0
		if totalDistanceKm > 0 {
			durationFraction = dist / totalDistanceKm
		}

		segments = append(segments, ZoneSegment{
			ZoneID: z.ID, ZoneCode: z.Code, ZoneName: z.Name,
			DistanceKm:        dist,
			DurationMinutes:   totalDurationMinutes * durationFraction,
			PriceMultiplier:   z.EffectiveMultiplier(),
			SurchargesApplied: surcharge,
		})
		prevBoundary = boundary
	}

	if outward && prevBoundary < totalDistanceKm {
		remaining := totalDistanceKm - prevBoundary
		durationFraction := 0.0
		if totalDistanceKm > 0 {
			durationFraction = remaining / totalDistanceKm
		}
		weightedSum += remaining * 1.0
		segments = append(segments, ZoneSegment{
			ZoneID: "", ZoneCode: OutsideZoneCode, ZoneName: "Outside configured zones",
			DistanceKm:      remaining,
			DurationMinutes: totalDurationMinutes * durationFraction,
			PriceMultiplier: 1.0,
			Synthetic:       true,
		})
	}

	weighted := 1.0
	if totalDistanceKm > 0 {
		weighted = roundTo(weightedSum/totalDistanceKm, 3)
	}

	return Result{
		Segments:           segments,
		WeightedMultiplier: weighted,
		TotalSurcharges:    roundTo(totalSurcharges, 2),
		SegmentationMethod: MethodFallback,
	}
}
