// Package segment implements the route segmenter of §4.4: splitting a
// route polyline into per-zone distance/duration segments, with a
// zone-aware fallback when no polyline is available.
package segment

import (
	"math"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/geo"
	"github.com/aurigo/dispatch-core/internal/zone"
)

// Method discriminates how a Result was produced.
type Method string

const (
	MethodPolyline Method = "POLYLINE"
	MethodFallback Method = "FALLBACK"
)

// ZoneSegment is one contiguous stretch of a route inside a single zone.
type ZoneSegment struct {
	ZoneID            string
	ZoneCode          string
	ZoneName          string
	DistanceKm        float64
	DurationMinutes   float64
	PriceMultiplier   float64
	SurchargesApplied float64
	EntryPoint        geo.GeoPoint
	ExitPoint         geo.GeoPoint
	Synthetic         bool // true for OUTSIDE_ZONE interpolated shells
}

// Result is the full output of a route segmentation.
type Result struct {
	Segments           []ZoneSegment
	WeightedMultiplier float64
	TotalSurcharges    float64
	SegmentationMethod Method
}

// FromPolyline decodes and simplifies encodedPolyline, walks it against
// zones, and accumulates per-zone distance/duration. totalDurationMinutes
// is prorated across segments by distance fraction (split evenly across
// the walked stretches when the walked distance is 0). Fixed surcharges are charged once per zone
// encountered, not once per segment.
func FromPolyline(encodedPolyline string, zones []domain.Zone, totalDurationMinutes float64, strategy *domain.ConflictStrategy) Result {
	points := geo.DecodePolyline(encodedPolyline)
	if len(points) < 2 {
		return Result{SegmentationMethod: MethodPolyline}
	}
	points = geo.Simplify(points, geo.DefaultSimplifyThresholdKm)

	type walkSegment struct {
		z          *domain.Zone
		distanceKm float64
		entry, exit geo.GeoPoint
	}

	var walk []walkSegment
	seenZoneSurcharge := map[string]bool{}
	totalSurcharges := 0.0

	classify := func(p domain.GeoPoint) *domain.Zone {
		return zone.ClassifyPoint(p, zones, strategy)
	}

	appendOrExtend := func(z *domain.Zone, dist float64, entry, exit geo.GeoPoint) {
		key := ""
		if z != nil {
			key = z.ID
		}
		if len(walk) > 0 {
			last := &walk[len(walk)-1]
			lastKey := ""
			if last.z != nil {
				lastKey = last.z.ID
			}
			if lastKey == key {
				last.distanceKm += dist
				last.exit = exit
				return
			}
		}
		walk = append(walk, walkSegment{z: z, distanceKm: dist, entry: entry, exit: exit})
	}

	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		da := domain.GeoPoint{Lat: a.Lat, Lng: a.Lng}
		db := domain.GeoPoint{Lat: b.Lat, Lng: b.Lng}
		za := classify(da)
		zb := classify(db)

		sameZone := (za == nil && zb == nil) || (za != nil && zb != nil && za.ID == zb.ID)
		if sameZone {
			appendOrExtend(za, geo.Haversine(a, b), a, b)
			continue
		}

		containment := func(p geo.GeoPoint) bool {
			dp := domain.GeoPoint{Lat: p.Lat, Lng: p.Lng}
			z := classify(dp)
			if za == nil {
				return z == nil
			}
			return z != nil && z.ID == za.ID
		}
		crossing := geo.FindCrossing(a, b, containment)
		appendOrExtend(za, geo.Haversine(a, crossing), a, crossing)
		appendOrExtend(zb, geo.Haversine(crossing, b), crossing, b)
	}

	totalDist := 0.0
	for _, w := range walk {
		totalDist += w.distanceKm
	}

	order := []string{}
	byZone := map[string]*ZoneSegment{}

	for _, w := range walk {
		key := "∅"
		multiplier := 1.0
		zoneID, zoneCode, zoneName := "", "", ""
		var surcharge float64
		if w.z != nil {
			key = w.z.ID
			multiplier = w.z.EffectiveMultiplier()
			zoneID, zoneCode, zoneName = w.z.ID, w.z.Code, w.z.Name
			if !seenZoneSurcharge[key] {
				surcharge = w.z.TotalFixedSurcharge()
				seenZoneSurcharge[key] = true
				totalSurcharges += surcharge
			}
		}

		durationFraction := 0.0
		if totalDist > 0 {
			durationFraction = w.distanceKm / totalDist
		} else if len(walk) > 0 {
			durationFraction = 1.0 / float64(len(walk))
		}
		duration := totalDurationMinutes * durationFraction

		if existing, ok := byZone[key]; ok {
			existing.DistanceKm += w.distanceKm
			existing.DurationMinutes += duration
			existing.ExitPoint = domain.GeoPoint{Lat: w.exit.Lat, Lng: w.exit.Lng}
			continue
		}

		seg := &ZoneSegment{
			ZoneID:            zoneID,
			ZoneCode:          zoneCode,
			ZoneName:          zoneName,
			DistanceKm:        w.distanceKm,
			DurationMinutes:   duration,
			PriceMultiplier:   multiplier,
			SurchargesApplied: surcharge,
			EntryPoint:        w.entry,
			ExitPoint:         w.exit,
		}
		byZone[key] = seg
		order = append(order, key)
	}

	segments := make([]ZoneSegment, 0, len(order))
	weightedSum := 0.0
	for _, key := range order {
		s := *byZone[key]
		segments = append(segments, s)
		weightedSum += s.DistanceKm * s.PriceMultiplier
	}

	weighted := 1.0
	if totalDist > 0 {
		weighted = roundTo(weightedSum/totalDist, 3)
	}

	return Result{
		Segments:           segments,
		WeightedMultiplier: weighted,
		TotalSurcharges:    roundTo(totalSurcharges, 2),
		SegmentationMethod: MethodPolyline,
	}
}

// FromZones produces a FALLBACK segmentation when no polyline is
// available: one segment if pickup and dropoff share a zone, otherwise two
// segments splitting distance and duration 50/50.
func FromZones(pickupZone, dropoffZone *domain.Zone, distanceKm, durationMinutes float64) Result {
	sameZone := (pickupZone == nil && dropoffZone == nil) ||
		(pickupZone != nil && dropoffZone != nil && pickupZone.ID == dropoffZone.ID)

	toSegment := func(z *domain.Zone, dist, dur float64) ZoneSegment {
		mult := 1.0
		id, code, name := "", "", ""
		var surcharge float64
		if z != nil {
			mult = z.EffectiveMultiplier()
			id, code, name = z.ID, z.Code, z.Name
			surcharge = z.TotalFixedSurcharge()
		}
		return ZoneSegment{
			ZoneID: id, ZoneCode: code, ZoneName: name,
			DistanceKm: dist, DurationMinutes: dur,
			PriceMultiplier: mult, SurchargesApplied: surcharge,
		}
	}

	if sameZone {
		seg := toSegment(pickupZone, distanceKm, durationMinutes)
		return Result{
			Segments:           []ZoneSegment{seg},
			WeightedMultiplier: roundTo(seg.PriceMultiplier, 3),
			TotalSurcharges:    roundTo(seg.SurchargesApplied, 2),
			SegmentationMethod: MethodFallback,
		}
	}

	half := distanceKm / 2
	halfDur := durationMinutes / 2
	first := toSegment(pickupZone, half, halfDur)
	second := toSegment(dropoffZone, half, halfDur)

	total := first.SurchargesApplied + second.SurchargesApplied
	weighted := 1.0
	if distanceKm > 0 {
		weighted = roundTo((first.DistanceKm*first.PriceMultiplier+second.DistanceKm*second.PriceMultiplier)/distanceKm, 3)
	}

	return Result{
		Segments:           []ZoneSegment{first, second},
		WeightedMultiplier: weighted,
		TotalSurcharges:    roundTo(total, 2),
		SegmentationMethod: MethodFallback,
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
