// Package zone implements the zone classification engine of §4.2: which
// active zones contain a point, in what specificity order, and which one
// wins under a given conflict strategy.
package zone

import (
	"sort"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/geo"
)

func toGeoPoint(p domain.GeoPoint) geo.GeoPoint {
	return geo.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

func contains(z domain.Zone, point domain.GeoPoint) bool {
	gp := toGeoPoint(point)
	switch z.Shape {
	case domain.ZoneShapePoint:
		return geo.PointInRadius(gp, toGeoPoint(z.Center), domain.PointZoneToleranceKm)
	case domain.ZoneShapeRadius:
		return geo.PointInRadius(gp, toGeoPoint(z.Center), z.RadiusKm)
	case domain.ZoneShapePolygon:
		ring := make(geo.Ring, len(z.Ring))
		for i, v := range z.Ring {
			ring[i] = v
		}
		return geo.PointInPolygon(gp, ring)
	default:
		return false
	}
}

// zoneCenter returns a zone's effective center: its stored Center for
// RADIUS/POINT shapes, or the polygon centroid for POLYGON shapes.
func zoneCenter(z domain.Zone) domain.GeoPoint {
	if z.Shape == domain.ZoneShapePolygon {
		ring := make(geo.Ring, len(z.Ring))
		for i, v := range z.Ring {
			ring[i] = v
		}
		c := geo.Centroid(ring)
		return domain.GeoPoint{Lat: c.Lat, Lng: c.Lng}
	}
	return z.Center
}

// candidateZones returns the active zones containing point, ordered by
// default specificity: POINT, then RADIUS ascending by radiusKm, then
// POLYGON in input order.
func candidateZones(point domain.GeoPoint, zones []domain.Zone) []domain.Zone {
	var points, radii, polygons []domain.Zone
	for _, z := range zones {
		if !z.IsActive {
			continue
		}
		if !contains(z, point) {
			continue
		}
		switch z.Shape {
		case domain.ZoneShapePoint:
			points = append(points, z)
		case domain.ZoneShapeRadius:
			radii = append(radii, z)
		case domain.ZoneShapePolygon:
			polygons = append(polygons, z)
		}
	}
	sort.SliceStable(radii, func(i, j int) bool { return radii[i].RadiusKm < radii[j].RadiusKm })

	ordered := make([]domain.Zone, 0, len(points)+len(radii)+len(polygons))
	ordered = append(ordered, points...)
	ordered = append(ordered, radii...)
	ordered = append(ordered, polygons...)
	return ordered
}

// ClassifyPointAll returns every active zone containing point, ordered by
// strategy (or default specificity when strategy is nil).
func ClassifyPointAll(point domain.GeoPoint, zones []domain.Zone, strategy *domain.ConflictStrategy) []domain.Zone {
	candidates := candidateZones(point, zones)
	if len(candidates) <= 1 || strategy == nil {
		return candidates
	}

	ordered := make([]domain.Zone, len(candidates))
	copy(ordered, candidates)

	switch *strategy {
	case domain.ConflictPriority:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].EffectivePriority() > ordered[j].EffectivePriority()
		})
	case domain.ConflictMostExpensive:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].EffectiveMultiplier() > ordered[j].EffectiveMultiplier()
		})
	case domain.ConflictClosest:
		sort.SliceStable(ordered, func(i, j int) bool {
			di := geo.Haversine(toGeoPoint(point), toGeoPoint(zoneCenter(ordered[i])))
			dj := geo.Haversine(toGeoPoint(point), toGeoPoint(zoneCenter(ordered[j])))
			return di < dj
		})
	case domain.ConflictCombined:
		sort.SliceStable(ordered, func(i, j int) bool {
			pi, pj := ordered[i].EffectivePriority(), ordered[j].EffectivePriority()
			if pi != pj {
				return pi > pj
			}
			return ordered[i].EffectiveMultiplier() > ordered[j].EffectiveMultiplier()
		})
	}
	return ordered
}

// ClassifyPoint returns the single winning zone for point, or nil if no
// active zone contains it.
func ClassifyPoint(point domain.GeoPoint, zones []domain.Zone, strategy *domain.ConflictStrategy) *domain.Zone {
	ordered := ClassifyPointAll(point, zones, strategy)
	if len(ordered) == 0 {
		return nil
	}
	return &ordered[0]
}
