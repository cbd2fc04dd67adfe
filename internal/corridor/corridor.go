// Package corridor implements the corridor-buffer engine of §4.3: a
// polygon buffer around a route centerline, point-in-corridor tests, and
// enter/exit crossing detection along a route.
package corridor

import (
	"errors"
	"fmt"
	"math"

	"github.com/aurigo/dispatch-core/internal/geo"
)

// MinBufferMeters and MaxBufferMeters bound the allowed corridor width.
const (
	MinBufferMeters = 100
	MaxBufferMeters = 5000
)

// ErrInvalidConfig is returned when bufferMeters falls outside
// [MinBufferMeters, MaxBufferMeters].
var ErrInvalidConfig = errors.New("corridor: InvalidConfig")

// Corridor is the buffered polygon around a route centerline plus the
// summary measurements callers need without recomputing geometry.
type Corridor struct {
	Polygon          geo.Ring
	CenterlineLength float64 // km
	Midpoint         geo.GeoPoint
	BBox             geo.BBox
}

// Build decodes encoded, simplifies it, and constructs a rectangular-ish
// buffer polygon of bufferMeters width around the centerline. bufferMeters
// outside [100, 5000] fails with ErrInvalidConfig.
func Build(encodedPolyline string, bufferMeters float64) (Corridor, error) {
	if bufferMeters < MinBufferMeters || bufferMeters > MaxBufferMeters {
		return Corridor{}, fmt.Errorf("%w: bufferMeters=%v must be in [%d,%d]", ErrInvalidConfig, bufferMeters, MinBufferMeters, MaxBufferMeters)
	}

	points := geo.DecodePolyline(encodedPolyline)
	if len(points) < 2 {
		return Corridor{}, fmt.Errorf("%w: polyline decodes to fewer than 2 points", ErrInvalidConfig)
	}
	simplified := geo.Simplify(points, geo.DefaultSimplifyThresholdKm)

	bufferKm := bufferMeters / 1000.0
	polygon := bufferPolygon(simplified, bufferKm)

	cum := geo.CumulativeDistanceKm(simplified)
	length := cum[len(cum)-1]

	mid := midpointAtFraction(simplified, cum, 0.5)
	bbox := geo.ComputeBBox(simplified)

	return Corridor{
		Polygon:          polygon,
		CenterlineLength: length,
		Midpoint:         mid,
		BBox:             bbox,
	}, nil
}

// bufferPolygon constructs a simple closed ring by offsetting each
// centerline point perpendicular to its local bearing by bufferKm, walking
// out one side and back the other — sufficient fidelity for the
// point-in-polygon test this package exists to support, without requiring
// a full geometry library.
func bufferPolygon(centerline []geo.GeoPoint, bufferKm float64) geo.Ring {
	n := len(centerline)
	left := make([][2]float64, 0, n)
	right := make([][2]float64, 0, n)

	for i, p := range centerline {
		var bearing float64
		switch {
		case i == 0:
			bearing = bearingBetween(centerline[0], centerline[1])
		case i == n-1:
			bearing = bearingBetween(centerline[i-1], centerline[i])
		default:
			bearing = bearingBetween(centerline[i-1], centerline[i+1])
		}
		lp := offsetPoint(p, bearing-90, bufferKm)
		rp := offsetPoint(p, bearing+90, bufferKm)
		left = append(left, [2]float64{lp.Lng, lp.Lat})
		right = append(right, [2]float64{rp.Lng, rp.Lat})
	}

	ring := make(geo.Ring, 0, 2*n+1)
	ring = append(ring, left...)
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, left[0])
	return ring
}

func bearingBetween(a, b geo.GeoPoint) float64 {
	const degPerRad = 180.0 / math.Pi
	dLng := b.Lng - a.Lng
	return degPerRad * math.Atan2(dLng, b.Lat-a.Lat)
}

func offsetPoint(p geo.GeoPoint, bearingDeg, distanceKm float64) geo.GeoPoint {
	const kmPerDegLat = 111.32
	rad := bearingDeg * math.Pi / 180.0
	dLat := (distanceKm / kmPerDegLat) * math.Cos(rad)
	kmPerDegLng := kmPerDegLat * math.Cos(p.Lat*math.Pi/180.0)
	if kmPerDegLng == 0 {
		kmPerDegLng = 0.00001
	}
	dLng := (distanceKm / kmPerDegLng) * math.Sin(rad)
	return geo.GeoPoint{Lat: p.Lat + dLat, Lng: p.Lng + dLng}
}

// IsPointInCorridor reports whether point lies inside the buffered
// geometry.
func IsPointInCorridor(point geo.GeoPoint, c Corridor) bool {
	return geo.PointInPolygon(point, c.Polygon)
}

// Intersection is one disjoint run of the route that lies inside the
// corridor.
type Intersection struct {
	DistanceKm        float64
	EntryPoint        geo.GeoPoint
	ExitPoint         geo.GeoPoint
	PercentageOfRoute float64
}

// Intersections walks routePolyline and returns every disjoint segment
// that lies inside bufferedGeom, using binary interpolation to refine
// enter/exit crossing points.
func Intersections(routePolyline []geo.GeoPoint, bufferedGeom geo.Ring, routeLengthKm float64) []Intersection {
	if len(routePolyline) < 2 {
		return nil
	}
	contains := func(p geo.GeoPoint) bool { return geo.PointInPolygon(p, bufferedGeom) }

	var results []Intersection
	cum := geo.CumulativeDistanceKm(routePolyline)

	inside := contains(routePolyline[0])
	var entryPoint geo.GeoPoint
	var entryDist float64
	if inside {
		entryPoint = routePolyline[0]
		entryDist = 0
	}

	for i := 1; i < len(routePolyline); i++ {
		prev, cur := routePolyline[i-1], routePolyline[i]
		curInside := contains(cur)

		switch {
		case !inside && curInside:
			crossing := geo.FindCrossing(cur, prev, contains)
			entryPoint = crossing
			entryDist = cum[i-1] + geo.Haversine(prev, crossing)
			inside = true
		case inside && !curInside:
			crossing := geo.FindCrossing(prev, cur, contains)
			exitDist := cum[i-1] + geo.Haversine(prev, crossing)
			results = append(results, makeIntersection(entryPoint, crossing, entryDist, exitDist, routeLengthKm))
			inside = false
		}
	}

	if inside {
		last := routePolyline[len(routePolyline)-1]
		results = append(results, makeIntersection(entryPoint, last, entryDist, cum[len(cum)-1], routeLengthKm))
	}

	return results
}

func makeIntersection(entry, exit geo.GeoPoint, entryDist, exitDist, routeLengthKm float64) Intersection {
	pct := 0.0
	if routeLengthKm > 0 {
		pct = (exitDist - entryDist) / routeLengthKm * 100
	}
	return Intersection{
		DistanceKm:        exitDist - entryDist,
		EntryPoint:        entry,
		ExitPoint:         exit,
		PercentageOfRoute: pct,
	}
}

func midpointAtFraction(points []geo.GeoPoint, cum []float64, fraction float64) geo.GeoPoint {
	total := cum[len(cum)-1]
	target := total * fraction
	for i := 1; i < len(points); i++ {
		if cum[i] >= target {
			segLen := cum[i] - cum[i-1]
			if segLen == 0 {
				return points[i]
			}
			t := (target - cum[i-1]) / segLen
			return geo.Lerp(points[i-1], points[i], t)
		}
	}
	return points[len(points)-1]
}
