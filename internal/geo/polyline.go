package geo

import "errors"

// ErrPolylineTooShort is returned when a decoded polyline has fewer than
// two points, which makes route segmentation meaningless (§4.1).
var ErrPolylineTooShort = errors.New("geo: decoded polyline has fewer than 2 points")

// DefaultSimplifyThresholdKm is the distance below which consecutive
// polyline points are collapsed during Simplify.
const DefaultSimplifyThresholdKm = 0.05

// DecodePolyline decodes a Google-encoded polyline string (precision 5)
// into a slice of points. An empty input decodes to an empty, non-nil
// slice; callers that require at least two points must check separately
// via DecodeSegmentPolyline.
func DecodePolyline(encoded string) []GeoPoint {
	points := make([]GeoPoint, 0, len(encoded)/4)
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		var result, shift int
		for {
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			lat += ^(result >> 1)
		} else {
			lat += result >> 1
		}

		result, shift = 0, 0
		for {
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			lng += ^(result >> 1)
		} else {
			lng += result >> 1
		}

		points = append(points, GeoPoint{Lat: float64(lat) / 1e5, Lng: float64(lng) / 1e5})
	}
	return points
}

// DecodeSegmentPolyline decodes encoded and rejects results with fewer
// than 2 points, since a route segmenter cannot walk a single point.
func DecodeSegmentPolyline(encoded string) ([]GeoPoint, error) {
	points := DecodePolyline(encoded)
	if len(points) < 2 {
		return nil, ErrPolylineTooShort
	}
	return points, nil
}

// EncodePolyline encodes points using the Google polyline algorithm,
// precision 5. Used by tests and by callers that synthesize a route from
// raw waypoints instead of receiving one from a routing provider.
func EncodePolyline(points []GeoPoint) string {
	var buf []byte
	prevLat, prevLng := 0, 0
	for _, p := range points {
		lat := round1e5(p.Lat)
		lng := round1e5(p.Lng)
		buf = encodeSignedNumber(buf, lat-prevLat)
		buf = encodeSignedNumber(buf, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return string(buf)
}

func round1e5(v float64) int {
	if v >= 0 {
		return int(v*1e5 + 0.5)
	}
	return int(v*1e5 - 0.5)
}

func encodeSignedNumber(buf []byte, num int) []byte {
	shifted := num << 1
	if num < 0 {
		shifted = ^shifted
	}
	return encodeNumber(buf, shifted)
}

func encodeNumber(buf []byte, num int) []byte {
	for num >= 0x20 {
		buf = append(buf, byte((0x20|(num&0x1f))+63))
		num >>= 5
	}
	buf = append(buf, byte(num+63))
	return buf
}

// Simplify drops consecutive points closer than thresholdKm to the
// previously kept point, always preserving the first and last point. A
// non-positive threshold falls back to DefaultSimplifyThresholdKm.
func Simplify(points []GeoPoint, thresholdKm float64) []GeoPoint {
	if len(points) <= 2 {
		return points
	}
	if thresholdKm <= 0 {
		thresholdKm = DefaultSimplifyThresholdKm
	}

	kept := make([]GeoPoint, 0, len(points))
	kept = append(kept, points[0])
	last := points[0]
	for i := 1; i < len(points)-1; i++ {
		if Haversine(last, points[i]) >= thresholdKm {
			kept = append(kept, points[i])
			last = points[i]
		}
	}
	kept = append(kept, points[len(points)-1])
	return kept
}

// CumulativeDistanceKm returns, for each point in points, the running
// haversine distance from points[0] up to and including that point.
func CumulativeDistanceKm(points []GeoPoint) []float64 {
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + Haversine(points[i-1], points[i])
	}
	return cum
}
