package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineParisLyon(t *testing.T) {
	paris := GeoPoint{Lat: 48.8566, Lng: 2.3522}
	lyon := GeoPoint{Lat: 45.7640, Lng: 4.8357}

	d := Haversine(paris, lyon)

	assert.InDelta(t, 392.0, d, 10.0, "Paris-Lyon great-circle distance should be roughly 392km")
}

func TestHaversineIdenticalPoints(t *testing.T) {
	p := GeoPoint{Lat: 48.8566, Lng: 2.3522}
	assert.Equal(t, 0.0, Haversine(p, p))
}

func TestPointInRadiusInclusive(t *testing.T) {
	center := GeoPoint{Lat: 48.8566, Lng: 2.3522}
	point := GeoPoint{Lat: 48.8566, Lng: 2.3522}
	assert.True(t, PointInRadius(point, center, 0))
}

func TestPointInPolygonSquare(t *testing.T) {
	square := Ring{{2.30, 48.85}, {2.40, 48.85}, {2.40, 48.90}, {2.30, 48.90}}

	inside := GeoPoint{Lat: 48.87, Lng: 2.35}
	outside := GeoPoint{Lat: 48.95, Lng: 2.35}

	assert.True(t, PointInPolygon(inside, square))
	assert.False(t, PointInPolygon(outside, square))
}

func TestPointInPolygonDegenerateRing(t *testing.T) {
	assert.False(t, PointInPolygon(GeoPoint{Lat: 1, Lng: 1}, Ring{{0, 0}, {1, 1}}))
}

func TestEncodeDecodePolylineRoundTrip(t *testing.T) {
	points := []GeoPoint{
		{Lat: 48.8566, Lng: 2.3522},
		{Lat: 48.8600, Lng: 2.3600},
		{Lat: 48.8700, Lng: 2.3700},
	}

	encoded := EncodePolyline(points)
	decoded := DecodePolyline(encoded)

	require.Len(t, decoded, len(points))
	for i := range points {
		assert.InDelta(t, points[i].Lat, decoded[i].Lat, 1e-4)
		assert.InDelta(t, points[i].Lng, decoded[i].Lng, 1e-4)
	}
}

func TestDecodeSegmentPolylineRejectsShort(t *testing.T) {
	single := EncodePolyline([]GeoPoint{{Lat: 48.8566, Lng: 2.3522}})

	_, err := DecodeSegmentPolyline(single)

	assert.ErrorIs(t, err, ErrPolylineTooShort)
}

func TestSimplifyPreservesEndpoints(t *testing.T) {
	points := []GeoPoint{
		{Lat: 48.8566, Lng: 2.3522},
		{Lat: 48.85661, Lng: 2.35221},
		{Lat: 48.85662, Lng: 2.35222},
		{Lat: 48.9000, Lng: 2.4000},
	}

	simplified := Simplify(points, DefaultSimplifyThresholdKm)

	require.GreaterOrEqual(t, len(simplified), 2)
	assert.Equal(t, points[0], simplified[0])
	assert.Equal(t, points[len(points)-1], simplified[len(simplified)-1])
	assert.Less(t, len(simplified), len(points))
}

func TestFindCrossingConverges(t *testing.T) {
	center := GeoPoint{Lat: 48.8566, Lng: 2.3522}
	inside := center
	outside := GeoPoint{Lat: 49.5, Lng: 2.3522}

	contains := func(p GeoPoint) bool {
		return PointInRadius(p, center, 10)
	}

	crossing := FindCrossing(inside, outside, contains)

	distFromCenter := Haversine(crossing, center)
	assert.InDelta(t, 10.0, distFromCenter, 0.5)
}

func TestCumulativeDistanceKmMonotonic(t *testing.T) {
	points := []GeoPoint{
		{Lat: 48.8566, Lng: 2.3522},
		{Lat: 48.8700, Lng: 2.3700},
		{Lat: 48.9000, Lng: 2.4000},
	}

	cum := CumulativeDistanceKm(points)

	require.Len(t, cum, 3)
	assert.Equal(t, 0.0, cum[0])
	assert.Greater(t, cum[1], cum[0])
	assert.Greater(t, cum[2], cum[1])
}
