package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/geo"
)

func ptr(v float64) *float64 { return &v }

func TestFromZonesSameZoneSingleSegment(t *testing.T) {
	z := &domain.Zone{ID: "z1", Code: "PARIS", PriceMultiplier: ptr(1.2)}

	result := FromZones(z, z, 10, 20)

	require.Len(t, result.Segments, 1)
	assert.Equal(t, MethodFallback, result.SegmentationMethod)
	assert.Equal(t, 1.2, result.WeightedMultiplier)
	assert.Equal(t, 10.0, result.Segments[0].DistanceKm)
}

func TestFromZonesDifferentZonesSplitEvenly(t *testing.T) {
	a := &domain.Zone{ID: "a", PriceMultiplier: ptr(1.0)}
	b := &domain.Zone{ID: "b", PriceMultiplier: ptr(2.0)}

	result := FromZones(a, b, 20, 40)

	require.Len(t, result.Segments, 2)
	assert.Equal(t, 10.0, result.Segments[0].DistanceKm)
	assert.Equal(t, 10.0, result.Segments[1].DistanceKm)
	assert.Equal(t, 20.0, result.Segments[0].DurationMinutes)
	assert.InDelta(t, 1.5, result.WeightedMultiplier, 0.001)
}

func TestFromPolylineSingleZoneEntireRoute(t *testing.T) {
	points := []geo.GeoPoint{
		{Lat: 48.85, Lng: 2.35},
		{Lat: 48.86, Lng: 2.36},
		{Lat: 48.87, Lng: 2.37},
	}
	encoded := geo.EncodePolyline(points)

	paris := domain.Zone{ID: "paris", Code: "PARIS", IsActive: true, Shape: domain.ZoneShapeRadius,
		Center: domain.GeoPoint{Lat: 48.86, Lng: 2.36}, RadiusKm: 50, PriceMultiplier: ptr(1.3),
		FixedParkingSurcharge: 2.0}

	result := FromPolyline(encoded, []domain.Zone{paris}, 30, nil)

	require.Len(t, result.Segments, 1)
	assert.Equal(t, "paris", result.Segments[0].ZoneID)
	assert.Equal(t, MethodPolyline, result.SegmentationMethod)
	assert.Equal(t, 2.0, result.TotalSurcharges)
	assert.Equal(t, 1.3, result.WeightedMultiplier)
}

func TestFromPolylineRejectsShortInput(t *testing.T) {
	result := FromPolyline(geo.EncodePolyline([]geo.GeoPoint{{Lat: 1, Lng: 1}}), nil, 10, nil)
	assert.Empty(t, result.Segments)
	assert.Equal(t, MethodPolyline, result.SegmentationMethod)
}

func TestFromConcentricRingsOutwardWithOutsideZone(t *testing.T) {
	center := domain.GeoPoint{Lat: 48.8566, Lng: 2.3522}
	inner := domain.Zone{ID: "inner", Code: "INNER", Center: center, RadiusKm: 5, PriceMultiplier: ptr(1.0)}
	outer := domain.Zone{ID: "outer", Code: "OUTER", Center: center, RadiusKm: 15, PriceMultiplier: ptr(1.2)}

	result := FromConcentricRings(center, center, []domain.Zone{outer, inner}, 0, 25, 25, 60)

	require.GreaterOrEqual(t, len(result.Segments), 2)
	last := result.Segments[len(result.Segments)-1]
	assert.Equal(t, OutsideZoneCode, last.ZoneCode)
	assert.True(t, last.Synthetic)
	assert.Equal(t, 1.0, last.PriceMultiplier)
}

func TestFromConcentricRingsNoMatchingShellFallsBackToSingleSegment(t *testing.T) {
	center := domain.GeoPoint{Lat: 0, Lng: 0}
	result := FromConcentricRings(center, center, nil, 0, 10, 10, 20)

	require.Len(t, result.Segments, 1)
	assert.Equal(t, 1.0, result.Segments[0].PriceMultiplier)
}
