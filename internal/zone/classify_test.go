package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurigo/dispatch-core/internal/domain"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

func parisCenter() domain.GeoPoint {
	return domain.GeoPoint{Lat: 48.8566, Lng: 2.3522}
}

func TestClassifyPointDefaultSpecificity(t *testing.T) {
	point := parisCenter()

	zones := []domain.Zone{
		{ID: "polygon-1", Shape: domain.ZoneShapePolygon, IsActive: true,
			Ring: domain.Ring{{2.30, 48.80}, {2.40, 48.80}, {2.40, 48.90}, {2.30, 48.90}}},
		{ID: "radius-big", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 10},
		{ID: "radius-small", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 2},
		{ID: "point-1", Shape: domain.ZoneShapePoint, IsActive: true, Center: point},
	}

	winner := ClassifyPoint(point, zones, nil)

	require.NotNil(t, winner)
	assert.Equal(t, "point-1", winner.ID)

	all := ClassifyPointAll(point, zones, nil)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"point-1", "radius-small", "radius-big", "polygon-1"}, []string{all[0].ID, all[1].ID, all[2].ID, all[3].ID})
}

func TestClassifyPointInactiveExcluded(t *testing.T) {
	point := parisCenter()
	zones := []domain.Zone{
		{ID: "z1", Shape: domain.ZoneShapeRadius, IsActive: false, Center: point, RadiusKm: 5},
	}
	assert.Nil(t, ClassifyPoint(point, zones, nil))
}

func TestClassifyPointNoMatch(t *testing.T) {
	point := domain.GeoPoint{Lat: 0, Lng: 0}
	zones := []domain.Zone{
		{ID: "z1", Shape: domain.ZoneShapeRadius, IsActive: true, Center: parisCenter(), RadiusKm: 5},
	}
	assert.Nil(t, ClassifyPoint(point, zones, nil))
}

func TestConflictStrategyPriority(t *testing.T) {
	point := parisCenter()
	strategy := domain.ConflictPriority
	zones := []domain.Zone{
		{ID: "low", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 5, Priority: intPtr(1)},
		{ID: "high", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 5, Priority: intPtr(9)},
	}

	winner := ClassifyPoint(point, zones, &strategy)

	require.NotNil(t, winner)
	assert.Equal(t, "high", winner.ID)
}

func TestConflictStrategyMostExpensive(t *testing.T) {
	point := parisCenter()
	strategy := domain.ConflictMostExpensive
	zones := []domain.Zone{
		{ID: "cheap", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 5, PriceMultiplier: float64Ptr(1.1)},
		{ID: "pricey", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 5, PriceMultiplier: float64Ptr(1.8)},
	}

	winner := ClassifyPoint(point, zones, &strategy)

	require.NotNil(t, winner)
	assert.Equal(t, "pricey", winner.ID)
}

func TestConflictStrategyClosest(t *testing.T) {
	point := parisCenter()
	strategy := domain.ConflictClosest
	near := domain.GeoPoint{Lat: 48.8566, Lng: 2.3522}
	far := domain.GeoPoint{Lat: 48.90, Lng: 2.40}

	zones := []domain.Zone{
		{ID: "far", Shape: domain.ZoneShapeRadius, IsActive: true, Center: far, RadiusKm: 50},
		{ID: "near", Shape: domain.ZoneShapeRadius, IsActive: true, Center: near, RadiusKm: 50},
	}

	winner := ClassifyPoint(point, zones, &strategy)

	require.NotNil(t, winner)
	assert.Equal(t, "near", winner.ID)
}

func TestConflictStrategyCombinedTieBreak(t *testing.T) {
	point := parisCenter()
	strategy := domain.ConflictCombined
	zones := []domain.Zone{
		{ID: "same-priority-cheap", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 5, Priority: intPtr(5), PriceMultiplier: float64Ptr(1.0)},
		{ID: "same-priority-pricey", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 5, Priority: intPtr(5), PriceMultiplier: float64Ptr(1.5)},
		{ID: "higher-priority", Shape: domain.ZoneShapeRadius, IsActive: true, Center: point, RadiusKm: 5, Priority: intPtr(9), PriceMultiplier: float64Ptr(0.5)},
	}

	winner := ClassifyPoint(point, zones, &strategy)

	require.NotNil(t, winner)
	assert.Equal(t, "higher-priority", winner.ID)
}

func TestZoneDefaultsApplied(t *testing.T) {
	z := domain.Zone{}
	assert.Equal(t, 1.0, z.EffectiveMultiplier())
	assert.Equal(t, 0, z.EffectivePriority())
}
