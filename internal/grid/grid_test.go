package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurigo/dispatch-core/internal/domain"
)

func TestMatchZoneRouteAddressToAddress(t *testing.T) {
	cdg := domain.GeoPoint{Lat: 49.0097, Lng: 2.5479}
	opera := domain.GeoPoint{Lat: 48.8708, Lng: 2.3318}

	routes := []domain.ZoneRoute{
		{
			ID:                "cdg-opera",
			Origin:            domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &cdg},
			Destination:       domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &opera},
			VehicleCategoryID: "sedan",
			FixedPrice:        89.0,
			Direction:         domain.DirectionAToB,
			IsActive:          true,
		},
	}

	match, rejected := MatchZoneRoute(routes, "sedan", "", "", cdg, opera)

	require.NotNil(t, match)
	assert.Equal(t, 89.0, match.EffectivePrice)
	assert.Equal(t, domain.RuleCatalogPrice, match.Rule.Type)
	assert.Empty(t, rejected)
}

func TestMatchZoneRouteOverridePrice(t *testing.T) {
	cdg := domain.GeoPoint{Lat: 49.0097, Lng: 2.5479}
	opera := domain.GeoPoint{Lat: 48.8708, Lng: 2.3318}
	override := 75.0

	routes := []domain.ZoneRoute{
		{
			ID:                "cdg-opera",
			Origin:            domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &cdg},
			Destination:       domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &opera},
			VehicleCategoryID: "sedan",
			FixedPrice:        89.0,
			OverridePrice:     &override,
			Direction:         domain.DirectionAToB,
			IsActive:          true,
		},
	}

	match, _ := MatchZoneRoute(routes, "sedan", "", "", cdg, opera)

	require.NotNil(t, match)
	assert.Equal(t, 75.0, match.EffectivePrice)
	assert.Equal(t, domain.RulePartnerOverride, match.Rule.Type)
}

func TestMatchZoneRouteRejectsInactiveAndCategoryMismatch(t *testing.T) {
	cdg := domain.GeoPoint{Lat: 49.0097, Lng: 2.5479}
	opera := domain.GeoPoint{Lat: 48.8708, Lng: 2.3318}

	routes := []domain.ZoneRoute{
		{ID: "inactive", Origin: domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &cdg}, Destination: domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &opera}, VehicleCategoryID: "sedan", Direction: domain.DirectionAToB, IsActive: false},
		{ID: "wrong-category", Origin: domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &cdg}, Destination: domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &opera}, VehicleCategoryID: "van", Direction: domain.DirectionAToB, IsActive: true},
	}

	match, rejected := MatchZoneRoute(routes, "sedan", "", "", cdg, opera)

	assert.Nil(t, match)
	require.Len(t, rejected, 2)
	assert.Equal(t, "INACTIVE", rejected[0].Reason)
	assert.Equal(t, "CATEGORY_MISMATCH", rejected[1].Reason)
}

func TestMatchZoneRouteBidirectionalReverseMatch(t *testing.T) {
	cdg := domain.GeoPoint{Lat: 49.0097, Lng: 2.5479}
	opera := domain.GeoPoint{Lat: 48.8708, Lng: 2.3318}

	routes := []domain.ZoneRoute{
		{
			ID:                "cdg-opera",
			Origin:            domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &cdg},
			Destination:       domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &opera},
			VehicleCategoryID: "sedan",
			FixedPrice:        89.0,
			Direction:         domain.DirectionBidirection,
			IsActive:          true,
		},
	}

	// pickup = opera, dropoff = cdg -> should match the reverse leg.
	match, _ := MatchZoneRoute(routes, "sedan", "", "", opera, cdg)

	require.NotNil(t, match)
	assert.Equal(t, "cdg-opera", match.ID)
}

func TestMatchExcursionByCategoryAndZone(t *testing.T) {
	packages := []domain.ExcursionPackage{
		{ID: "versailles", VehicleCategoryID: "sedan", OriginZoneID: "paris", Price: 250, IsActive: true},
	}

	match, rejected := MatchExcursion(packages, "sedan", "paris", "")

	require.NotNil(t, match)
	assert.Equal(t, 250.0, match.EffectivePrice)
	assert.Empty(t, rejected)
}

func TestMatchExcursionZoneMismatch(t *testing.T) {
	packages := []domain.ExcursionPackage{
		{ID: "versailles", VehicleCategoryID: "sedan", OriginZoneID: "lyon", Price: 250, IsActive: true},
	}

	match, rejected := MatchExcursion(packages, "sedan", "paris", "")

	assert.Nil(t, match)
	require.Len(t, rejected, 1)
	assert.Equal(t, "ZONE_MISMATCH", rejected[0].Reason)
}

func TestMatchDispoAppliesOverage(t *testing.T) {
	packages := []domain.DispoPackage{
		{ID: "half-day", VehicleCategoryID: "van", BasePrice: 300, IncludedKmPerHour: 30, OverageRatePerKm: 2, IsActive: true},
	}

	match, _ := MatchDispo(packages, "van", 4, 160) // included 120km, 40km overage

	require.NotNil(t, match)
	assert.Equal(t, 380.0, match.EffectivePrice)
}

func TestMatchDispoNoOverageWhenWithinAllowance(t *testing.T) {
	packages := []domain.DispoPackage{
		{ID: "half-day", VehicleCategoryID: "van", BasePrice: 300, IncludedKmPerHour: 30, OverageRatePerKm: 2, IsActive: true},
	}

	match, _ := MatchDispo(packages, "van", 4, 100)

	require.NotNil(t, match)
	assert.Equal(t, 300.0, match.EffectivePrice)
}
