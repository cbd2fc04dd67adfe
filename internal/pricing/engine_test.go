package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurigo/dispatch-core/internal/config"
	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/geo"
)

func floatPtr(v float64) *float64 { return &v }

func TestPrivateClientFallsBackToDynamic(t *testing.T) {
	engine := New(config.Default())

	req := domain.PricingRequest{
		Pickup:            domain.GeoPoint{Lat: 48.8566, Lng: 2.3522},
		Dropoff:           domain.GeoPoint{Lat: 43.2965, Lng: 5.3698},
		VehicleCategoryID: "sedan",
		TripType:          domain.TripTypeTransfer,
	}
	ctx := Context{
		Contact:  domain.Contact{ID: "c1", IsPartner: false},
		Settings: domain.OrganizationPricingSettings{BaseRatePerKm: 2.0, BaseRatePerHour: 60, TargetMarginPct: 25},
	}

	result := engine.Price(req, ctx)

	assert.Equal(t, domain.PricingModeDynamic, result.Mode)
	require.NotNil(t, result.FallbackReason)
	assert.Equal(t, domain.FallbackPrivateClient, *result.FallbackReason)
	assert.Greater(t, result.Price, 0.0)
}

func TestPartnerWithoutContractFallsBack(t *testing.T) {
	engine := New(config.Default())
	req := domain.PricingRequest{TripType: domain.TripTypeTransfer}
	ctx := Context{
		Contact:  domain.Contact{IsPartner: true, PartnerContract: nil},
		Settings: domain.OrganizationPricingSettings{BaseRatePerKm: 2.0, BaseRatePerHour: 60},
	}

	result := engine.Price(req, ctx)

	require.NotNil(t, result.FallbackReason)
	assert.Equal(t, domain.FallbackNoContract, *result.FallbackReason)
}

func TestPartnerZoneRouteMatchProducesFixedGrid(t *testing.T) {
	engine := New(config.Default())
	cdg := domain.GeoPoint{Lat: 49.0097, Lng: 2.5479}
	opera := domain.GeoPoint{Lat: 48.8708, Lng: 2.3318}

	req := domain.PricingRequest{
		Pickup:            cdg,
		Dropoff:           opera,
		VehicleCategoryID: "sedan",
		TripType:          domain.TripTypeTransfer,
	}
	ctx := Context{
		Contact: domain.Contact{
			IsPartner: true,
			PartnerContract: &domain.PartnerContract{
				ZoneRoutes: []domain.ZoneRoute{
					{
						ID:                "cdg-opera",
						Origin:            domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &cdg},
						Destination:       domain.RouteEndpoint{Kind: domain.EndpointAddress, Address: &opera},
						VehicleCategoryID: "sedan",
						FixedPrice:        89.0,
						Direction:         domain.DirectionAToB,
						IsActive:          true,
					},
				},
			},
		},
		Settings: domain.OrganizationPricingSettings{BaseRatePerKm: 2.0, BaseRatePerHour: 60},
	}

	result := engine.Price(req, ctx)

	require.Equal(t, domain.PricingModeFixedGrid, result.Mode)
	assert.Equal(t, 89.0, result.Price)
	assert.True(t, result.IsContractPrice)
	require.NotNil(t, result.MatchedGrid)
	assert.Equal(t, "cdg-opera", result.MatchedGrid.ID)
}

func TestDynamicCategoryRatesSuppressCategoryMultiplierOnly(t *testing.T) {
	engine := New(config.Default())
	req := domain.PricingRequest{
		Pickup:                   domain.GeoPoint{Lat: 48.8566, Lng: 2.3522},
		Dropoff:                  domain.GeoPoint{Lat: 48.9, Lng: 2.4},
		EstimatedDistanceKm:      floatPtr(100),
		EstimatedDurationMinutes: floatPtr(60),
		VehicleCategoryID:        "van",
		TripType:                 domain.TripTypeTransfer,
	}
	ctx := Context{
		Contact: domain.Contact{IsPartner: false},
		Settings: domain.OrganizationPricingSettings{
			BaseRatePerKm: 2.0, BaseRatePerHour: 60, TargetMarginPct: 0,
		},
		VehicleCategory: domain.VehicleCategory{
			ID: "van", PriceMultiplier: 1.5,
			DefaultRatePerKm:   floatPtr(3.0),
			DefaultRatePerHour: floatPtr(90.0),
		},
	}

	result := engine.Price(req, ctx)

	// basePrice = max(100*3.0, 1*90) = 300; category's own PriceMultiplier (1.5)
	// is not reapplied since the category supplies its own rates. No zones are
	// in play here, so the independent zone multiplier is a no-op (1.0).
	assert.Equal(t, 300.0, result.Price)
}

func TestDynamicAppliesZoneMultiplierEvenWithCategoryRates(t *testing.T) {
	engine := New(config.Default())
	mult := 1.5
	airport := domain.Zone{ID: "z1", Code: "AIRPORT", IsActive: true, Shape: domain.ZoneShapeRadius,
		Center: domain.GeoPoint{Lat: 48.8566, Lng: 2.3522}, RadiusKm: 50, PriceMultiplier: &mult}

	req := domain.PricingRequest{
		Pickup:                   domain.GeoPoint{Lat: 48.8566, Lng: 2.3522},
		Dropoff:                  domain.GeoPoint{Lat: 48.87, Lng: 2.36},
		EstimatedDistanceKm:      floatPtr(100),
		EstimatedDurationMinutes: floatPtr(60),
		VehicleCategoryID:        "van",
		TripType:                 domain.TripTypeTransfer,
	}
	ctx := Context{
		Contact: domain.Contact{IsPartner: false},
		Zones:   []domain.Zone{airport},
		Settings: domain.OrganizationPricingSettings{
			BaseRatePerKm: 2.0, BaseRatePerHour: 60, TargetMarginPct: 0,
		},
		VehicleCategory: domain.VehicleCategory{
			ID: "van", PriceMultiplier: 1.5,
			DefaultRatePerKm:   floatPtr(3.0),
			DefaultRatePerHour: floatPtr(90.0),
		},
	}

	result := engine.Price(req, ctx)

	// basePrice = max(100*3.0, 1*90) = 300; category's own priceMultiplier is
	// still suppressed, but both pickup and dropoff fall inside the airport
	// zone, so the independent §4.6 zone multiplier (1.5) still applies: 450.
	assert.Equal(t, 450.0, result.Price)

	var zoneRule *domain.AppliedRule
	for i := range result.AppliedRules {
		if result.AppliedRules[i].Type == domain.RuleZoneMultiplier {
			zoneRule = &result.AppliedRules[i]
		}
	}
	require.NotNil(t, zoneRule)
	assert.Equal(t, 1.5, zoneRule.Multiplier)
}

func TestDynamicAppliesZoneMultiplierWhenNoCategoryRates(t *testing.T) {
	engine := New(config.Default())
	mult := 1.5
	zone := domain.Zone{ID: "z1", Code: "AIRPORT", IsActive: true, Shape: domain.ZoneShapeRadius,
		Center: domain.GeoPoint{Lat: 48.8566, Lng: 2.3522}, RadiusKm: 50, PriceMultiplier: &mult}

	req := domain.PricingRequest{
		Pickup:                   domain.GeoPoint{Lat: 48.8566, Lng: 2.3522},
		Dropoff:                  domain.GeoPoint{Lat: 48.87, Lng: 2.36},
		EstimatedDistanceKm:      floatPtr(100),
		EstimatedDurationMinutes: floatPtr(60),
		VehicleCategoryID:        "sedan",
		TripType:                 domain.TripTypeTransfer,
	}
	ctx := Context{
		Contact:  domain.Contact{IsPartner: false},
		Zones:    []domain.Zone{zone},
		Settings: domain.OrganizationPricingSettings{BaseRatePerKm: 2.0, BaseRatePerHour: 60, TargetMarginPct: 0},
	}

	result := engine.Price(req, ctx)

	// basePrice = max(200, 60) = 200; zone multiplier 1.5 -> 300
	assert.Equal(t, 300.0, result.Price)
}

func TestDynamicUsesPolylineWeightedMultiplierWhenAvailable(t *testing.T) {
	engine := New(config.Default())
	lowMult := 1.0
	highMult := 2.0
	a := domain.Zone{ID: "a", Code: "A", IsActive: true, Shape: domain.ZoneShapeRadius,
		Center: domain.GeoPoint{Lat: 48.85, Lng: 2.35}, RadiusKm: 2, PriceMultiplier: &lowMult}
	b := domain.Zone{ID: "b", Code: "B", IsActive: true, Shape: domain.ZoneShapeRadius,
		Center: domain.GeoPoint{Lat: 48.90, Lng: 2.45}, RadiusKm: 2, PriceMultiplier: &highMult}

	encoded := geo.EncodePolyline([]geo.GeoPoint{
		{Lat: 48.85, Lng: 2.35},
		{Lat: 48.90, Lng: 2.45},
	})

	req := domain.PricingRequest{
		Pickup:                   domain.GeoPoint{Lat: 48.85, Lng: 2.35},
		Dropoff:                  domain.GeoPoint{Lat: 48.90, Lng: 2.45},
		Polyline:                 encoded,
		EstimatedDistanceKm:      floatPtr(100),
		EstimatedDurationMinutes: floatPtr(60),
		VehicleCategoryID:        "sedan",
		TripType:                 domain.TripTypeTransfer,
	}
	ctx := Context{
		Contact:  domain.Contact{IsPartner: false},
		Zones:    []domain.Zone{a, b},
		Settings: domain.OrganizationPricingSettings{BaseRatePerKm: 2.0, BaseRatePerHour: 60, TargetMarginPct: 0},
	}

	flatResult := engine.Price(domain.PricingRequest{
		Pickup:                   req.Pickup,
		Dropoff:                  req.Dropoff,
		EstimatedDistanceKm:      req.EstimatedDistanceKm,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		VehicleCategoryID:        req.VehicleCategoryID,
		TripType:                 req.TripType,
	}, ctx)
	routedResult := engine.Price(req, ctx)

	var routedRule *domain.AppliedRule
	for i := range routedResult.AppliedRules {
		if routedResult.AppliedRules[i].Type == domain.RuleZoneMultiplier {
			routedRule = &routedResult.AppliedRules[i]
		}
	}
	require.NotNil(t, routedRule)
	assert.Equal(t, "route", routedRule.Side)
	assert.NotEqual(t, flatResult.Price, routedResult.Price)
}

func TestProfitabilityClassificationThresholds(t *testing.T) {
	defaults := config.Default().Profitability
	assert.Equal(t, domain.ProfitabilityGreen, classify(25, domain.OrganizationPricingSettings{}, defaults))
	assert.Equal(t, domain.ProfitabilityOrange, classify(5, domain.OrganizationPricingSettings{}, defaults))
	assert.Equal(t, domain.ProfitabilityRed, classify(-5, domain.OrganizationPricingSettings{}, defaults))
}

func TestCommissionZeroProducesNoCommissionData(t *testing.T) {
	commission, marginPct := applyCommission(domain.Contact{}, 100, 60)
	assert.Nil(t, commission)
	assert.Equal(t, 40.0, marginPct)
}

func TestCommissionAppliedReducesEffectiveMargin(t *testing.T) {
	contact := domain.Contact{PartnerContract: &domain.PartnerContract{CommissionPercent: 10}}
	commission, marginPct := applyCommission(contact, 100, 60)

	require.NotNil(t, commission)
	assert.Equal(t, 10.0, commission.CommissionAmount)
	assert.Equal(t, 30.0, commission.EffectiveMargin) // 100-60-10
	assert.Equal(t, 30.0, marginPct)
}

func TestApplyOverrideRejectsNonPositivePrice(t *testing.T) {
	result := domain.PricingResult{Price: 100, InternalCost: 60}
	_, err := ApplyOverride(result, 0, "bad", nil, func(float64) domain.ProfitabilityIndicator { return domain.ProfitabilityGreen })
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestApplyOverrideRejectsBelowMinimumMargin(t *testing.T) {
	result := domain.PricingResult{Price: 100, InternalCost: 90}
	floor := 20.0
	_, err := ApplyOverride(result, 95, "discount", &floor, func(float64) domain.ProfitabilityIndicator { return domain.ProfitabilityRed })
	assert.ErrorIs(t, err, ErrBelowMinimumMargin)
}

func TestApplyOverrideSucceeds(t *testing.T) {
	result := domain.PricingResult{Price: 100, InternalCost: 60, AppliedRules: []domain.AppliedRule{{Type: domain.RuleCategoryRate}}}

	updated, err := ApplyOverride(result, 120, "client request", nil, func(marginPct float64) domain.ProfitabilityIndicator {
		if marginPct >= 20 {
			return domain.ProfitabilityGreen
		}
		return domain.ProfitabilityRed
	})

	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Price)
	require.NotNil(t, updated.Override)
	assert.True(t, updated.Override.Applied)
	assert.Equal(t, 100.0, updated.Override.PreviousPrice)
	assert.Len(t, updated.AppliedRules, 2)
	assert.Equal(t, domain.RuleManualOverride, updated.AppliedRules[1].Type)
}

func TestDefaultDistanceAndDurationUsedWhenUnestimated(t *testing.T) {
	engine := New(config.Default())
	req := domain.PricingRequest{TripType: domain.TripTypeTransfer}
	ctx := Context{
		Contact:  domain.Contact{IsPartner: false},
		Settings: domain.OrganizationPricingSettings{BaseRatePerKm: 1.0, BaseRatePerHour: 1.0},
	}

	result := engine.Price(req, ctx)

	assert.NotZero(t, result.TripAnalysis.TotalDistanceKm)
}

func TestCalculatedAtIsCurrentTime(t *testing.T) {
	engine := New(config.Default())
	req := domain.PricingRequest{TripType: domain.TripTypeTransfer}
	before := time.Now()
	ctx := Context{Contact: domain.Contact{}, Settings: domain.OrganizationPricingSettings{BaseRatePerKm: 1, BaseRatePerHour: 1}}

	result := engine.Price(req, ctx)

	assert.False(t, result.CalculatedAt.Before(before.Add(-time.Minute)))
}
