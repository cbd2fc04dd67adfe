package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aurigo/dispatch-core/internal/domain"
)

func TestBuildFareCalculationNoRules(t *testing.T) {
	result := domain.PricingResult{
		Mode:  domain.PricingModeDynamic,
		Price: 42.50,
	}

	calc := BuildFareCalculation(result)

	assert.Equal(t, 42.50, calc.Total)
	assert.Len(t, calc.Lines, 1)
	assert.Equal(t, "Base fare", calc.Lines[0].Label)
	assert.Equal(t, 42.50, calc.Lines[0].Amount)
}

func TestBuildFareCalculationFixedGridUsesCatalogLabel(t *testing.T) {
	result := domain.PricingResult{
		Mode:  domain.PricingModeFixedGrid,
		Price: 100,
	}

	calc := BuildFareCalculation(result)

	assert.Equal(t, "Catalog price", calc.Lines[0].Label)
}

func TestBuildFareCalculationRendersAppliedRulesAsDeltas(t *testing.T) {
	result := domain.PricingResult{
		Mode:  domain.PricingModeDynamic,
		Price: 132,
		AppliedRules: []domain.AppliedRule{
			{Type: domain.RuleZoneMultiplier, ZoneCode: "AIRPORT", PriceBefore: 100, PriceAfter: 120},
			{Type: domain.RuleSeasonalMultiplier, PriceBefore: 120, PriceAfter: 132},
		},
	}

	calc := BuildFareCalculation(result)

	require := assert.New(t)
	require.Len(calc.Lines, 3)
	require.Equal("Base fare", calc.Lines[0].Label)
	require.Equal(100.0, calc.Lines[0].Amount)
	require.Equal("Zone multiplier (AIRPORT)", calc.Lines[1].Label)
	require.Equal(20.0, calc.Lines[1].Amount)
	require.Equal(domain.RuleZoneMultiplier, calc.Lines[1].Kind)
	require.Equal("Seasonal multiplier", calc.Lines[2].Label)
	require.Equal(12.0, calc.Lines[2].Amount)
	require.Equal(132.0, calc.Total)
}

func TestBuildFareCalculationSkipsZeroDeltaRules(t *testing.T) {
	result := domain.PricingResult{
		Mode:  domain.PricingModeDynamic,
		Price: 100,
		AppliedRules: []domain.AppliedRule{
			{Type: domain.RuleZoneMapping, PriceBefore: 100, PriceAfter: 100},
		},
	}

	calc := BuildFareCalculation(result)

	assert.Len(t, calc.Lines, 1)
}

func TestBuildFareCalculationManualOverrideLabel(t *testing.T) {
	result := domain.PricingResult{
		Mode:  domain.PricingModeDynamic,
		Price: 90,
		AppliedRules: []domain.AppliedRule{
			{Type: domain.RuleManualOverride, PriceBefore: 100, PriceAfter: 90, Reason: "loyal client"},
		},
	}

	calc := BuildFareCalculation(result)

	assert.Equal(t, "Manual override", calc.Lines[1].Label)
	assert.Equal(t, -10.0, calc.Lines[1].Amount)
}
