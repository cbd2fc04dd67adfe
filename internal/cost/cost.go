// Package cost implements the per-component internal cost engine of §4.5:
// fuel, tolls, wear, driver and parking costs from distance/duration and
// an organization's pricing settings, plus the three-segment shadow
// aggregation used for profitability analysis.
package cost

import (
	"github.com/shopspring/decimal"

	"github.com/aurigo/dispatch-core/internal/config"
	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/money"
)

// ResolvedSettings is OrganizationPricingSettings with every cost
// parameter defaulted to a concrete value, so downstream formulas never
// branch on nil.
type ResolvedSettings struct {
	FuelConsumptionL100Km float64
	FuelPricePerLiter     float64
	TollCostPerKm         float64
	WearCostPerKm         float64
	DriverHourlyCost      float64
}

// ResolveSettings fills any unset cost parameter from defaults.
func ResolveSettings(settings domain.OrganizationPricingSettings, defaults config.CostDefaults) ResolvedSettings {
	resolved := ResolvedSettings{
		FuelConsumptionL100Km: defaults.FuelConsumptionL100Km,
		FuelPricePerLiter:     defaults.FuelPricePerLiter,
		TollCostPerKm:         defaults.TollCostPerKm,
		WearCostPerKm:         defaults.WearCostPerKm,
		DriverHourlyCost:      defaults.DriverHourlyCost,
	}
	if settings.FuelConsumptionL100Km != nil {
		resolved.FuelConsumptionL100Km = *settings.FuelConsumptionL100Km
	}
	if settings.FuelPricePerLiter != nil {
		resolved.FuelPricePerLiter = *settings.FuelPricePerLiter
	}
	if settings.TollCostPerKm != nil {
		resolved.TollCostPerKm = *settings.TollCostPerKm
	}
	if settings.WearCostPerKm != nil {
		resolved.WearCostPerKm = *settings.WearCostPerKm
	}
	if settings.DriverHourlyCost != nil {
		resolved.DriverHourlyCost = *settings.DriverHourlyCost
	}
	return resolved
}

// TollQuote is an optional real toll amount from a routing provider,
// overriding the flat per-km estimate.
type TollQuote struct {
	AmountEUR   float64
	IsFromCache bool
}

// Inputs bundles everything Compute needs for a single segment.
type Inputs struct {
	DistanceKm      float64
	DurationMinutes float64
	Settings        ResolvedSettings
	ParkingAmount   float64
	ParkingLabel    string
	RealToll        *TollQuote
}

// Compute returns the per-component cost breakdown for one segment. All
// monetary outputs are rounded to 2dp; the total is rounded after summing
// the unrounded components, matching the teacher's "round once, at the
// boundary" money discipline.
func Compute(in Inputs) domain.CostBreakdown {
	distance := decimal.NewFromFloat(in.DistanceKm)

	fuelCost := distance.
		Mul(decimal.NewFromFloat(in.Settings.FuelConsumptionL100Km)).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromFloat(in.Settings.FuelPricePerLiter))

	var tollCost decimal.Decimal
	tollSource := domain.CostSourceEstimate
	tollFromCache := false
	if in.RealToll != nil {
		tollCost = decimal.NewFromFloat(in.RealToll.AmountEUR)
		tollSource = domain.CostSourceGoogleAPI
		tollFromCache = in.RealToll.IsFromCache
	} else {
		tollCost = distance.Mul(decimal.NewFromFloat(in.Settings.TollCostPerKm))
	}

	wearCost := distance.Mul(decimal.NewFromFloat(in.Settings.WearCostPerKm))

	driverCost := decimal.NewFromFloat(in.DurationMinutes).
		Div(decimal.NewFromInt(60)).
		Mul(decimal.NewFromFloat(in.Settings.DriverHourlyCost))

	parkingCost := decimal.NewFromFloat(in.ParkingAmount)

	total := fuelCost.Add(tollCost).Add(wearCost).Add(driverCost).Add(parkingCost)

	return domain.CostBreakdown{
		Fuel: domain.CostComponent{
			Amount:      money.ToFloat(fuelCost),
			Description: "Fuel",
			Source:      domain.CostSourceEstimate,
		},
		Tolls: domain.CostComponent{
			Amount:      money.ToFloat(tollCost),
			Description: "Tolls",
			Source:      tollSource,
			IsFromCache: tollFromCache,
		},
		Wear: domain.CostComponent{
			Amount:      money.ToFloat(wearCost),
			Description: "Vehicle wear",
			Source:      domain.CostSourceEstimate,
		},
		Driver: domain.CostComponent{
			Amount:      money.ToFloat(driverCost),
			Description: "Driver time",
			Source:      domain.CostSourceEstimate,
		},
		Parking: domain.CostComponent{
			Amount:      money.ToFloat(parkingCost),
			Description: in.ParkingLabel,
		},
		TotalInternal: money.ToFloat(total),
	}
}
