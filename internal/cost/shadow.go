package cost

import (
	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/money"
)

// VehicleSelectionInput supplies the three-segment (approach/service/return)
// distance and duration when a vehicle's current position is known.
type VehicleSelectionInput struct {
	ApproachDistanceKm   float64
	ApproachDurationMin  float64
	ReturnDistanceKm     float64
	ReturnDurationMin    float64
}

// Shadow computes the full shadow-cost trip analysis for a service leg of
// distanceKm/durationMinutes, optionally expanded into approach/service/
// return segments when vehicleSelection is non-nil (§4.5 "Shadow
// segmentation").
func Shadow(distanceKm, durationMinutes float64, settings ResolvedSettings, vehicleSelection *VehicleSelectionInput) domain.TripAnalysis {
	service := domain.TripSegment{
		Name:        "service",
		DistanceKm:  distanceKm,
		DurationMin: durationMinutes,
		Cost: Compute(Inputs{
			DistanceKm:      distanceKm,
			DurationMinutes: durationMinutes,
			Settings:        settings,
		}),
	}

	if vehicleSelection == nil {
		return domain.TripAnalysis{
			Service:           service,
			TotalDistanceKm:   distanceKm,
			TotalDurationMin:  durationMinutes,
			TotalInternalCost: service.Cost.TotalInternal,
			CombinedCost:      service.Cost,
			RoutingSource:     domain.RoutingSourceHaversine,
		}
	}

	approach := domain.TripSegment{
		Name:        "approach",
		DistanceKm:  vehicleSelection.ApproachDistanceKm,
		DurationMin: vehicleSelection.ApproachDurationMin,
		Cost: Compute(Inputs{
			DistanceKm:      vehicleSelection.ApproachDistanceKm,
			DurationMinutes: vehicleSelection.ApproachDurationMin,
			Settings:        settings,
		}),
	}
	ret := domain.TripSegment{
		Name:        "return",
		DistanceKm:  vehicleSelection.ReturnDistanceKm,
		DurationMin: vehicleSelection.ReturnDurationMin,
		Cost: Compute(Inputs{
			DistanceKm:      vehicleSelection.ReturnDistanceKm,
			DurationMinutes: vehicleSelection.ReturnDurationMin,
			Settings:        settings,
		}),
	}

	combined := combineBreakdowns(approach.Cost, service.Cost, ret.Cost)
	totalDistance := approach.DistanceKm + service.DistanceKm + ret.DistanceKm
	totalDuration := approach.DurationMin + service.DurationMin + ret.DurationMin

	return domain.TripAnalysis{
		Approach:          &approach,
		Service:           service,
		Return:            &ret,
		TotalDistanceKm:   totalDistance,
		TotalDurationMin:  totalDuration,
		TotalInternalCost: combined.TotalInternal,
		CombinedCost:      combined,
		RoutingSource:     domain.RoutingSourceVehicleSelection,
	}
}

// combineBreakdowns sums each component's amount across segments. Display
// fields (Description, Source) are taken from the first segment whose
// component amount is non-zero, per §4.5's "first non-zero segment for
// display only" rule.
func combineBreakdowns(segments ...domain.CostBreakdown) domain.CostBreakdown {
	pick := func(get func(domain.CostBreakdown) domain.CostComponent) domain.CostComponent {
		var sum float64
		var display domain.CostComponent
		found := false
		for _, seg := range segments {
			c := get(seg)
			sum += c.Amount
			if !found && c.Amount != 0 {
				display = c
				found = true
			}
		}
		if !found && len(segments) > 0 {
			display = get(segments[0])
		}
		display.Amount = money.ToFloat(money.FromFloat(sum))
		return display
	}

	combined := domain.CostBreakdown{
		Fuel:    pick(func(b domain.CostBreakdown) domain.CostComponent { return b.Fuel }),
		Tolls:   pick(func(b domain.CostBreakdown) domain.CostComponent { return b.Tolls }),
		Wear:    pick(func(b domain.CostBreakdown) domain.CostComponent { return b.Wear }),
		Driver:  pick(func(b domain.CostBreakdown) domain.CostComponent { return b.Driver }),
		Parking: pick(func(b domain.CostBreakdown) domain.CostComponent { return b.Parking }),
	}

	var total float64
	for _, seg := range segments {
		total += seg.TotalInternal
	}
	combined.TotalInternal = money.ToFloat(money.FromFloat(total))
	return combined
}
