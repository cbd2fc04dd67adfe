// Package rateeval implements the time/rate evaluator of §4.6: advanced
// (night/weekend) rate matching and application, seasonal multiplier
// matching and application, and the zone multiplier rule. Every time
// comparison is done in Europe/Paris wall-clock, never converted to UTC,
// matching stored values that are themselves already local wall-clock.
package rateeval

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// TimeInRange reports whether (h,m) falls in [start,end) expressed as
// "HH:MM" strings. Overnight ranges (start minute-of-day > end) are
// treated as two arcs wrapping midnight: [start,24:00) ∪ [00:00,end).
func TimeInRange(hour, minute int, start, end string) bool {
	cur := hour*60 + minute
	startMin, okS := parseHHMM(start)
	endMin, okE := parseHHMM(end)
	if !okS || !okE {
		return false
	}
	if startMin <= endMin {
		return cur >= startMin && cur < endMin
	}
	return cur >= startMin || cur < endMin
}

func parseHHMM(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}

// DayInList reports whether weekday (0=Sunday..6=Saturday) is present in
// days.
func DayInList(weekday int, days []int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

// applyAdjustment applies a PERCENTAGE or FIXED_AMOUNT adjustment to
// price.
func applyAdjustment(price float64, adjType domain.AdjustmentType, value float64) float64 {
	switch adjType {
	case domain.AdjustmentPercentage:
		return price * (1 + value/100)
	case domain.AdjustmentFixedAmount:
		return price + value
	default:
		return price
	}
}

// ApplyAdvancedRates evaluates rates against pickupAt (interpreted as
// Europe/Paris wall-clock) in descending priority order, applying each
// active, matching rate in turn and recording an AppliedRule per match.
func ApplyAdvancedRates(price float64, rates []domain.AdvancedRate, pickupAt time.Time) (float64, []domain.AppliedRule) {
	sorted := make([]domain.AdvancedRate, len(rates))
	copy(sorted, rates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority > sorted[j].Priority })

	var applied []domain.AppliedRule
	hour, minute := pickupAt.Hour(), pickupAt.Minute()
	weekday := int(pickupAt.Weekday())

	for _, rate := range sorted {
		if !rate.IsActive {
			continue
		}
		matches := false
		switch rate.AppliesTo {
		case domain.AdvancedRateNight:
			matches = TimeInRange(hour, minute, rate.StartTime, rate.EndTime)
		case domain.AdvancedRateWeekend:
			matches = DayInList(weekday, rate.EffectiveDays())
		}
		if !matches {
			continue
		}

		before := price
		price = applyAdjustment(price, rate.AdjustmentType, rate.Value)
		applied = append(applied, domain.AppliedRule{
			Type:           domain.RuleAdvancedRate,
			SourceID:       rate.ID,
			AdjustmentType: rate.AdjustmentType,
			Value:          rate.Value,
			PriceBefore:    before,
			PriceAfter:     price,
		})
	}
	return price, applied
}

// ApplySeasonalMultipliers evaluates multipliers whose [startDate,endDate]
// window contains pickupAt's calendar date (end date inclusive,
// interpreted as end-of-day), in descending priority order.
func ApplySeasonalMultipliers(price float64, multipliers []domain.SeasonalMultiplier, pickupAt time.Time) (float64, []domain.AppliedRule) {
	sorted := make([]domain.SeasonalMultiplier, len(multipliers))
	copy(sorted, multipliers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority > sorted[j].Priority })

	var applied []domain.AppliedRule
	for _, sm := range sorted {
		if !sm.IsActive {
			continue
		}
		start, err1 := time.ParseInLocation("2006-01-02", sm.StartDate, pickupAt.Location())
		end, err2 := time.ParseInLocation("2006-01-02", sm.EndDate, pickupAt.Location())
		if err1 != nil || err2 != nil {
			continue
		}
		endExclusive := end.Add(24 * time.Hour)
		if pickupAt.Before(start) || !pickupAt.Before(endExclusive) {
			continue
		}

		before := price
		price = price * sm.Multiplier
		applied = append(applied, domain.AppliedRule{
			Type:        domain.RuleSeasonalMultiplier,
			SourceID:    sm.ID,
			Value:       sm.Multiplier,
			PriceBefore: before,
			PriceAfter:  price,
		})
	}
	return price, applied
}

// ZoneMultiplier returns max(pickupMultiplier, dropoffMultiplier) and the
// AppliedRule recording which side supplied it. Missing multipliers
// default to 1.0 (§4.6).
func ZoneMultiplier(pickupZone, dropoffZone *domain.Zone) (float64, domain.AppliedRule) {
	pickupMult, dropoffMult := 1.0, 1.0
	var pickupID, dropoffID, pickupCode, dropoffCode string
	if pickupZone != nil {
		pickupMult = pickupZone.EffectiveMultiplier()
		pickupID, pickupCode = pickupZone.ID, pickupZone.Code
	}
	if dropoffZone != nil {
		dropoffMult = dropoffZone.EffectiveMultiplier()
		dropoffID, dropoffCode = dropoffZone.ID, dropoffZone.Code
	}

	side, zoneID, zoneCode, multiplier := "pickup", pickupID, pickupCode, pickupMult
	if dropoffMult > pickupMult {
		side, zoneID, zoneCode, multiplier = "dropoff", dropoffID, dropoffCode, dropoffMult
	}

	return multiplier, domain.AppliedRule{
		Type:       domain.RuleZoneMultiplier,
		ZoneID:     zoneID,
		ZoneCode:   zoneCode,
		Side:       side,
		Multiplier: multiplier,
	}
}
