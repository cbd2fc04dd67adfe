package pricing

import (
	"time"

	"github.com/aurigo/dispatch-core/internal/config"
	"github.com/aurigo/dispatch-core/internal/cost"
	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/grid"
	"github.com/aurigo/dispatch-core/internal/money"
	"github.com/aurigo/dispatch-core/internal/rateeval"
	"github.com/aurigo/dispatch-core/internal/segment"
	"github.com/aurigo/dispatch-core/internal/zone"
)

// Engine runs the pricing orchestration algorithm against a fixed set of
// process-level defaults.
type Engine struct {
	Defaults config.Config
}

// New builds an Engine over defaults.
func New(defaults config.Config) *Engine {
	return &Engine{Defaults: defaults}
}

// Price runs the full §4.8 algorithm and returns a fully annotated
// PricingResult. It never returns an error: an unresolvable partner match
// always falls through to dynamic pricing, which is always computable.
func (e *Engine) Price(req domain.PricingRequest, ctx Context) domain.PricingResult {
	now := time.Now().In(e.Defaults.Location())
	pickupAt := now
	if req.PickupAt != nil {
		pickupAt = *req.PickupAt
	}

	distanceKm := e.Defaults.DefaultDistanceKm
	if req.EstimatedDistanceKm != nil {
		distanceKm = *req.EstimatedDistanceKm
	}
	durationMinutes := e.Defaults.DefaultDurationMin
	if req.EstimatedDurationMinutes != nil {
		durationMinutes = *req.EstimatedDurationMinutes
	}

	var appliedRules []domain.AppliedRule

	pickupZone := zone.ClassifyPoint(req.Pickup, ctx.Zones, ctx.ConflictStrategy)
	dropoffZone := zone.ClassifyPoint(req.Dropoff, ctx.Zones, ctx.ConflictStrategy)
	appliedRules = append(appliedRules, zoneMappingRules(pickupZone, dropoffZone)...)

	if !ctx.Contact.IsPartner {
		return e.dynamic(req, ctx, distanceKm, durationMinutes, pickupAt, pickupZone, dropoffZone, appliedRules, domain.FallbackPrivateClient, nil)
	}
	if ctx.Contact.PartnerContract == nil {
		return e.dynamic(req, ctx, distanceKm, durationMinutes, pickupAt, pickupZone, dropoffZone, appliedRules, domain.FallbackNoContract, nil)
	}

	contract := ctx.Contact.PartnerContract
	pickupZoneID, dropoffZoneID := zoneID(pickupZone), zoneID(dropoffZone)

	switch req.TripType {
	case domain.TripTypeTransfer:
		match, rejected := grid.MatchZoneRoute(contract.ZoneRoutes, req.VehicleCategoryID, pickupZoneID, dropoffZoneID, req.Pickup, req.Dropoff)
		if match != nil {
			return e.fixedGrid(req, ctx, distanceKm, durationMinutes, match, appliedRules)
		}
		details := &domain.GridSearchDetails{RoutesChecked: rejected}
		return e.dynamic(req, ctx, distanceKm, durationMinutes, pickupAt, pickupZone, dropoffZone, appliedRules, domain.FallbackNoRouteMatch, details)

	case domain.TripTypeExcursion:
		match, rejected := grid.MatchExcursion(contract.ExcursionPackages, req.VehicleCategoryID, pickupZoneID, dropoffZoneID)
		if match != nil {
			return e.fixedGrid(req, ctx, distanceKm, durationMinutes, match, appliedRules)
		}
		details := &domain.GridSearchDetails{ExcursionsChecked: rejected}
		return e.dynamic(req, ctx, distanceKm, durationMinutes, pickupAt, pickupZone, dropoffZone, appliedRules, domain.FallbackNoExcursionMatch, details)

	case domain.TripTypeDispo:
		match, rejected := grid.MatchDispo(contract.DispoPackages, req.VehicleCategoryID, req.DurationHours, distanceKm)
		if match != nil {
			return e.fixedGrid(req, ctx, distanceKm, durationMinutes, match, appliedRules)
		}
		details := &domain.GridSearchDetails{DisposChecked: rejected}
		return e.dynamic(req, ctx, distanceKm, durationMinutes, pickupAt, pickupZone, dropoffZone, appliedRules, domain.FallbackNoDispoMatch, details)
	}

	return e.dynamic(req, ctx, distanceKm, durationMinutes, pickupAt, pickupZone, dropoffZone, appliedRules, domain.FallbackNoZoneMatch, nil)
}

func zoneID(z *domain.Zone) string {
	if z == nil {
		return ""
	}
	return z.ID
}

func zoneMappingRules(pickupZone, dropoffZone *domain.Zone) []domain.AppliedRule {
	var rules []domain.AppliedRule
	if pickupZone != nil {
		rules = append(rules, domain.AppliedRule{Type: domain.RuleZoneMapping, ZoneID: pickupZone.ID, ZoneCode: pickupZone.Code, Side: "pickup"})
	}
	if dropoffZone != nil {
		rules = append(rules, domain.AppliedRule{Type: domain.RuleZoneMapping, ZoneID: dropoffZone.ID, ZoneCode: dropoffZone.Code, Side: "dropoff"})
	}
	return rules
}

// fixedGrid builds a FIXED_GRID result for a grid match. Category
// multiplier is never reapplied here: the grid price is the negotiated
// partner price in full.
func (e *Engine) fixedGrid(req domain.PricingRequest, ctx Context, distanceKm, durationMinutes float64, match *grid.Match, appliedRules []domain.AppliedRule) domain.PricingResult {
	resolvedSettings := cost.ResolveSettings(ctx.Settings, e.Defaults.Cost)
	analysis := cost.Shadow(distanceKm, durationMinutes, resolvedSettings, nil)

	price := match.EffectivePrice
	appliedRules = append(appliedRules, match.Rule)

	margin := price - analysis.TotalInternalCost
	marginPercent := 0.0
	if price != 0 {
		marginPercent = margin / price * 100
	}

	result := domain.PricingResult{
		Mode:            domain.PricingModeFixedGrid,
		Price:           round2(price),
		InternalCost:    round2(analysis.TotalInternalCost),
		Margin:          round2(margin),
		MarginPercent:   round2(marginPercent),
		AppliedRules:    appliedRules,
		IsContractPrice: true,
		MatchedGrid:     &domain.MatchedGrid{Kind: match.Kind, ID: match.ID, Price: price},
		TripAnalysis:    analysis,
		CalculatedAt:    time.Now(),
	}

	commission, effMarginPct := applyCommission(ctx.Contact, price, analysis.TotalInternalCost)
	result.Commission = commission
	result.Profitability = classify(effMarginPct, ctx.Settings, e.Defaults.Profitability)
	return result
}

// dynamic runs the full dynamic pricing formula: base price → zone
// multiplier → advanced rates → seasonal multipliers → cost.
func (e *Engine) dynamic(req domain.PricingRequest, ctx Context, distanceKm, durationMinutes float64, pickupAt time.Time, pickupZone, dropoffZone *domain.Zone, appliedRules []domain.AppliedRule, fallbackReason domain.FallbackReason, gridSearch *domain.GridSearchDetails) domain.PricingResult {
	durationHours := durationMinutes / 60

	ratePerKm, ratePerHour, _ := resolveRates(ctx.Settings, ctx.VehicleCategory)
	basePrice := maxFloat(distanceKm*ratePerKm, durationHours*ratePerHour)

	categoryRule := domain.AppliedRule{
		Type:        domain.RuleCategoryRate,
		RatePerKm:   ratePerKm,
		RatePerHour: ratePerHour,
		PriceBefore: 0,
		PriceAfter:  basePrice,
	}
	appliedRules = append(appliedRules, categoryRule)

	priceWithMargin := basePrice * (1 + ctx.Settings.TargetMarginPct/100)

	price := priceWithMargin
	zoneMult, zoneRule := e.resolveZoneMultiplier(req, ctx, pickupZone, dropoffZone, durationMinutes)
	before := price
	price = price * zoneMult
	zoneRule.PriceBefore = before
	zoneRule.PriceAfter = price
	appliedRules = append(appliedRules, zoneRule)

	var advancedApplied, seasonalApplied []domain.AppliedRule
	price, advancedApplied = rateeval.ApplyAdvancedRates(price, ctx.AdvancedRates, pickupAt)
	appliedRules = append(appliedRules, advancedApplied...)

	price, seasonalApplied = rateeval.ApplySeasonalMultipliers(price, ctx.SeasonalMultipliers, pickupAt)
	appliedRules = append(appliedRules, seasonalApplied...)

	resolvedSettings := cost.ResolveSettings(ctx.Settings, e.Defaults.Cost)
	analysis := cost.Shadow(distanceKm, durationMinutes, resolvedSettings, nil)

	margin := price - analysis.TotalInternalCost
	marginPercent := 0.0
	if price != 0 {
		marginPercent = margin / price * 100
	}

	result := domain.PricingResult{
		Mode:           domain.PricingModeDynamic,
		Price:          round2(price),
		InternalCost:   round2(analysis.TotalInternalCost),
		Margin:         round2(margin),
		MarginPercent:  round2(marginPercent),
		AppliedRules:   appliedRules,
		FallbackReason: &fallbackReason,
		GridSearch:     gridSearch,
		TripAnalysis:   analysis,
		CalculatedAt:   time.Now(),
	}

	commission, effMarginPct := applyCommission(ctx.Contact, price, analysis.TotalInternalCost)
	result.Commission = commission
	result.Profitability = classify(effMarginPct, ctx.Settings, e.Defaults.Profitability)
	return result
}

// resolveZoneMultiplier implements §4.6/§4.8's zone-multiplier step: the
// flat max(pickup,dropoff) multiplier, unless a polyline is available, in
// which case the route-segmented weighted multiplier from §4.4 is used
// instead (2.3/2.4's "invoke when a polyline is available" control flow).
func (e *Engine) resolveZoneMultiplier(req domain.PricingRequest, ctx Context, pickupZone, dropoffZone *domain.Zone, durationMinutes float64) (float64, domain.AppliedRule) {
	if req.Polyline != "" {
		result := segment.FromPolyline(req.Polyline, ctx.Zones, durationMinutes, ctx.ConflictStrategy)
		return result.WeightedMultiplier, domain.AppliedRule{
			Type:       domain.RuleZoneMultiplier,
			Side:       "route",
			Multiplier: result.WeightedMultiplier,
		}
	}
	return rateeval.ZoneMultiplier(pickupZone, dropoffZone)
}

// resolveRates implements §4.9: when the category defines its own rates,
// they are used as-is and the category's own priceMultiplier is not
// reapplied on top of them; otherwise organization rates are scaled by the
// category's priceMultiplier. This does not affect the independent §4.6
// zone multiplier, which always applies downstream regardless of which
// branch is taken here.
func resolveRates(settings domain.OrganizationPricingSettings, category domain.VehicleCategory) (ratePerKm, ratePerHour float64, usedCategoryRates bool) {
	if category.HasCategoryRates() {
		return *category.DefaultRatePerKm, *category.DefaultRatePerHour, true
	}
	mult := category.PriceMultiplier
	if mult == 0 {
		mult = 1.0
	}
	return settings.BaseRatePerKm * mult, settings.BaseRatePerHour * mult, false
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func round2(v float64) float64 {
	return money.ToFloat(money.FromFloat(v))
}

// Classifier binds settings to a ProfitabilityClassifier so callers
// applying a manual override can reuse the engine's configured
// thresholds.
func (e *Engine) Classifier(settings domain.OrganizationPricingSettings) ProfitabilityClassifier {
	return func(marginPercent float64) domain.ProfitabilityIndicator {
		return classify(marginPercent, settings, e.Defaults.Profitability)
	}
}

// classify maps an effective margin percent to a profitability indicator
// using organization-configured thresholds, falling back to platform
// defaults (§4.8, §9 open-question resolution: every indicator is computed
// from the numeric margin; a zero price yields a 0% margin, which is orange
// under the default thresholds and red when the organization's orange
// threshold is above 0).
func classify(marginPercent float64, settings domain.OrganizationPricingSettings, defaults config.ProfitabilityDefaults) domain.ProfitabilityIndicator {
	green := defaults.GreenThresholdPercent
	orange := defaults.OrangeThresholdPercent
	if settings.GreenThresholdPercent != nil {
		green = *settings.GreenThresholdPercent
	}
	if settings.OrangeThresholdPercent != nil {
		orange = *settings.OrangeThresholdPercent
	}

	switch {
	case marginPercent >= green:
		return domain.ProfitabilityGreen
	case marginPercent >= orange:
		return domain.ProfitabilityOrange
	default:
		return domain.ProfitabilityRed
	}
}
