package pricing

import (
	"errors"
	"time"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// ErrInvalidPrice and ErrBelowMinimumMargin are the two rejection reasons
// for a manual override, per §4.10.
var (
	ErrInvalidPrice       = errors.New("pricing: INVALID_PRICE")
	ErrBelowMinimumMargin = errors.New("pricing: BELOW_MINIMUM_MARGIN")
)

// ProfitabilityClassifier maps a margin percent to an indicator, letting
// ApplyOverride reuse an Engine's configured thresholds without importing
// config directly.
type ProfitabilityClassifier func(marginPercent float64) domain.ProfitabilityIndicator

// ApplyOverride replaces result's price with newPrice, recomputing margin
// and profitability and appending a MANUAL_OVERRIDE audit rule. It never
// mutates result in place — it returns a new PricingResult, consistent
// with every other engine in this package.
func ApplyOverride(result domain.PricingResult, newPrice float64, reason string, minimumMarginPercent *float64, profitability ProfitabilityClassifier) (domain.PricingResult, error) {
	if newPrice <= 0 {
		return result, ErrInvalidPrice
	}

	margin := newPrice - result.InternalCost
	marginPercent := 0.0
	if newPrice != 0 {
		marginPercent = margin / newPrice * 100
	}

	if minimumMarginPercent != nil && marginPercent < *minimumMarginPercent {
		return result, ErrBelowMinimumMargin
	}

	previousPrice := result.Price
	priceChange := newPrice - previousPrice
	priceChangePercent := 0.0
	if previousPrice != 0 {
		priceChangePercent = priceChange / previousPrice * 100
	}

	rule := domain.AppliedRule{
		Type:                domain.RuleManualOverride,
		PriceChange:         round2(priceChange),
		PriceChangePercent:  round2(priceChangePercent),
		Reason:              reason,
		OverriddenAt:        time.Now().Format(time.RFC3339),
		IsContractPriceOver: result.IsContractPrice,
		PriceBefore:         previousPrice,
		PriceAfter:          newPrice,
	}

	updated := result
	updated.Price = round2(newPrice)
	updated.Margin = round2(margin)
	updated.MarginPercent = round2(marginPercent)
	updated.AppliedRules = append(append([]domain.AppliedRule{}, result.AppliedRules...), rule)
	updated.Profitability = profitability(marginPercent)
	updated.Override = &domain.OverrideData{Applied: true, PreviousPrice: previousPrice}

	return updated, nil
}
