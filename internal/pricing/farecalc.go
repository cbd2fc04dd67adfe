package pricing

import "github.com/aurigo/dispatch-core/internal/domain"

// FareLine is one human-readable line of a fare breakdown: a label, the
// amount it contributed, and the kind of adjustment it represents. It
// exists purely for display (quote PDFs, a booking summary screen) — it
// never feeds back into the pricing math, which always works off
// PricingResult.AppliedRules.
type FareLine struct {
	Label  string         `json:"label"`
	Amount float64        `json:"amount"`
	Kind   domain.RuleKind `json:"kind,omitempty"`
}

// FareCalculation is a line-item rendering of a PricingResult, richer than
// the single opaque Price total: a base fare line followed by one line per
// AppliedRule that actually moved the price, ending at the final price.
type FareCalculation struct {
	Lines []FareLine `json:"lines"`
	Total float64    `json:"total"`
}

// BuildFareCalculation walks result.AppliedRules in order and renders one
// FareLine per rule whose PriceAfter differs from its PriceBefore, plus a
// leading base-fare line seeded from the first rule's PriceBefore (or the
// final price when AppliedRules is empty).
func BuildFareCalculation(result domain.PricingResult) FareCalculation {
	base := result.Price
	if len(result.AppliedRules) > 0 {
		base = result.AppliedRules[0].PriceBefore
	}

	calc := FareCalculation{
		Lines: []FareLine{{Label: baseLabel(result), Amount: round2(base)}},
	}

	for _, rule := range result.AppliedRules {
		delta := round2(rule.PriceAfter - rule.PriceBefore)
		if delta == 0 {
			continue
		}
		calc.Lines = append(calc.Lines, FareLine{
			Label:  fareLineLabel(rule),
			Amount: delta,
			Kind:   rule.Type,
		})
	}

	calc.Total = round2(result.Price)
	return calc
}

func baseLabel(result domain.PricingResult) string {
	if result.Mode == domain.PricingModeFixedGrid {
		return "Catalog price"
	}
	return "Base fare"
}

func fareLineLabel(rule domain.AppliedRule) string {
	switch rule.Type {
	case domain.RuleZoneMultiplier:
		return "Zone multiplier (" + rule.ZoneCode + ")"
	case domain.RuleAdvancedRate:
		return "Advanced rate adjustment"
	case domain.RuleSeasonalMultiplier:
		return "Seasonal multiplier"
	case domain.RulePartnerOverride:
		return "Partner negotiated price"
	case domain.RuleCatalogPrice:
		return "Catalog price"
	case domain.RuleManualOverride:
		return "Manual override"
	default:
		return string(rule.Type)
	}
}
