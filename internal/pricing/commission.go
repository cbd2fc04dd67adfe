package pricing

import "github.com/aurigo/dispatch-core/internal/domain"

// applyCommission implements §4.12: a zero or absent commission produces
// no CommissionData and the gross margin percent is used directly for
// profitability classification; a positive commission computes the
// partner's effective margin net of both internal cost and commission.
func applyCommission(contact domain.Contact, price, internalCost float64) (*domain.CommissionData, float64) {
	grossMarginPercent := 0.0
	if price != 0 {
		grossMarginPercent = (price - internalCost) / price * 100
	}

	if contact.PartnerContract == nil || contact.PartnerContract.CommissionPercent <= 0 {
		return nil, grossMarginPercent
	}

	commissionPercent := contact.PartnerContract.CommissionPercent
	commissionAmount := round2(price * commissionPercent / 100)
	effectiveMargin := price - internalCost - commissionAmount
	effectiveMarginPercent := 0.0
	if price != 0 {
		effectiveMarginPercent = effectiveMargin / price * 100
	}

	return &domain.CommissionData{
		CommissionPercent:      commissionPercent,
		CommissionAmount:       commissionAmount,
		EffectiveMargin:        round2(effectiveMargin),
		EffectiveMarginPercent: round2(effectiveMarginPercent),
	}, effectiveMarginPercent
}
