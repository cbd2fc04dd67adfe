// Package pricing implements the pricing engine orchestrator of §4.8: it
// wires the zone, grid, rateeval and cost packages together into one
// PricingResult per request, choosing between a partner FIXED_GRID price
// and the DYNAMIC formula.
package pricing

import "github.com/aurigo/dispatch-core/internal/domain"

// Context is everything the orchestrator needs beyond the request itself:
// the contact being quoted, the organization's zones/settings, and its
// optional advanced-rate and seasonal-multiplier catalogs.
type Context struct {
	Contact             domain.Contact
	Zones               []domain.Zone
	Settings            domain.OrganizationPricingSettings
	VehicleCategory     domain.VehicleCategory
	AdvancedRates       []domain.AdvancedRate
	SeasonalMultipliers []domain.SeasonalMultiplier
	ConflictStrategy    *domain.ConflictStrategy
}
