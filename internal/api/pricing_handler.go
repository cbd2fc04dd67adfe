package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/obs"
	"github.com/aurigo/dispatch-core/internal/pricing"
	"github.com/aurigo/dispatch-core/internal/repo"
)

// PricingStore is the minimal repository surface PricingHandler needs to
// assemble a pricing.Context, per §6.C's repository contracts.
type PricingStore interface {
	GetContact(ctx context.Context, orgID, id string) (domain.Contact, error)
	ActiveZones(ctx context.Context, orgID string) ([]domain.Zone, error)
	GetSettings(ctx context.Context, orgID string) (domain.OrganizationPricingSettings, error)
	GetVehicleCategory(ctx context.Context, orgID, id string) (domain.VehicleCategory, error)
}

// repoStore adapts the concrete *repo.* types to PricingStore. Production
// wiring passes one built over a single *gorm.DB; tests substitute a fake.
type repoStore struct {
	contacts *repo.ContactRepository
	zones    *repo.ZoneRepository
	settings *repo.SettingsRepository
	vehicles *repo.VehicleCategoryRepository
}

// NewRepoStore builds the PricingStore used by cmd/server's production
// wiring from the four repositories it needs.
func NewRepoStore(contacts *repo.ContactRepository, zones *repo.ZoneRepository, settings *repo.SettingsRepository, vehicles *repo.VehicleCategoryRepository) PricingStore {
	return &repoStore{contacts: contacts, zones: zones, settings: settings, vehicles: vehicles}
}

func (s *repoStore) GetContact(ctx context.Context, orgID, id string) (domain.Contact, error) {
	return s.contacts.Get(ctx, orgID, id)
}

func (s *repoStore) ActiveZones(ctx context.Context, orgID string) ([]domain.Zone, error) {
	return s.zones.ActiveForOrg(ctx, orgID)
}

func (s *repoStore) GetSettings(ctx context.Context, orgID string) (domain.OrganizationPricingSettings, error) {
	return s.settings.Get(ctx, orgID)
}

func (s *repoStore) GetVehicleCategory(ctx context.Context, orgID, id string) (domain.VehicleCategory, error) {
	return s.vehicles.Get(ctx, orgID, id)
}

// PricingHandler implements the §6.A Pricing API over HTTP.
type PricingHandler struct {
	engine  *pricing.Engine
	store   PricingStore
	metrics *obs.Metrics
	logger  *obs.Logger
}

// NewPricingHandler wires engine against store, logging every request to
// logger and recording the §10 metrics set on metrics.
func NewPricingHandler(engine *pricing.Engine, store PricingStore, metrics *obs.Metrics, logger *obs.Logger) *PricingHandler {
	return &PricingHandler{engine: engine, store: store, metrics: metrics, logger: logger}
}

// quoteRequestBody is the wire shape of a POST /pricing/quote body. OrgID
// is read separately, from the tenant header the boundary above this
// service is assumed to enforce (§1 Non-goals: multi-tenant isolation
// assumed enforced at the boundary).
type quoteRequestBody struct {
	domain.PricingRequest
	ConflictStrategy *domain.ConflictStrategy `json:"conflict_strategy,omitempty"`
}

// Quote handles POST /pricing/quote: resolves the request's contact, zones,
// settings and vehicle category, then runs the pricing engine and returns
// the full PricingResult plus a FareCalculation display breakdown.
func (h *PricingHandler) Quote(c *gin.Context) {
	orgID := c.GetHeader("X-Org-ID")
	if orgID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "X-Org-ID header is required", Key: "invalidRequest"})
		return
	}

	var body quoteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Key: "invalidRequest"})
		return
	}

	ctx := c.Request.Context()

	contact, err := h.store.GetContact(ctx, orgID, body.ContactID)
	if err != nil {
		writeError(c, err)
		return
	}
	zones, err := h.store.ActiveZones(ctx, orgID)
	if err != nil {
		writeError(c, err)
		return
	}
	settings, err := h.store.GetSettings(ctx, orgID)
	if err != nil {
		writeError(c, err)
		return
	}
	var vehicleCategory domain.VehicleCategory
	if body.VehicleCategoryID != "" {
		vehicleCategory, err = h.store.GetVehicleCategory(ctx, orgID, body.VehicleCategoryID)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	pctx := pricing.Context{
		Contact:          contact,
		Zones:            zones,
		Settings:         settings,
		VehicleCategory:  vehicleCategory,
		ConflictStrategy: body.ConflictStrategy,
	}

	start := time.Now()
	result := h.engine.Price(body.PricingRequest, pctx)
	h.recordMetrics(result, time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"pricing_result":   result,
		"fare_calculation": pricing.BuildFareCalculation(result),
	})
}

func (h *PricingHandler) recordMetrics(result domain.PricingResult, latency time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.PricingRequests.WithLabelValues(string(result.Mode)).Inc()
	h.metrics.PricingLatency.Observe(latency.Seconds())
	h.metrics.ProfitabilityOutcomes.WithLabelValues(string(result.Profitability)).Inc()
	if result.FallbackReason != nil {
		h.metrics.FallbackReasons.WithLabelValues(string(*result.FallbackReason)).Inc()
	}
}

// overrideRequestBody is the wire shape of POST /pricing/override.
type overrideRequestBody struct {
	Result                domain.PricingResult `json:"pricing_result"`
	NewPrice              float64              `json:"new_price"`
	Reason                string               `json:"reason,omitempty"`
	MinimumMarginPercent  *float64             `json:"minimum_margin_percent,omitempty"`
}

// Override handles POST /pricing/override: applies a manual price override
// to a previously computed PricingResult per §4.10.
func (h *PricingHandler) Override(c *gin.Context) {
	var body overrideRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Key: "invalidRequest"})
		return
	}

	updated, err := pricing.ApplyOverride(body.Result, body.NewPrice, body.Reason, body.MinimumMarginPercent, h.engine.Classifier(domain.OrganizationPricingSettings{}))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
