package obs

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the prometheus collectors exercised by the pricing and
// quote hot paths, mirroring the teacher's PricingController metrics block.
type Metrics struct {
	PricingRequests       *prometheus.CounterVec
	PricingLatency        prometheus.Histogram
	FallbackReasons       *prometheus.CounterVec
	ProfitabilityOutcomes *prometheus.CounterVec
	QuoteTransitions      *prometheus.CounterVec
	ProviderDegradations  *prometheus.CounterVec
}

// NewMetrics registers and returns the metric collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PricingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_pricing_requests_total",
			Help: "Pricing requests handled, by mode (FIXED_GRID/DYNAMIC).",
		}, []string{"mode"}),
		PricingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_pricing_duration_seconds",
			Help:    "Latency of price computation.",
			Buckets: prometheus.DefBuckets,
		}),
		FallbackReasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_pricing_fallback_reason_total",
			Help: "Count of dynamic-pricing fallbacks by reason.",
		}, []string{"reason"}),
		ProfitabilityOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_pricing_profitability_total",
			Help: "Count of computed prices by profitability indicator.",
		}, []string{"indicator"}),
		QuoteTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_quote_transitions_total",
			Help: "Count of quote status transitions, by result.",
		}, []string{"to_status", "result"}),
		ProviderDegradations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_provider_degradations_total",
			Help: "Count of external provider calls that degraded to an estimate.",
		}, []string{"provider"}),
	}

	reg.MustRegister(
		m.PricingRequests,
		m.PricingLatency,
		m.FallbackReasons,
		m.ProfitabilityOutcomes,
		m.QuoteTransitions,
		m.ProviderDegradations,
	)
	return m
}
