package api

import (
	"github.com/gin-gonic/gin"

	"github.com/aurigo/dispatch-core/internal/obs"
)

// NewRouter builds the gin.Engine serving the §6.A/§6.B customer-facing
// Pricing API and Quote lifecycle API, matching the teacher's separation
// between a gin-based customer API and a mux-based internal ops router
// (see NewOpsRouter).
func NewRouter(pricingHandler *PricingHandler, quoteHandler *QuoteHandler, logger *obs.Logger, limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(SecurityHeaders())
	r.Use(RequestLogging(logger))
	r.Use(limiter.Middleware())

	pricingGroup := r.Group("/pricing")
	{
		pricingGroup.POST("/quote", pricingHandler.Quote)
		pricingGroup.POST("/override", pricingHandler.Override)
	}

	quoteGroup := r.Group("/quotes")
	{
		quoteGroup.POST("/:id/transitions", quoteHandler.Transition)
	}

	return r
}
