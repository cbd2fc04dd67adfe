package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/obs"
	"github.com/aurigo/dispatch-core/internal/quote"
	"github.com/aurigo/dispatch-core/internal/repo"
)

// QuoteStore is the persistence seam QuoteHandler needs: load a quote,
// then persist a successful transition as the one atomic unit §5 requires.
type QuoteStore interface {
	Get(ctx context.Context, orgID, id string) (domain.Quote, error)
	ApplyTransition(ctx context.Context, orgID string, quote domain.Quote, audit domain.QuoteStatusAuditLog, now time.Time) error
}

// QuoteHandler implements the §6.B Quote lifecycle API over HTTP.
type QuoteHandler struct {
	store      QuoteStore
	orderStore quote.OrderStore
	metrics    *obs.Metrics
	logger     *obs.Logger
	now        func() time.Time
}

// NewQuoteHandler wires store (typically a *repo.QuoteRepository) and
// orderStore (typically a *repo.OrderStore) behind the Quote lifecycle API.
func NewQuoteHandler(store QuoteStore, orderStore quote.OrderStore, metrics *obs.Metrics, logger *obs.Logger) *QuoteHandler {
	return &QuoteHandler{store: store, orderStore: orderStore, metrics: metrics, logger: logger, now: time.Now}
}

// transitionRequestBody is the wire shape of POST /quotes/:id/transitions.
type transitionRequestBody struct {
	NewStatus domain.QuoteStatus `json:"new_status"`
	ActorID   *string            `json:"actor_id,omitempty"`
	Reason    *string            `json:"reason,omitempty"`
}

// TransitionResult is the §6.B wire response: success plus either the
// updated quote or a stable errorKey a UI can localize.
type TransitionResult struct {
	Success bool         `json:"success"`
	Quote   *domain.Quote `json:"quote,omitempty"`
	Error   string       `json:"error,omitempty"`
	ErrorKey string      `json:"error_key,omitempty"`
}

// Transition handles POST /quotes/:id/transitions: runs the state machine
// and, on success, persists the new status, timestamp, any created Order
// and the audit log entry as one atomic unit.
func (h *QuoteHandler) Transition(c *gin.Context) {
	orgID := c.GetHeader("X-Org-ID")
	if orgID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "X-Org-ID header is required", Key: "invalidRequest"})
		return
	}
	quoteID := c.Param("id")

	var body transitionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Key: "invalidRequest"})
		return
	}

	ctx := c.Request.Context()
	now := h.now()

	current, err := h.store.Get(ctx, orgID, quoteID)
	if err != nil {
		h.recordTransition(body.NewStatus, "notFound")
		c.JSON(http.StatusNotFound, TransitionResult{Success: false, Error: err.Error(), ErrorKey: "notFound"})
		return
	}

	updated, audit, err := quote.Transition(ctx, h.orderStore, current, body.NewStatus, body.ActorID, body.Reason, now)
	if err != nil {
		status, key := errorKeyFor(err)
		h.recordTransition(body.NewStatus, key)
		c.JSON(status, TransitionResult{Success: false, Error: err.Error(), ErrorKey: key})
		return
	}

	if err := h.store.ApplyTransition(ctx, orgID, updated, audit, now); err != nil {
		h.recordTransition(body.NewStatus, "internalError")
		c.JSON(http.StatusInternalServerError, TransitionResult{Success: false, Error: "internal error", ErrorKey: "internalError"})
		return
	}

	h.recordTransition(body.NewStatus, "success")
	c.JSON(http.StatusOK, TransitionResult{Success: true, Quote: &updated})
}

func (h *QuoteHandler) recordTransition(newStatus domain.QuoteStatus, result string) {
	if h.metrics == nil {
		return
	}
	h.metrics.QuoteTransitions.WithLabelValues(string(newStatus), result).Inc()
}

// Ensure *repo.QuoteRepository and *repo.OrderStore satisfy the interfaces
// above; a compile-time check, not a runtime dependency.
var (
	_ QuoteStore       = (*repo.QuoteRepository)(nil)
	_ quote.OrderStore = (*repo.OrderStore)(nil)
)
