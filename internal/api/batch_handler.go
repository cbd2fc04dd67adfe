package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/obs"
	"github.com/aurigo/dispatch-core/internal/quote"
)

// ExpiryStore is what the auto-expiry batch job needs: the candidate list
// for an org and a way to persist each resulting transition atomically.
type ExpiryStore interface {
	PendingExpiry(ctx context.Context, orgID string, now time.Time) ([]domain.Quote, error)
	ApplyTransition(ctx context.Context, orgID string, quote domain.Quote, audit domain.QuoteStatusAuditLog, now time.Time) error
}

// BatchHandler exposes the §4.11 auto-expiry batch as an operator-
// triggerable endpoint, the way the teacher exposes maintenance jobs on
// its internal ops router rather than only from a cron binary.
type BatchHandler struct {
	store      ExpiryStore
	orderStore quote.OrderStore
	logger     *obs.Logger
	now        func() time.Time
}

// NewBatchHandler wires store and orderStore behind the batch-expiry
// trigger endpoint.
func NewBatchHandler(store ExpiryStore, orderStore quote.OrderStore, logger *obs.Logger) *BatchHandler {
	return &BatchHandler{store: store, orderStore: orderStore, logger: logger, now: time.Now}
}

// ExpireQuotesResponse reports how many quotes the batch moved to EXPIRED.
type ExpireQuotesResponse struct {
	ExpiredCount int `json:"expired_count"`
}

// ExpireQuotes handles POST /ops/quotes/expire?org_id=...: runs the §4.11
// auto-expiry scan and transition for one organization. It is served on
// the plain-net/http ops router (NewOpsRouter), not the gin customer API.
func (h *BatchHandler) ExpireQuotes(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("org_id")
	w.Header().Set("Content-Type", "application/json")
	if orgID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "org_id query parameter is required", Key: "invalidRequest"})
		return
	}

	ctx := r.Context()
	now := h.now()

	candidates, err := h.store.PendingExpiry(ctx, orgID, now)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, key := errorKeyFor(err)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "internal error", Key: key})
		return
	}

	expired, audits, err := quote.BatchExpire(ctx, h.orderStore, candidates, now)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, key := errorKeyFor(err)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "internal error", Key: key})
		return
	}

	persisted := 0
	for i, q := range expired {
		if err := h.store.ApplyTransition(ctx, orgID, q, audits[i], now); err != nil {
			if h.logger != nil {
				h.logger.WithOrg(orgID).Warn("failed to persist auto-expiry, skipping and continuing batch")
			}
			continue
		}
		persisted++
	}

	_ = json.NewEncoder(w).Encode(ExpireQuotesResponse{ExpiredCount: persisted})
}
