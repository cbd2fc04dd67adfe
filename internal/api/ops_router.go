package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewOpsRouter builds the internal operations router: health check,
// Prometheus scrape endpoint, and the auto-expiry batch trigger. It is
// served on a separate port from the customer-facing gin router
// (NewRouter), the same split the teacher's services keep between a
// public gateway and an internal ops surface.
func NewOpsRouter(batchHandler *BatchHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/ops/quotes/expire", batchHandler.ExpireQuotes).Methods(http.MethodPost)
	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
