// Package provider wraps the external routing/toll/fuel-price data sources
// the cost and pricing engines consume. Every call degrades to a local
// estimate on timeout, error, or an open circuit breaker (§5) — a provider
// outage is never surfaced as a pricing failure.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/aurigo/dispatch-core/internal/obs"
)

// HTTPConfig controls the underlying transport shared by every remote
// client constructed in this package.
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RemoteClient is a breaker-protected JSON HTTP client. Each concrete
// provider (routing, toll, fuel price) wraps one with its own endpoint and
// degrade-to-estimate logic.
type RemoteClient struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *obs.Logger
	metrics *obs.Metrics
}

// NewRemoteClient builds a RemoteClient named name, tripping its breaker
// after 3 consecutive failures and probing again after 30s, mirroring the
// shared HTTP client's circuit breaker settings.
func NewRemoteClient(name string, cfg HTTPConfig, logger *obs.Logger, metrics *obs.Metrics) *RemoteClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(breakerName string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("provider circuit breaker state changed")
			}
		},
	})

	return &RemoteClient{
		name:    name,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		logger:  logger,
		metrics: metrics,
	}
}

// getJSON issues a GET against path and decodes the JSON body into out,
// running through the circuit breaker. Callers treat any returned error as
// "degrade to estimate" — they never propagate it to the pricing result.
func (c *RemoteClient) getJSON(ctx context.Context, path string, out interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("provider %s: unexpected status %d", c.name, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return nil, json.Unmarshal(body, out)
	})

	degraded := err != nil
	if c.logger != nil {
		c.logger.ProviderCallLogged(c.name, err, degraded)
	}
	if degraded && c.metrics != nil {
		c.metrics.ProviderDegradations.WithLabelValues(c.name).Inc()
	}
	return err
}
