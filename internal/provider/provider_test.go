package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurigo/dispatch-core/internal/domain"
)

func TestRoutingProviderUsesLiveRouteOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"distance_km": 42.5, "duration_minutes": 38, "polyline": "abc"}`))
	}))
	defer server.Close()

	client := NewRemoteClient("routing", HTTPConfig{BaseURL: server.URL}, nil, nil)
	provider := NewRoutingProvider(client)

	estimate := provider.Estimate(context.Background(), domain.GeoPoint{Lat: 48.85, Lng: 2.35}, domain.GeoPoint{Lat: 48.87, Lng: 2.36})

	assert.Equal(t, domain.RoutingSourceGoogleAPI, estimate.Source)
	assert.Equal(t, 42.5, estimate.DistanceKm)
}

func TestRoutingProviderDegradesToHaversineOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRemoteClient("routing", HTTPConfig{BaseURL: server.URL}, nil, nil)
	provider := NewRoutingProvider(client)

	paris := domain.GeoPoint{Lat: 48.8566, Lng: 2.3522}
	lyon := domain.GeoPoint{Lat: 45.7640, Lng: 4.8357}

	estimate := provider.Estimate(context.Background(), paris, lyon)

	assert.Equal(t, domain.RoutingSourceHaversine, estimate.Source)
	assert.InDelta(t, 392, estimate.DistanceKm, 10)
	assert.Greater(t, estimate.DurationMinutes, 0.0)
}

func TestTollProviderReturnsNilWithoutCacheOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRemoteClient("toll", HTTPConfig{BaseURL: server.URL}, nil, nil)
	provider := NewTollProvider(client, nil)

	quote := provider.Quote(context.Background(), domain.GeoPoint{}, domain.GeoPoint{Lat: 1})

	assert.Nil(t, quote)
}

func TestTollProviderReturnsQuoteOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"amount_eur": 12.5}`))
	}))
	defer server.Close()

	client := NewRemoteClient("toll", HTTPConfig{BaseURL: server.URL}, nil, nil)
	provider := NewTollProvider(client, nil)

	quote := provider.Quote(context.Background(), domain.GeoPoint{}, domain.GeoPoint{Lat: 1})

	require.NotNil(t, quote)
	assert.Equal(t, 12.5, quote.AmountEUR)
	assert.False(t, quote.IsFromCache)
}

func TestFuelPriceProviderFallsBackToDefaultOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer server.Close()

	client := NewRemoteClient("fuel-price", HTTPConfig{BaseURL: server.URL}, nil, nil)
	provider := NewFuelPriceProvider(client, nil)

	price := provider.PricePerLiter(context.Background(), 1.80)

	assert.Equal(t, 1.80, price)
}

func TestFuelPriceProviderUsesLiveValueOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price_per_liter": 1.95}`))
	}))
	defer server.Close()

	client := NewRemoteClient("fuel-price", HTTPConfig{BaseURL: server.URL}, nil, nil)
	provider := NewFuelPriceProvider(client, nil)

	price := provider.PricePerLiter(context.Background(), 1.80)

	assert.Equal(t, 1.95, price)
}
