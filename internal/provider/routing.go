package provider

import (
	"context"
	"fmt"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/geo"
)

// AssumedRoadSpeedKmh estimates duration from distance when a routing
// provider is unavailable — a city/highway-mix average, not a live ETA.
const AssumedRoadSpeedKmh = 50.0

// RouteEstimate is the resolved distance/duration for a trip, tagged with
// where the numbers came from.
type RouteEstimate struct {
	DistanceKm      float64
	DurationMinutes float64
	Polyline        string
	Source          domain.RoutingSource
}

type routeResponse struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	Polyline        string  `json:"polyline"`
}

// RoutingProvider resolves distance/duration/polyline for a pickup/dropoff
// pair from a live routing API, falling back to a haversine estimate.
type RoutingProvider struct {
	client *RemoteClient
}

// NewRoutingProvider wraps client as a routing data source.
func NewRoutingProvider(client *RemoteClient) *RoutingProvider {
	return &RoutingProvider{client: client}
}

// Estimate returns the best available route estimate for pickup->dropoff.
// It never returns an error: on any provider failure it falls back to a
// Haversine-derived straight-line estimate.
func (p *RoutingProvider) Estimate(ctx context.Context, pickup, dropoff domain.GeoPoint) RouteEstimate {
	path := fmt.Sprintf("/route?from=%f,%f&to=%f,%f", pickup.Lat, pickup.Lng, dropoff.Lat, dropoff.Lng)

	var resp routeResponse
	if err := p.client.getJSON(ctx, path, &resp); err == nil {
		return RouteEstimate{
			DistanceKm:      resp.DistanceKm,
			DurationMinutes: resp.DurationMinutes,
			Polyline:        resp.Polyline,
			Source:          domain.RoutingSourceGoogleAPI,
		}
	}

	return haversineEstimate(pickup, dropoff)
}

func haversineEstimate(pickup, dropoff domain.GeoPoint) RouteEstimate {
	distanceKm := geo.Haversine(geo.GeoPoint{Lat: pickup.Lat, Lng: pickup.Lng}, geo.GeoPoint{Lat: dropoff.Lat, Lng: dropoff.Lng})
	return RouteEstimate{
		DistanceKm:      distanceKm,
		DurationMinutes: distanceKm / AssumedRoadSpeedKmh * 60,
		Source:          domain.RoutingSourceHaversine,
	}
}
