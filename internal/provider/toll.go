package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aurigo/dispatch-core/internal/cost"
	"github.com/aurigo/dispatch-core/internal/domain"
)

// TollCacheTTL bounds how long a real toll quote is reused for the same
// route before a fresh lookup is attempted.
const TollCacheTTL = 6 * time.Hour

type tollResponse struct {
	AmountEUR float64 `json:"amount_eur"`
}

// TollProvider resolves a real toll cost for a route, caching hits in
// Redis and returning nil (letting the cost engine fall back to its
// per-km estimate) on any cache miss plus provider failure.
type TollProvider struct {
	client *RemoteClient
	cache  *redis.Client
}

// NewTollProvider wraps client (and an optional redis cache, which may be
// nil to disable caching) as a toll data source.
func NewTollProvider(client *RemoteClient, cache *redis.Client) *TollProvider {
	return &TollProvider{client: client, cache: cache}
}

// Quote returns a real toll amount for pickup->dropoff, or nil if neither
// the cache nor the provider could supply one — callers pass nil through
// to cost.Compute, which then estimates from distance.
func (p *TollProvider) Quote(ctx context.Context, pickup, dropoff domain.GeoPoint) *cost.TollQuote {
	key := tollCacheKey(pickup, dropoff)

	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, key).Result(); err == nil {
			if amount, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
				return &cost.TollQuote{AmountEUR: amount, IsFromCache: true}
			}
		}
	}

	path := fmt.Sprintf("/toll?from=%f,%f&to=%f,%f", pickup.Lat, pickup.Lng, dropoff.Lat, dropoff.Lng)
	var resp tollResponse
	if err := p.client.getJSON(ctx, path, &resp); err != nil {
		return nil
	}

	if p.cache != nil {
		p.cache.Set(ctx, key, strconv.FormatFloat(resp.AmountEUR, 'f', -1, 64), TollCacheTTL)
	}

	return &cost.TollQuote{AmountEUR: resp.AmountEUR, IsFromCache: false}
}

func tollCacheKey(pickup, dropoff domain.GeoPoint) string {
	return fmt.Sprintf("toll:%.4f,%.4f:%.4f,%.4f", pickup.Lat, pickup.Lng, dropoff.Lat, dropoff.Lng)
}
