package provider

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FuelPriceCacheTTL bounds how long a fetched national average fuel price
// is reused before a fresh lookup is attempted.
const FuelPriceCacheTTL = 1 * time.Hour

const fuelPriceCacheKey = "fuel_price:eur_per_liter"

type fuelPriceResponse struct {
	PricePerLiter float64 `json:"price_per_liter"`
}

// FuelPriceProvider resolves the current national-average diesel price,
// caching it in Redis and falling back to defaultPricePerLiter (the
// organization/platform configured default) on any failure.
type FuelPriceProvider struct {
	client *RemoteClient
	cache  *redis.Client
}

// NewFuelPriceProvider wraps client (and an optional redis cache) as a
// fuel price data source.
func NewFuelPriceProvider(client *RemoteClient, cache *redis.Client) *FuelPriceProvider {
	return &FuelPriceProvider{client: client, cache: cache}
}

// PricePerLiter returns the best available fuel price, or
// defaultPricePerLiter if neither the cache nor the provider has one.
func (p *FuelPriceProvider) PricePerLiter(ctx context.Context, defaultPricePerLiter float64) float64 {
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, fuelPriceCacheKey).Result(); err == nil {
			if price, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
				return price
			}
		}
	}

	var resp fuelPriceResponse
	if err := p.client.getJSON(ctx, "/fuel-price", &resp); err != nil {
		return defaultPricePerLiter
	}

	if p.cache != nil {
		p.cache.Set(ctx, fuelPriceCacheKey, strconv.FormatFloat(resp.PricePerLiter, 'f', -1, 64), FuelPriceCacheTTL)
	}

	return resp.PricePerLiter
}
