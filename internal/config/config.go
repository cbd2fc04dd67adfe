// Package config supplies process-level defaults (cost parameters,
// profitability thresholds, timezone) loaded at init and optionally
// overlaid from a YAML file or environment variables. There is no other
// global mutable state, per the concurrency model.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// CostDefaults mirrors the §4.5 defaults used whenever an organization
// leaves a cost parameter unset.
type CostDefaults struct {
	FuelConsumptionL100Km float64 `yaml:"fuel_consumption_l_100km"`
	FuelPricePerLiter     float64 `yaml:"fuel_price_per_liter"`
	TollCostPerKm         float64 `yaml:"toll_cost_per_km"`
	WearCostPerKm         float64 `yaml:"wear_cost_per_km"`
	DriverHourlyCost      float64 `yaml:"driver_hourly_cost"`
}

// ProfitabilityDefaults mirrors the §4.8 default thresholds.
type ProfitabilityDefaults struct {
	GreenThresholdPercent  float64 `yaml:"green_threshold_percent"`
	OrangeThresholdPercent float64 `yaml:"orange_threshold_percent"`
}

// SubcontractDefaults mirrors §4.13 defaults.
type SubcontractDefaults struct {
	UnprofitableMarginPercent float64 `yaml:"unprofitable_margin_percent"`
	RatePerKm                 float64 `yaml:"rate_per_km"`
	RatePerHour               float64 `yaml:"rate_per_hour"`
}

// Config is the process-level configuration loaded once at startup.
type Config struct {
	Timezone             string                `yaml:"timezone"`
	DefaultDistanceKm    float64               `yaml:"default_distance_km"`
	DefaultDurationMin   float64               `yaml:"default_duration_minutes"`
	Cost                 CostDefaults          `yaml:"cost"`
	Profitability        ProfitabilityDefaults `yaml:"profitability"`
	Subcontract          SubcontractDefaults   `yaml:"subcontract"`
	CorridorMinBufferM   float64               `yaml:"corridor_min_buffer_m"`
	CorridorMaxBufferM   float64               `yaml:"corridor_max_buffer_m"`
	PolylineSimplifyKm   float64               `yaml:"polyline_simplify_km"`
	DatabaseURL          string                `yaml:"-"`
	RedisAddr            string                `yaml:"-"`
	HTTPPort             int                   `yaml:"-"`
	OpsPort              int                   `yaml:"-"`
}

// Default returns the built-in production defaults, the same way the
// teacher's GetDefaultPricingConstants() does for its own domain.
func Default() Config {
	return Config{
		Timezone:           "Europe/Paris",
		DefaultDistanceKm:  30,
		DefaultDurationMin: 45,
		Cost: CostDefaults{
			FuelConsumptionL100Km: 8.0,
			FuelPricePerLiter:     1.80,
			TollCostPerKm:         0.15,
			WearCostPerKm:         0.10,
			DriverHourlyCost:      25.0,
		},
		Profitability: ProfitabilityDefaults{
			GreenThresholdPercent:  20,
			OrangeThresholdPercent: 0,
		},
		Subcontract: SubcontractDefaults{
			UnprofitableMarginPercent: 0,
			RatePerKm:                 2.0,
			RatePerHour:               40.0,
		},
		CorridorMinBufferM: 100,
		CorridorMaxBufferM: 5000,
		PolylineSimplifyKm: 0.05,
		HTTPPort:           8080,
		OpsPort:            9090,
	}
}

// LoadFromFile overlays YAML-configured fields on top of Default().
// A missing file is not an error: it simply yields the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithEnvOverrides applies DISPATCH_-prefixed environment overrides for the
// connection-level settings that YAML deliberately excludes (`yaml:"-"`)
// so secrets never land in a checked-in config file.
func (c Config) WithEnvOverrides() Config {
	c.DatabaseURL = getEnv("DISPATCH_DATABASE_URL", c.DatabaseURL)
	c.RedisAddr = getEnv("DISPATCH_REDIS_ADDR", c.RedisAddr)
	if v := os.Getenv("DISPATCH_HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.HTTPPort = p
		}
	}
	if v := os.Getenv("DISPATCH_OPS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.OpsPort = p
		}
	}
	return c
}

// Location resolves the configured timezone, falling back to UTC if it
// cannot be loaded so the process never fails to boot over a bad tz name.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
