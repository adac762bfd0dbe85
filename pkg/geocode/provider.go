package geocode

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Provider represents a single geocoding backend. Adapters are stateless;
// caching and rate limiting belong to the resolver.
type Provider interface {
	Name() string

	// Available reports whether the provider can be used at all (e.g. a
	// credentialed backend without a key is skipped entirely).
	Available() bool

	// Retryable reports whether transient failures from this provider
	// should be retried before escalating to the next one.
	Retryable() bool

	// Resolve geocodes a free-form query. A non-nil error means a
	// transport-level failure the caller may retry; provider-side
	// rejections come back as a Result with StatusError.
	Resolve(ctx context.Context, query string) (*Result, error)
}

// DefaultProviders constructs the four known backends against cfg.
func DefaultProviders(cfg Config, hc *http.Client) []Provider {
	return []Provider{
		NewCensusProvider(hc, cfg.Bounds),
		NewNominatimProvider(hc, cfg.Bounds, cfg.UserAgent),
		NewPhotonProvider(hc, cfg.Bounds),
		NewGoogleProvider(hc, cfg.Bounds, cfg.GoogleAPIKey),
	}
}

// OrderProviders arranges providers to match the configured priority list.
// Names not present in providers are skipped with a warning; providers not
// named in the priority list are dropped.
func OrderProviders(providers []Provider, priority []string) []Provider {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	ordered := make([]Provider, 0, len(priority))
	for _, name := range priority {
		p, ok := byName[name]
		if !ok {
			zap.L().Warn("geocode: unknown provider in priority list", zap.String("provider", name))
			continue
		}
		ordered = append(ordered, p)
	}
	return ordered
}

// boundedResult converts raw provider coordinates into a Result, rejecting
// anything outside the configured box. Out-of-bounds coordinates are
// discarded, not recorded.
func boundedResult(provider string, lat, lon float64, b Bounds) *Result {
	if !b.Contains(lat, lon) {
		zap.L().Warn("geocode: coordinates outside bounds",
			zap.String("provider", provider),
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
		)
		return &Result{Status: StatusOutOfBounds}
	}
	return &Result{
		Status:    StatusSuccess,
		Latitude:  &lat,
		Longitude: &lon,
		Source:    provider,
	}
}
