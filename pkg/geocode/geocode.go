// Package geocode resolves street addresses to validated coordinates through
// a cascade of geocoding backends, with a persistent file cache, rate
// limiting, and city-level degradation for addresses no backend can match.
package geocode

import "time"

// Status is the terminal verdict of a resolution attempt.
type Status string

const (
	StatusSuccess     Status = "success"
	StatusNotFound    Status = "not_found"
	StatusOutOfBounds Status = "out_of_bounds"
	StatusError       Status = "error"
	StatusNoAddress   Status = "no_address"
	StatusFailed      Status = "failed"
)

// Precision describes how exact a successful resolution is.
type Precision string

const (
	PrecisionAddress Precision = "address"
	PrecisionCity    Precision = "city"
	PrecisionFailed  Precision = "failed"
)

// Result is the outcome of resolving one address. Coordinates are pointers:
// nil means no usable location, and out-of-bounds coordinates are discarded
// rather than recorded.
type Result struct {
	Status    Status    `json:"status" yaml:"status"`
	Latitude  *float64  `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Precision Precision `json:"precision,omitempty" yaml:"precision,omitempty"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// Config holds the resolver settings.
type Config struct {
	// Priority orders the provider cascade by name.
	Priority []string

	GoogleAPIKey string
	UserAgent    string

	// Timeout bounds a single HTTP call; Delay is the minimum spacing
	// between provider requests across the whole run.
	Timeout time.Duration
	Delay   time.Duration

	// Retries is the number of additional attempts after the first for
	// retryable providers, spaced RetryDelay apart.
	Retries    int
	RetryDelay time.Duration

	// CheckpointInterval flushes the cache to disk every N new
	// resolutions. Zero disables periodic checkpoints.
	CheckpointInterval int
	CacheFile          string

	// Bounds rejects coordinates outside the service area. Region is
	// appended to every query; State is the abbreviation used when
	// extracting a city from an address.
	Bounds Bounds
	Region string
	State  string

	// GooglePerCall prices paid calls for cost estimation.
	GooglePerCall float64
}
