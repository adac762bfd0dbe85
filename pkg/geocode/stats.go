package geocode

import (
	"go.uber.org/zap"
)

// Pricing holds per-call cost rates for paid providers, used only for
// run-cost estimation.
type Pricing struct {
	GooglePerCall float64
}

// Stats aggregates a batch of resolution results. It is derived, never
// persisted: recompute it from the output record set whenever needed.
type Stats struct {
	Total         int            `yaml:"total"`
	ByStatus      map[string]int `yaml:"by_status"`
	ByPrecision   map[string]int `yaml:"by_precision"`
	BySource      map[string]int `yaml:"by_source"`
	PaidCalls     int            `yaml:"paid_calls"`
	EstimatedCost float64        `yaml:"estimated_cost_usd"`
}

// Summarize computes aggregate statistics over a result set.
func Summarize(results []Result, pricing Pricing) Stats {
	s := Stats{
		Total:       len(results),
		ByStatus:    make(map[string]int),
		ByPrecision: make(map[string]int),
		BySource:    make(map[string]int),
	}

	for _, r := range results {
		s.ByStatus[string(r.Status)]++
		if r.Precision != "" {
			s.ByPrecision[string(r.Precision)]++
		}
		if r.Source != "" {
			s.BySource[r.Source]++
		}
		if r.Source == "google" {
			s.PaidCalls++
		}
	}

	s.EstimatedCost = float64(s.PaidCalls) * pricing.GooglePerCall
	return s
}

// Log emits the summary block.
func (s Stats) Log() {
	successRate := 0.0
	if s.Total > 0 {
		successRate = float64(s.ByStatus[string(StatusSuccess)]) / float64(s.Total) * 100
	}

	zap.L().Info("geocoding summary",
		zap.Int("total", s.Total),
		zap.Int("success", s.ByStatus[string(StatusSuccess)]),
		zap.Float64("success_rate_pct", successRate),
		zap.Any("by_status", s.ByStatus),
		zap.Any("by_precision", s.ByPrecision),
		zap.Any("by_source", s.BySource),
		zap.Int("paid_calls", s.PaidCalls),
		zap.Float64("estimated_cost_usd", s.EstimatedCost),
	)
}
