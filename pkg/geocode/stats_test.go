package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	results := []Result{
		{Status: StatusSuccess, Precision: PrecisionAddress, Source: "census"},
		{Status: StatusSuccess, Precision: PrecisionAddress, Source: "census"},
		{Status: StatusSuccess, Precision: PrecisionCity, Source: CityFallbackSource},
		{Status: StatusSuccess, Precision: PrecisionAddress, Source: "google"},
		{Status: StatusNotFound, Precision: PrecisionFailed},
		{Status: StatusNoAddress},
	}

	stats := Summarize(results, Pricing{GooglePerCall: 0.005})

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 4, stats.ByStatus[string(StatusSuccess)])
	assert.Equal(t, 1, stats.ByStatus[string(StatusNotFound)])
	assert.Equal(t, 1, stats.ByStatus[string(StatusNoAddress)])
	assert.Equal(t, 3, stats.ByPrecision[string(PrecisionAddress)])
	assert.Equal(t, 1, stats.ByPrecision[string(PrecisionCity)])
	assert.Equal(t, 2, stats.BySource["census"])
	assert.Equal(t, 1, stats.BySource[CityFallbackSource])
	assert.Equal(t, 1, stats.PaidCalls)
	assert.InDelta(t, 0.005, stats.EstimatedCost, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil, Pricing{GooglePerCall: 0.005})
	assert.Equal(t, 0, stats.Total)
	assert.Zero(t, stats.EstimatedCost)
}
