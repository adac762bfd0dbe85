package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounds_Contains(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{"lansing", 42.7325, -84.5555, true},
		{"marquette", 46.5436, -87.3954, true},
		{"south edge", 41.0, -85.0, true},
		{"north edge", 48.0, -85.0, true},
		{"west edge", 44.0, -90.0, true},
		{"east edge", 44.0, -82.0, true},
		{"columbus ohio", 39.9612, -82.9988, false},
		{"chicago inside the coarse box", 41.8781, -87.6298, true},
		{"minneapolis", 44.9778, -93.2650, false},
		{"toronto", 43.6532, -79.3832, false},
		{"null island", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, michiganBounds.Contains(tt.lat, tt.lon))
		})
	}
}
