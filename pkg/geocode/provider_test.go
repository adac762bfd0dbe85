package geocode

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProviders(t *testing.T) {
	cfg := Config{Bounds: michiganBounds, UserAgent: "ua", GoogleAPIKey: "k"}
	providers := DefaultProviders(cfg, http.DefaultClient)

	require.Len(t, providers, 4)
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"census", "nominatim", "photon", "google"}, names)
}

func TestOrderProviders(t *testing.T) {
	a := &stubProvider{name: "a"}
	b := &stubProvider{name: "b"}
	c := &stubProvider{name: "c"}

	t.Run("reorders by priority", func(t *testing.T) {
		ordered := OrderProviders([]Provider{a, b, c}, []string{"c", "a", "b"})
		require.Len(t, ordered, 3)
		assert.Equal(t, "c", ordered[0].Name())
		assert.Equal(t, "a", ordered[1].Name())
		assert.Equal(t, "b", ordered[2].Name())
	})

	t.Run("unknown names skipped", func(t *testing.T) {
		ordered := OrderProviders([]Provider{a, b}, []string{"b", "mystery", "a"})
		require.Len(t, ordered, 2)
		assert.Equal(t, "b", ordered[0].Name())
		assert.Equal(t, "a", ordered[1].Name())
	})

	t.Run("unlisted providers dropped", func(t *testing.T) {
		ordered := OrderProviders([]Provider{a, b, c}, []string{"b"})
		require.Len(t, ordered, 1)
		assert.Equal(t, "b", ordered[0].Name())
	})
}

func TestBoundedResult(t *testing.T) {
	t.Run("inside", func(t *testing.T) {
		res := boundedResult("census", 42.7325, -84.5555, michiganBounds)
		assert.Equal(t, StatusSuccess, res.Status)
		assert.Equal(t, "census", res.Source)
		require.NotNil(t, res.Latitude)
		assert.InDelta(t, 42.7325, *res.Latitude, 1e-9)
	})

	t.Run("outside discards coordinates", func(t *testing.T) {
		res := boundedResult("census", 39.9612, -82.9988, michiganBounds)
		assert.Equal(t, StatusOutOfBounds, res.Status)
		assert.Nil(t, res.Latitude)
		assert.Nil(t, res.Longitude)
	})
}
