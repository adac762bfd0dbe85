package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotonProvider_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"features": [
				{"geometry": {"type": "Point", "coordinates": [-85.6681, 42.9634]}}
			],
			"type": "FeatureCollection"
		}`))
	}))
	defer server.Close()

	p := NewPhotonProvider(newRewriteClient(photonSearchURL, server.URL), michiganBounds)

	res, err := p.Resolve(context.Background(), "38 Commerce Ave SW, Grand Rapids MI")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, res.Status)
	require.NotNil(t, res.Latitude)
	require.NotNil(t, res.Longitude)
	assert.InDelta(t, 42.9634, *res.Latitude, 1e-9)
	assert.InDelta(t, -85.6681, *res.Longitude, 1e-9)
	assert.Equal(t, "photon", res.Source)
}

func TestPhotonProvider_EmptyFeatures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features": [], "type": "FeatureCollection"}`))
	}))
	defer server.Close()

	p := NewPhotonProvider(newRewriteClient(photonSearchURL, server.URL), michiganBounds)

	res, err := p.Resolve(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestPhotonProvider_TruncatedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features": [{"geometry": {"coordinates": [-85.6]}}]}`))
	}))
	defer server.Close()

	p := NewPhotonProvider(newRewriteClient(photonSearchURL, server.URL), michiganBounds)

	res, err := p.Resolve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
}
