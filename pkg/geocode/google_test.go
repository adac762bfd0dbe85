package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleProvider_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"formatted_address": "123 Main St, Lansing, MI 48933, USA",
					"geometry": {"location": {"lat": 42.7325, "lng": -84.5555}}
				}
			]
		}`))
	}))
	defer server.Close()

	p := NewGoogleProvider(newRewriteClient(googleGeocodeURL, server.URL), michiganBounds, "test-key")

	res, err := p.Resolve(context.Background(), "123 Main St, Lansing MI 48933")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, res.Status)
	require.NotNil(t, res.Latitude)
	assert.InDelta(t, 42.7325, *res.Latitude, 1e-9)
	assert.Equal(t, "google", res.Source)
}

func TestGoogleProvider_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	p := NewGoogleProvider(newRewriteClient(googleGeocodeURL, server.URL), michiganBounds, "test-key")

	res, err := p.Resolve(context.Background(), "gibberish")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestGoogleProvider_RequestDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	}))
	defer server.Close()

	p := NewGoogleProvider(newRewriteClient(googleGeocodeURL, server.URL), michiganBounds, "bad-key")

	res, err := p.Resolve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, StatusError, res.Status)
	assert.Contains(t, res.Message, "REQUEST_DENIED")
}

func TestGoogleProvider_UnavailableWithoutKey(t *testing.T) {
	p := NewGoogleProvider(http.DefaultClient, michiganBounds, "")
	assert.False(t, p.Available())

	_, err := p.Resolve(context.Background(), "anything")
	require.Error(t, err)
}
