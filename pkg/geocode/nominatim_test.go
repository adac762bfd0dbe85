package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greatlakes-gis/licensemap/internal/resilience"
)

func TestNominatimProvider_Resolve(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"42.7325","lon":"-84.5555","display_name":"Lansing, Ingham County, Michigan"}]`))
	}))
	defer server.Close()

	client := newRewriteClient(nominatimSearchURL, server.URL)
	p := NewNominatimProvider(client, michiganBounds, "licensemap-test/1.0")

	res, err := p.Resolve(context.Background(), "123 Main St, Lansing MI 48933, Michigan, USA")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, StatusSuccess, res.Status)
	require.NotNil(t, res.Latitude)
	require.NotNil(t, res.Longitude)
	assert.InDelta(t, 42.7325, *res.Latitude, 1e-9)
	assert.InDelta(t, -84.5555, *res.Longitude, 1e-9)
	assert.Equal(t, "nominatim", res.Source)
	assert.Equal(t, "licensemap-test/1.0", gotUserAgent)
}

func TestNominatimProvider_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	p := NewNominatimProvider(newRewriteClient(nominatimSearchURL, server.URL), michiganBounds, "ua")

	res, err := p.Resolve(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Nil(t, res.Latitude)
}

func TestNominatimProvider_OutOfBounds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Columbus, Ohio: well south of the validation box.
		_, _ = w.Write([]byte(`[{"lat":"39.9612","lon":"-82.9988"}]`))
	}))
	defer server.Close()

	p := NewNominatimProvider(newRewriteClient(nominatimSearchURL, server.URL), michiganBounds, "ua")

	res, err := p.Resolve(context.Background(), "Columbus, Ohio")
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfBounds, res.Status)
	assert.Nil(t, res.Latitude)
	assert.Nil(t, res.Longitude)
}

func TestNominatimProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewNominatimProvider(newRewriteClient(nominatimSearchURL, server.URL), michiganBounds, "ua")

	res, err := p.Resolve(context.Background(), "anything")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, resilience.IsTransient(err))
}

func TestNominatimProvider_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	p := NewNominatimProvider(newRewriteClient(nominatimSearchURL, server.URL), michiganBounds, "ua")

	res, err := p.Resolve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, StatusError, res.Status)
	assert.Contains(t, res.Message, "400")
}

func TestNominatimProvider_UnparseableCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"-84.5"}]`))
	}))
	defer server.Close()

	p := NewNominatimProvider(newRewriteClient(nominatimSearchURL, server.URL), michiganBounds, "ua")

	res, err := p.Resolve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, StatusError, res.Status)
}

func TestNominatimProvider_Retryable(t *testing.T) {
	p := NewNominatimProvider(http.DefaultClient, michiganBounds, "ua")
	assert.True(t, p.Retryable())
	assert.True(t, p.Available())
}
