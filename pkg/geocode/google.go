package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/greatlakes-gis/licensemap/internal/resilience"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// googleGeocodeResponse is the JSON response from the Google Geocoding API.
type googleGeocodeResponse struct {
	Results []googleResult `json:"results"`
	Status  string         `json:"status"`
}

type googleResult struct {
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	FormattedAddress string `json:"formatted_address"`
}

// GoogleProvider geocodes via the Google Geocoding API. It is the only
// credentialed backend: without an API key it reports unavailable and the
// resolver skips it entirely.
type GoogleProvider struct {
	httpClient *http.Client
	bounds     Bounds
	apiKey     string
}

// NewGoogleProvider creates a GoogleProvider. An empty key disables it.
func NewGoogleProvider(hc *http.Client, bounds Bounds, apiKey string) *GoogleProvider {
	return &GoogleProvider{httpClient: hc, bounds: bounds, apiKey: apiKey}
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return "google" }

// Available implements Provider.
func (p *GoogleProvider) Available() bool { return p.apiKey != "" }

// Retryable implements Provider.
func (p *GoogleProvider) Retryable() bool { return false }

// Resolve implements Provider.
func (p *GoogleProvider) Resolve(ctx context.Context, query string) (*Result, error) {
	if p.apiKey == "" {
		return nil, eris.New("geocode: google api key not configured")
	}

	params := url.Values{
		"address": {query},
		"key":     {p.apiKey},
	}

	reqURL := googleGeocodeURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("geocode: google returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return &Result{Status: StatusError, Message: statusErr.Error()}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google read body")
	}

	var googleResp googleGeocodeResponse
	if err := json.Unmarshal(body, &googleResp); err != nil {
		return &Result{Status: StatusError, Message: "google: unparseable response"}, nil
	}

	switch googleResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return &Result{Status: StatusNotFound}, nil
	default:
		// OVER_QUERY_LIMIT, REQUEST_DENIED, INVALID_REQUEST: not retryable.
		return &Result{Status: StatusError, Message: "google: " + googleResp.Status}, nil
	}

	if len(googleResp.Results) == 0 {
		return &Result{Status: StatusNotFound}, nil
	}

	loc := googleResp.Results[0].Geometry.Location
	return boundedResult(p.Name(), loc.Lat, loc.Lng, p.bounds), nil
}
