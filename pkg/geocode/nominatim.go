package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/greatlakes-gis/licensemap/internal/resilience"
)

const nominatimSearchURL = "https://nominatim.openstreetmap.org/search"

// nominatimPlace is one entry of the Nominatim search response. Coordinates
// arrive as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimProvider geocodes via the OSM Nominatim public API. It is the
// baseline free backend and the only retryable one: its public instance
// sheds load with timeouts and 5xx answers that usually clear on a second
// attempt.
type NominatimProvider struct {
	httpClient *http.Client
	bounds     Bounds
	userAgent  string
}

// NewNominatimProvider creates a NominatimProvider. Nominatim's usage policy
// requires an identifying User-Agent.
func NewNominatimProvider(hc *http.Client, bounds Bounds, userAgent string) *NominatimProvider {
	return &NominatimProvider{httpClient: hc, bounds: bounds, userAgent: userAgent}
}

// Name implements Provider.
func (p *NominatimProvider) Name() string { return "nominatim" }

// Available implements Provider.
func (p *NominatimProvider) Available() bool { return true }

// Retryable implements Provider.
func (p *NominatimProvider) Retryable() bool { return true }

// Resolve implements Provider.
func (p *NominatimProvider) Resolve(ctx context.Context, query string) (*Result, error) {
	params := url.Values{
		"q":      {query},
		"format": {"jsonv2"},
		"limit":  {"1"},
	}

	reqURL := nominatimSearchURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim build request")
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("geocode: nominatim returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return &Result{Status: StatusError, Message: statusErr.Error()}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim read body")
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return &Result{Status: StatusError, Message: "nominatim: unparseable response"}, nil
	}

	if len(places) == 0 {
		return &Result{Status: StatusNotFound}, nil
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return &Result{Status: StatusError, Message: "nominatim: unparseable coordinates"}, nil
	}

	return boundedResult(p.Name(), lat, lon, p.bounds), nil
}
