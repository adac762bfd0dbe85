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

const (
	censusOneLineURL = "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress"
	censusBenchmark  = "Public_AR_Current"
)

// censusOneLineResponse is the JSON response from the Census single-address API.
type censusOneLineResponse struct {
	Result struct {
		AddressMatches []censusAddressMatch `json:"addressMatches"`
	} `json:"result"`
}

type censusAddressMatch struct {
	Coordinates struct {
		X float64 `json:"x"` // longitude
		Y float64 `json:"y"` // latitude
	} `json:"coordinates"`
	MatchedAddress string `json:"matchedAddress"`
}

// CensusProvider geocodes via the US Census Bureau one-line address API.
// Free, no credential, and the most accurate of the open backends for US
// street addresses, so it runs first by default.
type CensusProvider struct {
	httpClient *http.Client
	bounds     Bounds
}

// NewCensusProvider creates a CensusProvider.
func NewCensusProvider(hc *http.Client, bounds Bounds) *CensusProvider {
	return &CensusProvider{httpClient: hc, bounds: bounds}
}

// Name implements Provider.
func (p *CensusProvider) Name() string { return "census" }

// Available implements Provider.
func (p *CensusProvider) Available() bool { return true }

// Retryable implements Provider.
func (p *CensusProvider) Retryable() bool { return false }

// Resolve implements Provider.
func (p *CensusProvider) Resolve(ctx context.Context, query string) (*Result, error) {
	params := url.Values{
		"address":   {query},
		"benchmark": {censusBenchmark},
		"format":    {"json"},
	}

	reqURL := censusOneLineURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census build request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("geocode: census returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return &Result{Status: StatusError, Message: statusErr.Error()}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census read body")
	}

	var censusResp censusOneLineResponse
	if err := json.Unmarshal(body, &censusResp); err != nil {
		return &Result{Status: StatusError, Message: "census: unparseable response"}, nil
	}

	if len(censusResp.Result.AddressMatches) == 0 {
		return &Result{Status: StatusNotFound}, nil
	}

	match := censusResp.Result.AddressMatches[0]
	return boundedResult(p.Name(), match.Coordinates.Y, match.Coordinates.X, p.bounds), nil
}
