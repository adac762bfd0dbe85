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

const photonSearchURL = "https://photon.komoot.io/api/"

// photonResponse is the GeoJSON FeatureCollection returned by Photon.
type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// PhotonProvider geocodes via the Komoot Photon public API, a permissive but
// coarse OSM-backed search. It runs late in the cascade.
type PhotonProvider struct {
	httpClient *http.Client
	bounds     Bounds
}

// NewPhotonProvider creates a PhotonProvider.
func NewPhotonProvider(hc *http.Client, bounds Bounds) *PhotonProvider {
	return &PhotonProvider{httpClient: hc, bounds: bounds}
}

// Name implements Provider.
func (p *PhotonProvider) Name() string { return "photon" }

// Available implements Provider.
func (p *PhotonProvider) Available() bool { return true }

// Retryable implements Provider.
func (p *PhotonProvider) Retryable() bool { return false }

// Resolve implements Provider.
func (p *PhotonProvider) Resolve(ctx context.Context, query string) (*Result, error) {
	params := url.Values{
		"q":     {query},
		"limit": {"1"},
	}

	reqURL := photonSearchURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon build request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("geocode: photon returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return &Result{Status: StatusError, Message: statusErr.Error()}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon read body")
	}

	var photonResp photonResponse
	if err := json.Unmarshal(body, &photonResp); err != nil {
		return &Result{Status: StatusError, Message: "photon: unparseable response"}, nil
	}

	if len(photonResp.Features) == 0 || len(photonResp.Features[0].Geometry.Coordinates) < 2 {
		return &Result{Status: StatusNotFound}, nil
	}

	coords := photonResp.Features[0].Geometry.Coordinates
	return boundedResult(p.Name(), coords[1], coords[0], p.bounds), nil
}
