package geocode

import (
	"context"
	"net/http"
)

// michiganBounds is the validation box used across the package tests.
var michiganBounds = Bounds{MinLat: 41.0, MaxLat: 48.0, MinLon: -90.0, MaxLon: -82.0}

// rewriteTransport redirects requests whose URL starts with a known prefix
// to a test server.
type rewriteTransport struct {
	base     http.RoundTripper
	rewrites map[string]string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	origURL := req.URL.String()
	for prefix, testURL := range t.rewrites {
		if len(origURL) >= len(prefix) && origURL[:len(prefix)] == prefix {
			newReq := req.Clone(req.Context())
			parsed, err := req.URL.Parse(testURL + origURL[len(prefix):])
			if err != nil {
				return nil, err
			}
			newReq.URL = parsed
			newReq.Host = parsed.Host
			return base.RoundTrip(newReq)
		}
	}
	return base.RoundTrip(req)
}

// newRewriteClient routes a single real URL prefix to a test server.
func newRewriteClient(prefix, testURL string) *http.Client {
	return &http.Client{
		Transport: &rewriteTransport{rewrites: map[string]string{prefix: testURL}},
	}
}

// stubProvider is a scriptable in-memory Provider for resolver tests.
type stubProvider struct {
	name        string
	unavailable bool
	retryable   bool
	fn          func(query string) (*Result, error)
	calls       []string
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return !s.unavailable }
func (s *stubProvider) Retryable() bool { return s.retryable }

func (s *stubProvider) Resolve(_ context.Context, query string) (*Result, error) {
	s.calls = append(s.calls, query)
	return s.fn(query)
}

// always returns the same result for every query.
func always(res *Result) func(string) (*Result, error) {
	return func(string) (*Result, error) {
		r := *res
		return &r, nil
	}
}

func successAt(lat, lon float64) *Result {
	return &Result{Status: StatusSuccess, Latitude: &lat, Longitude: &lon}
}
