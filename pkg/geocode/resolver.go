package geocode

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/greatlakes-gis/licensemap/internal/resilience"
)

// CityFallbackSource tags results that came from the city-level degradation
// query rather than a full-address match.
const CityFallbackSource = "nominatim_city"

// fallbackProviderName is the baseline free backend used for city-level
// degradation queries regardless of configured priority.
const fallbackProviderName = "nominatim"

// Resolver orchestrates per-address resolution: cache lookup, ordered
// provider fallback, city-level degradation, retry, rate limiting, and
// periodic cache checkpointing. It owns the cache exclusively and is not
// safe for concurrent use; the shared rate limit serializes resolutions
// anyway.
type Resolver struct {
	cfg       Config
	providers []Provider
	fallback  Provider
	cache     Cache
	store     *Store
	limiter   *rate.Limiter

	newResolutions int
}

// NewResolver creates a Resolver over the given providers, ordered by
// cfg.Priority, and loads any existing cache document from cfg.CacheFile.
func NewResolver(cfg Config, providers []Provider) *Resolver {
	ordered := providers
	if len(cfg.Priority) > 0 {
		ordered = OrderProviders(providers, cfg.Priority)
	}

	var fallback Provider
	for _, p := range providers {
		if p.Name() == fallbackProviderName {
			fallback = p
			break
		}
	}

	store := NewStore(cfg.CacheFile)
	return &Resolver{
		cfg:       cfg,
		providers: ordered,
		fallback:  fallback,
		cache:     store.Load(),
		store:     store,
		// Burst 1 starting full: the first resolution of a run never waits.
		limiter: rate.NewLimiter(rate.Every(cfg.Delay), 1),
	}
}

// Resolve resolves a single address. The returned error is non-nil only on
// context cancellation; every provider- or address-level failure is folded
// into the Result. Cache hits return immediately without sleeping.
func (r *Resolver) Resolve(ctx context.Context, address string) (Result, error) {
	if cached, ok := r.cache[address]; ok {
		return cached, nil
	}

	if err := ctx.Err(); err != nil {
		return Result{}, eris.Wrap(err, "geocode: resolve cancelled")
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return Result{}, eris.Wrap(err, "geocode: rate limit wait")
	}

	res := r.cascade(ctx, address)

	// A cancellation mid-cascade yields a truncated verdict; don't let it
	// poison the cache.
	if err := ctx.Err(); err != nil {
		return Result{}, eris.Wrap(err, "geocode: resolve cancelled")
	}

	r.record(address, res)
	return res, nil
}

// ResolveBatch resolves addresses in order, flushing the cache once at the
// end. A limit > 0 truncates the input. On cancellation the partial result
// slice is returned alongside the error.
func (r *Resolver) ResolveBatch(ctx context.Context, addresses []string, limit int) ([]Result, error) {
	if limit > 0 && limit < len(addresses) {
		addresses = addresses[:limit]
	}

	defer r.Flush()

	results := make([]Result, 0, len(addresses))
	for _, addr := range addresses {
		res, err := r.Resolve(ctx, addr)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// cascade runs the per-address state machine: providers in priority order,
// then the city fallback, then failure.
func (r *Resolver) cascade(ctx context.Context, address string) Result {
	query := address
	if r.cfg.Region != "" {
		query = address + ", " + r.cfg.Region
	}

	var last *Result
	for _, p := range r.providers {
		if !p.Available() {
			continue
		}
		res := r.attempt(ctx, p, query)
		if res.Status == StatusSuccess {
			res.Precision = PrecisionAddress
			res.Source = p.Name()
			return *res
		}
		zap.L().Debug("geocode: provider miss",
			zap.String("provider", p.Name()),
			zap.String("status", string(res.Status)),
		)
		last = res
	}

	city := ExtractCity(address, r.cfg.State)
	if city == "" || r.fallback == nil || !r.fallback.Available() {
		return failedResult(last)
	}

	cityQuery := city
	if r.cfg.Region != "" {
		cityQuery = city + ", " + r.cfg.Region
	}
	res := r.attempt(ctx, r.fallback, cityQuery)
	if res.Status == StatusSuccess {
		res.Precision = PrecisionCity
		res.Source = CityFallbackSource
		zap.L().Warn("geocode: degraded to city level",
			zap.String("address", address),
			zap.String("city", city),
		)
		return *res
	}

	return failedResult(res)
}

// attempt invokes one provider, retrying transient failures for providers
// that support it. Exhausted retries or transport failures become an error
// Result for this provider only; the cascade moves on.
func (r *Resolver) attempt(ctx context.Context, p Provider, query string) *Result {
	call := func(ctx context.Context) (*Result, error) {
		return p.Resolve(ctx, query)
	}

	var res *Result
	var err error
	if p.Retryable() && r.cfg.Retries > 0 {
		res, err = resilience.DoVal(ctx, resilience.RetryConfig{
			MaxAttempts: r.cfg.Retries + 1,
			Delay:       r.cfg.RetryDelay,
			OnRetry:     resilience.RetryLogger(p.Name(), "resolve"),
		}, call)
	} else {
		res, err = call(ctx)
	}

	if err != nil {
		zap.L().Error("geocode: provider failed",
			zap.String("provider", p.Name()),
			zap.Error(err),
		)
		return &Result{Status: StatusError, Message: err.Error()}
	}
	return res
}

// record caches a completed resolution and checkpoints the cache to disk
// every CheckpointInterval new resolutions.
func (r *Resolver) record(address string, res Result) {
	r.cache[address] = res
	r.newResolutions++

	if r.cfg.CheckpointInterval > 0 && r.newResolutions%r.cfg.CheckpointInterval == 0 {
		r.Flush()
		zap.L().Info("geocode: checkpoint saved",
			zap.Int("resolved", r.newResolutions),
			zap.Int("entries", len(r.cache)),
		)
	}
}

// Flush writes the cache document to disk. Failures are logged, not fatal:
// the in-memory run continues and the next checkpoint tries again.
func (r *Resolver) Flush() {
	if err := r.store.Save(r.cache); err != nil {
		zap.L().Error("geocode: cache save failed", zap.Error(err))
	}
}

// Cache exposes the in-memory cache for inspection (status reporting).
func (r *Resolver) Cache() Cache {
	return r.cache
}

// ExtractCity pulls the city token out of an address shaped like
// "Street, City ST Zip": the text after the first comma, truncated before
// the regional abbreviation. Returns "" when no city can be extracted.
func ExtractCity(address, state string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}
	cityStateZip := strings.TrimSpace(parts[1])
	city, _, _ := strings.Cut(cityStateZip, " "+state+" ")
	return strings.TrimSpace(city)
}

// failedResult builds the terminal failure Result, retaining the last
// attempted status when there is one.
func failedResult(last *Result) Result {
	res := Result{Status: StatusNotFound, Precision: PrecisionFailed}
	if last != nil {
		res.Status = last.Status
		res.Message = last.Message
	}
	return res
}
