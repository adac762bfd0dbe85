package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"census", "nominatim", "photon", "google"}, cfg.Geocode.Priority)
	assert.Empty(t, cfg.Geocode.GoogleAPIKey)
	assert.Equal(t, 10, cfg.Geocode.TimeoutSecs)
	assert.Equal(t, 1.0, cfg.Geocode.DelaySecs)
	assert.Equal(t, 2, cfg.Geocode.Retries)
	assert.Equal(t, 100, cfg.Geocode.CheckpointInterval)
	assert.Equal(t, "data/cache/geocode_cache.json", cfg.Geocode.CacheFile)
	assert.Equal(t, "Michigan, USA", cfg.Geocode.Region)
	assert.Equal(t, "MI", cfg.Geocode.State)
	assert.Equal(t, 41.0, cfg.Geocode.Bounds.MinLat)
	assert.Equal(t, 48.0, cfg.Geocode.Bounds.MaxLat)
	assert.Equal(t, -90.0, cfg.Geocode.Bounds.MinLon)
	assert.Equal(t, -82.0, cfg.Geocode.Bounds.MaxLon)
	assert.Equal(t, 0.005, cfg.Geocode.Pricing.GooglePerCall)
	assert.Equal(t, 8080, cfg.Serve.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
geocode:
  retries: 5
  region: "Ohio, USA"
  state: OH
map:
  zoom_start: 9
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Geocode.Retries)
	assert.Equal(t, "Ohio, USA", cfg.Geocode.Region)
	assert.Equal(t, "OH", cfg.Geocode.State)
	assert.Equal(t, 9, cfg.Map.ZoomStart)
	// Untouched keys keep their defaults.
	assert.Equal(t, 100, cfg.Geocode.CheckpointInterval)
}

func TestLoad_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LICENSEMAP_GEOCODE_GOOGLE_API_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Geocode.GoogleAPIKey)
}

func TestGeocodeConfig_ToGeocode(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	gc := cfg.Geocode.ToGeocode()
	assert.Equal(t, 10*time.Second, gc.Timeout)
	assert.Equal(t, time.Second, gc.Delay)
	assert.Equal(t, 2*time.Second, gc.RetryDelay)
	assert.Equal(t, 2, gc.Retries)
	assert.Equal(t, 100, gc.CheckpointInterval)
	assert.Equal(t, 41.0, gc.Bounds.MinLat)
	assert.Equal(t, -82.0, gc.Bounds.MaxLon)
	assert.Equal(t, "MI", gc.State)
	assert.Equal(t, 0.005, gc.GooglePerCall)
}
