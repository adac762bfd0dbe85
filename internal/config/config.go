// Package config loads application configuration from file and environment
// and bootstraps the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/greatlakes-gis/licensemap/pkg/geocode"
)

// Config holds the full application configuration. It is loaded once at
// process start and passed down by value; nothing mutates it afterwards.
type Config struct {
	Geocode     GeocodeConfig     `yaml:"geocode" mapstructure:"geocode"`
	Consolidate ConsolidateConfig `yaml:"consolidate" mapstructure:"consolidate"`
	Map         MapConfig         `yaml:"map" mapstructure:"map"`
	Serve       ServeConfig       `yaml:"serve" mapstructure:"serve"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig configures the resolution engine.
type GeocodeConfig struct {
	Priority           []string      `yaml:"priority" mapstructure:"priority"`
	GoogleAPIKey       string        `yaml:"google_api_key" mapstructure:"google_api_key"`
	UserAgent          string        `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs        int           `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DelaySecs          float64       `yaml:"delay_secs" mapstructure:"delay_secs"`
	Retries            int           `yaml:"retries" mapstructure:"retries"`
	RetryDelaySecs     float64       `yaml:"retry_delay_secs" mapstructure:"retry_delay_secs"`
	CheckpointInterval int           `yaml:"checkpoint_interval" mapstructure:"checkpoint_interval"`
	CacheFile          string        `yaml:"cache_file" mapstructure:"cache_file"`
	Region             string        `yaml:"region" mapstructure:"region"`
	State              string        `yaml:"state" mapstructure:"state"`
	Bounds             BoundsConfig  `yaml:"bounds" mapstructure:"bounds"`
	Pricing            PricingConfig `yaml:"pricing" mapstructure:"pricing"`
}

// BoundsConfig is the geographic bounding box for result validation.
type BoundsConfig struct {
	MinLat float64 `yaml:"min_lat" mapstructure:"min_lat"`
	MaxLat float64 `yaml:"max_lat" mapstructure:"max_lat"`
	MinLon float64 `yaml:"min_lon" mapstructure:"min_lon"`
	MaxLon float64 `yaml:"max_lon" mapstructure:"max_lon"`
}

// PricingConfig holds per-call provider pricing for cost estimation.
type PricingConfig struct {
	GooglePerCall float64 `yaml:"google_per_call" mapstructure:"google_per_call"`
}

// ConsolidateConfig configures registry spreadsheet consolidation.
type ConsolidateConfig struct {
	SourceDir string `yaml:"source_dir" mapstructure:"source_dir"`
	OutFile   string `yaml:"out_file" mapstructure:"out_file"`
}

// MapConfig configures map generation.
type MapConfig struct {
	CenterLat               float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon               float64 `yaml:"center_lon" mapstructure:"center_lon"`
	ZoomStart               int     `yaml:"zoom_start" mapstructure:"zoom_start"`
	MaxClusterRadius        int     `yaml:"max_cluster_radius" mapstructure:"max_cluster_radius"`
	DisableClusteringAtZoom int     `yaml:"disable_clustering_at_zoom" mapstructure:"disable_clustering_at_zoom"`
	PrecisionDecimalPlaces  int     `yaml:"precision_decimal_places" mapstructure:"precision_decimal_places"`
}

// ServeConfig configures the map preview server.
type ServeConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml and LICENSEMAP_* environment
// variables.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LICENSEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("geocode.priority", []string{"census", "nominatim", "photon", "google"})
	// Registered so the env-only override is visible to Unmarshal.
	v.SetDefault("geocode.google_api_key", "")
	v.SetDefault("geocode.user_agent", "licensemap/1.0 (registry geocoding)")
	v.SetDefault("geocode.timeout_secs", 10)
	v.SetDefault("geocode.delay_secs", 1.0)
	v.SetDefault("geocode.retries", 2)
	v.SetDefault("geocode.retry_delay_secs", 2.0)
	v.SetDefault("geocode.checkpoint_interval", 100)
	v.SetDefault("geocode.cache_file", "data/cache/geocode_cache.json")
	v.SetDefault("geocode.region", "Michigan, USA")
	v.SetDefault("geocode.state", "MI")
	v.SetDefault("geocode.bounds.min_lat", 41.0)
	v.SetDefault("geocode.bounds.max_lat", 48.0)
	v.SetDefault("geocode.bounds.min_lon", -90.0)
	v.SetDefault("geocode.bounds.max_lon", -82.0)
	v.SetDefault("geocode.pricing.google_per_call", 0.005)
	v.SetDefault("consolidate.source_dir", "CRA Lists")
	v.SetDefault("consolidate.out_file", "data/processed/consolidated_licenses.csv")
	v.SetDefault("map.center_lat", 44.3148)
	v.SetDefault("map.center_lon", -85.6024)
	v.SetDefault("map.zoom_start", 7)
	v.SetDefault("map.max_cluster_radius", 50)
	v.SetDefault("map.disable_clustering_at_zoom", 15)
	v.SetDefault("map.precision_decimal_places", 6)
	v.SetDefault("serve.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ToGeocode converts the loaded section into the resolver's config value.
func (g GeocodeConfig) ToGeocode() geocode.Config {
	return geocode.Config{
		Priority:           g.Priority,
		GoogleAPIKey:       g.GoogleAPIKey,
		UserAgent:          g.UserAgent,
		Timeout:            time.Duration(g.TimeoutSecs) * time.Second,
		Delay:              time.Duration(g.DelaySecs * float64(time.Second)),
		Retries:            g.Retries,
		RetryDelay:         time.Duration(g.RetryDelaySecs * float64(time.Second)),
		CheckpointInterval: g.CheckpointInterval,
		CacheFile:          g.CacheFile,
		Bounds: geocode.Bounds{
			MinLat: g.Bounds.MinLat,
			MaxLat: g.Bounds.MaxLat,
			MinLon: g.Bounds.MinLon,
			MaxLon: g.Bounds.MaxLon,
		},
		Region:        g.Region,
		State:         g.State,
		GooglePerCall: g.Pricing.GooglePerCall,
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
