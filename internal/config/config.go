package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultBulletinURL is the provider's open-data endpoint for single-station
// bulletins; "{station}" expands to the station ID.
const DefaultBulletinURL = "https://opendata.dwd.de/weather/local_forecasts/mos/MOSMIX_L/single_stations/{station}/kml/MOSMIX_L_LATEST_{station}.kmz"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	StationID           string
	BulletinURLTemplate string
	FetchTimeout        time.Duration
	RefreshInterval     time.Duration // 0 disables the recurring refresh

	// Normalization and filtering defaults; overridable per request.
	ConvertTemperature bool
	ConvertWindSpeed   bool
	ConvertPressure    bool
	ConvertVisibility  bool
	CompactOutput      bool
	WindLabelMode      string // degrees, cardinal8, cardinal16
	OnlyFuture         bool
	HorizonHours       float64 // 0 = unbounded
	StaleFallback      bool
	Diagnostics        bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parseDuration("REFRESH_INTERVAL", "0s")
	if err != nil {
		return nil, err
	}
	horizonHours, err := parseFloat("HORIZON_HOURS", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		StationID:           os.Getenv("STATION_ID"),
		BulletinURLTemplate: envOrDefault("BULLETIN_URL_TEMPLATE", DefaultBulletinURL),
		FetchTimeout:        fetchTimeout,
		RefreshInterval:     refreshInterval,

		ConvertTemperature: parseBool("CONVERT_TEMPERATURE", true),
		ConvertWindSpeed:   parseBool("CONVERT_WIND_SPEED", true),
		ConvertPressure:    parseBool("CONVERT_PRESSURE", true),
		ConvertVisibility:  parseBool("CONVERT_VISIBILITY", true),
		CompactOutput:      parseBool("COMPACT_OUTPUT", false),
		WindLabelMode:      envOrDefault("WIND_LABEL_MODE", "degrees"),
		OnlyFuture:         parseBool("ONLY_FUTURE", true),
		HorizonHours:       horizonHours,
		StaleFallback:      parseBool("STALE_FALLBACK", true),
		Diagnostics:        parseBool("DIAGNOSTICS", false),
	}

	if cfg.BulletinURLTemplate == "" {
		return nil, errors.New("BULLETIN_URL_TEMPLATE is required")
	}
	switch cfg.WindLabelMode {
	case "degrees", "cardinal8", "cardinal16":
	default:
		return nil, fmt.Errorf("invalid WIND_LABEL_MODE %q", cfg.WindLabelMode)
	}
	if cfg.FetchTimeout <= 0 {
		return nil, errors.New("FETCH_TIMEOUT must be positive")
	}
	if cfg.HorizonHours < 0 {
		return nil, errors.New("HORIZON_HOURS must not be negative")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}

func parseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}
