// Package service orchestrates bulletin refresh runs: fetch, decompress,
// extract, normalize, filter, and cache, with stale fallback on failure.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/forecast-bulletin-etl/internal/adapter/opendata"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/bulletin"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/cache"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/config"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/domain"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/observability"
)

// ErrMissingStation indicates no station identifier was supplied. It is
// surfaced immediately without stale fallback: no cache key exists for an
// unknown station.
var ErrMissingStation = errors.New("no station identifier supplied")

// Fetcher retrieves the raw compressed bulletin for a station.
type Fetcher interface {
	FetchBulletin(ctx context.Context, station string) ([]byte, error)
	BulletinURL(station string) string
}

// Options configures one refresh run.
type Options struct {
	Station       string
	Normalize     domain.NormalizeOptions
	OnlyFuture    bool
	HorizonHours  float64 // 0 = unbounded
	StaleFallback bool
	Diagnostics   bool
}

// OptionsFromConfig derives the default run options from service config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Station: cfg.StationID,
		Normalize: domain.NormalizeOptions{
			ConvertTemperature: cfg.ConvertTemperature,
			ConvertWindSpeed:   cfg.ConvertWindSpeed,
			ConvertPressure:    cfg.ConvertPressure,
			ConvertVisibility:  cfg.ConvertVisibility,
			WindLabel:          domain.WindLabelMode(cfg.WindLabelMode),
			Compact:            cfg.CompactOutput,
		},
		OnlyFuture:    cfg.OnlyFuture,
		HorizonHours:  cfg.HorizonHours,
		StaleFallback: cfg.StaleFallback,
		Diagnostics:   cfg.Diagnostics,
	}
}

// Service runs the extraction pipeline and owns the freshness cache.
type Service struct {
	fetcher   Fetcher
	extractor *bulletin.Extractor
	store     *cache.Store
	defaults  Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool

	scheduler *refreshScheduler

	// extractDocument is swappable so tests can fault the archive stage.
	extractDocument func([]byte) (string, error)
}

// New creates a Service with the given collaborators.
func New(fetcher Fetcher, store *cache.Store, defaults Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	s := &Service{
		fetcher:         fetcher,
		extractor:       bulletin.NewExtractor(logger),
		store:           store,
		defaults:        defaults,
		logger:          logger,
		metrics:         metrics,
		extractDocument: opendata.ExtractDocument,
	}
	s.scheduler = newRefreshScheduler(s)
	return s
}

// Defaults returns the configured default run options.
func (s *Service) Defaults() Options {
	return s.defaults
}

// CheckReadiness returns nil once at least one refresh has succeeded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no successful refresh yet")
	}
	return nil
}

// Refresh performs one full extraction run. On upstream failure with stale
// fallback enabled and a cached result present, it returns the cached result
// flagged stale with a nil error; otherwise the error is returned alongside
// an empty result carrying the failure description. Concurrent runs are
// permitted; the cache write is last-write-wins.
func (s *Service) Refresh(ctx context.Context, opts Options) (domain.ForecastResult, error) {
	if opts.Station == "" {
		return domain.ForecastResult{Error: ErrMissingStation.Error()}, ErrMissingStation
	}

	start := time.Now()
	result, err := s.extract(ctx, opts)
	s.metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		return s.fail(opts, err)
	}

	s.store.Put(opts.Station, result, result.FetchedAt)
	s.ready.Store(true)
	s.metrics.RefreshRuns.WithLabelValues("success").Inc()
	s.metrics.RecordsProduced.Observe(float64(result.RecordCount))
	s.logger.Info("refresh succeeded",
		"station", opts.Station,
		"site", result.SiteName,
		"records", result.RecordCount,
		"codes", len(result.Codes),
	)
	return result, nil
}

func (s *Service) extract(ctx context.Context, opts Options) (domain.ForecastResult, error) {
	data, err := s.fetcher.FetchBulletin(ctx, opts.Station)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	text, err := s.extractDocument(data)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	root, err := bulletin.Parse(text)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	axis, err := bulletin.ResolveTimeAxis(root, text)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	params, strategyName, counts := s.extractor.Extract(root, text, opts.Diagnostics)
	params = bulletin.Align(params, len(axis))
	siteName := bulletin.ResolveSiteName(root)

	now := domain.Now()
	if opts.OnlyFuture {
		axis, params = domain.OnlyFuture(axis, params, now)
	}
	if opts.HorizonHours > 0 {
		axis, params = domain.ClipHorizon(axis, params, now, opts.HorizonHours)
	}

	records := domain.BuildRecords(axis, params, opts.Normalize)

	result := domain.ForecastResult{
		Station:     opts.Station,
		SiteName:    siteName,
		SourceURL:   s.fetcher.BulletinURL(opts.Station),
		Records:     records,
		RecordCount: len(records),
		Codes:       params.Codes(),
		FetchedAt:   now,
	}

	if counts != nil {
		result.StrategyCounts = counts
		for name, n := range counts {
			s.metrics.StrategyParameters.WithLabelValues(name).Set(float64(n))
		}
		s.logger.Info("extraction diagnostics",
			"station", opts.Station, "strategy", strategyName, "counts", counts)
	}
	return result, nil
}

// fail applies the orchestrator's failure policy: every upstream error kind
// is recoverable through the freshness cache when the caller opted in.
func (s *Service) fail(opts Options, cause error) (domain.ForecastResult, error) {
	if opts.StaleFallback {
		if entry, ok := s.store.Get(opts.Station); ok {
			s.metrics.RefreshRuns.WithLabelValues("stale").Inc()
			s.metrics.StaleServes.Inc()
			s.logger.Warn("refresh failed, serving cached result",
				"station", opts.Station,
				"captured_at", entry.CapturedAt,
				"error", cause,
			)
			result := entry.Result
			result.Stale = true
			return result, nil
		}
	}

	s.metrics.RefreshRuns.WithLabelValues("failure").Inc()
	s.logger.Error("refresh failed", "station", opts.Station, "error", cause)
	return domain.ForecastResult{
		Station:   opts.Station,
		Records:   []domain.ForecastRecord{},
		FetchedAt: domain.Now(),
		Error:     cause.Error(),
	}, cause
}
