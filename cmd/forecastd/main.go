package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/forecast-bulletin-etl/internal/adapter/http"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/adapter/opendata"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/cache"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/config"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/observability"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := opendata.NewClient(cfg.BulletinURLTemplate, cfg.FetchTimeout, logger)
	store := cache.New()
	svc := service.New(fetcher, store, service.OptionsFromConfig(cfg), logger, metrics)

	if cfg.RefreshInterval > 0 {
		if cfg.StationID == "" {
			logger.Warn("REFRESH_INTERVAL set but STATION_ID empty; recurring refresh disabled")
		} else if err := svc.Schedule(cfg.RefreshInterval); err != nil {
			logger.Error("failed to start refresh scheduler", "error", err)
			os.Exit(1)
		}
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	svc.StopSchedule()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
