package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/forecast-bulletin-etl/internal/domain"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/service"
)

type stubRunner struct {
	result   domain.ForecastResult
	err      error
	readyErr error
	defaults service.Options
	gotOpts  service.Options
}

func (r *stubRunner) Refresh(_ context.Context, opts service.Options) (domain.ForecastResult, error) {
	r.gotOpts = opts
	return r.result, r.err
}

func (r *stubRunner) Defaults() service.Options { return r.defaults }

func (r *stubRunner) CheckReadiness(_ context.Context) error { return r.readyErr }

func newTestServer(runner ForecastRunner) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", runner, logger)
}

func doRequest(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(&stubRunner{}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestHandleReady(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rec := doRequest(t, newTestServer(&stubRunner{}), "/readyz")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		runner := &stubRunner{readyErr: errors.New("no successful refresh yet")}

		rec := doRequest(t, newTestServer(runner), "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandleForecast(t *testing.T) {
	runner := &stubRunner{
		defaults: service.Options{Station: "10384"},
		result:   domain.ForecastResult{Station: "10384", RecordCount: 3},
	}

	rec := doRequest(t, newTestServer(runner), "/forecast")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.ForecastResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "10384", got.Station)
	assert.Equal(t, 3, got.RecordCount)
}

func TestHandleForecast_QueryOverrides(t *testing.T) {
	runner := &stubRunner{defaults: service.Options{Station: "10384"}}
	srv := newTestServer(runner)

	rec := doRequest(t, srv, "/forecast?station=10641&hours=12&wind=cardinal16&compact=true&future=false&diag=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10641", runner.gotOpts.Station)
	assert.Equal(t, 12.0, runner.gotOpts.HorizonHours)
	assert.Equal(t, domain.WindCardinal16, runner.gotOpts.Normalize.WindLabel)
	assert.True(t, runner.gotOpts.Normalize.Compact)
	assert.False(t, runner.gotOpts.OnlyFuture)
	assert.True(t, runner.gotOpts.Diagnostics)
}

func TestHandleForecast_BadParameters(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"non-numeric hours", "/forecast?hours=tomorrow"},
		{"negative hours", "/forecast?hours=-2"},
		{"unknown wind mode", "/forecast?wind=compass32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestServer(&stubRunner{}), tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleForecast_MissingStation(t *testing.T) {
	runner := &stubRunner{
		err:    service.ErrMissingStation,
		result: domain.ForecastResult{Error: service.ErrMissingStation.Error()},
	}

	rec := doRequest(t, newTestServer(runner), "/forecast")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleForecast_UpstreamFailure(t *testing.T) {
	runner := &stubRunner{
		err:    errors.New("upstream unavailable"),
		result: domain.ForecastResult{Station: "10384", Error: "upstream unavailable"},
	}

	rec := doRequest(t, newTestServer(runner), "/forecast")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var got domain.ForecastResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "upstream unavailable", got.Error)
}
