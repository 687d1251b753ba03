package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// bulletin refresh pipeline.
type Metrics struct {
	RefreshRuns     *prometheus.CounterVec // labels: outcome={success,stale,failure}
	RefreshDuration prometheus.Histogram
	RecordsProduced prometheus.Histogram
	StaleServes     prometheus.Counter
	SchedulerActive prometheus.Gauge

	// Extraction diagnostics.
	StrategyParameters *prometheus.GaugeVec // labels: strategy
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RefreshRuns,
		m.RefreshDuration,
		m.RecordsProduced,
		m.StaleServes,
		m.SchedulerActive,
		m.StrategyParameters,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_etl",
			Name:      "refresh_runs_total",
			Help:      "Refresh runs by outcome: success, stale (cache fallback), failure.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast_etl",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-extract-normalize run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RecordsProduced: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast_etl",
			Name:      "records_produced",
			Help:      "Forecast records emitted per successful run.",
			Buckets:   []float64{1, 6, 12, 24, 48, 72, 120, 240},
		}),
		StaleServes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forecast_etl",
			Name:      "stale_serves_total",
			Help:      "Runs answered from the freshness cache after an upstream failure.",
		}),
		SchedulerActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forecast_etl",
			Name:      "scheduler_active",
			Help:      "1 when the recurring refresh timer is running, 0 otherwise.",
		}),
		StrategyParameters: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "forecast_etl",
			Name:      "strategy_parameters",
			Help:      "Parameter codes found by each extraction strategy in the last diagnostic run.",
		}, []string{"strategy"}),
	}
}
