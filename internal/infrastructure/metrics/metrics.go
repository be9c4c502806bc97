package metrics

import (
	"net/http"
	"strconv"

	"quotes-aggregator/internal/application"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collector and read API instruments, all registered on
// a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	SourceResultsTotal *prometheus.CounterVec
	StoreErrorsTotal   *prometheus.CounterVec
	CyclesTotal        prometheus.Counter
	CyclesSkippedTotal prometheus.Counter
	CycleDuration      prometheus.Histogram
	LastCycleStored    prometheus.Gauge
	LastCycleTimestamp prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var _ application.CycleObserver = (*Metrics)(nil)

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		SourceResultsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotes_source_results_total",
				Help: "Extraction attempts per source and outcome.",
			},
			[]string{"source", "outcome"},
		),
		StoreErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotes_store_errors_total",
				Help: "Valid samples that could not be written to the store.",
			},
			[]string{"source"},
		),
		CyclesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "quotes_cycles_total",
			Help: "Completed fetch cycles.",
		}),
		CyclesSkippedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "quotes_cycles_skipped_total",
			Help: "Cycles skipped because the previous one was still running.",
		}),
		CycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "quotes_cycle_duration_seconds",
			Help:    "Wall time of a full fetch cycle.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s .. 64s
		}),
		LastCycleStored: f.NewGauge(prometheus.GaugeOpts{
			Name: "quotes_last_cycle_stored",
			Help: "Samples stored by the most recent cycle.",
		}),
		LastCycleTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "quotes_last_cycle_timestamp_seconds",
			Help: "Start time of the most recent completed cycle.",
		}),

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotes_http_requests_total",
				Help: "Read API requests by route and status.",
			},
			[]string{"route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quotes_http_request_duration_seconds",
				Help:    "Read API latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

func (m *Metrics) SourceDone(source string, outcome application.Outcome) {
	m.SourceResultsTotal.WithLabelValues(source, string(outcome)).Inc()
}

func (m *Metrics) StoreFailed(source string) {
	m.StoreErrorsTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) CycleDone(r application.CycleReport) {
	m.CyclesTotal.Inc()
	m.CycleDuration.Observe(r.Duration.Seconds())
	m.LastCycleStored.Set(float64(r.Stored))
	m.LastCycleTimestamp.Set(float64(r.Started.Unix()))
}

func (m *Metrics) CycleSkipped() { m.CyclesSkippedTotal.Inc() }

func (m *Metrics) ObserveRequest(route string, status int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(seconds)
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
