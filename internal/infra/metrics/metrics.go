// Package metrics exposes Prometheus collectors for report builds,
// snapshot fetches and HTTP traffic.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Namespace prefixes every metric name.
const Namespace = "taskpulse"

// Fetch error kinds.
const (
	KindUnauthorized = "unauthorized"
	KindUnavailable  = "unavailable"
	KindInvalid      = "invalid"
	KindCanceled     = "canceled"
	KindOther        = "other"
)

// Ensure Metrics implements domain.ReportObserver.
var _ domain.ReportObserver = (*Metrics)(nil)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	ReportsBuilt       prometheus.Counter
	SuggestionsEmitted *prometheus.CounterVec
	CompletionRate     prometheus.Gauge
	OverdueTasks       prometheus.Gauge

	FetchDuration *prometheus.HistogramVec
	FetchErrors   *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates Metrics registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ReportsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "reports_built_total",
			Help:      "Total number of insight reports built",
		}),
		SuggestionsEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "suggestions_emitted_total",
				Help:      "Suggestions produced by report builds, before dismissal filtering",
			},
			[]string{"id"},
		),
		CompletionRate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "completion_rate_percent",
			Help:      "Completion rate of the most recent report",
		}),
		OverdueTasks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "overdue_tasks",
			Help:      "Overdue tasks in the most recent report",
		}),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "snapshot_fetch_duration_seconds",
				Help:      "Duration of snapshot fetches in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"result"},
		),
		FetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "snapshot_fetch_errors_total",
				Help:      "Failed snapshot fetches by kind",
			},
			[]string{"kind"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveReport records a freshly built report.
func (m *Metrics) ObserveReport(report *domain.Report) {
	m.ReportsBuilt.Inc()
	for _, s := range report.Suggestions {
		m.SuggestionsEmitted.WithLabelValues(s.ID).Inc()
	}
	m.CompletionRate.Set(report.Stats.CompletionRate)
	m.OverdueTasks.Set(float64(report.Stats.Overdue))
}

// ErrorKind classifies a fetch error for the errors counter.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, domain.ErrAPIUnavailable):
		return KindUnavailable
	case errors.Is(err, domain.ErrInvalidSnapshot):
		return KindInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindOther
	}
}

// Ensure instrumentedProvider implements domain.SnapshotProvider.
var _ domain.SnapshotProvider = (*instrumentedProvider)(nil)

type instrumentedProvider struct {
	next    domain.SnapshotProvider
	metrics *Metrics
}

// InstrumentProvider wraps next so every fetch is timed and failures are counted.
func (m *Metrics) InstrumentProvider(next domain.SnapshotProvider) domain.SnapshotProvider {
	return &instrumentedProvider{next: next, metrics: m}
}

func (p *instrumentedProvider) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	start := time.Now()
	snap, err := p.next.Snapshot(ctx)
	result := "ok"
	if err != nil {
		result = "error"
		p.metrics.FetchErrors.WithLabelValues(ErrorKind(err)).Inc()
	}
	p.metrics.FetchDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return snap, err
}

// Middleware records request count and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
