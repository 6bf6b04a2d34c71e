package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/tournament-tracker/internal/usecase"
)

const metricsNamespace = "tournament_tracker"

// Metrics records read model and change feed activity on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	recomputes    *prometheus.CounterVec
	discarded     prometheus.Counter
	duration      prometheus.Histogram
	version       prometheus.Gauge
	notifications *prometheus.CounterVec
}

var _ usecase.ReadModelMetrics = (*Metrics)(nil)

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "read_model",
			Name:      "recomputes_total",
			Help:      "Read model recomputations by result.",
		}, []string{"result"}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "read_model",
			Name:      "stale_discarded_total",
			Help:      "Recomputations dropped because a newer version was requested.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "read_model",
			Name:      "recompute_duration_seconds",
			Help:      "Wall time spent loading and aggregating a read model.",
			Buckets:   prometheus.DefBuckets,
		}),
		version: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "read_model",
			Name:      "applied_version",
			Help:      "Version of the read model currently served.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "changefeed",
			Name:      "notifications_total",
			Help:      "Change notifications received by source table.",
		}, []string{"table"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.recomputes,
		m.discarded,
		m.duration,
		m.version,
		m.notifications,
	)
	return m
}

func (m *Metrics) RecomputeFinished(result string, d time.Duration) {
	m.recomputes.WithLabelValues(result).Inc()
	switch result {
	case usecase.RecomputeDiscarded, usecase.RecomputeSuperseded:
		m.discarded.Inc()
	}
	if d > 0 {
		m.duration.Observe(d.Seconds())
	}
}

func (m *Metrics) AppliedVersion(v uint64) {
	m.version.Set(float64(v))
}

func (m *Metrics) NotificationReceived(table string) {
	m.notifications.WithLabelValues(table).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
