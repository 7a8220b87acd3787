// Package metrics exposes tripkeeper's Prometheus instruments: per-operation
// counters and latencies of the domain store, and gauges describing the
// engine connection pool.
package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "tripkeeper"
	subsystem = "store"
)

// Metrics holds the store instruments. A nil *Metrics records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates the instruments on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Store operations by name and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Latency of store operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
	}
	m.registry.MustRegister(m.operations, m.duration)
	return m
}

// Observe records one operation that started at start.
func (m *Metrics) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Register adds extra collectors to the registry.
func (m *Metrics) Register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// EngineSource is what the engine collector reads on every scrape.
type EngineSource interface {
	Backend() string
	Ready() bool
	Stats() sql.DBStats
}

type engineCollector struct {
	src    EngineSource
	labels prometheus.Labels
}

// NewEngineCollector exposes connection pool state of the engine owned by src.
func NewEngineCollector(src EngineSource) prometheus.Collector {
	return &engineCollector{
		src:    src,
		labels: prometheus.Labels{"backend": src.Backend()},
	}
}

func (c *engineCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *engineCollector) gauge(ch chan<- prometheus.Metric, name, help string, v float64) {
	ch <- prometheus.MustNewConstMetric(
		prometheus.NewDesc(prometheus.BuildFQName(namespace, "engine", name), help, nil, c.labels),
		prometheus.GaugeValue,
		v,
	)
}

func (c *engineCollector) Collect(ch chan<- prometheus.Metric) {
	ready := 0.0
	if c.src.Ready() {
		ready = 1
	}
	stats := c.src.Stats()

	c.gauge(ch, "ready", "1 when a live engine is held.", ready)
	c.gauge(ch, "open_connections", "Established connections both in use and idle.", float64(stats.OpenConnections))
	c.gauge(ch, "in_use_connections", "Connections currently in use.", float64(stats.InUse))
	c.gauge(ch, "wait_count", "Total number of connections waited for.", float64(stats.WaitCount))
}

var _ prometheus.Collector = (*engineCollector)(nil)
