// Package prommetrics exports hpgeom query and batch measurements as
// Prometheus metrics.
package prommetrics

import (
	"strconv"
	"time"

	"github.com/owlpinetech/hpgeom"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements hpgeom.MetricsCollector.
type Collector struct {
	queries       *prometheus.CounterVec
	queryLatency  *prometheus.HistogramVec
	queryPixels   *prometheus.HistogramVec
	batchElements *prometheus.CounterVec
	batchFailures *prometheus.CounterVec
	batchLatency  *prometheus.HistogramVec
}

var _ hpgeom.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hpgeom_queries_total",
			Help: "Region queries by kind and outcome",
		}, []string{"kind", "success"}),
		queryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hpgeom_query_duration_seconds",
			Help:    "Latency of successful region queries",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		queryPixels: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hpgeom_query_pixels",
			Help:    "Number of pixels returned by region queries",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"kind"}),
		batchElements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hpgeom_batch_elements_total",
			Help: "Elements submitted to batch conversions",
		}, []string{"op"}),
		batchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hpgeom_batch_failures_total",
			Help: "Batch elements that failed validation",
		}, []string{"op"}),
		batchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hpgeom_batch_duration_seconds",
			Help:    "Latency of batch conversions",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(
			c.queries,
			c.queryLatency,
			c.queryPixels,
			c.batchElements,
			c.batchFailures,
			c.batchLatency,
		)
	}
	return c
}

func (c *Collector) RecordQuery(kind string, pixels int, duration time.Duration, err error) {
	c.queries.WithLabelValues(kind, strconv.FormatBool(err == nil)).Inc()
	if err != nil {
		return
	}
	c.queryLatency.WithLabelValues(kind).Observe(duration.Seconds())
	c.queryPixels.WithLabelValues(kind).Observe(float64(pixels))
}

func (c *Collector) RecordBatch(op string, count, failed int, duration time.Duration) {
	c.batchElements.WithLabelValues(op).Add(float64(count))
	c.batchFailures.WithLabelValues(op).Add(float64(failed))
	c.batchLatency.WithLabelValues(op).Observe(duration.Seconds())
}
