// Package metrics holds the prometheus collectors of the batch driver.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dock"

// Pose outcomes.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Collector registers the engine metrics on its own registry.
type Collector struct {
	Registry *prometheus.Registry

	poses        *prometheus.CounterVec
	stageSeconds *prometheus.HistogramVec
	interactions *prometheus.CounterVec
	batches      prometheus.Counter
}

// New creates a Collector with a fresh registry.
func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		poses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poses_total",
			Help:      "Poses processed, by outcome.",
		}, []string{"status"}),
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pose_stage_duration_seconds",
			Help:      "Time spent per pose stage.",
			Buckets:   []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Aggregated interaction records, by category.",
		}, []string{"category"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batches run.",
		}),
	}
	c.Registry.MustRegister(c.poses, c.stageSeconds, c.interactions, c.batches)
	return c
}

// ObservePose counts a finished pose.
func (c *Collector) ObservePose(err error) {
	if c == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	c.poses.WithLabelValues(status).Inc()
}

// ObserveStage records the duration of a pose stage (merge, efficiency, detect).
func (c *Collector) ObserveStage(stage string, d time.Duration) {
	if c == nil {
		return
	}
	c.stageSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// AddInteractions adds n records to a category.
func (c *Collector) AddInteractions(category string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.interactions.WithLabelValues(category).Add(float64(n))
}

// ObserveBatch counts a finished batch.
func (c *Collector) ObserveBatch() {
	if c == nil {
		return
	}
	c.batches.Inc()
}

// WriteTextfile writes the registry in the node exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
