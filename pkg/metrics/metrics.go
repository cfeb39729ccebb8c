package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/acganger/ganger-platform-sub011/pkg/core/optimizer"
)

const namespace = "staffing"

// Recorder keeps optimization run metrics on its own registry
type Recorder struct {
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	demanded   *prometheus.GaugeVec
	assigned   *prometheus.GaugeVec
	unmet      *prometheus.GaugeVec
	travelCost *prometheus.GaugeVec
	coverage   prometheus.Gauge
	duration   prometheus.Histogram
}

// NewRecorder registers the run collectors on a fresh registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimization_runs_total",
			Help:      "Optimization runs by outcome",
		}, []string{"outcome"}),
		demanded: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "staff_demanded",
			Help:      "Staff positions required in the last run",
		}, []string{"location"}),
		assigned: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "staff_assigned",
			Help:      "Staff positions filled in the last run",
		}, []string{"location", "travel"}),
		unmet: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "staff_unmet",
			Help:      "Staff positions left unfilled in the last run",
		}, []string{"location"}),
		travelCost: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "travel_cost",
			Help:      "Travel cost of the last run by destination location",
		}, []string{"location"}),
		coverage: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "coverage_ratio",
			Help:      "Share of required positions filled in the last run",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "optimization_duration_seconds",
			Help:      "Wall time of optimization runs",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Registry exposes the gatherer holding the run metrics
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordResult replaces the per-location gauges with the figures of a finished run
func (r *Recorder) RecordResult(result *optimizer.Result, elapsed time.Duration) {
	r.runs.WithLabelValues("success").Inc()
	r.duration.Observe(elapsed.Seconds())

	r.demanded.Reset()
	r.assigned.Reset()
	r.unmet.Reset()
	r.travelCost.Reset()

	for _, c := range result.LocationCoverage {
		r.demanded.WithLabelValues(c.LocationID).Add(float64(c.RequiredStaff))
		r.unmet.WithLabelValues(c.LocationID).Add(float64(c.Gaps.Shortfall))
	}
	for _, a := range result.Assignments {
		travel := "false"
		if a.TravelRequired {
			travel = "true"
		}
		r.assigned.WithLabelValues(a.AssignedLocationID, travel).Inc()
	}
	for location, cost := range result.TravelCosts.ByLocation {
		r.travelCost.WithLabelValues(location).Set(cost)
	}
	r.coverage.Set(result.CoverageRatio())
}

// RecordFailure counts a run that returned an error
func (r *Recorder) RecordFailure(elapsed time.Duration) {
	r.runs.WithLabelValues("failure").Inc()
	r.duration.Observe(elapsed.Seconds())
}

// WriteToTextfile writes the metrics in the text exposition format, for the node
// exporter's textfile collector
func (r *Recorder) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
