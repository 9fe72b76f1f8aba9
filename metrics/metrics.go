// Package metrics exposes benchmark results as Prometheus metrics that can
// be written to a node_exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "layoutbench"

// Recorder holds the metrics of a single layoutbench invocation on its own
// registry.
type Recorder struct {
	registry *prometheus.Registry

	// AverageMicros is the latest average microseconds per dataset.
	AverageMicros *prometheus.GaugeVec
	// DatasetsTotal counts datasets fed through the harness.
	DatasetsTotal *prometheus.CounterVec
	// RoundSeconds observes the duration of every timed round.
	RoundSeconds *prometheus.HistogramVec
	// MedianAge is the latest median age per layout.
	MedianAge *prometheus.GaugeVec
	// CalculationSeconds is the latest bucketize plus median time per layout.
	CalculationSeconds *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		AverageMicros: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "average_microseconds",
			Help:      "Average wall time per dataset in microseconds by experiment and variant",
		}, []string{"experiment", "variant"}),
		DatasetsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_total",
			Help:      "Total datasets processed by experiment and variant",
		}, []string{"experiment", "variant"}),
		RoundSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_duration_seconds",
			Help:      "Wall time of one timed round over all datasets",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12), // 10us to ~40s
		}, []string{"experiment", "variant"}),
		MedianAge: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "median_age",
			Help:      "Median age found by the last median-age run by layout",
		}, []string{"layout"}),
		CalculationSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "median_calculation_seconds",
			Help:      "Bucketize plus median search time by layout",
		}, []string{"layout"}),
	}
}

// ObserveRun records one timed round.
func (r *Recorder) ObserveRun(experiment, variant string, elapsed time.Duration, datasets int) {
	r.DatasetsTotal.WithLabelValues(experiment, variant).Add(float64(datasets))
	r.RoundSeconds.WithLabelValues(experiment, variant).Observe(elapsed.Seconds())
	if datasets > 0 {
		avg := float64(elapsed.Nanoseconds()) / 1e3 / float64(datasets)
		r.AverageMicros.WithLabelValues(experiment, variant).Set(avg)
	}
}

// ObserveAverage overrides the average of a variant, e.g. with the center of
// several rounds.
func (r *Recorder) ObserveAverage(experiment, variant string, micros float64) {
	r.AverageMicros.WithLabelValues(experiment, variant).Set(micros)
}

// ObserveMedian records the result of a median-age run.
func (r *Recorder) ObserveMedian(layout string, age int, calc time.Duration) {
	r.MedianAge.WithLabelValues(layout).Set(float64(age))
	r.CalculationSeconds.WithLabelValues(layout).Set(calc.Seconds())
}

// Gatherer returns the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
