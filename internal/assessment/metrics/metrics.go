// Package metrics holds the Prometheus metrics for the assessment module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the assessment module's Prometheus collectors.
type Metrics struct {
	AssessmentsTotal *prometheus.CounterVec
	Duration         prometheus.Histogram
	HarvestFailures  prometheus.Counter
	SummaryScore     prometheus.Histogram
}

// New creates and registers all assessment metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AssessmentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fairmeter_assessments_total",
			Help: "Total number of completed assessments by summary status.",
		}, []string{"status"}),
		Duration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fairmeter_assessment_duration_seconds",
			Help:    "End-to-end duration of one assessment.",
			Buckets: prometheus.DefBuckets,
		}),
		HarvestFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fairmeter_harvest_failures_total",
			Help: "Assessments that proceeded with an empty term set after a failed harvest.",
		}),
		SummaryScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fairmeter_assessment_summary_score",
			Help:    "Distribution of overall assessment scores.",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
	}
}

// ObserveAssessment records one completed assessment.
func (m *Metrics) ObserveAssessment(status string, score int, seconds float64) {
	if m == nil {
		return
	}
	m.AssessmentsTotal.WithLabelValues(status).Inc()
	m.Duration.Observe(seconds)
	m.SummaryScore.Observe(float64(score))
}

// IncHarvestFailure counts a harvest that yielded no record.
func (m *Metrics) IncHarvestFailure() {
	if m == nil {
		return
	}
	m.HarvestFailures.Inc()
}
