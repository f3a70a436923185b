package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Calculation Metrics
var (
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEstimatesTotal,
			Help: HelpTextEstimatesTotal,
		},
		[]string{LabelEstimator, LabelOutcome},
	)

	CalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCalculationDuration,
			Help:    HelpTextCalculationDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)
)
