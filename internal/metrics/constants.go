package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal   = "tourism_http_requests_total"
	MetricNameHTTPRequestDuration = "tourism_http_request_duration_seconds"
	MetricNameEstimatesTotal      = "tourism_estimates_total"
	MetricNameCalculationDuration = "tourism_calculation_duration_seconds"
)

// Help text
const (
	HelpTextHTTPRequestsTotal   = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration = "HTTP request latency in seconds"
	HelpTextEstimatesTotal      = "Total number of estimate instructions processed"
	HelpTextCalculationDuration = "Time spent processing an estimate request in seconds"
)

// Labels
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelEstimator = "estimator"
	LabelOutcome   = "outcome"
)

var HTTPLatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
