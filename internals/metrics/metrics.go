package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsecheck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulsecheck_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// ProbeStatus counts probe outcomes by UP/DOWN
	ProbeStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsecheck_probe_status_total",
			Help: "Number of UP or DOWN probe outcomes",
		},
		[]string{"status"},
	)

	// ProbeDuration tracks how long a probe takes
	ProbeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulsecheck_probe_duration_seconds",
			Help:    "Duration of URL reachability probes",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCount, RequestDuration, ProbeStatus, ProbeDuration)
}
