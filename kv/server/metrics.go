package server

import "github.com/prometheus/client_golang/prometheus"

var (
	handleCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "minikv",
			Subsystem: "server",
			Name:      "handle_requests_total",
			Help:      "Counter of handled KeyValue requests.",
		}, []string{"op", "result"})

	handleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "minikv",
			Subsystem: "server",
			Name:      "handle_request_duration_seconds",
			Help:      "Bucketed histogram of processing time (s) of handled KeyValue requests.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 16),
		}, []string{"op"})
)

func init() {
	prometheus.MustRegister(handleCounter)
	prometheus.MustRegister(handleDuration)
}
