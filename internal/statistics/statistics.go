package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"time"
)

const (
	namespace = "dir_compare"
)

var (
	nodesVisited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nodes_visited_total",
		Help:      "Total comparison nodes visited by all builds",
	})

	nodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "node_failures_total",
		Help:      "Total comparison nodes that could not be resolved",
	})

	builds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "builds_total",
		Help:      "Total finished builds by outcome",
	}, []string{"outcome"})

	buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Build duration in seconds by outcome",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
	}, []string{"outcome"})
)

func RecordNodeVisit() {
	nodesVisited.Inc()
}

func RecordNodeFailure() {
	nodeFailures.Inc()
}

func RecordBuild(outcome string, duration time.Duration) {
	builds.WithLabelValues(outcome).Inc()
	buildDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// Handler serves all registered metrics in the prometheus text format.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
