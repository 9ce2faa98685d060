package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intake"

// Registry holds every metric exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	// Submissions counts intake requests by form and outcome
	// (ok, spam, empty, missing, invalid, consent, method, config, db).
	Submissions = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Total number of form submissions by outcome",
		},
		[]string{"form", "outcome"},
	)

	// GatewayDuration records datastore insert latency
	GatewayDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_duration_seconds",
			Help:      "Datastore call duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"backend", "operation"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func CountSubmission(form, outcome string) {
	Submissions.WithLabelValues(form, outcome).Inc()
}

func ObserveGateway(backend, operation string, start time.Time) {
	GatewayDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
