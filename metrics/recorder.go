package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

/* PrometheusRecorder implements sender.Recorder
 * Counts delivery outcomes and observes call latency per event type
 */
type PrometheusRecorder struct {
	deliveries *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the delivery instruments on the given
// registerer. Pass prometheus.DefaultRegisterer for the global registry.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_deliveries_total",
			Help: "Number of webhook delivery attempts by event, status code and outcome",
		}, []string{"event", "status_code", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "webhook_delivery_duration_seconds",
			Help:    "Duration of outbound webhook HTTP calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"event"}),
	}
}

// RecordDelivery records the outcome and latency of one delivery attempt.
func (r *PrometheusRecorder) RecordDelivery(event string, statusCode int, success bool, elapsed time.Duration) {
	outcome := "failure"
	if success {
		outcome = "success"
	}

	r.deliveries.WithLabelValues(event, strconv.Itoa(statusCode), outcome).Inc()
	r.duration.WithLabelValues(event).Observe(elapsed.Seconds())
}
