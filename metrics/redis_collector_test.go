package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestRedisCollector_NewRedisCollector(t *testing.T) {
	t.Run("creates collector successfully", func(t *testing.T) {
		// The constructor does not require a live Redis connection
		collector := NewRedisCollector(nil)

		assert.NotNil(t, collector)
	})
}

func TestStats_Struct(t *testing.T) {
	t.Run("stats struct has all required fields", func(t *testing.T) {
		s := Stats{
			InFlight:  3,
			Completed: 12,
			AttemptCounts: map[string]int64{
				"host:wh-1:sub-1": 4,
			},
			Timestamp: time.Now(),
		}

		assert.Equal(t, int64(3), s.InFlight)
		assert.Equal(t, int64(12), s.Completed)
		assert.Equal(t, int64(4), s.AttemptCounts["host:wh-1:sub-1"])
		assert.False(t, s.Timestamp.IsZero())
	})
}

func TestPrometheusRecorder(t *testing.T) {
	t.Run("records outcomes without panicking", func(t *testing.T) {
		recorder := NewPrometheusRecorder(prometheus.NewRegistry())

		recorder.RecordDelivery("user.created", 200, true, 120*time.Millisecond)
		recorder.RecordDelivery("user.created", 500, false, 80*time.Millisecond)
		recorder.RecordDelivery("user.created", 408, false, 2*time.Second)
	})

	t.Run("separate registries are independent", func(t *testing.T) {
		first := NewPrometheusRecorder(prometheus.NewRegistry())
		second := NewPrometheusRecorder(prometheus.NewRegistry())

		first.RecordDelivery("invoice.paid", 200, true, time.Millisecond)
		second.RecordDelivery("invoice.paid", 200, true, time.Millisecond)
	})
}
