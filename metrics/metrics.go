package metrics

import (
	"context"
	"time"
)

// Stats represents the current state of the webhook delivery system.
type Stats struct {
	// InFlight is the number of work items awaiting an outcome
	InFlight int64 `json:"in_flight"`

	// Completed is the number of work items with a recorded outcome
	Completed int64 `json:"completed"`

	// AttemptCounts maps "tenant:webhook:subscription" to completed attempts
	AttemptCounts map[string]int64 `json:"attempt_counts"`

	// Timestamp when stats were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting stats from the delivery store.
type Collector interface {
	// Collect gathers current stats from the system
	Collect(ctx context.Context) (Stats, error)

	// GetWorkItemCounts returns in-flight and completed work item counts
	GetWorkItemCounts(ctx context.Context) (inFlight, completed int64, err error)

	// GetAttemptCounts returns completed attempts per delivery triple
	GetAttemptCounts(ctx context.Context) (map[string]int64, error)
}
