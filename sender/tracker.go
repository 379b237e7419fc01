package sender

import (
	"context"

	"github.com/google/uuid"
)

/* Small, focused interface following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Tracker is the durable store for delivery work items.
type Tracker interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */

	// Insert persists a new work item and returns its generated id.
	Insert(ctx context.Context, item WorkItem) (string, error)

	// Get fetches a previously inserted work item by tenant and id.
	// Returns ErrWorkItemNotFound if absent.
	Get(ctx context.Context, tenantID *uuid.UUID, id string) (WorkItem, error)

	// Update persists outcome mutations to an existing work item.
	Update(ctx context.Context, item WorkItem) error

	/* CountAttempts returns the number of previously completed delivery
	 * attempts for the exact (tenant, webhook, subscription) triple.
	 * Concurrent deliveries for the same triple may race here, so attempt
	 * numbering is best-effort rather than a strict sequence
	 */
	CountAttempts(ctx context.Context, tenantID *uuid.UUID, webhookID, subscriptionID uuid.UUID) (int, error)
}

/* NoopTracker is the explicit "no persistence configured" variant
 * It discards writes, reports zero prior attempts, and Get hands back a
 * synthetic item so the recording step still completes. Used deliberately
 * via NewNoopTracker so call sites that need durable tracking can assert a
 * real Tracker is wired instead
 */
type NoopTracker struct{}

// NewNoopTracker creates a tracker that records nothing.
func NewNoopTracker() *NoopTracker {
	return &NoopTracker{}
}

// Insert discards the item and returns its id (generating one if unset).
func (t *NoopTracker) Insert(ctx context.Context, item WorkItem) (string, error) {
	if item.ID == "" {
		return uuid.New().String(), nil
	}
	return item.ID, nil
}

// Get hands back a synthetic item carrying only the requested id.
func (t *NoopTracker) Get(ctx context.Context, tenantID *uuid.UUID, id string) (WorkItem, error) {
	return WorkItem{ID: id, TenantID: tenantID}, nil
}

// Update discards the mutation.
func (t *NoopTracker) Update(ctx context.Context, item WorkItem) error {
	return nil
}

// CountAttempts reports zero prior attempts.
func (t *NoopTracker) CountAttempts(ctx context.Context, tenantID *uuid.UUID, webhookID, subscriptionID uuid.UUID) (int, error) {
	return 0, nil
}
