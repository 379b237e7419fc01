package sender

import (
	"time"

	"github.com/google/uuid"
)

/* WorkItem is the durable record of a single delivery attempt
 * Created and persisted before the HTTP call is made, so a crash
 * mid-delivery still leaves an auditable "attempted" record
 * Mutated exactly once with the outcome, never deleted
 */
type WorkItem struct {
	ID                 string
	WebhookID          uuid.UUID
	SubscriptionID     uuid.UUID
	TenantID           *uuid.UUID
	ResponseStatusCode int
	ResponseContent    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Completed reports whether an outcome has been recorded for this attempt.
func (w WorkItem) Completed() bool {
	return w.ResponseStatusCode != 0
}
