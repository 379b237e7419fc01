package sender

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrMissingWebhookID is returned when the input has no webhook id.
	ErrMissingWebhookID = errors.New("webhook id is required")

	// ErrMissingSubscriptionID is returned when the input has no subscription id.
	ErrMissingSubscriptionID = errors.New("webhook subscription id is required")

	// ErrWorkItemNotFound is returned by trackers when no work item exists
	// for the requested id.
	ErrWorkItemNotFound = errors.New("work item not found")
)

/* InvalidHeaderError reports a caller-supplied header that cannot be put
 * on the wire. Header merge failures are hard failures, never skipped
 * silently, so the error identifies the subscription and the offending
 * key/value for the caller's logs
 */
type InvalidHeaderError struct {
	SubscriptionID uuid.UUID
	Key            string
	Value          string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid header %q: %q for subscription %s", e.Key, e.Value, e.SubscriptionID)
}
