package sender

import "github.com/google/uuid"

/* Input represents a single outbound webhook delivery request
 * Uses value semantics as it represents data, not behavior
 * Immutable for the duration of a delivery
 */
type Input struct {
	WebhookID      uuid.UUID
	SubscriptionID uuid.UUID
	TenantID       *uuid.UUID
	URI            string
	Event          string
	Data           string
	Secret         string
	Headers        map[string]string
}
