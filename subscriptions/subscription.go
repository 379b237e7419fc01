package subscriptions

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/google/uuid"
)

// eventTypePattern validates event types: hierarchical, full-stop delimited, [a-zA-Z0-9_.]
var eventTypePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)*$`)

/* Subscription represents a webhook destination configuration
 * Maps a subscription id to a target URL with signing and header settings
 */
type Subscription struct {
	SubscriptionID uuid.UUID
	TenantID       *uuid.UUID
	TargetURL      string
	Secret         string
	Headers        map[string]string // Static headers merged into every delivery
	EventTypes     []string          // Event types to filter (e.g., ["user.created", "user.*"])
}

// Validate checks if the subscription configuration is valid
func (s *Subscription) Validate() error {
	if s.SubscriptionID == uuid.Nil {
		return fmt.Errorf("subscription_id cannot be empty")
	}
	if s.TargetURL == "" {
		return fmt.Errorf("target_url cannot be empty for subscription %s", s.SubscriptionID)
	}
	if _, err := url.ParseRequestURI(s.TargetURL); err != nil {
		return fmt.Errorf("invalid target_url for subscription %s: %w", s.SubscriptionID, err)
	}
	if s.Secret == "" {
		return fmt.Errorf("secret cannot be empty for subscription %s", s.SubscriptionID)
	}
	for _, eventType := range s.EventTypes {
		if err := ValidateEventType(eventType); err != nil {
			return fmt.Errorf("invalid event_type '%s' for subscription %s: %w", eventType, s.SubscriptionID, err)
		}
	}
	return nil
}

// Accepts checks if the subscription's filters match the given event type
// Supports exact matching and prefix matching (e.g., "user.*" matches "user.created")
func (s *Subscription) Accepts(event string) bool {
	if len(s.EventTypes) == 0 {
		// No filter means accept all
		return true
	}

	for _, eventType := range s.EventTypes {
		// Exact match
		if event == eventType {
			return true
		}

		// Prefix match (e.g., "user.*" matches "user.created", "user.updated")
		if len(eventType) > 2 && eventType[len(eventType)-2:] == ".*" {
			prefix := eventType[:len(eventType)-2]
			if len(event) > len(prefix) && event[:len(prefix)] == prefix && event[len(prefix)] == '.' {
				return true
			}
		}
	}

	return false
}

// ValidateEventType validates an event type format
func ValidateEventType(eventType string) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}

	// Allow wildcard suffix for filtering
	if len(eventType) > 2 && eventType[len(eventType)-2:] == ".*" {
		eventType = eventType[:len(eventType)-2]
	}

	if !eventTypePattern.MatchString(eventType) {
		return fmt.Errorf("event type must be hierarchical and contain only [a-zA-Z0-9_.]: %s", eventType)
	}

	return nil
}
