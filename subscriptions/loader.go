package subscriptions

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

/* Loader manages subscription configuration from subscriptions.yaml
 * Provides in-memory lookup for fast access
 */

// Config represents the structure of subscriptions.yaml
type Config struct {
	Subscriptions []SubscriptionConfig `yaml:"subscriptions"`
}

// SubscriptionConfig represents a single subscription in the YAML file
type SubscriptionConfig struct {
	SubscriptionID string            `yaml:"subscription_id"`
	TenantID       string            `yaml:"tenant_id"` // Optional: empty means host scope
	TargetURL      string            `yaml:"target_url"`
	Secret         string            `yaml:"secret"`
	Headers        map[string]string `yaml:"headers"`
	EventTypes     []string          `yaml:"event_types"`
}

// Loader holds the loaded subscriptions
type Loader struct {
	subscriptions map[uuid.UUID]*Subscription
}

// NewLoader creates a new subscription loader
func NewLoader() *Loader {
	return &Loader{
		subscriptions: make(map[uuid.UUID]*Subscription),
	}
}

// Load reads and parses the subscriptions.yaml file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading subscriptions file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing subscriptions YAML: %w", err)
	}

	// Convert and validate subscriptions
	for _, sc := range config.Subscriptions {
		subscriptionID, err := uuid.Parse(sc.SubscriptionID)
		if err != nil {
			return fmt.Errorf("parsing subscription_id %q: %w", sc.SubscriptionID, err)
		}

		var tenantID *uuid.UUID
		if sc.TenantID != "" {
			parsed, err := uuid.Parse(sc.TenantID)
			if err != nil {
				return fmt.Errorf("parsing tenant_id for subscription %s: %w", subscriptionID, err)
			}
			tenantID = &parsed
		}

		subscription := &Subscription{
			SubscriptionID: subscriptionID,
			TenantID:       tenantID,
			TargetURL:      sc.TargetURL,
			Secret:         sc.Secret,
			Headers:        sc.Headers,
			EventTypes:     sc.EventTypes,
		}

		if err := subscription.Validate(); err != nil {
			return fmt.Errorf("validating subscription: %w", err)
		}

		l.subscriptions[subscription.SubscriptionID] = subscription
	}

	return nil
}

// Get retrieves a subscription by its ID
func (l *Loader) Get(subscriptionID uuid.UUID) (*Subscription, error) {
	subscription, exists := l.subscriptions[subscriptionID]
	if !exists {
		return nil, fmt.Errorf("subscription not found: %s", subscriptionID)
	}
	return subscription, nil
}

// List returns all loaded subscriptions
func (l *Loader) List() []*Subscription {
	subscriptions := make([]*Subscription, 0, len(l.subscriptions))
	for _, subscription := range l.subscriptions {
		subscriptions = append(subscriptions, subscription)
	}
	return subscriptions
}

// Exists checks if a subscription ID exists
func (l *Loader) Exists(subscriptionID uuid.UUID) bool {
	_, exists := l.subscriptions[subscriptionID]
	return exists
}
