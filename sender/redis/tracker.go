package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-outbox/sender"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of sender.Tracker
 * Uses Redis Hashes for work item storage and a plain counter per
 * (tenant, webhook, subscription) triple for attempt counting
 */

const (
	hashPrefix    = "workitem" // Hash naming: workitem:{work_item_id}
	counterPrefix = "attempts" // Counter naming: attempts:{tenant}:{webhook}:{subscription}
	hostTenant    = "host"     // Key segment used when no tenant is set
)

type Tracker struct {
	client *redis.Client
}

// NewTracker creates a new Redis-backed work item tracker
func NewTracker(addr, password string, db int) (*Tracker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Tracker{
		client: client,
	}, nil
}

// Insert persists a new work item hash and returns its id
func (t *Tracker) Insert(ctx context.Context, item sender.WorkItem) (string, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	hashKey := fmt.Sprintf("%s:%s", hashPrefix, item.ID)

	err := t.client.HSet(ctx, hashKey, map[string]interface{}{
		"id":                   item.ID,
		"webhook_id":           item.WebhookID.String(),
		"subscription_id":      item.SubscriptionID.String(),
		"tenant_id":            tenantKey(item.TenantID),
		"response_status_code": item.ResponseStatusCode,
		"response_content":     item.ResponseContent,
		"created_at":           item.CreatedAt.Unix(),
		"updated_at":           item.UpdatedAt.Unix(),
	}).Err()
	if err != nil {
		return "", fmt.Errorf("storing work item: %w", err)
	}

	return item.ID, nil
}

// Get retrieves a work item by tenant and id from its Redis hash
func (t *Tracker) Get(ctx context.Context, tenantID *uuid.UUID, id string) (sender.WorkItem, error) {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, id)

	data, err := t.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return sender.WorkItem{}, fmt.Errorf("getting work item: %w", err)
	}
	if len(data) == 0 || data["tenant_id"] != tenantKey(tenantID) {
		return sender.WorkItem{}, fmt.Errorf("%w: %s", sender.ErrWorkItemNotFound, id)
	}

	webhookID, err := uuid.Parse(data["webhook_id"])
	if err != nil {
		return sender.WorkItem{}, fmt.Errorf("parsing webhook id: %w", err)
	}

	subscriptionID, err := uuid.Parse(data["subscription_id"])
	if err != nil {
		return sender.WorkItem{}, fmt.Errorf("parsing subscription id: %w", err)
	}

	item := sender.WorkItem{
		ID:                 data["id"],
		WebhookID:          webhookID,
		SubscriptionID:     subscriptionID,
		TenantID:           tenantID,
		ResponseStatusCode: int(parseInt64(data["response_status_code"])),
		ResponseContent:    data["response_content"],
		CreatedAt:          time.Unix(parseInt64(data["created_at"]), 0),
		UpdatedAt:          time.Unix(parseInt64(data["updated_at"]), 0),
	}

	return item, nil
}

// Update persists the recorded outcome of a work item
// The attempt counter for the triple is incremented the first time an
// outcome is recorded, so CountAttempts only sees completed attempts
func (t *Tracker) Update(ctx context.Context, item sender.WorkItem) error {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, item.ID)

	previous, err := t.client.HGet(ctx, hashKey, "response_status_code").Result()
	if err == redis.Nil {
		return fmt.Errorf("%w: %s", sender.ErrWorkItemNotFound, item.ID)
	}
	if err != nil {
		return fmt.Errorf("reading work item state: %w", err)
	}

	err = t.client.HSet(ctx, hashKey, map[string]interface{}{
		"response_status_code": item.ResponseStatusCode,
		"response_content":     item.ResponseContent,
		"updated_at":           time.Now().Unix(),
	}).Err()
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}

	if parseInt64(previous) == 0 && item.ResponseStatusCode != 0 {
		counter := counterKey(item.TenantID, item.WebhookID, item.SubscriptionID)
		if err := t.client.Incr(ctx, counter).Err(); err != nil {
			return fmt.Errorf("incrementing attempt counter: %w", err)
		}
	}

	return nil
}

// CountAttempts returns the number of completed attempts for the triple
func (t *Tracker) CountAttempts(ctx context.Context, tenantID *uuid.UUID, webhookID, subscriptionID uuid.UUID) (int, error) {
	count, err := t.client.Get(ctx, counterKey(tenantID, webhookID, subscriptionID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counting attempts: %w", err)
	}

	return count, nil
}

// Close closes the Redis connection
func (t *Tracker) Close(ctx context.Context) error {
	return t.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (t *Tracker) GetClient() *redis.Client {
	return t.client
}

// Helper functions

func tenantKey(tenantID *uuid.UUID) string {
	if tenantID == nil {
		return hostTenant
	}
	return tenantID.String()
}

func counterKey(tenantID *uuid.UUID, webhookID, subscriptionID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s:%s", counterPrefix, tenantKey(tenantID), webhookID, subscriptionID)
}

func parseInt64(s string) int64 {
	var result int64
	fmt.Sscanf(s, "%d", &result)
	return result
}
