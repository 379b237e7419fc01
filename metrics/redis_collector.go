package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCollector implements the Collector interface for Redis-backed stats
type RedisCollector struct {
	client *redis.Client
}

// NewRedisCollector creates a new Redis stats collector
func NewRedisCollector(client *redis.Client) *RedisCollector {
	return &RedisCollector{
		client: client,
	}
}

// Collect gathers all stats from Redis
func (c *RedisCollector) Collect(ctx context.Context) (Stats, error) {
	inFlight, completed, err := c.GetWorkItemCounts(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("getting work item counts: %w", err)
	}

	attemptCounts, err := c.GetAttemptCounts(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("getting attempt counts: %w", err)
	}

	return Stats{
		InFlight:      inFlight,
		Completed:     completed,
		AttemptCounts: attemptCounts,
		Timestamp:     time.Now(),
	}, nil
}

// GetWorkItemCounts counts work items by whether an outcome was recorded
func (c *RedisCollector) GetWorkItemCounts(ctx context.Context) (int64, int64, error) {
	keys, err := c.scanKeys(ctx, "workitem:*")
	if err != nil {
		return 0, 0, err
	}

	if len(keys) == 0 {
		return 0, 0, nil
	}

	// Use pipeline for efficient batch operations
	pipe := c.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))

	for i, key := range keys {
		cmds[i] = pipe.HGet(ctx, key, "response_status_code")
	}

	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return 0, 0, fmt.Errorf("executing pipeline: %w", err)
	}

	var inFlight, completed int64
	for _, cmd := range cmds {
		status, err := cmd.Result()
		if err != nil {
			continue
		}
		if status == "" || status == "0" {
			inFlight++
		} else {
			completed++
		}
	}

	return inFlight, completed, nil
}

// GetAttemptCounts reads the per-triple attempt counters
func (c *RedisCollector) GetAttemptCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)

	keys, err := c.scanKeys(ctx, "attempts:*")
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		count, err := c.client.Get(ctx, key).Int64()
		if err != nil {
			continue
		}
		counts[strings.TrimPrefix(key, "attempts:")] = count
	}

	return counts, nil
}

// scanKeys collects all keys matching the pattern using SCAN
func (c *RedisCollector) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		scanKeys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}
