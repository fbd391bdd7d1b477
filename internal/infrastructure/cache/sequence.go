package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sequenceKeyPrefix = "trackr:ticket_seq:"

// RedisSequenceCounter issues ticket sequence values with INCR. Values are
// unique and increasing; a rolled back ticket create leaves a gap.
type RedisSequenceCounter struct {
	client *redis.Client
	prefix string
}

func NewRedisSequenceCounter(client *redis.Client) *RedisSequenceCounter {
	return &RedisSequenceCounter{client: client, prefix: sequenceKeyPrefix}
}

func (c *RedisSequenceCounter) Increment(ctx context.Context, scope string) (int64, error) {
	v, err := c.client.Incr(ctx, c.prefix+scope).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", c.prefix+scope, err)
	}
	return v, nil
}
