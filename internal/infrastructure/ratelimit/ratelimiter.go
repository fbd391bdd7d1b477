// Package ratelimit limits requests per key over minute and hour windows.
package ratelimit

import (
	"context"
	"time"
)

type Limits struct {
	PerMinute int
	PerHour   int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration, limit int) (int64, error)
	Reset(ctx context.Context, key string) error
}

// Unlimited allows everything. Used when Redis is not configured.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string, Limits) (bool, error) { return true, nil }

func (Unlimited) Remaining(_ context.Context, _ string, _ time.Duration, limit int) (int64, error) {
	return int64(limit), nil
}

func (Unlimited) Reset(context.Context, string) error { return nil }
