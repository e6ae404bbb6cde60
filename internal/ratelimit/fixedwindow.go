// Package ratelimit implements the admission limiter for the public
// availability-check surface: a fixed-window counter per caller, backed by
// Redis so the budget holds across horizontally scaled instances.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindow counts requests per key in fixed windows. The first request
// for a key starts its window; the counter expires with the window and the
// budget resets in full — it never slides.
type FixedWindow struct {
	client redis.UniversalClient
	limit  int64
	window time.Duration
	prefix string
}

// NewFixedWindow constructs a limiter allowing limit requests per window.
// The client should come from the application's shared Redis connection.
func NewFixedWindow(client redis.UniversalClient, limit int64, window time.Duration) *FixedWindow {
	return &FixedWindow{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

// Allow records one request for key and reports whether it fits the window's
// budget. INCR and EXPIRE NX run in one pipeline: the expiry is attached
// exactly once, when the counter is created, so the window end is fixed from
// the first request.
func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit.FixedWindow.Allow: %w", err)
	}

	return count.Val() <= l.limit, nil
}
