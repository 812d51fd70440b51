package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window attempt counter kept in redis. A nil Limiter or
// one without a client allows everything.
type Limiter struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
}

func NewLimiter(rdb *redis.Client, max int64, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, max: max, window: window}
}

func key(action, subject string) string {
	return fmt.Sprintf("rate_limit:%s:%s", action, subject)
}

// Allow records one attempt of action by subject and reports whether it is
// still within the window's budget.
func (l *Limiter) Allow(ctx context.Context, action, subject string) (bool, error) {
	if l == nil || l.rdb == nil || l.max <= 0 {
		return true, nil
	}

	// The window key is created together with its expiry.
	k := key(action, subject)
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	return incr.Val() <= l.max, nil
}

// TTL reports how long until the subject's window resets.
func (l *Limiter) TTL(ctx context.Context, action, subject string) (time.Duration, error) {
	if l == nil || l.rdb == nil {
		return 0, nil
	}
	return l.rdb.TTL(ctx, key(action, subject)).Result()
}
