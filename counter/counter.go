// Package counter issues the sequential, human-facing order numbers. The
// authoritative sequence lives in Redis so that every storefront client sees
// one global ordering; when the sequence is unreachable a timestamp-derived
// fallback is used instead (recognisable by its ORD- prefix, and not
// guaranteed unique).
package counter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const seqKey = "daddychips:order:seq"

// FallbackPrefix marks order numbers that were synthesized locally instead of
// being issued by the sequence. Operators filter on it when reconciling.
const FallbackPrefix = "ORD-"

// Sequence hands out the next order number in the global sequence.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}

// RedisSequence implements Sequence on a shared Redis INCR key.
type RedisSequence struct {
	client *redis.Client
}

func NewRedisSequence(client *redis.Client) *RedisSequence {
	return &RedisSequence{client: client}
}

func (s *RedisSequence) Next(ctx context.Context) (int64, error) {
	n, err := s.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("order sequence incr: %w", err)
	}
	return n, nil
}

// Format renders a sequence value as the zero-padded customer-facing order
// number ("0001", "0002", ...). Values beyond 9999 keep their full width.
func Format(n int64) string {
	return fmt.Sprintf("%04d", n)
}

// Fallback builds the degraded order number from the last six digits of the
// unix-millisecond clock, e.g. "ORD-847201".
func Fallback(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return FallbackPrefix + ms
}

// IsFallback reports whether an order number was locally synthesized.
func IsFallback(orderNumber string) bool {
	return len(orderNumber) >= len(FallbackPrefix) && orderNumber[:len(FallbackPrefix)] == FallbackPrefix
}
