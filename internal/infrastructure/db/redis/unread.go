package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const unreadTTL = 30 * 24 * time.Hour

// UnreadCounter caches per-user unread counts in Redis.
// Key format: unread:<kind>:<user_id>
//
// Counts are best-effort: the rows in the primary store stay authoritative,
// so a lost key only costs a badge number until the next mark-read.
type UnreadCounter struct {
	client *redis.Client
}

// NewUnreadCounter creates an UnreadCounter wrapping the given Redis client.
func NewUnreadCounter(client *redis.Client) *UnreadCounter {
	return &UnreadCounter{client: client}
}

// Incr bumps the count and refreshes the key TTL.
func (u *UnreadCounter) Incr(ctx context.Context, userID, kind string) error {
	key := u.key(userID, kind)
	if err := u.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("unread incr: %w", err)
	}
	return u.client.Expire(ctx, key, unreadTTL).Err()
}

// Get returns the current count; a missing key reads as zero.
func (u *UnreadCounter) Get(ctx context.Context, userID, kind string) (int64, error) {
	n, err := u.client.Get(ctx, u.key(userID, kind)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("unread get: %w", err)
	}
	return n, nil
}

// Reset clears the count.
func (u *UnreadCounter) Reset(ctx context.Context, userID, kind string) error {
	return u.client.Del(ctx, u.key(userID, kind)).Err()
}

func (u *UnreadCounter) key(userID, kind string) string {
	return fmt.Sprintf("unread:%s:%s", kind, userID)
}
