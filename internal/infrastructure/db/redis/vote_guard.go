package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultGuardTTL = 24 * time.Hour

// VoteGuard claims a (period, user) pair in Redis before a ballot is written.
// Key format: vote:<period_id>:<user_id>
type VoteGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVoteGuard creates a VoteGuard wrapping the given Redis client. Claims
// expire after ttl, or defaultGuardTTL when ttl <= 0.
func NewVoteGuard(client *redis.Client, ttl time.Duration) *VoteGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &VoteGuard{client: client, ttl: ttl}
}

// Claim reports true when this call took the claim and false when it was
// already held.
func (g *VoteGuard) Claim(ctx context.Context, periodID, userID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, Key(periodID, userID), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("vote guard claim: %w", err)
	}
	return ok, nil
}

// Release drops a claim so the voter can retry after a failed write.
func (g *VoteGuard) Release(ctx context.Context, periodID, userID string) error {
	if err := g.client.Del(ctx, Key(periodID, userID)).Err(); err != nil {
		return fmt.Errorf("vote guard release: %w", err)
	}
	return nil
}

func Key(periodID, userID string) string {
	return fmt.Sprintf("vote:%s:%s", periodID, userID)
}
