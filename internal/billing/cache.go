package billing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "sessiongate/internal/platform/redis"
)

// PlanSource resolves the active plan for a billing customer.
type PlanSource interface {
	ActivePlan(ctx context.Context, customerID string) (*Plan, error)
}

// PlanCache is a read-through cache in front of a PlanSource. Plans change
// rarely and the lookup costs three provider round-trips, so a short TTL
// removes most of that traffic. With no Redis configured it degrades to a
// pass-through.
type PlanCache struct {
	next  PlanSource
	redis *platformredis.Client
	ttl   time.Duration
	log   *slog.Logger
}

func NewPlanCache(next PlanSource, client *platformredis.Client, ttl time.Duration, log *slog.Logger) *PlanCache {
	return &PlanCache{next: next, redis: client, ttl: ttl, log: log}
}

func (c *PlanCache) ActivePlan(ctx context.Context, customerID string) (*Plan, error) {
	if c.redis == nil {
		return c.next.ActivePlan(ctx, customerID)
	}

	key := planKey(customerID)
	raw, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var plan Plan
		if err := json.Unmarshal(raw, &plan); err == nil {
			return &plan, nil
		}
		// Unreadable entry: fall through and overwrite it below.
	} else if !errors.Is(err, redis.Nil) {
		c.log.WarnContext(ctx, "plan cache read failed", "error", err)
	}

	plan, err := c.next.ActivePlan(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if buf, err := json.Marshal(plan); err == nil {
		if err := c.redis.Set(ctx, key, buf, c.ttl).Err(); err != nil {
			c.log.WarnContext(ctx, "plan cache write failed", "error", err)
		}
	}
	return plan, nil
}

// Invalidate drops the cached plan, for callers that just changed the
// subscription.
func (c *PlanCache) Invalidate(ctx context.Context, customerID string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, planKey(customerID)).Err(); err != nil {
		c.log.WarnContext(ctx, "plan cache invalidate failed", "error", err)
	}
}

func planKey(customerID string) string {
	return "sessiongate:plan:" + customerID
}
