package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kitchen-planner/domain"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

const generationKey = "planner:generation"

// PlanCache stores computed plans. Keys embed a generation number, so one
// Invalidate call retires every cached plan at once.
type PlanCache interface {
	domain.PlanInvalidator
	Key(ctx context.Context, date string) (string, bool)
	Get(ctx context.Context, key string) (*domain.ProductionPlan, bool)
	Set(ctx context.Context, key string, plan domain.ProductionPlan)
}

type redisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) PlanCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisPlanCache{client: client, ttl: ttl}
}

func (c *redisPlanCache) Key(ctx context.Context, date string) (string, bool) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		generation = 0
	} else if err != nil {
		log.Warnf("plan cache: reading generation: %v", err)
		return "", false
	}
	return fmt.Sprintf("planner:plan:%d:%s", generation, date), true
}

func (c *redisPlanCache) Get(ctx context.Context, key string) (*domain.ProductionPlan, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warnf("plan cache: get %s: %v", key, err)
		}
		return nil, false
	}
	var plan domain.ProductionPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		log.Warnf("plan cache: decode %s: %v", key, err)
		return nil, false
	}
	return &plan, true
}

func (c *redisPlanCache) Set(ctx context.Context, key string, plan domain.ProductionPlan) {
	raw, err := json.Marshal(plan)
	if err != nil {
		log.Warnf("plan cache: encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warnf("plan cache: set %s: %v", key, err)
	}
}

func (c *redisPlanCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		log.Warnf("plan cache: invalidate: %v", err)
	}
}

type noopPlanCache struct{}

// NewNoopPlanCache is used when Redis is not configured.
func NewNoopPlanCache() PlanCache {
	return noopPlanCache{}
}

func (noopPlanCache) Key(context.Context, string) (string, bool) { return "", false }

func (noopPlanCache) Get(context.Context, string) (*domain.ProductionPlan, bool) { return nil, false }

func (noopPlanCache) Set(context.Context, string, domain.ProductionPlan) {}

func (noopPlanCache) Invalidate(context.Context) {}
