package config

import (
	"context"
	"fmt"
	"time"

	"kitchen-planner/internal/utils"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil without error when REDIS_URL is not set.
func ConnectRedis() (*redis.Client, error) {
	url := utils.GetConfig("REDIS_URL")
	if url == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
