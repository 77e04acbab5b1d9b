/**
 * @description
 * Redis connection manager using go-redis.
 * Used for caching aggregate stats payloads served by the API.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9
 * - github.com/alicebob/miniredis/v2 (in-process fallback)
 */

package db

import (
	"context"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/foodlens-project/backend/internal/config"
	"github.com/foodlens-project/backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis initializes the Redis client. When no REDIS_URL is configured,
// an in-process miniredis is started instead so single-binary deployments
// still get a working cache. The returned closer stops that instance.
func ConnectRedis(cfg *config.Config) (*redis.Client, func(), error) {
	if cfg.Redis.URL == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		logger.Info("✅ Started in-process redis at %s", mr.Addr())
		return client, mr.Close, nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}

	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = 5 * time.Second
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = 5 * time.Second
	}
	if opt.DialTimeout == 0 {
		opt.DialTimeout = 5 * time.Second
	}
	if opt.MaxRetries == 0 {
		opt.MaxRetries = 2
	}
	if opt.MinRetryBackoff == 0 {
		opt.MinRetryBackoff = 200 * time.Millisecond
	}
	if opt.MaxRetryBackoff == 0 {
		opt.MaxRetryBackoff = 2 * time.Second
	}

	client := redis.NewClient(opt)

	// Ping to verify connection
	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, nil, err
	}

	logger.Info("✅ Connected to Redis")
	return client, func() {}, nil
}
