package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedisClient connects to REDIS_URL. It returns nil when the URL is empty or Redis cannot be reached,
// which disables rate limiting.
func NewRedisClient(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️  Invalid REDIS_URL, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("⚠️  Failed to connect to Redis, rate limiting disabled")
		client.Close()
		return nil
	}
	log.Info().Str("addr", opts.Addr).Msg("✓ Redis connected")
	return client
}
