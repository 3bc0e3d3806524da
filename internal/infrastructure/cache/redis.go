package cache

import (
	"context"
	"fmt"
	"time"

	"holo-api/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects to the configured Redis and pings it once. It
// returns a nil client and no error when Redis is disabled.
func NewRedisClient(cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Warn("Redis disabled, login throttling is off")
		return nil, nil
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping %s: %w", addr, err)
	}

	log.WithField("addr", addr).Info("Redis connected successfully")

	return client, nil
}
