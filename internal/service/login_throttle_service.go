package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrTooManyLoginAttempts = errors.New("too many failed login attempts")

const loginAttemptsKeyPrefix = "login_attempts:"

// LoginThrottleService counts failed logins per account. Each failure
// restarts the window, so a lockout lasts Window after the last failure.
// Redis failures never block a login.
type LoginThrottleService interface {
	Check(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

type LoginThrottleConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type loginThrottleService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	config      LoginThrottleConfig
}

func NewLoginThrottleService(redisClient *redis.Client, log *logrus.Logger, config LoginThrottleConfig) LoginThrottleService {
	if config.Window <= 0 {
		config.Window = 15 * time.Minute
	}
	return &loginThrottleService{
		redisClient: redisClient,
		log:         log,
		config:      config,
	}
}

func (s *loginThrottleService) enabled() bool {
	return s.redisClient != nil && s.config.MaxAttempts > 0
}

func (s *loginThrottleService) key(email string) string {
	return fmt.Sprintf("%s%s", loginAttemptsKeyPrefix, email)
}

// Check returns ErrTooManyLoginAttempts once the failure count for email has
// reached the limit inside the current window.
func (s *loginThrottleService) Check(ctx context.Context, email string) error {
	if !s.enabled() {
		return nil
	}

	count, err := s.redisClient.Get(ctx, s.key(email)).Int()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		s.log.Warnf("Failed to read login attempts: %+v", err)
		return nil
	}

	if count >= s.config.MaxAttempts {
		return ErrTooManyLoginAttempts
	}
	return nil
}

func (s *loginThrottleService) RecordFailure(ctx context.Context, email string) (int64, error) {
	if !s.enabled() {
		return 0, nil
	}

	key := s.key(email)
	pipe := s.redisClient.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to record login attempt: %+v", err)
		return 0, err
	}

	return incr.Val(), nil
}

func (s *loginThrottleService) Reset(ctx context.Context, email string) error {
	if !s.enabled() {
		return nil
	}

	if err := s.redisClient.Del(ctx, s.key(email)).Err(); err != nil {
		s.log.Warnf("Failed to reset login attempts: %+v", err)
		return err
	}
	return nil
}
