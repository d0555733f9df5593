package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/burnout/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	keyPredictionUser = "burnout:prediction:user:%s"
	keyPredictionLock = "burnout:prediction:lock:%s"

	defaultLockTTL = 30 * time.Second
)

// PredictionLimiter throttles on-demand predictions per user and keeps a user from running more
// than one at a time. A nil limiter allows everything.
type PredictionLimiter struct {
	client *redis.Client
	bucket *TokenBucket
	locks  *singleFlight

	rate  float64
	burst int
}

// NewPredictionLimiter returns nil when rate limiting is disabled.
func NewPredictionLimiter(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*PredictionLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.PredictionRate <= 0 || limitCfg.PredictionBurst <= 0 {
		return nil, errors.New("prediction rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	limiter := &PredictionLimiter{
		client: client,
		bucket: NewTokenBucket(client),
		locks:  newSingleFlight(client, limitCfg.PredictionLockTTL),
		rate:   limitCfg.PredictionRate,
		burst:  limitCfg.PredictionBurst,
	}

	if lc != nil {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					log.Warn("rate limit redis unreachable", zap.String("addr", addr), zap.Error(err))
				}
				return nil
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
	}
	return limiter, nil
}

func (l *PredictionLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *PredictionLimiter) Allow(ctx context.Context, userID string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, predictionKey(userID), l.rate, l.burst)
}

// TryLock claims the user's prediction slot. The returned token releases it.
func (l *PredictionLimiter) TryLock(ctx context.Context, userID string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	return l.locks.acquire(ctx, lockKey(userID))
}

func (l *PredictionLimiter) Release(ctx context.Context, userID, token string) error {
	if !l.Enabled() {
		return nil
	}
	return l.locks.release(ctx, lockKey(userID), token)
}

func predictionKey(userID string) string {
	return fmt.Sprintf(keyPredictionUser, strings.TrimSpace(userID))
}

func lockKey(userID string) string {
	return fmt.Sprintf(keyPredictionLock, strings.TrimSpace(userID))
}
