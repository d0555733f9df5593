package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	redis "github.com/redis/go-redis/v9"
)

var (
	ErrLockUnavailable = errors.New("lock_unavailable")
	errEmptyLockKey    = errors.New("lock key is empty")
)

// Deletes the key only while it still holds the caller's token, so an expired lease never
// removes a lock someone else acquired since.
var releaseIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// singleFlight grants one lease per key at a time. Leases expire after ttl if never released.
type singleFlight struct {
	client redis.Cmdable
	ttl    time.Duration
}

func newSingleFlight(client redis.Cmdable, ttl time.Duration) *singleFlight {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &singleFlight{client: client, ttl: ttl}
}

// acquire returns the lease token, or ok=false when another lease is live.
func (s *singleFlight) acquire(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, ErrLockUnavailable
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, errEmptyLockKey
	}

	token := ulid.Make().String()
	ok, err := s.client.SetNX(ctx, key, token, s.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (s *singleFlight) release(ctx context.Context, key, token string) error {
	if s == nil || s.client == nil || key == "" || token == "" {
		return nil
	}
	return releaseIfOwner.Run(ctx, s.client, []string{key}, token).Err()
}
