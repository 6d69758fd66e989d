package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tripify-backend/internal/config"
	"tripify-backend/internal/quiz"
)

var ErrMiss = errors.New("cache miss")

const (
	keyPrefix    = "mood:latest:"
	fieldStamp   = "created_us"
	fieldPayload = "result"
)

// setIfNewer stores the result only when no newer one is cached. Stamps are
// microseconds since the epoch so Lua numbers compare them exactly.
var setIfNewer = redis.NewScript(`
local stamp = redis.call('HGET', KEYS[1], ARGV[1])
if stamp and tonumber(stamp) > tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2], ARGV[3], ARGV[4])
if tonumber(ARGV[5]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[5])
end
return 1
`)

// MoodCache keeps the most recent scoring result per user in Redis.
// A nil *MoodCache is valid and behaves as an always-empty cache.
type MoodCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMoodCache(client *redis.Client, ttl time.Duration) *MoodCache {
	return &MoodCache{client: client, ttl: ttl}
}

// NewMoodCacheFromConfig connects to Redis, or returns nil when no address is configured.
func NewMoodCacheFromConfig(ctx context.Context, cfg config.CacheConfig) (*MoodCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return NewMoodCache(client, cfg.CacheTTL()), nil
}

func key(userID string) string {
	return keyPrefix + userID
}

// SetLatest stores r as the latest result for its user unless a result with a
// later CreatedAt is already cached. Writes may arrive in any order.
func (c *MoodCache) SetLatest(ctx context.Context, r quiz.Result) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return setIfNewer.Run(ctx, c.client, []string{key(r.UserID)},
		fieldStamp, r.CreatedAt.UnixMicro(),
		fieldPayload, string(payload),
		c.ttl.Milliseconds(),
	).Err()
}

// GetLatest returns the cached result or ErrMiss.
func (c *MoodCache) GetLatest(ctx context.Context, userID string) (quiz.Result, error) {
	if c == nil {
		return quiz.Result{}, ErrMiss
	}
	payload, err := c.client.HGet(ctx, key(userID), fieldPayload).Bytes()
	if errors.Is(err, redis.Nil) {
		return quiz.Result{}, ErrMiss
	}
	if err != nil {
		return quiz.Result{}, err
	}

	var r quiz.Result
	if err := json.Unmarshal(payload, &r); err != nil {
		return quiz.Result{}, fmt.Errorf("decode cached mood for %s: %w", userID, err)
	}
	return r, nil
}

func (c *MoodCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
