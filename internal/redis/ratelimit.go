package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Key patterns:
// - ratelimit:{user_id}:messages - per-window chit sends and replies
// - ratelimit:{ip}:auth - per-window login attempts

type RateLimitConfig struct {
	MessageLimit  int
	MessageWindow time.Duration
	AuthLimit     int
	AuthWindow    time.Duration
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MessageLimit:  30,
		MessageWindow: time.Minute,
		AuthLimit:     10,
		AuthWindow:    time.Minute,
	}
}

type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
}

type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
	Limit     int
}

func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{client: client, config: config}
}

// fixedWindow increments the counter when under the limit and returns
// {allowed, remaining, ttl}.
var fixedWindow = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key) or '0')
	local ttl = redis.call('TTL', key)
	if ttl < 0 then
		ttl = window
	end

	if current < limit then
		current = redis.call('INCR', key)
		if current == 1 then
			redis.call('EXPIRE', key, window)
		end
		return {1, limit - current, ttl}
	end
	return {0, 0, ttl}
`)

func (r *RateLimiter) AllowMessage(ctx context.Context, userID string) (*RateLimitResult, error) {
	return r.checkLimit(ctx, messageKey(userID), r.config.MessageLimit, r.config.MessageWindow)
}

func (r *RateLimiter) AllowAuth(ctx context.Context, ip string) (*RateLimitResult, error) {
	return r.checkLimit(ctx, authKey(ip), r.config.AuthLimit, r.config.AuthWindow)
}

// ResetAuth clears the attempt counter after a successful login.
func (r *RateLimiter) ResetAuth(ctx context.Context, ip string) error {
	return r.client.Del(ctx, authKey(ip)).Err()
}

func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	if limit <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: -1}, nil
	}

	vals, err := fixedWindow.Run(ctx, r.client, []string{key}, limit, int(window.Seconds())).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if len(vals) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	return &RateLimitResult{
		Allowed:   vals[0] == 1,
		Remaining: int(vals[1]),
		ResetIn:   time.Duration(vals[2]) * time.Second,
		Limit:     limit,
	}, nil
}

func messageKey(userID string) string {
	return fmt.Sprintf("ratelimit:%s:messages", userID)
}

func authKey(ip string) string {
	return fmt.Sprintf("ratelimit:%s:auth", ip)
}
