package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
)

const tokenKeyPrefix = "session_token:"

type cachedUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TokenCache is the redis-backed read-through cache for token lookups.
// Entries carry a TTL so a stale mapping can never outlive it; the users
// table remains the source of truth.
type TokenCache struct {
	client *redislib.Client
	ttl    time.Duration
}

func NewTokenCache(client *redislib.Client, ttl time.Duration) port.TokenCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &TokenCache{
		client: client,
		ttl:    ttl,
	}
}

func (tc *TokenCache) Get(ctx context.Context, token string) (domain.User, bool) {
	result, err := tc.client.Get(ctx, tokenKeyPrefix+token).Result()

	if err != nil {
		if err != redislib.Nil {
			slog.Warn("Token cache get failed", "error", err)
		}
		return domain.User{}, false
	}

	var cached cachedUser

	if err := json.Unmarshal([]byte(result), &cached); err != nil {
		return domain.User{}, false
	}

	return domain.User{
		ID:       cached.ID,
		Username: cached.Username,
		Name:     cached.Name,
		Token:    &token,
	}, true
}

func (tc *TokenCache) Set(ctx context.Context, token string, user domain.User) error {
	payload, err := json.Marshal(cachedUser{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	})

	if err != nil {
		return err
	}

	return tc.client.Set(ctx, tokenKeyPrefix+token, payload, tc.ttl).Err()
}

func (tc *TokenCache) Invalidate(ctx context.Context, token string) error {
	return tc.client.Del(ctx, tokenKeyPrefix+token).Err()
}
