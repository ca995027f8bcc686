package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mun-chits/internal/domain/user"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: user:{user_id}, profile without credentials.

const defaultUserTTL = 5 * time.Minute

// UserCacheStore caches user profiles for token authentication.
type UserCacheStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewUserCacheStore(client *goredis.Client, ttl time.Duration) *UserCacheStore {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCacheStore{client: client, ttl: ttl}
}

type cachedUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Portfolio string    `json:"portfolio"`
	Committee string    `json:"committee"`
	Role      user.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func userKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID.String())
}

// GetUser returns nil, nil on a cache miss.
func (c *UserCacheStore) GetUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	data, err := c.client.Get(ctx, userKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cu cachedUser
	if err := json.Unmarshal(data, &cu); err != nil {
		return nil, err
	}
	return &user.User{
		ID:        cu.ID,
		Username:  cu.Username,
		Portfolio: cu.Portfolio,
		Committee: cu.Committee,
		Role:      cu.Role,
		CreatedAt: cu.CreatedAt,
	}, nil
}

func (c *UserCacheStore) SetUser(ctx context.Context, u user.User) error {
	data, err := json.Marshal(cachedUser{
		ID:        u.ID,
		Username:  u.Username,
		Portfolio: u.Portfolio,
		Committee: u.Committee,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userKey(u.ID), data, c.ttl).Err()
}

func (c *UserCacheStore) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, userKey(userID)).Err()
}
