// Package cache implements the Redis read-through cache for user profiles.
// A freshly created profile is served from here until the queued database
// write lands.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
)

// userSetKey is the sorted set indexing cached profiles by public uId.
const userSetKey = "user"

// UserCache stores profiles as JSON keyed by profile id.
type UserCache struct {
	rdb *redis.Client
}

// NewUserCache creates a UserCache over the given client.
func NewUserCache(rdb *redis.Client) *UserCache {
	return &UserCache{rdb: rdb}
}

func userKey(userID string) string {
	return fmt.Sprintf("users:%s", userID)
}

// SaveUser writes the profile JSON and indexes it by uId in one transaction.
// Entries carry no TTL; the durable store catching up does not invalidate
// them.
func (c *UserCache) SaveUser(ctx context.Context, userID, uID string, user *entity.UserProfile) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user for cache: %w", err)
	}

	score, err := strconv.ParseFloat(uID, 64)
	if err != nil {
		return fmt.Errorf("invalid uId %q: %w", uID, err)
	}

	pipe := c.rdb.TxPipeline()
	pipe.ZAdd(ctx, userSetKey, redis.Z{Score: score, Member: userID})
	pipe.Set(ctx, userKey(userID), data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache user %s: %w", userID, err)
	}
	return nil
}

// GetUser returns the cached profile, or (nil, nil) on a miss.
func (c *UserCache) GetUser(ctx context.Context, userID string) (*entity.UserProfile, error) {
	val, err := c.rdb.Get(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached user %s: %w", userID, err)
	}

	user := &entity.UserProfile{}
	if err := json.Unmarshal([]byte(val), user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached user %s: %w", userID, err)
	}
	return user, nil
}
