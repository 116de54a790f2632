package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"portfolio-service/internal/entity"
)

// RedisStore keeps the most recently issued token per owner.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, username, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key(username), token, ttl).Err()
}

// Lookup returns entity.ErrNotFound when no live session exists for username.
func (s *RedisStore) Lookup(ctx context.Context, username string) (string, error) {
	token, err := s.rdb.Get(ctx, key(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", entity.ErrNotFound
		}
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Revoke(ctx context.Context, username string) error {
	return s.rdb.Del(ctx, key(username)).Err()
}

func key(username string) string {
	return fmt.Sprintf("session:%s", username)
}
