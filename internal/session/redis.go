package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token in Redis under one key per client profile.
// Keys never expire; only Clear removes them.
type RedisStore struct {
	client  *redis.Client
	profile string
}

func NewRedisStore(client *redis.Client, profile string) *RedisStore {
	return &RedisStore{
		client:  client,
		profile: profile,
	}
}

func (r *RedisStore) Token(ctx context.Context) (string, bool, error) {
	token, err := r.client.Get(ctx, tokenKey(r.profile)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return token, token != "", nil
}

func (r *RedisStore) SetToken(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, tokenKey(r.profile), token, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, tokenKey(r.profile)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func tokenKey(profile string) string {
	return fmt.Sprintf("storefront:session:%s", profile)
}
