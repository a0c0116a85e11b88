package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nutrilife-landing/pkg/cache"
)

// KeyValue is the subset of *cache.Cache used by RedisStore.
type KeyValue interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Close() error
}

// RedisStore keeps sessions in Redis with a sliding expiry.
type RedisStore struct {
	kv  KeyValue
	ttl time.Duration
}

func NewRedisStore(kv KeyValue, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: kv, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, id string) (State, error) {
	var state State
	if err := s.kv.Get(ctx, cache.SessionKey(id), &state); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return State{}, ErrNotFound
		}
		return State{}, fmt.Errorf("failed to load session: %w", err)
	}

	if err := s.kv.Expire(ctx, cache.SessionKey(id), s.ttl); err != nil {
		return State{}, fmt.Errorf("failed to refresh session expiry: %w", err)
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, state State) error {
	if err := s.kv.Set(ctx, cache.SessionKey(id), state, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, cache.SessionKey(id))
}

func (s *RedisStore) Close() error {
	return s.kv.Close()
}
