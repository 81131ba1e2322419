package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kapu/tictac-client/internal/wire"
)

const ttlProfile = 30 * 24 * time.Hour

type redisStore struct {
	rdb *redis.Client
}

// NewRedis opens a redis-backed store and verifies the connection.
func NewRedis(redisURL string) (Store, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis URL required for profile store")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{rdb: rdb}, nil
}

func (s *redisStore) keyAccounts() string { return "profile:accounts" }
func (s *redisStore) keyLastRoom() string { return "profile:lastroom" }

// SaveAccounts replaces the stored list wholesale, mirroring the cache's
// replace-not-merge semantics.
func (s *redisStore) SaveAccounts(ctx context.Context, entries []wire.AccountEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.keyAccounts(), raw, ttlProfile).Err()
}

func (s *redisStore) LoadAccounts(ctx context.Context) ([]wire.AccountEntry, error) {
	raw, err := s.rdb.Get(ctx, s.keyAccounts()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []wire.AccountEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *redisStore) SaveLastRoom(ctx context.Context, room string) error {
	if strings.TrimSpace(room) == "" {
		return s.rdb.Del(ctx, s.keyLastRoom()).Err()
	}
	return s.rdb.Set(ctx, s.keyLastRoom(), room, ttlProfile).Err()
}

func (s *redisStore) LastRoom(ctx context.Context) (string, error) {
	v, err := s.rdb.Get(ctx, s.keyLastRoom()).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *redisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
