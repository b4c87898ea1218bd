package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
)

// NewRedisFromURL creates a Redis client from a connection URL and verifies
// the connection.
func NewRedisFromURL(ctx context.Context, url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to ping redis: %v", err)
	}
	return rdb
}

// Close closes the Redis client.
func Close(rdb *redis.Client) {
	_ = rdb.Close()
}

// RedisKVStore adapts a Redis client to the local persistence contract.
type RedisKVStore struct {
	rdb *redis.Client
}

var _ contract.IKVStore = (*RedisKVStore)(nil)

// NewRedisKVStore wraps a Redis client.
func NewRedisKVStore(rdb *redis.Client) *RedisKVStore {
	return &RedisKVStore{rdb: rdb}
}

func (s *RedisKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisKVStore) Set(ctx context.Context, key, value string) error {
	// No server-side TTL: staleness is judged against the envelope's own
	// storedAt so expired entries are still readable as an offline fallback.
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *RedisKVStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *RedisKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, pattern, 1000).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
