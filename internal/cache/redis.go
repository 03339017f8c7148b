package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for deployments running more
// than one console replica against the same backend. Entries are
// JSON-marshaled and expire after maxAge so an idle console does not
// hold guest data forever.
type RedisStore struct {
	client *redis.Client
	prefix string
	maxAge time.Duration
}

const defaultRedisPrefix = "console:query:"

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, maxAge time.Duration) *RedisStore {
	if maxAge <= 0 {
		maxAge = 10 * time.Minute
	}
	return &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
		maxAge: maxAge,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// A corrupt entry reads as a miss; the next fetch overwrites it.
		return nil, nil
	}
	return &entry, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, data, s.maxAge).Err()
}

func (s *RedisStore) MarkStale(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, s.prefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		fullKey := iter.Val()

		data, err := s.client.Get(ctx, fullKey).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return err
		}

		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			_ = s.client.Del(ctx, fullKey).Err()
			continue
		}
		entry.Stale = true

		updated, err := json.Marshal(&entry)
		if err != nil {
			return err
		}
		if err := s.client.Set(ctx, fullKey, updated, redis.KeepTTL).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *RedisStore) Flush(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
