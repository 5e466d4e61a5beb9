package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	redisScanCount = 100

	errFailedParseRedisURLFmt = "failed to parse redis url: %w"
	errFailedPingRedisFmt     = "failed to ping redis: %w"
	errFailedScanRedisFmt     = "failed to scan redis keys: %w"
	errFailedMGetRedisFmt     = "failed to fetch redis values: %w"
)

// RedisStore maps entries onto plain string keys.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf(errFailedParseRedisURLFmt, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf(errFailedPingRedisFmt, err)
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf(errFailedGetKeyFmt, key, err)
	}

	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf(errFailedSetKeyFmt, key, err)
	}

	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf(errFailedDeleteKeyFmt, key, err)
	}

	return nil
}

func (r *RedisStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	keys := make([]string, 0)
	seen := make(map[string]struct{})
	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		// SCAN may return a key more than once
		if _, dup := seen[iter.Val()]; dup {
			continue
		}
		seen[iter.Val()] = struct{}{}
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf(errFailedScanRedisFmt, err)
	}

	if len(keys) == 0 {
		return []Entry{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf(errFailedMGetRedisFmt, err)
	}

	entries := make([]Entry, 0, len(keys))
	for i, key := range keys {
		// deleted between SCAN and MGET
		s, ok := values[i].(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: key, Value: []byte(s)})
	}

	sortEntries(entries)
	return entries, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
