package docstoreredis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces collection keys.
const DefaultKeyPrefix = "mailer"

// RedisBackend keeps each collection document under one string key.
type RedisBackend struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisBackend creates a backend storing documents at <prefix>:<collection>.
func NewRedisBackend(rdb redis.UniversalClient, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisBackend{rdb: rdb, prefix: prefix}
}

func (b *RedisBackend) Key(collection string) string {
	return fmt.Sprintf("%s:%s", b.prefix, collection)
}

func (b *RedisBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.Key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", b.Key(collection), err)
	}
	return data, nil
}

func (b *RedisBackend) Save(ctx context.Context, collection string, data []byte) error {
	if err := b.rdb.Set(ctx, b.Key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.Key(collection), err)
	}
	return nil
}

func (b *RedisBackend) Name() string {
	return "redis:" + b.prefix
}
