package cartstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage is the alternate Storage backend for deployments that
// already run Redis for session state. Same contract as SQLStorage.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedisStorage(addr string) *RedisStorage {
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: "shopfront:",
	}
}

func (r *RedisStorage) Load(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisStorage) Save(key string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return r.client.Set(ctx, r.prefix+key, data, 0).Err()
}

func (r *RedisStorage) Close() error { return r.client.Close() }
