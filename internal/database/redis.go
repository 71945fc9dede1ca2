package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connection tuning for the rate-limit workload: small commands,
// latency-sensitive, low concurrency.
const (
	dialTimeout  = 5 * time.Second
	readTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
	poolSize     = 10
	minIdleConns = 3
)

// RedisDB wraps the Redis client backing the rate-limit counters.
// The app runs fine without it; callers hold a nil *RedisDB when
// Redis is not configured.
type RedisDB struct {
	Client *redis.Client
}

// Seams for tests; production code never reassigns these.
var (
	newClient = redis.NewClient
	pingFn    = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
)

func NewRedisDB(addr, password string, db int) (*RedisDB, error) {
	client := newClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := pingFn(ctx, client); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Health(ctx context.Context) error {
	return pingFn(ctx, r.Client)
}

func (r *RedisDB) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
