// Package cache connects to the Redis that instances share for rate-limit
// counters.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ReshmithaBathala/bookingbackend/config"
	"github.com/ReshmithaBathala/bookingbackend/logger"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout = 3 * time.Second
	keyPrefix   = "booking:"
)

// Store is a thin wrapper over a go-redis client.
type Store struct {
	client *redis.Client
}

// Connect dials the configured Redis and checks it answers.
func Connect(cfg config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	logger.Info("Connected to Redis at", cfg.Addr)
	return &Store{client: client}, nil
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// IncrWindow counts one hit for key in the current fixed window and returns
// the count so far. The counter expires with its window.
func (s *Store) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	slot := time.Now().UnixNano() / int64(window)
	k := fmt.Sprintf("%s%s:%d", keyPrefix, key, slot)

	n, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
