// Package session holds the single authenticated-user slot per storefront
// session. The user record is persisted in redis under a fixed key prefix and
// schema-validated on every load; stored data that fails the schema is
// discarded, not surfaced.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	errs "tazkara/internal/errors"
)

// Store persists serialized user records keyed by session token.
type Store interface {
	Save(ctx context.Context, token string, payload []byte) error
	Load(ctx context.Context, token string) ([]byte, error)
	Delete(ctx context.Context, token string) error
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// RedisStore keeps sessions in redis so they survive storefront restarts.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "session:user:"
	}
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client:    rdb,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.TTL,
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, payload []byte) error {
	return s.client.Set(ctx, s.keyPrefix+token, payload, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, token string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.keyPrefix+token).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore is the in-process fallback used when redis is not configured,
// and in tests.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, token string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.m[token] = cp
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, token string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.m[token]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return payload, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
	return nil
}
