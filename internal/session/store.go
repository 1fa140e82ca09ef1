package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store persists raw snapshot payloads per player.
// Get returns nil, nil when no record exists.
type Store interface {
	Get(ctx context.Context, playerID uuid.UUID) ([]byte, error)
	Set(ctx context.Context, playerID uuid.UUID, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, playerID uuid.UUID) error
}

// RedisStore keeps snapshots in Redis under "<prefix>:<playerID>" with a key TTL.
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{redis: client, prefix: prefix}
}

func (s *RedisStore) key(playerID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", s.prefix, playerID.String())
}

// Get reads the raw snapshot.
func (s *RedisStore) Get(ctx context.Context, playerID uuid.UUID) ([]byte, error) {
	data, err := s.redis.Get(ctx, s.key(playerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return data, nil
}

// Set overwrites the snapshot. A ttl <= 0 stores without expiry.
func (s *RedisStore) Set(ctx context.Context, playerID uuid.UUID, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.redis.Set(ctx, s.key(playerID), data, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Delete removes the snapshot; deleting a missing key is not an error.
func (s *RedisStore) Delete(ctx context.Context, playerID uuid.UUID) error {
	if err := s.redis.Del(ctx, s.key(playerID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store. It ignores ttl; expiry is enforced by Manager.
type MemoryStore struct {
	mu   sync.Mutex
	data map[uuid.UUID][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[uuid.UUID][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, playerID uuid.UUID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[playerID]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Set(_ context.Context, playerID uuid.UUID, data []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[playerID] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, playerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, playerID)
	return nil
}
