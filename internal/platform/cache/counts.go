// Package cache provides a cache-aside store for per-recipient unread
// notification counts. A Redis-backed implementation is used when REDIS_URL
// is configured; otherwise an in-memory store serves the same interface.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CountStore caches unacknowledged/unread counts keyed by notification
// family (alert or message) and recipient.
type CountStore interface {
	// Get returns the cached count and whether a value was present.
	Get(ctx context.Context, family, recipientType string, recipientID int64) (int64, bool, error)
	// Set stores a count.
	Set(ctx context.Context, family, recipientType string, recipientID int64, count int64) error
	// Invalidate drops a cached count so the next read falls through to SQL.
	Invalidate(ctx context.Context, family, recipientType string, recipientID int64) error
}

func countKey(family, recipientType string, recipientID int64) string {
	return fmt.Sprintf("counts:%s:%s:%d", family, recipientType, recipientID)
}

// ---------------------------------------------------------------------------
// Redis-backed store
// ---------------------------------------------------------------------------

type redisCountStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCountStore creates a CountStore backed by Redis with the given TTL.
func NewRedisCountStore(rdb *redis.Client, ttl time.Duration) CountStore {
	return &redisCountStore{rdb: rdb, ttl: ttl}
}

func (s *redisCountStore) Get(ctx context.Context, family, recipientType string, recipientID int64) (int64, bool, error) {
	val, err := s.rdb.Get(ctx, countKey(family, recipientType, recipientID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get count: %w", err)
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (s *redisCountStore) Set(ctx context.Context, family, recipientType string, recipientID int64, count int64) error {
	if err := s.rdb.Set(ctx, countKey(family, recipientType, recipientID), count, s.ttl).Err(); err != nil {
		return fmt.Errorf("set count: %w", err)
	}
	return nil
}

func (s *redisCountStore) Invalidate(ctx context.Context, family, recipientType string, recipientID int64) error {
	if err := s.rdb.Del(ctx, countKey(family, recipientType, recipientID)).Err(); err != nil {
		return fmt.Errorf("invalidate count: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// In-memory store
// ---------------------------------------------------------------------------

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

type memoryCountStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryCountStore creates an in-memory CountStore used when Redis is not
// configured. Entries expire lazily on read.
func NewMemoryCountStore(ttl time.Duration) CountStore {
	return &memoryCountStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *memoryCountStore) Get(_ context.Context, family, recipientType string, recipientID int64) (int64, bool, error) {
	key := countKey(family, recipientType, recipientID)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return 0, false, nil
	}
	return entry.count, true, nil
}

func (s *memoryCountStore) Set(_ context.Context, family, recipientType string, recipientID int64, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[countKey(family, recipientType, recipientID)] = memoryEntry{
		count:     count,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *memoryCountStore) Invalidate(_ context.Context, family, recipientType string, recipientID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, countKey(family, recipientType, recipientID))
	return nil
}
