package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MarkerStore holds short-lived dedup markers for the tracker. A marker is
// scoped to one browser session so a new session re-opens the window.
type MarkerStore interface {
	// Claim reports whether no marker younger than window exists for
	// (scope, key) and, when so, writes a fresh marker before returning.
	// Check and write are atomic: of two concurrent callers at most one
	// claims.
	Claim(ctx context.Context, scope, key string, window time.Duration) bool
}

type MemoryMarkerStore struct {
	mu      sync.Mutex
	markers map[string]time.Time
	now     func() time.Time
	logger  *slog.Logger
}

func NewMemoryMarkerStore(logger *slog.Logger) *MemoryMarkerStore {
	return &MemoryMarkerStore{
		markers: make(map[string]time.Time),
		now:     time.Now,
		logger:  logger,
	}
}

func (m *MemoryMarkerStore) Claim(_ context.Context, scope, key string, window time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := scope + "|" + key
	if ts, ok := m.markers[k]; ok && m.now().Sub(ts) < window {
		return false
	}
	m.markers[k] = m.now()
	return true
}

func (m *MemoryMarkerStore) StartCleanup(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			m.mu.Lock()
			if len(m.markers) > 100000 {
				m.logger.Info("Cleaning up marker map", "count", len(m.markers))
				m.markers = make(map[string]time.Time)
			}
			m.mu.Unlock()
		}
	}()
}

// RedisMarkerStore keeps markers in Redis with the window as TTL, so they
// survive process restarts and are shared across replicas.
type RedisMarkerStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewRedisMarkerStore(rdb *redis.Client, logger *slog.Logger) *RedisMarkerStore {
	return &RedisMarkerStore{rdb: rdb, logger: logger}
}

func (r *RedisMarkerStore) Claim(ctx context.Context, scope, key string, window time.Duration) bool {
	ok, err := r.rdb.SetNX(ctx, "marker:"+scope+":"+key, 1, window).Result()
	if err != nil {
		// Dedup is advisory only; a broken marker store must not block
		// tracking.
		r.logger.Warn("Marker store unavailable, skipping dedup", "error", err)
		return true
	}
	return ok
}
