package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MemoryStore is an in-process Store. It is intended for single-instance
// deployments and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]memoryEntry
	now    func() time.Time
	logger *zap.Logger
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		data:   make(map[string]memoryEntry),
		now:    time.Now,
		logger: logger,
	}
}

// Get retrieves a value, treating expired entries as missing.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.data[key]
	if !exists {
		m.logger.Debug("session miss", zap.String("key", key))
		return "", false, nil
	}

	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.logger.Debug("session entry expired",
			zap.String("key", key),
			zap.Time("expired_at", entry.expiresAt))
		return "", false, nil
	}

	return entry.value, true, nil
}

// Set stores a value with an optional TTL.
func (m *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry

	m.logger.Debug("session set",
		zap.String("key", key),
		zap.Int("value_size", len(value)),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a value.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
