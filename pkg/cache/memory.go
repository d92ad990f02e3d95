package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero = never
}

const (
	DefaultMaxEntries = 10000
	sweepInterval     = time.Minute
)

// MemoryCache is an in-process Cache: key -> (JSON value, expiry).
// Used when Redis is unreachable and in tests, where Now can be replaced.
// Expired entries are swept on Set at most once per minute; when MaxEntries
// live keys are held, a new key evicts an arbitrary one.
type MemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	nextSweep time.Time

	Now        func() time.Time
	MaxEntries int // <= 0: unbounded
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		Now:        time.Now,
		MaxEntries: DefaultMaxEntries,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if !entry.expiresAt.IsZero() && !m.Now().Before(entry.expiresAt) {
		m.mu.Lock()
		// re-check: a concurrent Set may have refreshed the entry
		if current, ok := m.entries[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(entry.value, dest); err != nil {
		return false, fmt.Errorf("unmarshal cached %q: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}

	now := m.Now()
	entry := memoryEntry{value: data}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.entries[key]
	full := !exists && m.MaxEntries > 0 && len(m.entries) >= m.MaxEntries
	if full || !now.Before(m.nextSweep) {
		m.sweepLocked(now)
	}
	if !exists && m.MaxEntries > 0 && len(m.entries) >= m.MaxEntries {
		for k := range m.entries {
			delete(m.entries, k)
			break
		}
	}
	m.entries[key] = entry
	return nil
}

// sweepLocked drops expired entries; caller holds mu
func (m *MemoryCache) sweepLocked(now time.Time) {
	for k, e := range m.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.nextSweep = now.Add(sweepInterval)
}

// Len is the number of stored entries, expired ones included until swept
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}
