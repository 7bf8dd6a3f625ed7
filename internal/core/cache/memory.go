// Package cache keeps fetched record windows in memory.
package cache

import (
	"sync"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

// MemoryCacheEntry is one fetched window
type MemoryCacheEntry struct {
	Records      []model.LoadingRecord
	FetchedAt    time.Time
	LastAccessed time.Time
}

// MemoryCache maps a window key to its last successful fetch. Entries older
// than the TTL are treated as missing. Clear bumps a generation counter so a
// fetch that started before the clear cannot repopulate the cache.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]*MemoryCacheEntry
	ttl        time.Duration
	generation uint64
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*MemoryCacheEntry),
		ttl:     ttl,
	}
}

// Generation identifies the current cache epoch. Pass it to Set.
func (mc *MemoryCache) Generation() uint64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.generation
}

// Set stores records fetched at now. It is a no-op when the cache was
// cleared after generation was read.
func (mc *MemoryCache) Set(key string, records []model.LoadingRecord, now time.Time, generation uint64) bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if generation != mc.generation {
		util.LogDebugf("MemoryCache: dropping result for %s fetched before invalidation", key)
		return false
	}
	mc.entries[key] = &MemoryCacheEntry{
		Records:      records,
		FetchedAt:    now,
		LastAccessed: now,
	}
	return true
}

// Get returns the records for key if they are still fresh at now
func (mc *MemoryCache) Get(key string, now time.Time) ([]model.LoadingRecord, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry, ok := mc.entries[key]
	if !ok {
		return nil, false
	}
	if now.Sub(entry.FetchedAt) >= mc.ttl {
		delete(mc.entries, key)
		return nil, false
	}
	entry.LastAccessed = now
	return entry.Records, true
}

// Clear drops every entry and starts a new generation
func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries = make(map[string]*MemoryCacheEntry)
	mc.generation++
	util.LogDebug("MemoryCache: cleared")
}

// Prune removes expired entries and returns how many were dropped
func (mc *MemoryCache) Prune(now time.Time) int {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	removed := 0
	for key, entry := range mc.entries {
		if now.Sub(entry.FetchedAt) >= mc.ttl {
			delete(mc.entries, key)
			removed++
		}
	}
	return removed
}

// Len is the number of entries, fresh or not
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}
