// Package cache provides the in-process TTL store backing statistics reads.
// Each Store is one independent namespace (team summaries, player summaries,
// teams by id, rosters); invalidating one never touches another. The store
// grows unbounded for the lifetime of the process; the key space is the
// handful of teams a staff tracks, so that stays small.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the freshness window applied when config does not override it.
const DefaultTTL = 5 * time.Minute

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Store is a keyed store of time-stamped values with a fixed freshness
// window. Expiry is lazy: a stale entry is reported as absent but kept in
// the map until a later Put overwrites it or an invalidation removes it.
type Store[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry[T]
}

// NewStore builds a namespace with the given freshness window.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return NewStoreWithClock[T](ttl, time.Now)
}

// NewStoreWithClock is NewStore with an injectable clock for tests.
func NewStoreWithClock[T any](ttl time.Duration, now func() time.Time) *Store[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[T]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached value only while it is fresh.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}
	if s.now().Sub(e.storedAt) >= s.ttl {
		return zero, false
	}
	return e.value, true
}

// Put stores value under key with the current timestamp, unconditionally
// overwriting any existing entry.
func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	s.entries[key] = entry[T]{value: value, storedAt: s.now()}
	s.mu.Unlock()
}

// Invalidate removes one entry.
func (s *Store[T]) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// InvalidateFunc removes every entry whose key matches the predicate.
// Used for targeted busting when keys are composites.
func (s *Store[T]) InvalidateFunc(match func(key string) bool) {
	s.mu.Lock()
	for k := range s.entries {
		if match(k) {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
}

// InvalidateAll clears the whole namespace.
func (s *Store[T]) InvalidateAll() {
	s.mu.Lock()
	s.entries = make(map[string]entry[T])
	s.mu.Unlock()
}

// Len reports the number of entries, fresh or stale.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
