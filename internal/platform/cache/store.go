// Package cache is the in-process read-through cache shared by the
// repository decorators. Values are stored untyped and read back through
// the generic Load helper.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// sweepEvery is the number of writes between sweeps of expired entries.
const sweepEvery = 256

var ErrNilLoader = errors.New("cache loader is nil")

type item struct {
	value    any
	deadline time.Time
}

func (it item) live(now time.Time) bool {
	return it.deadline.IsZero() || now.Before(it.deadline)
}

// Store maps keys to values with a per-entry deadline. A ttl of zero keeps
// an entry until it is deleted.
type Store struct {
	defaultTTL time.Duration
	now        func() time.Time
	flight     singleflight.Group

	mu     sync.RWMutex
	items  map[string]item
	writes int
}

func NewStore(defaultTTL time.Duration) *Store {
	return &Store{
		defaultTTL: defaultTTL,
		now:        time.Now,
		items:      make(map[string]item),
	}
}

// Get reports a live entry. Expired entries are treated as absent and left
// for the next sweep.
func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || !it.live(s.now()) {
		return nil, false
	}
	return it.value, true
}

// Put stores value for ttl. A negative ttl means the value must not be
// cached.
func (s *Store) Put(_ context.Context, key string, value any, ttl time.Duration) {
	if key == "" || ttl < 0 {
		return
	}
	now := s.now()
	it := item{value: value}
	if ttl > 0 {
		it.deadline = now.Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = it
	s.writes++
	if s.writes%sweepEvery == 0 {
		for k, v := range s.items {
			if !v.live(now) {
				delete(s.items, k)
			}
		}
	}
}

func (s *Store) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.items, k)
	}
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix, e.g. all weeks of one
// season. It returns the number of entries removed.
func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			delete(s.items, k)
			removed++
		}
	}
	return removed
}

// Len counts stored entries, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loader fetches a value on a miss and picks its lifetime. Returning
// UseDefaultTTL keeps it for the store's default ttl.
type Loader[T any] func(ctx context.Context) (T, time.Duration, error)

const UseDefaultTTL time.Duration = -1 << 62

// Load reads key through s. On a miss exactly one concurrent caller runs
// load; the others wait for its result. Errors are returned, never cached.
func Load[T any](ctx context.Context, s *Store, key string, load Loader[T]) (T, error) {
	var zero T
	if load == nil {
		return zero, ErrNilLoader
	}
	if v, ok := s.Get(ctx, key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		if v, ok := s.Get(ctx, key); ok {
			if _, ok := v.(T); ok {
				return v, nil
			}
		}
		value, ttl, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if ttl == UseDefaultTTL {
			ttl = s.defaultTTL
		}
		s.Put(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	typed, _ := v.(T)
	return typed, nil
}
