// Package memo provides a single-entry, time-expiring memo for functions
// that take no arguments.
package memo

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const flightKey = "slot"

// Slot holds at most one value. A stored value is served until ttl has
// elapsed since it was stored; concurrent misses share a single call to the
// loader. Errors are never stored.
type Slot[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	value    T
	storedAt time.Time
	valid    bool

	group singleflight.Group
}

// New returns an empty Slot. A nil now uses time.Now.
func New[T any](ttl time.Duration, now func() time.Time) *Slot[T] {
	if now == nil {
		now = time.Now
	}
	return &Slot[T]{ttl: ttl, now: now}
}

// Get returns the stored value while it is fresh, otherwise calls load.
// The bool reports whether the value came from the slot without calling load.
func (s *Slot[T]) Get(ctx context.Context, load func(ctx context.Context) (T, error)) (T, bool, error) {
	if v, ok := s.fresh(); ok {
		return v, true, nil
	}

	// the loader outlives any single waiter, so it must not inherit one
	// caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)

	res, err, _ := s.group.Do(flightKey, func() (any, error) {
		if v, ok := s.fresh(); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.value = v
		s.storedAt = s.now()
		s.valid = true
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	v, _ := res.(T)
	return v, false, nil
}

// Peek returns the stored value and when it was stored, fresh or not.
func (s *Slot[T]) Peek() (T, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.storedAt, s.valid
}

// Invalidate drops the stored value.
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value = zero
	s.storedAt = time.Time{}
	s.valid = false
}

func (s *Slot[T]) fresh() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.valid && s.now().Sub(s.storedAt) < s.ttl {
		return s.value, true
	}
	var zero T
	return zero, false
}
