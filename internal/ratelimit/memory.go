package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// FixedWindow is an in-process fixed-window counter keyed per caller. State
// is process-wide; a multi-instance deployment should use the redis-backed
// token bucket instead.
type FixedWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*windowEntry

	now func() time.Time
}

func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		window:  window,
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func (f *FixedWindow) Allow(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	entry, ok := f.entries[key]
	if !ok || now.After(entry.resetAt) {
		f.entries[key] = &windowEntry{count: 1, resetAt: now.Add(f.window)}
		f.sweep(now)
		return true, nil
	}

	if entry.count >= f.limit {
		return false, nil
	}

	entry.count++
	return true, nil
}

// sweep drops expired entries so the map does not grow unbounded. Called
// under the lock, on the cheap path where a new window starts.
func (f *FixedWindow) sweep(now time.Time) {
	if len(f.entries) < 1024 {
		return
	}
	for key, entry := range f.entries {
		if now.After(entry.resetAt) {
			delete(f.entries, key)
		}
	}
}
