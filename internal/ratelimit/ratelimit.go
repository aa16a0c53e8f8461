// Package ratelimit implements fixed window request limiting keyed by an
// arbitrary string such as the client IP.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// RateLimiter grants or denies one request for key.
type RateLimiter interface {
	// TryConsume takes one unit for key. It returns false once the limit of
	// the current window is used up.
	TryConsume(ctx context.Context, key string) (bool, error)
}

// pruneAt is the map size after which expired windows are dropped.
const pruneAt = 1024

type window struct {
	count int
	start time.Time
}

// Memory is a process local RateLimiter. State is lost on restart and not
// shared between instances.
type Memory struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewMemory allows limit requests per key in every period.
func NewMemory(limit int, period time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// TryConsume implements RateLimiter.
func (m *Memory) TryConsume(_ context.Context, key string) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.windows) >= pruneAt {
		for k, w := range m.windows {
			if now.Sub(w.start) >= m.period {
				delete(m.windows, k)
			}
		}
	}

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= m.period {
		m.windows[key] = &window{count: 1, start: now}
		return m.limit > 0, nil
	}

	if w.count >= m.limit {
		return false, nil
	}

	w.count++

	return true, nil
}
