// internal/session/memory.go
//
// Server-side session areas.
//
// Context
// -------
// Each browser session owns a small key/value area identified by the
// session-ID cookie.  The area carries the two session keys, "auth-token"
// and "user-data", the way the original client kept them in
// session-scoped browser storage.  Areas idle longer than the TTL are
// evicted by a background sweep, so an abandoned browser session does
// not pin memory forever.
//
// All mutation goes through this type's mutex; independent call sites
// never read-modify-write the underlying maps directly.
package session

import (
	"sync"
	"time"
)

// Storage keys, mirroring the names the cookie side uses.
const (
	tokenKey = "auth-token"
	userKey  = "user-data"
)

type area struct {
	values   map[string]string
	lastSeen time.Time
}

// Memory holds every live session area.  Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	areas map[string]*area
	ttl   time.Duration
}

// NewMemory builds the store and starts the eviction sweep.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	m := &Memory{
		areas: make(map[string]*area),
		ttl:   ttl,
	}
	go m.sweepLoop()
	return m
}

// Get returns the value stored under key for the given session ID.
func (m *Memory) Get(sid, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.areas[sid]
	if !ok {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// Set stores key=val in the session's area, creating it if needed.
func (m *Memory) Set(sid, key, val string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.areas[sid]
	if !ok {
		a = &area{values: make(map[string]string)}
		m.areas[sid] = a
	}
	a.values[key] = val
	a.lastSeen = time.Now()
}

// Delete removes the given keys from the session's area.
func (m *Memory) Delete(sid string, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.areas[sid]
	if !ok {
		return
	}
	for _, k := range keys {
		delete(a.values, k)
	}
	a.lastSeen = time.Now()
}

// sweep drops areas idle past the TTL.
func (m *Memory) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	for sid, a := range m.areas {
		if a.lastSeen.Before(cutoff) {
			delete(m.areas, sid)
		}
	}
}

func (m *Memory) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		m.sweep()
	}
}
