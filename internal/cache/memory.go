package cache

import (
	"context"
	"sync"
	"time"

	"github.com/comedolab/comedo/pkg/comedo/internalerr"
)

// Memory is an in-process Store. Entries vanish on restart.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	tokens  *tokens
	now     func() time.Time
}

type memoryEntry struct {
	at time.Time
	p  Pending
}

// NewMemory creates an in-memory store with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		tokens:  newTokens(),
		now:     time.Now,
	}
}

// Put implements Store.
func (m *Memory) Put(ctx context.Context, p Pending) (string, error) {
	token := m.tokens.next()

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.entries[token] = memoryEntry{at: now, p: p}

	// Opportunistic sweep keeps the map from growing unbounded.
	for k, e := range m.entries {
		if now.Sub(e.at) > m.ttl {
			delete(m.entries, k)
		}
	}
	return token, nil
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, token string) (Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[token]
	if !ok {
		return Pending{}, internalerr.ErrNotFound
	}
	if m.now().Sub(e.at) > m.ttl {
		delete(m.entries, token)
		return Pending{}, internalerr.ErrExpired
	}
	return e.p, nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, token)
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
