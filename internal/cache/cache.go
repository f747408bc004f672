// Package cache holds analyzed products awaiting the explanation step.
// A step-1 result is stored under an opaque token that is embedded in the
// inline-keyboard callback; the step-2 handler redeems the token. Entries
// expire after a TTL so stale buttons stop working.
package cache

import (
	"context"
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/comedolab/comedo/pkg/comedo/classify"
	"github.com/comedolab/comedo/pkg/comedo/risk"
)

// Pending is an analyzed product parked between step 1 and step 2.
type Pending struct {
	ProductName string            `json:"product_name"`
	Risk        risk.Level        `json:"risk_level"`
	SourceURL   string            `json:"source_url,omitempty"`
	Ingredients []classify.Record `json:"ingredients"`
}

// Store parks pending results under opaque tokens.
type Store interface {
	// Put stores p and returns its token.
	Put(ctx context.Context, p Pending) (string, error)
	// Get returns the entry for token. Unknown tokens yield
	// internalerr.ErrNotFound, expired ones internalerr.ErrExpired.
	Get(ctx context.Context, token string) (Pending, error)
	// Delete removes the entry for token, if any.
	Delete(ctx context.Context, token string) error
	Close() error
}

// tokens generates monotonic ULIDs for cache keys.
type tokens struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newTokens() *tokens {
	return &tokens{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (t *tokens) next() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ulid.MustNew(ulid.Now(), t.entropy).String()
}
