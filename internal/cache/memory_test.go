package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/comedolab/comedo/pkg/comedo/classify"
	"github.com/comedolab/comedo/pkg/comedo/internalerr"
	"github.com/comedolab/comedo/pkg/comedo/risk"
)

func samplePending() Pending {
	return Pending{
		ProductName: "Test Cream",
		Risk:        risk.Medium,
		SourceURL:   "https://example.com/p",
		Ingredients: []classify.Record{
			{Name: "Aqua", Position: 1},
			{Name: "Squalane", Position: 2, Conditional: true, EarlyConditional: true},
		},
	}
}

func TestMemoryPutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(15 * time.Minute)

	token, err := m.Put(ctx, samplePending())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if token == "" {
		t.Fatal("token should not be empty")
	}

	got, err := m.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ProductName != "Test Cream" || got.Risk != risk.Medium {
		t.Errorf("unexpected entry: %+v", got)
	}
	if len(got.Ingredients) != 2 || !got.Ingredients[1].EarlyConditional {
		t.Errorf("ingredients not preserved: %+v", got.Ingredients)
	}
}

func TestMemoryUnknownToken(t *testing.T) {
	m := NewMemory(time.Minute)
	if _, err := m.Get(context.Background(), "nope"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("unknown token should be ErrNotFound, got %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(15 * time.Minute)

	now := time.Now()
	m.now = func() time.Time { return now }

	token, err := m.Put(ctx, samplePending())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(16 * time.Minute)
	if _, err := m.Get(ctx, token); !errors.Is(err, internalerr.ErrExpired) {
		t.Errorf("entry should have expired, got %v", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	token, _ := m.Put(ctx, samplePending())
	if err := m.Delete(ctx, token); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, token); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("deleted entry should be ErrNotFound, got %v", err)
	}
}

func TestMemoryTokensUnique(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := m.Put(ctx, Pending{})
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}
