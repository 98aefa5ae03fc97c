package services

import (
	"context"
	"testing"

	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
)

func TestCartManagerSharesOnePairPerProfile(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := NewCartManager(kv)

	if m.Store("profile-1") != m.Store("profile-1") {
		t.Error("same profile got two different stores")
	}
	if m.Counter("profile-1") != m.Counter("profile-1") {
		t.Error("same profile got two different counters")
	}
}

func TestCartManagerEvictsLeastRecentlyUsed(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := NewCartManager(kv)
	m.maxProfiles = 2

	first := m.Store("profile-1")
	m.Store("profile-2")
	m.Store("profile-3")

	m.mu.Lock()
	cached := len(m.entries)
	_, stillThere := m.entries["profile-1"]
	m.mu.Unlock()

	if cached != 2 {
		t.Fatalf("cached %d profiles, want 2", cached)
	}
	if stillThere {
		t.Error("profile-1 still cached, want it evicted as least recently used")
	}
	if m.Store("profile-1") == first {
		t.Error("evicted profile got the stale store back, want a fresh instance")
	}
}

func TestCartManagerEvictionStopsCounter(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	m := NewCartManager(kv)
	m.maxProfiles = 2

	counter := m.Counter("profile-1")
	if err := m.Store("profile-1").Add(ctx, testProduct("p1", 100), 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if counter.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", counter.Count())
	}

	m.Store("profile-2")
	m.Store("profile-3")

	// The evicted profile's counter is closed; a later write to its
	// cart key must not reach it anymore.
	if err := NewCartStore(kv, "profile-1").Add(ctx, testProduct("p2", 50), 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if counter.Count() != 2 {
		t.Errorf("closed counter moved to %d, want it frozen at 2", counter.Count())
	}
}

func TestCartManagerReleaseDropsCachedPair(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	m := NewCartManager(kv)

	store := m.Store("profile-1")
	counter := m.Counter("profile-1")
	if err := store.Add(ctx, testProduct("p1", 100), 2); err != nil {
		t.Fatalf("Add: %v", err)
	}

	m.Release("profile-1")

	m.mu.Lock()
	cached := len(m.entries)
	m.mu.Unlock()
	if cached != 0 {
		t.Fatalf("cached %d profiles after release, want 0", cached)
	}

	if err := NewCartStore(kv, "profile-1").Add(ctx, testProduct("p2", 50), 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if counter.Count() != 2 {
		t.Errorf("released counter moved to %d, want it frozen at 2", counter.Count())
	}

	// A fresh access rebuilds from storage and sees both writes.
	if got := m.Counter("profile-1").Count(); got != 5 {
		t.Errorf("rebuilt counter = %d, want 5", got)
	}
}
