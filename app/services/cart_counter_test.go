package services

import (
	"context"
	"testing"

	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
)

func TestCartCounterEagerInitialCount(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	seed := NewCartStore(kv, "profile-1")
	_ = seed.Add(ctx, testProduct("p1", 100), 2)
	_ = seed.Add(ctx, testProduct("p2", 200), 3)

	counter := NewCartCounter(NewCartStore(kv, "profile-1"), kv)
	if counter.Count() != 5 {
		t.Errorf("initial Count() = %d, want 5", counter.Count())
	}
}

func TestCartCounterTracksStoreMutations(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	store := NewCartStore(kv, "profile-1")
	counter := NewCartCounter(store, kv)

	_ = store.Add(ctx, testProduct("p1", 100), 2)
	if counter.Count() != 2 {
		t.Errorf("Count() = %d after add, want 2", counter.Count())
	}

	_ = store.UpdateQuantity(ctx, "p1", 7)
	if counter.Count() != 7 {
		t.Errorf("Count() = %d after update, want 7", counter.Count())
	}

	_ = store.Clear(ctx)
	if counter.Count() != 0 {
		t.Errorf("Count() = %d after clear, want 0", counter.Count())
	}
}

// A write through a different store instance on the same backing KV is
// only visible via the storage change event, the cross-tab path.
func TestCartCounterSeesForeignWrites(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	counter := NewCartCounter(NewCartStore(kv, "profile-1"), kv)

	other := NewCartStore(kv, "profile-1")
	_ = other.Add(ctx, testProduct("p1", 100), 4)

	if counter.Count() != 4 {
		t.Errorf("Count() = %d after foreign write, want 4", counter.Count())
	}
}

func TestCartCounterIgnoresOtherProfiles(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	counter := NewCartCounter(NewCartStore(kv, "profile-1"), kv)

	other := NewCartStore(kv, "profile-2")
	_ = other.Add(ctx, testProduct("p1", 100), 4)

	if counter.Count() != 0 {
		t.Errorf("Count() = %d, want 0: another profile's cart changed", counter.Count())
	}
}

func TestCartCounterSubscribersGetNewCount(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	store := NewCartStore(kv, "profile-1")
	counter := NewCartCounter(store, kv)

	var got []int
	cancel := counter.Subscribe(func(count int) { got = append(got, count) })
	defer cancel()

	_ = store.Add(ctx, testProduct("p1", 100), 2)
	_ = store.Clear(ctx)

	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("subscriber saw %v, want [2 0]", got)
	}
}
