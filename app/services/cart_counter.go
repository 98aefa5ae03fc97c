package services

import (
	"context"
	"sync"

	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
)

// CartCounter mirrors the total item count (sum of quantities, not
// line count) of one profile's cart for badge display. It recomputes
// on every store mutation and on storage change events for the cart
// key, the latter covering writes made through another store instance.
type CartCounter struct {
	store *CartStore

	mu    sync.Mutex
	count int

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(int)

	cancels []func()
}

// NewCartCounter computes its initial value eagerly, so the count is
// right immediately after construction without waiting for a mutation.
func NewCartCounter(store *CartStore, kv storage.KV) *CartCounter {
	c := &CartCounter{
		store: store,
		subs:  make(map[int]func(int)),
	}
	c.Recompute(context.Background())

	c.cancels = append(c.cancels,
		store.Subscribe(func() {
			c.Recompute(context.Background())
		}),
		kv.Subscribe(func(key string) {
			if key == store.key {
				c.Recompute(context.Background())
			}
		}),
	)
	return c
}

// Close cancels the counter's store and storage subscriptions. A
// closed counter keeps its last value but no longer tracks changes.
func (c *CartCounter) Close() {
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
}

func (c *CartCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Recompute rereads the full cart and sums quantities.
func (c *CartCounter) Recompute(ctx context.Context) int {
	total := 0
	for _, line := range c.store.Items(ctx) {
		total += line.QuantityRequested
	}

	c.mu.Lock()
	changed := total != c.count
	c.count = total
	c.mu.Unlock()

	if changed {
		c.notify(total)
	}
	return total
}

// Subscribe registers fn to receive the new count whenever it changes.
func (c *CartCounter) Subscribe(fn func(count int)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *CartCounter) notify(count int) {
	c.subMu.Lock()
	fns := make([]func(int), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(count)
	}
}
