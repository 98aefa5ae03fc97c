package storage

import (
	"context"
	"sync"
)

// KV is the client-local durable storage contract the cart pipeline
// depends on: string keys, whole-value overwrite, last write wins.
// Subscribers are told which key changed after every successful Set or
// Remove, which is how a second consumer of the same store observes
// edits it did not make itself.
type KV interface {
	// Get returns the value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error

	// Subscribe registers fn for change events. The returned func
	// cancels the subscription.
	Subscribe(fn func(key string)) func()
}

// notifier fans change events out to subscribers. Delivery is
// synchronous in the mutating call, matching a single event loop.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(key string)
}

func (n *notifier) Subscribe(fn func(key string)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(key string))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(key string) {
	n.mu.Lock()
	fns := make([]func(string), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}
