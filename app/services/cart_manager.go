package services

import (
	"sync"

	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
)

// maxCachedProfiles bounds the manager's cache. Every first-time
// visitor cookie is a new profile, so without a cap the process would
// accumulate a store and a subscribed counter per visitor forever.
const maxCachedProfiles = 512

type cartEntry struct {
	store   *CartStore
	counter *CartCounter
}

// CartManager hands out the per-profile cart store and counter pair.
// Instances are cached so every component touching the same profile
// shares one store and one live counter; least recently used profiles
// are evicted once the cache is full.
type CartManager struct {
	kv storage.KV

	mu          sync.Mutex
	maxProfiles int
	entries     map[string]*cartEntry
	order       []string
}

func NewCartManager(kv storage.KV) *CartManager {
	return &CartManager{
		kv:          kv,
		maxProfiles: maxCachedProfiles,
		entries:     make(map[string]*cartEntry),
	}
}

func (m *CartManager) Store(profileID string) *CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entry(profileID).store
}

func (m *CartManager) Counter(profileID string) *CartCounter {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entry(profileID)
	if e.counter == nil {
		e.counter = NewCartCounter(e.store, m.kv)
	}
	return e.counter
}

// Release drops the cached pair for profileID and cancels its
// counter's subscriptions. The next access rebuilds from storage.
func (m *CartManager) Release(profileID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drop(profileID)
}

// entry returns the cached pair for profileID, building and caching it
// on first access. Callers hold m.mu.
func (m *CartManager) entry(profileID string) *cartEntry {
	e, ok := m.entries[profileID]
	if !ok {
		for len(m.entries) >= m.maxProfiles && len(m.order) > 0 {
			m.drop(m.order[0])
		}
		e = &cartEntry{store: NewCartStore(m.kv, profileID)}
		m.entries[profileID] = e
	}
	m.touch(profileID)
	return e
}

func (m *CartManager) drop(profileID string) {
	e, ok := m.entries[profileID]
	if !ok {
		return
	}
	if e.counter != nil {
		e.counter.Close()
	}
	delete(m.entries, profileID)
	m.remove(profileID)
}

// touch moves profileID to the most recently used end.
func (m *CartManager) touch(profileID string) {
	m.remove(profileID)
	m.order = append(m.order, profileID)
}

func (m *CartManager) remove(profileID string) {
	for i, id := range m.order {
		if id == profileID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
