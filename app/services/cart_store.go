package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
)

const cartKeyPrefix = "cart:"

// CartStore keeps one profile's cart lines as a single JSON document
// under one key in the local store. Every mutation rewrites the whole
// collection and then tells observers, so call sites never have to
// remember to refresh counters themselves.
type CartStore struct {
	kv  storage.KV
	key string

	mu sync.Mutex

	obsMu   sync.Mutex
	nextObs int
	obs     map[int]func()
}

func NewCartStore(kv storage.KV, profileID string) *CartStore {
	return &CartStore{
		kv:  kv,
		key: cartKeyPrefix + profileID,
		obs: make(map[int]func()),
	}
}

// Items reads the persisted collection. A missing key or an unreadable
// payload both come back as an empty cart, never as an error.
func (s *CartStore) Items(ctx context.Context) []models.CartLine {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		log.Printf("CartStore.Items: failed to read %s: %v", s.key, err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		log.Printf("CartStore.Items: corrupt cart payload under %s, treating as empty: %v", s.key, err)
		return nil
	}
	return lines
}

// Add puts qty units of product into the cart. A line that already
// exists for the product has its quantity incremented instead of a
// duplicate line being appended.
func (s *CartStore) Add(ctx context.Context, product *models.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.Items(ctx)
	found := false
	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].QuantityRequested += qty
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, models.LineFromProduct(product, qty))
	}

	return s.persist(ctx, lines)
}

// UpdateQuantity sets the stored quantity for productID. Quantities
// below one are rejected as a no-op; removal is its own operation.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.Items(ctx)
	changed := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].QuantityRequested = qty
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	return s.persist(ctx, lines)
}

func (s *CartStore) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.Items(ctx)
	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}

	return s.persist(ctx, kept)
}

func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx, []models.CartLine{})
}

func (s *CartStore) persist(ctx context.Context, lines []models.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(payload)); err != nil {
		log.Printf("CartStore.persist: failed to write %s: %v", s.key, err)
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	s.notifyObservers()
	return nil
}

// Subscribe registers fn to run after every successful mutation of
// this store. The returned func cancels the subscription.
func (s *CartStore) Subscribe(fn func()) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.obs[id] = fn
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.obs, id)
	}
}

func (s *CartStore) notifyObservers() {
	s.obsMu.Lock()
	fns := make([]func(), 0, len(s.obs))
	for _, fn := range s.obs {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
