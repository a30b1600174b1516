package server

import (
	"context"
	"sync"

	"exhibit/storefront/internal/cart"
)

// sessions hands out the cart store for each cart identifier. Stores
// are cached so a session keeps mutating the same in-memory cart; the
// map is the only shared state, each store itself has a single owner
// per request flow.
//
// The cache is unbounded: every new cart_id cookie keeps its entry for
// the process lifetime. Acceptable at quotation-request traffic; swap
// in an LRU if cart volume ever grows past that.
type sessions struct {
	mu          sync.Mutex
	persistence cart.Persistence
	stores      map[string]*cart.Store
}

func newSessions(persistence cart.Persistence) *sessions {
	return &sessions{
		persistence: persistence,
		stores:      make(map[string]*cart.Store),
	}
}

func (s *sessions) store(ctx context.Context, cartID string) *cart.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[cartID]; ok {
		return store
	}

	store := cart.NewStore(ctx, cartID, s.persistence)
	s.stores[cartID] = store
	return store
}
