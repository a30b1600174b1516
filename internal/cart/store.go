package cart

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"exhibit/storefront/internal/domain"
)

// Persistence is the external key-value store a cart snapshots itself
// into. Load returns (nil, nil) when no snapshot exists for the key.
type Persistence interface {
	Load(ctx context.Context, cartID string) ([]byte, error)
	Save(ctx context.Context, cartID string, snapshot []byte) error
	Delete(ctx context.Context, cartID string) error
}

// Store owns one client's cart. Line identity is (ProductID,
// PriceOption); insertion order is preserved across quantity changes.
// Every mutation re-serializes the cart to the persistence store
// best-effort: write failures are logged and swallowed because the
// in-memory cart stays authoritative for the session.
//
// A Store has a single logical owner and is not safe for concurrent
// use; callers that share carts across goroutines must serialize
// access themselves.
type Store struct {
	cartID      string
	items       []domain.CartItem
	persistence Persistence
}

// NewStore rehydrates the cart identified by cartID from the
// persistence store. A missing or corrupt snapshot yields an empty
// cart, never an error.
func NewStore(ctx context.Context, cartID string, persistence Persistence) *Store {
	s := &Store{cartID: cartID, persistence: persistence}

	snapshot, err := persistence.Load(ctx, cartID)
	if err != nil {
		log.Warnf("Failed to load cart %s, starting empty: %v", cartID, err)
		return s
	}
	if snapshot == nil {
		return s
	}

	if err := json.Unmarshal(snapshot, &s.items); err != nil {
		log.Warnf("Corrupt cart snapshot for %s, starting empty: %v", cartID, err)
		s.items = nil
	}
	return s
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Add puts one unit of the item in the cart. If a line with the same
// (product, option) identity exists its quantity is incremented,
// otherwise a new line is appended with quantity 1.
func (s *Store) Add(ctx context.Context, item domain.CartItem) {
	for i := range s.items {
		if s.items[i].SameLine(item.ProductID, item.PriceOption) {
			s.items[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	item.Quantity = 1
	s.items = append(s.items, item)
	s.persist(ctx)
}

// UpdateQuantity sets the quantity of the matching line directly. A
// quantity of zero or below removes the line; negative quantities never
// persist.
func (s *Store) UpdateQuantity(ctx context.Context, productID, priceOption string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, productID, priceOption)
		return
	}

	for i := range s.items {
		if s.items[i].SameLine(productID, priceOption) {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist(ctx)
}

// Remove deletes the line matching (productID, priceOption) exactly.
// Removing an absent line is a no-op.
func (s *Store) Remove(ctx context.Context, productID, priceOption string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if !item.SameLine(productID, priceOption) {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx)
}

// RemoveProduct deletes every option variant of the product.
func (s *Store) RemoveProduct(ctx context.Context, productID string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx)
}

// Clear empties the cart and drops the persisted snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.items = nil
	if err := s.persistence.Delete(ctx, s.cartID); err != nil {
		log.Warnf("Failed to delete cart snapshot %s: %v", s.cartID, err)
	}
}

// TotalItemCount sums the quantities across all lines.
func (s *Store) TotalItemCount() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) persist(ctx context.Context) {
	snapshot, err := json.Marshal(s.items)
	if err != nil {
		log.Warnf("Failed to serialize cart %s: %v", s.cartID, err)
		return
	}
	if err := s.persistence.Save(ctx, s.cartID, snapshot); err != nil {
		log.Warnf("Failed to persist cart %s: %v", s.cartID, err)
	}
}
