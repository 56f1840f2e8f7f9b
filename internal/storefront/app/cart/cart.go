// Package cart holds the cart view state: the latest server snapshot
// plus a per-item in-flight guard. Every mutation waits for the round
// trip and replaces the whole snapshot with the server's response, no
// optimistic local patching, so displayed totals can never drift from
// server-side pricing rules.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

// ErrItemBusy rejects a second mutation for an item whose previous
// mutation is still in flight. Distinct items update independently.
// This mirrors the disabled row controls of the original view; a rapid
// double submit that slips past it is left to the backend to serialize.
var ErrItemBusy = errors.New("cart: item update already in flight")

type Service struct {
	api ports.CartAPI

	mu       sync.Mutex
	cart     *entity.Cart
	updating map[int64]bool
}

func New(api ports.CartAPI) *Service {
	return &Service{
		api:      api,
		updating: make(map[int64]bool),
	}
}

// Refresh fetches the cart and replaces the snapshot.
func (s *Service) Refresh(ctx context.Context) (*entity.Cart, error) {
	fresh, err := s.api.Cart(ctx)
	if err != nil {
		return nil, err
	}
	s.replace(fresh)
	return fresh, nil
}

// Snapshot returns the last server cart, or nil before the first fetch
// and after a successful checkout.
func (s *Service) Snapshot() *entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// SetQuantity updates an item's quantity. A quantity <= 0 means "remove
// the item", not an error.
func (s *Service) SetQuantity(ctx context.Context, itemID int64, quantity int) (*entity.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	if err := s.begin(itemID); err != nil {
		return nil, err
	}
	defer s.end(itemID)

	fresh, err := s.api.UpdateItem(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}
	s.replace(fresh)
	return fresh, nil
}

func (s *Service) RemoveItem(ctx context.Context, itemID int64) (*entity.Cart, error) {
	if err := s.begin(itemID); err != nil {
		return nil, err
	}
	defer s.end(itemID)

	fresh, err := s.api.RemoveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	s.replace(fresh)
	return fresh, nil
}

// Clear empties the cart server-side and adopts the (empty) response.
func (s *Service) Clear(ctx context.Context) (*entity.Cart, error) {
	fresh, err := s.api.ClearCart(ctx)
	if err != nil {
		return nil, err
	}
	s.replace(fresh)
	return fresh, nil
}

// Checkout creates the order. On success the local snapshot is reset to
// nil unconditionally rather than adopted from the response; a 2xx whose
// body fails to decode still clears the view, because the order itself
// is server-owned by then. On any other failure the snapshot is left
// untouched; order creation is entirely the server's responsibility,
// so there is no partial rollback to do here.
func (s *Service) Checkout(ctx context.Context) (*ports.CheckoutResult, error) {
	result, err := s.api.Checkout(ctx)
	if err != nil {
		var decodeErr *ports.DecodeError
		if !errors.As(err, &decodeErr) {
			return nil, err
		}
		s.replace(nil)
		return nil, err
	}

	s.replace(nil)
	return result, nil
}

// InFlight reports whether an item currently has a mutation running.
func (s *Service) InFlight(itemID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating[itemID]
}

func (s *Service) begin(itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updating[itemID] {
		return ErrItemBusy
	}
	s.updating[itemID] = true
	return nil
}

func (s *Service) end(itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.updating, itemID)
}

func (s *Service) replace(fresh *entity.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = fresh
}
