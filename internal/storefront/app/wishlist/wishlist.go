// Package wishlist holds the wishlist view state. Toggling a product
// that is currently displayed removes it from the held list locally,
// without a refetch, the only place a mutation touches view state
// directly instead of re-reading the server.
package wishlist

import (
	"context"
	"sync"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

type Service struct {
	api ports.WishlistAPI

	mu       sync.Mutex
	products []entity.Product
}

func New(api ports.WishlistAPI) *Service {
	return &Service{api: api}
}

func (s *Service) Refresh(ctx context.Context) ([]entity.Product, error) {
	products, err := s.api.Wishlist(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return products, nil
}

// Products returns the currently held list.
func (s *Service) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products
}

// Toggle flips membership server-side and, on success, filters the
// product out of the held list if it was displayed.
func (s *Service) Toggle(ctx context.Context, productID int64) error {
	if err := s.api.ToggleWishlist(ctx, productID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]entity.Product, 0, len(s.products))
	for _, product := range s.products {
		if product.ID != productID {
			kept = append(kept, product)
		}
	}
	s.products = kept
	return nil
}
