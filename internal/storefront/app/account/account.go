// Package account serves the profile page and the header chrome: the
// signed-in user's deliveries, wishlist and cart, and the badge counts.
package account

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

// Overview is the profile page data. The three fetches populate
// disjoint slices, so each one may fail independently: a slice whose
// fetch failed is simply left empty, matching the original page.
type Overview struct {
	Deliveries []entity.Delivery `json:"deliveries"`
	Wishlist   []entity.Product  `json:"wishlist"`
	CartItems  []entity.CartItem `json:"cart_items"`
}

// Summary drives the header badges.
type Summary struct {
	CartCount     int `json:"cart_count"`
	WishlistCount int `json:"wishlist_count"`
	PendingOrders int `json:"pending_orders"`
}

type Service struct {
	orders   ports.OrdersAPI
	wishlist ports.WishlistAPI
	cart     ports.CartAPI
}

func New(orders ports.OrdersAPI, wishlistAPI ports.WishlistAPI, cartAPI ports.CartAPI) *Service {
	return &Service{
		orders:   orders,
		wishlist: wishlistAPI,
		cart:     cartAPI,
	}
}

// Overview fans out the three fetches and joins them. Failures are
// logged, not propagated: a profile page with an empty orders section
// beats no profile page.
func (s *Service) Overview(ctx context.Context) *Overview {
	overview := &Overview{}
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		deliveries, err := s.orders.UserDeliveries(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch user deliveries", "error", err)
			return
		}
		overview.Deliveries = deliveries
	}()
	go func() {
		defer wg.Done()
		products, err := s.wishlist.Wishlist(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch wishlist", "error", err)
			return
		}
		overview.Wishlist = products
	}()
	go func() {
		defer wg.Done()
		cart, err := s.cart.Cart(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch cart", "error", err)
			return
		}
		overview.CartItems = cart.Items
	}()

	wg.Wait()
	return overview
}

// Summary fetches the three badge counts concurrently. Unlike Overview,
// a single failure fails the whole summary; the header either shows
// all badges or none.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	g, gctx := errgroup.WithContext(ctx)
	summary := &Summary{}

	g.Go(func() error {
		cart, err := s.cart.Cart(gctx)
		if err != nil {
			return err
		}
		summary.CartCount = len(cart.Items)
		return nil
	})
	g.Go(func() error {
		products, err := s.wishlist.Wishlist(gctx)
		if err != nil {
			return err
		}
		summary.WishlistCount = len(products)
		return nil
	})
	g.Go(func() error {
		count, err := s.orders.PendingOrdersCount(gctx)
		if err != nil {
			return err
		}
		summary.PendingOrders = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// Invoices lists the customer's own invoices.
func (s *Service) Invoices(ctx context.Context) ([]entity.Invoice, error) {
	return s.orders.Invoices(ctx)
}
