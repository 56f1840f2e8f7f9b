// Package catalog serves the product browsing views. Filtering is a
// full server refetch on every change; add-to-cart and wishlist-toggle
// are fire-and-forget side effects whose outcome only feeds a
// notification, never the displayed product state.
package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

// ErrContactIncomplete is the client-side validation failure for the
// contact form; the backend is not called.
var ErrContactIncomplete = errors.New("catalog: contact form requires name, email, subject and message")

// Listing is the product list view data: products under the current
// filter plus the category options for the filter control.
type Listing struct {
	Products   []entity.Product  `json:"products"`
	Categories []entity.Category `json:"categories"`
}

// Detail is the product detail view data.
type Detail struct {
	Product *entity.Product  `json:"product"`
	Related []entity.Product `json:"related"`
}

type Service struct {
	catalog  ports.CatalogAPI
	cart     ports.CartAPI
	wishlist ports.WishlistAPI
	support  ports.SupportAPI
}

func New(catalogAPI ports.CatalogAPI, cartAPI ports.CartAPI, wishlistAPI ports.WishlistAPI, supportAPI ports.SupportAPI) *Service {
	return &Service{
		catalog:  catalogAPI,
		cart:     cartAPI,
		wishlist: wishlistAPI,
		support:  supportAPI,
	}
}

// List fetches products and categories concurrently; both populate
// disjoint slices of the view, so ordering between them is irrelevant.
func (s *Service) List(ctx context.Context, filter ports.ProductFilter) (*Listing, error) {
	g, gctx := errgroup.WithContext(ctx)
	listing := &Listing{}

	g.Go(func() error {
		products, err := s.catalog.Products(gctx, filter)
		if err != nil {
			return err
		}
		listing.Products = products
		return nil
	})
	g.Go(func() error {
		categories, err := s.catalog.Categories(gctx)
		if err != nil {
			return err
		}
		listing.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listing, nil
}

// Get fetches a product and its related items concurrently.
func (s *Service) Get(ctx context.Context, slug string) (*Detail, error) {
	g, gctx := errgroup.WithContext(ctx)
	detail := &Detail{}

	g.Go(func() error {
		product, err := s.catalog.Product(gctx, slug)
		if err != nil {
			return err
		}
		detail.Product = product
		return nil
	})
	g.Go(func() error {
		related, err := s.catalog.RelatedProducts(gctx, slug)
		if err != nil {
			return err
		}
		detail.Related = related
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Service) Home(ctx context.Context) (*ports.HomeData, error) {
	return s.catalog.Home(ctx)
}

// AddToCart is fire-and-forget: the product card does not change, the
// result only drives a transient notification.
func (s *Service) AddToCart(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	_, err := s.cart.AddItem(ctx, productID, quantity)
	return err
}

// ToggleWishlist is likewise fire-and-forget from the listing views;
// only the wishlist view itself reflects the toggle locally.
func (s *Service) ToggleWishlist(ctx context.Context, productID int64) error {
	return s.wishlist.ToggleWishlist(ctx, productID)
}

func (s *Service) SendContact(ctx context.Context, form ports.ContactForm) error {
	if form.Name == "" || form.Email == "" || form.Subject == "" || form.Message == "" {
		return ErrContactIncomplete
	}
	return s.support.SendContact(ctx, form)
}
