package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

type fakeOrdersAPI struct {
	deliveries    []entity.Delivery
	deliveriesErr error
	pending       int
	pendingErr    error
}

func (f *fakeOrdersAPI) PendingOrdersCount(context.Context) (int, error) {
	return f.pending, f.pendingErr
}

func (f *fakeOrdersAPI) Invoices(context.Context) ([]entity.Invoice, error) { return nil, nil }

func (f *fakeOrdersAPI) UserDeliveries(context.Context) ([]entity.Delivery, error) {
	return f.deliveries, f.deliveriesErr
}

type fakeWishlistAPI struct {
	products []entity.Product
	err      error
}

func (f *fakeWishlistAPI) Wishlist(context.Context) ([]entity.Product, error) {
	return f.products, f.err
}

func (f *fakeWishlistAPI) ToggleWishlist(context.Context, int64) error { return nil }

type fakeCartAPI struct {
	cart *entity.Cart
	err  error
}

func (f *fakeCartAPI) Cart(context.Context) (*entity.Cart, error) { return f.cart, f.err }

func (f *fakeCartAPI) AddItem(context.Context, int64, int) (*entity.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartAPI) UpdateItem(context.Context, int64, int) (*entity.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartAPI) RemoveItem(context.Context, int64) (*entity.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartAPI) ClearCart(context.Context) (*entity.Cart, error) { return f.cart, nil }

func (f *fakeCartAPI) Checkout(context.Context) (*ports.CheckoutResult, error) {
	return &ports.CheckoutResult{}, nil
}

func TestOverviewToleratesPartialFailures(t *testing.T) {
	svc := New(
		&fakeOrdersAPI{deliveriesErr: &ports.APIError{Status: 500, Body: "boom"}},
		&fakeWishlistAPI{products: []entity.Product{{ID: 1}}},
		&fakeCartAPI{cart: &entity.Cart{Items: []entity.CartItem{{ID: 5}}}},
	)

	overview := svc.Overview(context.Background())

	assert.Empty(t, overview.Deliveries)
	assert.Len(t, overview.Wishlist, 1)
	assert.Len(t, overview.CartItems, 1)
}

func TestSummaryJoinsAllCounts(t *testing.T) {
	svc := New(
		&fakeOrdersAPI{pending: 2},
		&fakeWishlistAPI{products: []entity.Product{{ID: 1}, {ID: 2}, {ID: 3}}},
		&fakeCartAPI{cart: &entity.Cart{Items: []entity.CartItem{{ID: 5}}}},
	)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CartCount)
	assert.Equal(t, 3, summary.WishlistCount)
	assert.Equal(t, 2, summary.PendingOrders)
}

func TestSummaryFailsAsAWhole(t *testing.T) {
	svc := New(
		&fakeOrdersAPI{pendingErr: &ports.APIError{Status: 500, Body: "boom"}},
		&fakeWishlistAPI{},
		&fakeCartAPI{cart: &entity.Cart{}},
	)

	_, err := svc.Summary(context.Background())
	require.Error(t, err)
}
