package dashboard

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
	"github.com/meherstore/storefront/internal/storefront/infra/adapters/store"
)

type fakeShopAPI struct {
	deliveries    []entity.ShopOrder
	deliveriesErr error
	users         []entity.User
	usersErr      error
	updateErr     error

	updateCalls int
	lastID      int64
	lastStatus  entity.DeliveryStatus
}

func (f *fakeShopAPI) Deliveries(context.Context) ([]entity.ShopOrder, error) {
	return f.deliveries, f.deliveriesErr
}

func (f *fakeShopAPI) UpdateDeliveryStatus(_ context.Context, id int64, status entity.DeliveryStatus) error {
	f.updateCalls++
	f.lastID = id
	f.lastStatus = status
	return f.updateErr
}

func (f *fakeShopAPI) Users(context.Context) ([]entity.User, error) {
	return f.users, f.usersErr
}

type fakeOrdersAPI struct {
	invoices    []entity.Invoice
	invoicesErr error
}

func (f *fakeOrdersAPI) PendingOrdersCount(context.Context) (int, error) { return 0, nil }

func (f *fakeOrdersAPI) Invoices(context.Context) ([]entity.Invoice, error) {
	return f.invoices, f.invoicesErr
}

func (f *fakeOrdersAPI) UserDeliveries(context.Context) ([]entity.Delivery, error) {
	return nil, nil
}

func seedCredentials(t *testing.T, kv ports.Store, username string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, ports.KeyAuthToken, "tok"))
	require.NoError(t, kv.Set(ctx, ports.KeyDashboardUser, `{"username":"`+username+`"}`))
}

func TestAuthorizeWithoutTokenRejects(t *testing.T) {
	svc := New(&fakeShopAPI{}, &fakeOrdersAPI{}, store.NewMemoryStore(), "shop_meher")

	err := svc.Authorize(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAuthorizeWrongUsernameWipesCredentials(t *testing.T) {
	kv := store.NewMemoryStore()
	seedCredentials(t, kv, "someone_else")
	svc := New(&fakeShopAPI{}, &fakeOrdersAPI{}, kv, "shop_meher")
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx), ErrNotAuthorized)

	_, err := kv.Get(ctx, ports.KeyAuthToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = kv.Get(ctx, ports.KeyDashboardUser)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAuthorizeShopkeeperPasses(t *testing.T) {
	kv := store.NewMemoryStore()
	seedCredentials(t, kv, "shop_meher")
	svc := New(&fakeShopAPI{}, &fakeOrdersAPI{}, kv, "shop_meher")

	assert.NoError(t, svc.Authorize(context.Background()))
}

func TestRefreshForbiddenForcesLogout(t *testing.T) {
	kv := store.NewMemoryStore()
	seedCredentials(t, kv, "shop_meher")
	shop := &fakeShopAPI{deliveriesErr: &ports.APIError{Status: http.StatusForbidden, Body: "forbidden"}}
	svc := New(shop, &fakeOrdersAPI{}, kv, "shop_meher")
	ctx := context.Background()

	_, err := svc.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// Forced logout: both persisted credentials are gone.
	_, getErr := kv.Get(ctx, ports.KeyAuthToken)
	assert.ErrorIs(t, getErr, ports.ErrNotFound)
	_, getErr = kv.Get(ctx, ports.KeyDashboardUser)
	assert.ErrorIs(t, getErr, ports.ErrNotFound)
}

func TestRefreshOtherDeliveriesFailureIsGeneric(t *testing.T) {
	kv := store.NewMemoryStore()
	seedCredentials(t, kv, "shop_meher")
	shop := &fakeShopAPI{deliveriesErr: &ports.APIError{Status: 500, Body: "boom"}}
	svc := New(shop, &fakeOrdersAPI{}, kv, "shop_meher")
	ctx := context.Background()

	_, err := svc.Refresh(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotAuthorized)

	// A plain failure does not log anyone out.
	_, getErr := kv.Get(ctx, ports.KeyAuthToken)
	assert.NoError(t, getErr)
}

func TestRefreshPopulatesDisjointSlices(t *testing.T) {
	shop := &fakeShopAPI{
		deliveries: []entity.ShopOrder{{ID: 1, Status: entity.StatusPending}},
		users:      []entity.User{{ID: 2, Username: "customer"}},
	}
	orders := &fakeOrdersAPI{invoices: []entity.Invoice{{ID: 3, InvoiceNumber: "INV-3"}}}
	svc := New(shop, orders, store.NewMemoryStore(), "shop_meher")

	data, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Orders, 1)
	assert.Len(t, data.Invoices, 1)
	assert.Len(t, data.Users, 1)
}

func TestRefreshToleratesInvoiceAndUserFailures(t *testing.T) {
	shop := &fakeShopAPI{
		deliveries: []entity.ShopOrder{{ID: 1}},
		usersErr:   &ports.APIError{Status: 500, Body: "boom"},
	}
	orders := &fakeOrdersAPI{invoicesErr: &ports.APIError{Status: 500, Body: "boom"}}
	svc := New(shop, orders, store.NewMemoryStore(), "shop_meher")

	data, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Orders, 1)
	assert.Empty(t, data.Invoices)
	assert.Empty(t, data.Users)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	shop := &fakeShopAPI{}
	svc := New(shop, &fakeOrdersAPI{}, store.NewMemoryStore(), "shop_meher")

	err := svc.UpdateStatus(context.Background(), 1, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, shop.updateCalls)
}

func TestUpdateStatusPatchesOnlyThatRow(t *testing.T) {
	shop := &fakeShopAPI{deliveries: []entity.ShopOrder{
		{ID: 1, Status: entity.StatusPending},
		{ID: 2, Status: entity.StatusPending},
	}}
	svc := New(shop, &fakeOrdersAPI{}, store.NewMemoryStore(), "shop_meher")
	ctx := context.Background()

	_, err := svc.Refresh(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, 1, entity.StatusShipped))
	assert.Equal(t, int64(1), shop.lastID)
	assert.Equal(t, entity.StatusShipped, shop.lastStatus)

	data := svc.Data()
	assert.Equal(t, entity.StatusShipped, data.Orders[0].Status)
	assert.Equal(t, entity.StatusPending, data.Orders[1].Status)
}

func TestUpdateStatusFailureLeavesRowUntouched(t *testing.T) {
	shop := &fakeShopAPI{
		deliveries: []entity.ShopOrder{{ID: 1, Status: entity.StatusPending}},
		updateErr:  &ports.APIError{Status: 500, Body: "boom"},
	}
	svc := New(shop, &fakeOrdersAPI{}, store.NewMemoryStore(), "shop_meher")
	ctx := context.Background()

	_, err := svc.Refresh(ctx)
	require.NoError(t, err)

	require.Error(t, svc.UpdateStatus(ctx, 1, entity.StatusShipped))
	assert.Equal(t, entity.StatusPending, svc.Data().Orders[0].Status)
}
