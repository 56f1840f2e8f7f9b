package backend

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateItemRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type removeItemRequest struct {
	ItemID int64 `json:"item_id"`
}

func (c *Client) Cart(ctx context.Context) (*entity.Cart, error) {
	var out entity.Cart
	if err := c.do(ctx, http.MethodGet, "/cart/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddItem(ctx context.Context, productID int64, quantity int) (*entity.Cart, error) {
	var out entity.Cart
	err := c.do(ctx, http.MethodPost, "/cart/add_item/", addItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID int64, quantity int) (*entity.Cart, error) {
	var out entity.Cart
	err := c.do(ctx, http.MethodPatch, "/cart/update_item/", updateItemRequest{
		ItemID:   itemID,
		Quantity: quantity,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveItem(ctx context.Context, itemID int64) (*entity.Cart, error) {
	var out entity.Cart
	err := c.do(ctx, http.MethodDelete, "/cart/remove_item/", removeItemRequest{ItemID: itemID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCart(ctx context.Context) (*entity.Cart, error) {
	var out entity.Cart
	if err := c.do(ctx, http.MethodDelete, "/cart/clear_cart/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Checkout creates the order from the server-side cart. An idempotency
// key guards against the rapid double-submit the UI cannot fully prevent.
func (c *Client) Checkout(ctx context.Context) (*ports.CheckoutResult, error) {
	header := http.Header{}
	header.Set("X-Idempotency-Key", uuid.NewString())

	var out ports.CheckoutResult
	if err := c.doWith(ctx, http.MethodPost, "/cart/checkout/", nil, &out, header); err != nil {
		return nil, err
	}
	return &out, nil
}
