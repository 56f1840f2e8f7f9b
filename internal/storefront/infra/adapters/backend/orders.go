package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
)

type pendingCountResponse struct {
	Count int `json:"count"`
}

func (c *Client) PendingOrdersCount(ctx context.Context) (int, error) {
	var out pendingCountResponse
	if err := c.do(ctx, http.MethodGet, "/pending-orders-count/", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) Invoices(ctx context.Context) ([]entity.Invoice, error) {
	var out []entity.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UserDeliveries(ctx context.Context) ([]entity.Delivery, error) {
	var out []entity.Delivery
	if err := c.do(ctx, http.MethodGet, "/user-deliveries/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type statusPatchRequest struct {
	Status entity.DeliveryStatus `json:"status"`
}

// Deliveries is the shopkeeper-only listing of every order line.
func (c *Client) Deliveries(ctx context.Context) ([]entity.ShopOrder, error) {
	var out []entity.ShopOrder
	if err := c.do(ctx, http.MethodGet, "/deliveries/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateDeliveryStatus(ctx context.Context, id int64, status entity.DeliveryStatus) error {
	endpoint := fmt.Sprintf("/deliveries/%d/", id)
	return c.do(ctx, http.MethodPatch, endpoint, statusPatchRequest{Status: status}, nil)
}

func (c *Client) Users(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
