package backend

import (
	"context"
	"net/http"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
)

type toggleWishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

func (c *Client) Wishlist(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, http.MethodGet, "/wishlist/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleWishlist flips membership server-side. The response body is not
// consumed: callers only care whether the call went through.
func (c *Client) ToggleWishlist(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodPost, "/wishlist/toggle/", toggleWishlistRequest{ProductID: productID}, nil)
}
