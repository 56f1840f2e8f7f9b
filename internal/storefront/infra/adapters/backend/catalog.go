package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

func (c *Client) Products(ctx context.Context, filter ports.ProductFilter) ([]entity.Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.MinPrice != nil {
		query.Set("min_price", filter.MinPrice.String())
	}
	if filter.MaxPrice != nil {
		query.Set("max_price", filter.MaxPrice.String())
	}

	endpoint := "/products/"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var out []entity.Product
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, slug string) (*entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(slug)+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RelatedProducts(ctx context.Context, slug string) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(slug)+"/related/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Categories(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Home hits the backend root aggregation endpoint (featured products).
func (c *Client) Home(ctx context.Context) (*ports.HomeData, error) {
	var out ports.HomeData
	if err := c.do(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (c *Client) SendContact(ctx context.Context, form ports.ContactForm) error {
	return c.do(ctx, http.MethodPost, "/contact/", contactRequest{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	}, nil)
}
