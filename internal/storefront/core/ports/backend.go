// Package ports declares the contracts between the view services and the
// outside world: the remote shop API on one side and the local persisted
// key/value store (the browser-localStorage analog) on the other.
package ports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
)

// APIError is returned for any non-2xx response from the backend. It is
// deliberately generic: status code plus raw body text, nothing parsed.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d - %s", e.Status, e.Body)
}

// DecodeError is returned when the backend answered 2xx but the payload
// did not match the expected schema. Malformed responses surface as this
// typed variant instead of silently producing zero values.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

type LoginRequest struct {
	Email    string
	Password string
}

// AuthResult is the login/register payload: a token and the user it
// belongs to, always delivered together.
type AuthResult struct {
	Token string
	User  entity.User
}

// ProfilePatch carries only the fields the caller wants to change; nil
// fields are omitted from the PATCH body.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}

type AuthAPI interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Profile(ctx context.Context) (*entity.User, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (*entity.User, error)
}

// ProductFilter is re-sent to the server in full on every change; there
// is no local filtering.
type ProductFilter struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// HomeData is the aggregation served by the backend root endpoint.
type HomeData struct {
	FeaturedProducts []entity.Product  `json:"featured_products"`
	Categories       []entity.Category `json:"categories"`
}

type CatalogAPI interface {
	Products(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	Product(ctx context.Context, slug string) (*entity.Product, error)
	RelatedProducts(ctx context.Context, slug string) ([]entity.Product, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	Home(ctx context.Context) (*HomeData, error)
}

// CheckoutResult carries whatever the backend reported about the created
// order. InvoiceNumber may be empty if the response omitted it.
type CheckoutResult struct {
	InvoiceNumber string `json:"invoice_number"`
}

// CartAPI mutations all return the fresh server cart so callers can
// replace their snapshot instead of patching it locally.
type CartAPI interface {
	Cart(ctx context.Context) (*entity.Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int) (*entity.Cart, error)
	UpdateItem(ctx context.Context, itemID int64, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, itemID int64) (*entity.Cart, error)
	ClearCart(ctx context.Context) (*entity.Cart, error)
	Checkout(ctx context.Context) (*CheckoutResult, error)
}

type WishlistAPI interface {
	Wishlist(ctx context.Context) ([]entity.Product, error)
	ToggleWishlist(ctx context.Context, productID int64) error
}

// OrdersAPI covers the customer-side order endpoints.
type OrdersAPI interface {
	PendingOrdersCount(ctx context.Context) (int, error)
	Invoices(ctx context.Context) ([]entity.Invoice, error)
	UserDeliveries(ctx context.Context) ([]entity.Delivery, error)
}

// ShopAPI covers the shopkeeper-only endpoints. Authorization is the
// backend's job; the client gate in front of these is cosmetic.
type ShopAPI interface {
	Deliveries(ctx context.Context) ([]entity.ShopOrder, error)
	UpdateDeliveryStatus(ctx context.Context, id int64, status entity.DeliveryStatus) error
	Users(ctx context.Context) ([]entity.User, error)
}

type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type SupportAPI interface {
	SendContact(ctx context.Context, form ContactForm) error
}

// BackendAPI is the full remote surface, implemented by the HTTP adapter.
type BackendAPI interface {
	AuthAPI
	CatalogAPI
	CartAPI
	WishlistAPI
	OrdersAPI
	ShopAPI
	SupportAPI
}
