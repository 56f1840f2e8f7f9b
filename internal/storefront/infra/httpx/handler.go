package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/meherstore/storefront/internal/storefront/app/account"
	"github.com/meherstore/storefront/internal/storefront/app/cart"
	"github.com/meherstore/storefront/internal/storefront/app/catalog"
	"github.com/meherstore/storefront/internal/storefront/app/dashboard"
	"github.com/meherstore/storefront/internal/storefront/app/session"
	"github.com/meherstore/storefront/internal/storefront/app/wishlist"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

const shopkeeperLoginPath = "/shopkeeper/login"

// Handler exposes the view services as JSON endpoints.
type Handler struct {
	session   *session.Service
	cart      *cart.Service
	catalog   *catalog.Service
	wishlist  *wishlist.Service
	account   *account.Service
	dashboard *dashboard.Service
}

func NewHandler(
	sess *session.Service,
	cartSvc *cart.Service,
	catalogSvc *catalog.Service,
	wishlistSvc *wishlist.Service,
	accountSvc *account.Service,
	dashboardSvc *dashboard.Service,
) *Handler {
	return &Handler{
		session:   sess,
		cart:      cartSvc,
		catalog:   catalogSvc,
		wishlist:  wishlistSvc,
		account:   accountSvc,
		dashboard: dashboardSvc,
	}
}

// ── Auth ────────────────────────────────────────────────────────────────

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	user, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Status: session.StatusAuthenticated, User: user})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	user, err := h.session.Register(r.Context(), ports.RegisterRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{Status: session.StatusAuthenticated, User: user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, status := h.session.Current()
	writeJSON(w, http.StatusOK, SessionResponse{Status: status, User: user})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfilePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	user, err := h.session.UpdateProfile(r.Context(), ports.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ── Catalog ─────────────────────────────────────────────────────────────

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.catalog.Home(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := ports.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	minPrice, err := priceParam(r, "min_price")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_min_price", err.Error())
		return
	}
	filter.MinPrice = minPrice

	maxPrice, err := priceParam(r, "max_price")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_max_price", err.Error())
		return
	}
	filter.MaxPrice = maxPrice

	listing, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "slug_required", "")
		return
	}

	detail, err := h.catalog.Get(r.Context(), slug)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) SendContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	err := h.catalog.SendContact(r.Context(), ports.ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "message sent"})
}

// ── Cart ────────────────────────────────────────────────────────────────

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	fresh, err := h.cart.Refresh(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fresh)
}

// AddToCart is the fire-and-forget path used by product cards; it does
// not return the cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := h.catalog.AddToCart(r.Context(), req.ProductID, req.Quantity); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "added to cart"})
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_item_id", err.Error())
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	fresh, err := h.cart.SetQuantity(r.Context(), itemID, req.Quantity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fresh)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_item_id", err.Error())
		return
	}

	fresh, err := h.cart.RemoveItem(r.Context(), itemID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fresh)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	fresh, err := h.cart.Clear(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fresh)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	result, err := h.cart.Checkout(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CheckoutResponse{InvoiceNumber: result.InvoiceNumber})
}

// ── Wishlist ────────────────────────────────────────────────────────────

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlist.Refresh(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// ToggleWishlist answers with the list as displayed after the toggle,
// which was filtered locally rather than refetched.
func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req ToggleWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := h.wishlist.Toggle(r.Context(), req.ProductID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.wishlist.Products())
}

// ── Account ─────────────────────────────────────────────────────────────

func (h *Handler) AccountOverview(w http.ResponseWriter, r *http.Request) {
	if _, status := h.session.Current(); status != session.StatusAuthenticated {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "")
		return
	}
	writeJSON(w, http.StatusOK, h.account.Overview(r.Context()))
}

func (h *Handler) AccountSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.account.Summary(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) AccountInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.account.Invoices(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// ── Shopkeeper dashboard ────────────────────────────────────────────────

func (h *Handler) ShopkeeperLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	user, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if err := h.dashboard.StoreUser(r.Context(), user); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Status: session.StatusAuthenticated, User: user})
}

func (h *Handler) DashboardData(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.Authorize(r.Context()); err != nil {
		h.writeDashboardError(w, r, err)
		return
	}

	data, err := h.dashboard.Refresh(r.Context())
	if err != nil {
		h.writeDashboardError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_delivery_id", err.Error())
		return
	}

	var req StatusPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := h.dashboard.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.writeDashboardError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "status updated"})
}

func (h *Handler) ShopkeeperLogout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	http.Redirect(w, r, shopkeeperLoginPath, http.StatusSeeOther)
}

// ── Error mapping ───────────────────────────────────────────────────────

// writeServiceError converts service errors to responses. Everything is
// a user-visible notification; nothing is retried here.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, session.ErrMissingFields),
		errors.Is(err, catalog.ErrContactIncomplete),
		errors.Is(err, dashboard.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, session.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "not_authenticated", "")
	case errors.Is(err, cart.ErrItemBusy), errors.Is(err, dashboard.ErrRowBusy):
		writeError(w, http.StatusConflict, "update_in_flight", err.Error())
	default:
		var apiErr *ports.APIError
		if errors.As(err, &apiErr) {
			// The backend already chose a status; pass it through.
			writeError(w, apiErr.Status, "backend_error", apiErr.Body)
			return
		}
		slog.ErrorContext(r.Context(), "backend call failed", "error", err)
		writeError(w, http.StatusBadGateway, "backend_unreachable", err.Error())
	}
}

// writeDashboardError is writeServiceError plus the 403 special case: a
// rejected dashboard session redirects to the shopkeeper login screen.
func (h *Handler) writeDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dashboard.ErrNotAuthorized) {
		http.Redirect(w, r, shopkeeperLoginPath, http.StatusSeeOther)
		return
	}
	h.writeServiceError(w, r, err)
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func priceParam(r *http.Request, name string) (*decimal.Decimal, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
