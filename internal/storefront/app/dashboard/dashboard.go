// Package dashboard is the shopkeeper order-management view. The gate
// in front of it (token present plus a stored user matching the
// configured shopkeeper username) is a UI convenience only; the real
// authorization lives in the backend, which answers 403 when it
// disagrees.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

var (
	// ErrNotAuthorized means the caller must be sent back to the
	// shopkeeper login screen. Raised by the local gate and by a 403
	// from the deliveries endpoint (which also force-logs-out).
	ErrNotAuthorized = errors.New("dashboard: not authorized")
	// ErrInvalidStatus rejects a transition to an unknown status before
	// any network call.
	ErrInvalidStatus = errors.New("dashboard: invalid delivery status")
	// ErrRowBusy rejects a second status update for a row whose
	// previous update is still in flight.
	ErrRowBusy = errors.New("dashboard: row update already in flight")
)

// Data is everything the dashboard shows, fetched in one fan-out.
type Data struct {
	Orders   []entity.ShopOrder `json:"orders"`
	Invoices []entity.Invoice   `json:"invoices"`
	Users    []entity.User      `json:"users"`
}

type Service struct {
	shop       ports.ShopAPI
	orders     ports.OrdersAPI
	store      ports.Store
	shopkeeper string

	mu       sync.Mutex
	data     Data
	updating map[int64]bool
}

// New builds the dashboard service. shopkeeper is the single privileged
// username the local gate accepts.
func New(shop ports.ShopAPI, orders ports.OrdersAPI, store ports.Store, shopkeeper string) *Service {
	return &Service{
		shop:       shop,
		orders:     orders,
		store:      store,
		shopkeeper: shopkeeper,
		updating:   make(map[int64]bool),
	}
}

// Authorize runs the client-side gate: a token and a stored dashboard
// user whose username matches. A stored user with the wrong username is
// wiped so the stale blob cannot keep re-triggering the gate.
func (s *Service) Authorize(ctx context.Context) error {
	if _, err := s.store.Get(ctx, ports.KeyAuthToken); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrNotAuthorized
		}
		return fmt.Errorf("read token: %w", err)
	}

	raw, err := s.store.Get(ctx, ports.KeyDashboardUser)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrNotAuthorized
		}
		return fmt.Errorf("read dashboard user: %w", err)
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.Username != s.shopkeeper {
		s.clearCredentials(ctx)
		return ErrNotAuthorized
	}
	return nil
}

// StoreUser persists the serialized user after a shopkeeper login so
// Authorize can gate subsequent visits without a network call.
func (s *Service) StoreUser(ctx context.Context, user *entity.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize dashboard user: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeyDashboardUser, string(raw)); err != nil {
		return fmt.Errorf("persist dashboard user: %w", err)
	}
	return nil
}

// Refresh fans out the three dashboard fetches. Deliveries are the
// load-bearing slice: a 403 there force-logs-out and surfaces
// ErrNotAuthorized, any other failure fails the refresh. Invoice and
// user fetch failures only log and leave their slice empty.
func (s *Service) Refresh(ctx context.Context) (*Data, error) {
	var fresh Data
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.shop.Deliveries(gctx)
		if err != nil {
			var apiErr *ports.APIError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
				s.clearCredentials(gctx)
				return ErrNotAuthorized
			}
			return fmt.Errorf("fetch deliveries: %w", err)
		}
		fresh.Orders = orders
		return nil
	})
	g.Go(func() error {
		invoices, err := s.orders.Invoices(gctx)
		if err != nil {
			slog.WarnContext(gctx, "failed to fetch invoices", "error", err)
			return nil
		}
		fresh.Invoices = invoices
		return nil
	})
	g.Go(func() error {
		users, err := s.shop.Users(gctx)
		if err != nil {
			slog.WarnContext(gctx, "failed to fetch users", "error", err)
			return nil
		}
		fresh.Users = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.data = fresh
	s.mu.Unlock()
	return &fresh, nil
}

// Data returns the last refreshed dashboard state.
func (s *Service) Data() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// UpdateStatus PATCHes a single row. There is no batch update and no
// optimistic UI: the local row changes only after the server accepted
// the transition, and only that row changes; the rest of the table is
// not refetched.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status entity.DeliveryStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.begin(id); err != nil {
		return err
	}
	defer s.end(id)

	if err := s.shop.UpdateDeliveryStatus(ctx, id, status); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Orders {
		if s.data.Orders[i].ID == id {
			s.data.Orders[i].Status = status
			break
		}
	}
	return nil
}

// InFlight reports whether a row currently has an update running.
func (s *Service) InFlight(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating[id]
}

func (s *Service) clearCredentials(ctx context.Context) {
	if err := s.store.Delete(ctx, ports.KeyAuthToken); err != nil {
		slog.ErrorContext(ctx, "failed to clear token", "error", err)
	}
	if err := s.store.Delete(ctx, ports.KeyDashboardUser); err != nil {
		slog.ErrorContext(ctx, "failed to clear dashboard user", "error", err)
	}
}

func (s *Service) begin(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updating[id] {
		return ErrRowBusy
	}
	s.updating[id] = true
	return nil
}

func (s *Service) end(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.updating, id)
}
