// Package session holds the process-wide current-user state, derived
// from the persisted token. It is injected explicitly (built in main,
// torn down by Logout) rather than hidden behind a package singleton.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/meherstore/storefront/internal/storefront/core/domain/entity"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

// Status is the auth lifecycle state.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
)

var (
	// ErrPasswordMismatch is a client-side validation failure: the two
	// password fields differ. No network call is made.
	ErrPasswordMismatch = errors.New("session: passwords do not match")
	// ErrMissingFields is a client-side validation failure: a required
	// registration field is empty. No network call is made.
	ErrMissingFields = errors.New("session: required fields missing")
	// ErrNotAuthenticated is returned by operations that need a user.
	ErrNotAuthenticated = errors.New("session: not authenticated")
)

// Service is the auth state holder.
type Service struct {
	store ports.Store
	api   ports.AuthAPI

	mu     sync.RWMutex
	status Status
	user   *entity.User
}

func New(store ports.Store, api ports.AuthAPI) *Service {
	return &Service{
		store:  store,
		api:    api,
		status: StatusUnauthenticated,
	}
}

// Init validates a persisted token on startup. A token whose profile
// fetch fails is assumed invalid or expired: it is cleared and the
// service falls back to unauthenticated. This is the only self-healing
// transition; every other failure is surfaced to the caller.
func (s *Service) Init(ctx context.Context) error {
	s.setState(StatusLoading, nil)

	token, err := s.store.Get(ctx, ports.KeyAuthToken)
	if errors.Is(err, ports.ErrNotFound) || (err == nil && token == "") {
		s.setState(StatusUnauthenticated, nil)
		return nil
	}
	if err != nil {
		s.setState(StatusUnauthenticated, nil)
		return fmt.Errorf("read persisted token: %w", err)
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		slog.WarnContext(ctx, "persisted token rejected, clearing it", "error", err)
		if delErr := s.store.Delete(ctx, ports.KeyAuthToken); delErr != nil {
			slog.ErrorContext(ctx, "failed to clear rejected token", "error", delErr)
		}
		s.setState(StatusUnauthenticated, nil)
		return nil
	}

	s.setState(StatusAuthenticated, user)
	return nil
}

// Login performs the network call first, then persists the token and
// sets the user in one step. A failure anywhere leaves both untouched:
// there is never a "token but no user" state.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, error) {
	result, err := s.api.Login(ctx, ports.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, result)
}

// Register validates locally before touching the network.
func (s *Service) Register(ctx context.Context, req ports.RegisterRequest) (*entity.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Password2 == "" {
		return nil, ErrMissingFields
	}
	if req.Password != req.Password2 {
		return nil, ErrPasswordMismatch
	}

	result, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, result)
}

// adopt atomically stores the token and the user it belongs to.
func (s *Service) adopt(ctx context.Context, result *ports.AuthResult) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, ports.KeyAuthToken, result.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	user := result.User
	s.user = &user
	s.status = StatusAuthenticated
	return &user, nil
}

// Logout is local-only: it clears the persisted token and state without
// a server-side invalidation call.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, ports.KeyAuthToken); err != nil {
		slog.ErrorContext(ctx, "failed to clear token on logout", "error", err)
	}
	if err := s.store.Delete(ctx, ports.KeyDashboardUser); err != nil {
		slog.ErrorContext(ctx, "failed to clear dashboard user on logout", "error", err)
	}
	s.user = nil
	s.status = StatusUnauthenticated
}

// UpdateProfile PATCHes the profile and replaces the cached user with
// the server's version.
func (s *Service) UpdateProfile(ctx context.Context, patch ports.ProfilePatch) (*entity.User, error) {
	if _, status := s.Current(); status != StatusAuthenticated {
		return nil, ErrNotAuthenticated
	}

	user, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Current returns the cached user (nil unless authenticated) and the
// lifecycle status.
func (s *Service) Current() (*entity.User, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.status
}

func (s *Service) setState(status Status, user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.user = user
}
