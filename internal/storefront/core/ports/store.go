package ports

import (
	"context"
	"errors"
)

// Keys for the persisted client state. The original front-end kept these
// in browser local storage; the gateway keeps them in a Store.
const (
	// KeyAuthToken holds the single persisted token string.
	KeyAuthToken = "auth_token"
	// KeyDashboardUser holds a serialized user object used as a
	// redundant client-side gate for the shopkeeper dashboard.
	KeyDashboardUser = "dashboard_user"
)

// ErrNotFound is returned by Store.Get when the key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is a tiny persisted string KV, the localStorage of the gateway.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
