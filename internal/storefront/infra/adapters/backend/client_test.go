package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meherstore/storefront/internal/storefront/core/ports"
	"github.com/meherstore/storefront/internal/storefront/infra/adapters/store"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Header http.Header
	Body   []byte
}

// newCapturingServer records every request and answers with a fixed
// status and body.
func newCapturingServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		captured = append(captured, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Header: r.Header.Clone(),
			Body:   raw,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &captured
}

func TestTokenIsReadPerRequest(t *testing.T) {
	server, captured := newCapturingServer(t, http.StatusOK, `[]`)
	kv := store.NewMemoryStore()
	client := New(server.URL, kv)
	ctx := context.Background()

	_, err := client.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, (*captured)[0].Auth, "no token persisted, no header expected")

	require.NoError(t, kv.Set(ctx, ports.KeyAuthToken, "first-token"))
	_, err = client.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Token first-token", (*captured)[1].Auth)

	// A rotated token must be picked up by the very next call.
	require.NoError(t, kv.Set(ctx, ports.KeyAuthToken, "second-token"))
	_, err = client.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Token second-token", (*captured)[2].Auth)
}

func TestNonSuccessStatusReturnsAPIError(t *testing.T) {
	server, _ := newCapturingServer(t, http.StatusNotFound, `detail not found`)
	client := New(server.URL, store.NewMemoryStore())

	_, err := client.Profile(context.Background())
	require.Error(t, err)

	var apiErr *ports.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "detail not found", apiErr.Body)
}

func TestMalformedPayloadReturnsDecodeError(t *testing.T) {
	server, _ := newCapturingServer(t, http.StatusOK, `<html>definitely not json</html>`)
	client := New(server.URL, store.NewMemoryStore())

	_, err := client.Profile(context.Background())
	require.Error(t, err)

	var decodeErr *ports.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "/auth/profile/", decodeErr.Endpoint)
}

func TestProductsEncodesFilterQuery(t *testing.T) {
	server, captured := newCapturingServer(t, http.StatusOK, `[]`)
	client := New(server.URL, store.NewMemoryStore())

	minPrice := decimal.RequireFromString("10.50")
	maxPrice := decimal.RequireFromString("9999")
	_, err := client.Products(context.Background(), ports.ProductFilter{
		Category: "electronics",
		Search:   "lamp",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, "/products/", req.Path)
	assert.Contains(t, req.Query, "category=electronics")
	assert.Contains(t, req.Query, "search=lamp")
	assert.Contains(t, req.Query, "min_price=10.5")
	assert.Contains(t, req.Query, "max_price=9999")
}

func TestProductsOmitsEmptyFilter(t *testing.T) {
	server, captured := newCapturingServer(t, http.StatusOK, `[]`)
	client := New(server.URL, store.NewMemoryStore())

	_, err := client.Products(context.Background(), ports.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, (*captured)[0].Query)
}

func TestUpdateItemWireFormat(t *testing.T) {
	cartBody := `{"id":1,"items":[{"id":5,"product":{"id":9,"name":"Lamp","slug":"lamp","price":"100.00"},"quantity":3,"subtotal":"300.00"}],"total":"300.00"}`
	server, captured := newCapturingServer(t, http.StatusOK, cartBody)
	client := New(server.URL, store.NewMemoryStore())

	fresh, err := client.UpdateItem(context.Background(), 5, 3)
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/cart/update_item/", req.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.EqualValues(t, 5, sent["item_id"])
	assert.EqualValues(t, 3, sent["quantity"])

	// Server-computed money fields survive the round trip untouched.
	require.Len(t, fresh.Items, 1)
	assert.True(t, decimal.RequireFromString("300.00").Equal(fresh.Items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("300.00").Equal(fresh.Total))
}

func TestRemoveItemUsesDeleteWithBody(t *testing.T) {
	server, captured := newCapturingServer(t, http.StatusOK, `{"id":1,"items":[],"total":"0"}`)
	client := New(server.URL, store.NewMemoryStore())

	_, err := client.RemoveItem(context.Background(), 5)
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/cart/remove_item/", req.Path)
	assert.JSONEq(t, `{"item_id":5}`, string(req.Body))
}

func TestCheckoutSendsIdempotencyKey(t *testing.T) {
	server, captured := newCapturingServer(t, http.StatusOK, `{"invoice_number":"INV-0042"}`)
	client := New(server.URL, store.NewMemoryStore())

	result, err := client.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV-0042", result.InvoiceNumber)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/cart/checkout/", req.Path)
	assert.NotEmpty(t, req.Header.Get("X-Idempotency-Key"))
}

func TestUpdateDeliveryStatusPath(t *testing.T) {
	server, captured := newCapturingServer(t, http.StatusOK, `{}`)
	client := New(server.URL, store.NewMemoryStore())

	err := client.UpdateDeliveryStatus(context.Background(), 17, "shipped")
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/deliveries/17/", req.Path)
	assert.JSONEq(t, `{"status":"shipped"}`, string(req.Body))
}
