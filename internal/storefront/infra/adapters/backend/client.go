// Package backend is the HTTP adapter for the remote shop API. It owns
// serialization, auth header attachment, and the error taxonomy; the
// view services above it only see ports interfaces and typed errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

// Ensure the client implements the full remote surface at compile time.
var _ ports.BackendAPI = (*Client)(nil)

// Client talks to the shop backend. It holds no auth state of its own:
// the token is read from the store on every request, so a rotation (new
// login) is picked up immediately by the next call.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   ports.Store
	tracer  trace.Tracer
}

type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func New(baseURL string, store ports.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		store:   store,
		tracer:  otel.Tracer("storefront/backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs a single JSON round trip. There are no retries: a failed
// call surfaces directly to the caller, which turns it into a
// notification. out may be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	return c.doWith(ctx, method, endpoint, body, out, nil)
}

func (c *Client) doWith(ctx context.Context, method, endpoint string, body, out any, header http.Header) error {
	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("backend %s %s", method, spanPath(endpoint)))
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// Token is checked per request, never cached across calls.
	token, err := c.store.Get(ctx, ports.KeyAuthToken)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("read auth token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		span.SetStatus(codes.Error, resp.Status)
		return &ports.APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return &ports.DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// spanPath strips the query string so filter values don't explode span
// cardinality.
func spanPath(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
