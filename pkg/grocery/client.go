package grocery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Ratio1/grocery_manager_go/internal/groceryapi"
	"github.com/Ratio1/grocery_manager_go/internal/httpx"
)

// Backend performs the four backend operations. The HTTP implementation talks
// to the REST service; mock.Mock keeps items in memory.
type Backend interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id ID) error
}

// Client provides access to the grocery backend.
type Client struct {
	backend Backend
}

// New constructs a Client bound to the provided base URL. Every request
// carries a JSON content type.
func New(baseURL string, opts ...httpx.Option) (*Client, error) {
	opts = append([]httpx.Option{
		httpx.WithHeaders(http.Header{
			"Content-Type": {"application/json"},
			"Accept":       {"application/json"},
		}),
	}, opts...)
	cl, err := httpx.NewClient(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(cl), nil
}

// NewWithHTTPClient wraps an existing httpx.Client.
func NewWithHTTPClient(httpClient *httpx.Client) *Client {
	return &Client{backend: &httpBackend{client: httpClient}}
}

// NewWithBackend allows callers to supply a custom backend (e.g., mocks).
func NewWithBackend(b Backend) *Client {
	return &Client{backend: b}
}

// List fetches every item in backend order.
func (c *Client) List(ctx context.Context) ([]Item, error) {
	if c == nil || c.backend == nil {
		return nil, fmt.Errorf("grocery: client is nil")
	}
	return c.backend.List(ctx)
}

// Create stores a new item. The caller supplies the id.
func (c *Client) Create(ctx context.Context, item Item) error {
	if item.ID.IsZero() {
		return ErrMissingID
	}
	if c == nil || c.backend == nil {
		return fmt.Errorf("grocery: client is nil")
	}
	return c.backend.Create(ctx, item)
}

// Update replaces the item stored under item.ID.
func (c *Client) Update(ctx context.Context, item Item) error {
	if item.ID.IsZero() {
		return ErrMissingID
	}
	if c == nil || c.backend == nil {
		return fmt.Errorf("grocery: client is nil")
	}
	return c.backend.Update(ctx, item)
}

// Delete removes the item with the given id.
func (c *Client) Delete(ctx context.Context, id ID) error {
	if id.IsZero() {
		return ErrMissingID
	}
	if c == nil || c.backend == nil {
		return fmt.Errorf("grocery: client is nil")
	}
	return c.backend.Delete(ctx, id)
}

type httpBackend struct {
	client *httpx.Client
}

func (b *httpBackend) List(ctx context.Context) ([]Item, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("grocery: http backend not configured")
	}
	resp, err := b.client.Do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   groceryapi.PathList,
	})
	if err != nil {
		return nil, classify(err)
	}
	data, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("grocery: read list response: %w", err)
	}
	items, err := groceryapi.DecodeList[Item](data)
	if err != nil {
		return nil, fmt.Errorf("grocery: decode list response: %w", err)
	}
	return items, nil
}

func (b *httpBackend) Create(ctx context.Context, item Item) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("grocery: http backend not configured")
	}
	req, err := httpx.NewJSONRequest(http.MethodPost, groceryapi.PathCreate, item)
	if err != nil {
		return err
	}
	// A replayed create could store the item twice.
	req.DisableRetry = true
	return b.send(ctx, req)
}

func (b *httpBackend) Update(ctx context.Context, item Item) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("grocery: http backend not configured")
	}
	req, err := httpx.NewJSONRequest(http.MethodPut, httpx.JoinSegments(groceryapi.PathUpdate, item.ID.String()), item)
	if err != nil {
		return err
	}
	return b.send(ctx, req)
}

func (b *httpBackend) Delete(ctx context.Context, id ID) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("grocery: http backend not configured")
	}
	return b.send(ctx, &httpx.Request{
		Method: http.MethodDelete,
		Path:   httpx.JoinSegments(groceryapi.PathDelete, id.String()),
	})
}

// send executes a write and discards the response body.
func (b *httpBackend) send(ctx context.Context, req *httpx.Request) error {
	resp, err := b.client.Do(ctx, req)
	if err != nil {
		return classify(err)
	}
	_, _ = httpx.ReadAllAndClose(resp.Body)
	return nil
}

// classify attaches the package sentinels to well-known status codes while
// keeping the *httpx.HTTPError reachable through errors.As.
func classify(err error) error {
	var httpErr *httpx.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	switch httpErr.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case http.StatusConflict:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
