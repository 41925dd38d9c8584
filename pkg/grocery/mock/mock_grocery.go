// Package mock provides an in-memory grocery.Backend for tests, offline runs
// and the sandbox server.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

// Mock keeps items in insertion order. Updates replace the full record in
// place; deletes close the gap.
type Mock struct {
	mu    sync.RWMutex
	order []grocery.ID
	items map[grocery.ID]grocery.Item
	fail  FailureFunc
}

// FailureFunc decides whether an operation should fail. op is one of "list",
// "create", "update" or "delete".
type FailureFunc func(op string, id grocery.ID) error

// Option configures the mock instance.
type Option func(*Mock)

// WithItems pre-populates the store. Items with duplicate or empty ids are skipped.
func WithItems(items ...grocery.Item) Option {
	return func(m *Mock) {
		for _, it := range items {
			_ = m.insert(it)
		}
	}
}

// WithFailure installs a hook consulted before every operation.
func WithFailure(fn FailureFunc) Option {
	return func(m *Mock) {
		m.fail = fn
	}
}

// New creates a mock store.
func New(opts ...Option) *Mock {
	m := &Mock{items: make(map[grocery.ID]grocery.Item)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Seed inserts items, rejecting empty or duplicate ids.
func (m *Mock) Seed(items []grocery.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, it := range items {
		if err := m.insert(it); err != nil {
			return fmt.Errorf("mock grocery: seed: %w", err)
		}
	}
	return nil
}

// Len returns the number of stored items.
func (m *Mock) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// List returns a copy of every item in insertion order.
func (m *Mock) List(ctx context.Context) ([]grocery.Item, error) {
	if err := m.check(ctx, "list", ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]grocery.Item, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

// Create stores a new item.
func (m *Mock) Create(ctx context.Context, item grocery.Item) error {
	if err := m.check(ctx, "create", item.ID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(item)
}

// Update replaces an existing item.
func (m *Mock) Update(ctx context.Context, item grocery.Item) error {
	if err := m.check(ctx, "update", item.ID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[item.ID]; !ok {
		return fmt.Errorf("%w: %s", grocery.ErrNotFound, item.ID)
	}
	m.items[item.ID] = item
	return nil
}

// Delete removes an item.
func (m *Mock) Delete(ctx context.Context, id grocery.ID) error {
	if err := m.check(ctx, "delete", id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%w: %s", grocery.ErrNotFound, id)
	}
	delete(m.items, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Mock) check(ctx context.Context, op string, id grocery.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if op != "list" && id.IsZero() {
		return grocery.ErrMissingID
	}
	if m.fail != nil {
		return m.fail(op, id)
	}
	return nil
}

// insert expects m.mu to be held (or the mock to be under construction).
func (m *Mock) insert(item grocery.Item) error {
	if item.ID.IsZero() {
		return grocery.ErrMissingID
	}
	if _, exists := m.items[item.ID]; exists {
		return fmt.Errorf("%w: %s", grocery.ErrConflict, item.ID)
	}
	m.items[item.ID] = item
	m.order = append(m.order, item.ID)
	return nil
}

var _ grocery.Backend = (*Mock)(nil)
