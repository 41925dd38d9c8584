package inventory_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery/mock"
	"github.com/Ratio1/grocery_manager_go/pkg/inventory"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type call struct {
	Op string
	ID grocery.ID
}

// recordingStore forwards to a mock and records every write.
type recordingStore struct {
	*mock.Mock
	mu    sync.Mutex
	calls []call
}

func newRecordingStore(items ...grocery.Item) *recordingStore {
	return &recordingStore{Mock: mock.New(mock.WithItems(items...))}
}

func (s *recordingStore) record(op string, id grocery.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{op, id})
}

func (s *recordingStore) Calls() []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]call(nil), s.calls...)
}

func (s *recordingStore) List(ctx context.Context) ([]grocery.Item, error) {
	s.record("list", "")
	return s.Mock.List(ctx)
}

func (s *recordingStore) Create(ctx context.Context, item grocery.Item) error {
	s.record("create", item.ID)
	return s.Mock.Create(ctx, item)
}

func (s *recordingStore) Update(ctx context.Context, item grocery.Item) error {
	s.record("update", item.ID)
	return s.Mock.Update(ctx, item)
}

func (s *recordingStore) Delete(ctx context.Context, id grocery.ID) error {
	s.record("delete", id)
	return s.Mock.Delete(ctx, id)
}

func rice() grocery.Item {
	return grocery.Item{ID: "1", Name: "Rice", Price: decimal.NewFromInt(40), Quantity: decimal.NewFromInt(5)}
}

func fillDraft(t *testing.T, vm *inventory.ViewModel, values map[inventory.Field]string) {
	t.Helper()
	for f, v := range values {
		require.NoError(t, vm.UpdateDraft(f, v))
	}
}

func TestLoadAllReplacesItems(t *testing.T) {
	store := newRecordingStore(rice())
	vm := inventory.New(store, inventory.WithLogger(quiet))

	assert.Empty(t, vm.Items())
	require.NoError(t, vm.LoadAll(context.Background()))
	first := vm.Items()
	require.Len(t, first, 1)

	require.NoError(t, vm.LoadAll(context.Background()))
	assert.Equal(t, first, vm.Items())
}

func TestLoadAllFailureKeepsStaleItems(t *testing.T) {
	failing := false
	backendErr := errors.New("connection refused")
	store := mock.New(
		mock.WithItems(rice()),
		mock.WithFailure(func(op string, _ grocery.ID) error {
			if failing && op == "list" {
				return backendErr
			}
			return nil
		}),
	)
	vm := inventory.New(store, inventory.WithLogger(quiet))
	require.NoError(t, vm.LoadAll(context.Background()))

	failing = true
	err := vm.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)

	var opErr *inventory.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, inventory.OpLoad, opErr.Op)
	assert.Len(t, vm.Items(), 1)
	assert.Equal(t, err, vm.Err())

	failing = false
	require.NoError(t, vm.LoadAll(context.Background()))
	assert.NoError(t, vm.Err())
}

func TestSubmitDraftCreates(t *testing.T) {
	store := newRecordingStore()
	vm := inventory.New(store,
		inventory.WithLogger(quiet),
		inventory.WithIDGenerator(func() grocery.ID { return "new-id" }),
	)

	fillDraft(t, vm, map[inventory.Field]string{
		inventory.FieldName:        "Milk",
		inventory.FieldPrice:       "50",
		inventory.FieldDescription: "1L",
		inventory.FieldQuantity:    "2",
	})
	require.NoError(t, vm.SubmitDraft(context.Background()))

	assert.Equal(t, []call{{"create", "new-id"}, {"list", ""}}, store.Calls())
	items := vm.Items()
	require.Len(t, items, 1)
	assert.Equal(t, grocery.ID("new-id"), items[0].ID)
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, "1L", items[0].Description)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(50)))
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, vm.Draft().IsZero())
	assert.False(t, vm.Editing())
}

func TestSubmitDraftGeneratesFreshIDs(t *testing.T) {
	store := newRecordingStore()
	vm := inventory.New(store, inventory.WithLogger(quiet))

	for i := 0; i < 3; i++ {
		fillDraft(t, vm, map[inventory.Field]string{
			inventory.FieldName: "Eggs", inventory.FieldPrice: "6", inventory.FieldQuantity: "12",
		})
		require.NoError(t, vm.SubmitDraft(context.Background()))
	}
	seen := map[grocery.ID]bool{}
	for _, it := range vm.Items() {
		assert.False(t, it.ID.IsZero())
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestSubmitDraftInvalidSendsNothing(t *testing.T) {
	store := newRecordingStore()
	vm := inventory.New(store, inventory.WithLogger(quiet))
	require.NoError(t, vm.UpdateDraft(inventory.FieldName, "Milk"))

	err := vm.SubmitDraft(context.Background())
	require.ErrorIs(t, err, inventory.ErrInvalidDraft)
	assert.Empty(t, store.Calls())
	assert.Equal(t, "Milk", vm.Draft().Name)
}

func TestBeginEditThenSubmitUpdates(t *testing.T) {
	item := rice()
	store := newRecordingStore(item)
	vm := inventory.New(store, inventory.WithLogger(quiet))
	require.NoError(t, vm.LoadAll(context.Background()))

	vm.BeginEdit(item)
	assert.True(t, vm.Editing())
	assert.Equal(t, inventory.DraftFromItem(item), vm.Draft())

	require.NoError(t, vm.UpdateDraft(inventory.FieldQuantity, "7"))
	require.NoError(t, vm.SubmitDraft(context.Background()))

	calls := store.Calls()
	assert.Equal(t, []call{{"list", ""}, {"update", "1"}, {"list", ""}}, calls)
	assert.False(t, vm.Editing())
	assert.True(t, vm.Draft().IsZero())

	items := vm.Items()
	require.Len(t, items, 1)
	assert.Equal(t, grocery.ID("1"), items[0].ID)
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(7)))
}

func TestCancelEdit(t *testing.T) {
	vm := inventory.New(newRecordingStore(), inventory.WithLogger(quiet))
	vm.BeginEdit(rice())
	vm.CancelEdit()
	assert.False(t, vm.Editing())
	assert.True(t, vm.Draft().IsZero())
}

func TestSubmitDraftFailureKeepsDraft(t *testing.T) {
	item := rice()
	store := newRecordingStore(item)
	vm := inventory.New(store, inventory.WithLogger(quiet))

	vm.BeginEdit(grocery.Item{ID: "gone", Name: "Ghost", Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)})
	err := vm.SubmitDraft(context.Background())
	require.ErrorIs(t, err, grocery.ErrNotFound)

	var opErr *inventory.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, inventory.OpUpdate, opErr.Op)
	assert.Equal(t, grocery.ID("gone"), opErr.ID)
	assert.True(t, vm.Editing())
	assert.Equal(t, "Ghost", vm.Draft().Name)
}

func TestSubmitDraftKeepsDraftEditedInFlight(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	store := mock.New(mock.WithFailure(func(op string, _ grocery.ID) error {
		if op == "create" {
			close(started)
			<-gate
		}
		return nil
	}))
	vm := inventory.New(store, inventory.WithLogger(quiet))
	fillDraft(t, vm, map[inventory.Field]string{
		inventory.FieldName: "Milk", inventory.FieldPrice: "50", inventory.FieldQuantity: "2",
	})

	done := make(chan error, 1)
	go func() { done <- vm.SubmitDraft(context.Background()) }()
	<-started
	require.NoError(t, vm.UpdateDraft(inventory.FieldName, "Bread"))
	close(gate)
	require.NoError(t, <-done)

	assert.Equal(t, "Bread", vm.Draft().Name)
	assert.Len(t, vm.Items(), 1)
}

func TestDeleteItem(t *testing.T) {
	store := newRecordingStore(rice(), grocery.Item{ID: "2", Name: "Milk"})
	vm := inventory.New(store, inventory.WithLogger(quiet))
	require.NoError(t, vm.LoadAll(context.Background()))

	require.NoError(t, vm.DeleteItem(context.Background(), "1"))
	for _, it := range vm.Items() {
		assert.NotEqual(t, grocery.ID("1"), it.ID)
	}
	assert.Len(t, vm.Items(), 1)

	err := vm.DeleteItem(context.Background(), "1")
	require.ErrorIs(t, err, grocery.ErrNotFound)
	var opErr *inventory.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, inventory.OpDelete, opErr.Op)
	assert.Contains(t, err.Error(), "inventory: delete 1:")
}

func TestSearchFilter(t *testing.T) {
	vm := inventory.New(newRecordingStore(rice()), inventory.WithLogger(quiet))
	require.NoError(t, vm.LoadAll(context.Background()))

	vm.SetSearchFilter("ri")
	assert.Equal(t, []grocery.Item{rice()}, vm.VisibleItems())
	assert.Equal(t, "ri", vm.SearchFilter())

	vm.SetSearchFilter("xyz")
	assert.Empty(t, vm.VisibleItems())

	vm.SetSearchFilter("")
	assert.Equal(t, vm.Items(), vm.VisibleItems())

	snap := vm.Snapshot()
	assert.Equal(t, snap.Items, snap.Visible)
	assert.False(t, snap.Editing)
	assert.NoError(t, snap.Err)
}

func TestUpdateDraftUnknownField(t *testing.T) {
	vm := inventory.New(newRecordingStore(), inventory.WithLogger(quiet))
	assert.ErrorIs(t, vm.UpdateDraft(inventory.Field("id"), "x"), inventory.ErrUnknownField)
}

// gatedStore holds every List call until released, so tests control the
// order in which overlapping reloads complete.
type gatedStore struct {
	*mock.Mock
	lists chan chan struct{}
}

func (s *gatedStore) List(ctx context.Context) ([]grocery.Item, error) {
	release := make(chan struct{})
	s.lists <- release
	<-release
	return s.Mock.List(ctx)
}

func TestConcurrentCreatesLastReloadWins(t *testing.T) {
	store := &gatedStore{Mock: mock.New(), lists: make(chan chan struct{})}
	vm := inventory.New(store, inventory.WithLogger(quiet))

	submit := func(name string) <-chan error {
		fillDraft(t, vm, map[inventory.Field]string{
			inventory.FieldName: name, inventory.FieldPrice: "1", inventory.FieldQuantity: "1",
		})
		done := make(chan error, 1)
		go func() { done <- vm.SubmitDraft(context.Background()) }()
		return done
	}

	first := submit("Milk")
	firstList := <-store.lists
	second := submit("Bread")
	secondList := <-store.lists

	// Both creates are stored; release the later reload first.
	close(secondList)
	require.NoError(t, <-second)
	close(firstList)
	require.NoError(t, <-first)

	want, err := store.Mock.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, vm.Items())
	assert.Len(t, vm.Items(), 2)
}

func TestConcurrentAccess(t *testing.T) {
	vm := inventory.New(newRecordingStore(rice()), inventory.WithLogger(quiet))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = vm.LoadAll(ctx)
			vm.SetSearchFilter("r")
			_ = vm.UpdateDraft(inventory.FieldName, "Item")
			_ = vm.UpdateDraft(inventory.FieldPrice, "1")
			_ = vm.UpdateDraft(inventory.FieldQuantity, "1")
			_ = vm.SubmitDraft(ctx)
			_ = vm.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.NoError(t, vm.LoadAll(ctx))
}
