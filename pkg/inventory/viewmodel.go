package inventory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

// Store is the backend the view-model synchronises with. *grocery.Client and
// *mock.Mock both satisfy it.
type Store interface {
	List(ctx context.Context) ([]grocery.Item, error)
	Create(ctx context.Context, item grocery.Item) error
	Update(ctx context.Context, item grocery.Item) error
	Delete(ctx context.Context, id grocery.ID) error
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithIDGenerator sets the generator used for new items. The default is
// grocery.NewUUID.
func WithIDGenerator(gen grocery.IDGenerator) Option {
	return func(vm *ViewModel) {
		if gen != nil {
			vm.newID = gen
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(vm *ViewModel) {
		if logger != nil {
			vm.logger = logger
		}
	}
}

// State is a point-in-time copy of the view-model.
type State struct {
	Items   []grocery.Item
	Visible []grocery.Item
	Draft   Draft
	Editing bool
	Filter  string
	Err     error
}

// ViewModel owns the inventory screen state.
type ViewModel struct {
	store  Store
	newID  grocery.IDGenerator
	logger *slog.Logger

	mu      sync.Mutex
	items   []grocery.Item
	draft   Draft
	editing bool
	filter  string
	err     error
}

// New returns an empty view-model bound to store. Call LoadAll to fetch the
// initial list.
func New(store Store, opts ...Option) *ViewModel {
	vm := &ViewModel{
		store:  store,
		newID:  grocery.NewUUID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// LoadAll fetches the full list and replaces the local items. On failure the
// previous items are kept.
func (vm *ViewModel) LoadAll(ctx context.Context) error {
	items, err := vm.store.List(ctx)
	if err != nil {
		return vm.fail(OpLoad, "", err)
	}
	if items == nil {
		items = []grocery.Item{}
	}

	vm.mu.Lock()
	vm.items = items
	vm.err = nil
	vm.mu.Unlock()

	vm.logger.Debug("inventory refreshed", "count", len(items))
	return nil
}

// UpdateDraft sets one draft field. Values are not validated until submit.
func (vm *ViewModel) UpdateDraft(field Field, value string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.draft.Set(field, value)
}

// SubmitDraft validates the draft and sends it as an update in edit mode or
// as a create with a freshly generated id otherwise, then reloads the list.
// An invalid draft is reported as ErrInvalidDraft without any network call.
// After a successful write the form returns to create mode with an empty
// draft, unless the draft was changed while the write was in flight.
func (vm *ViewModel) SubmitDraft(ctx context.Context) error {
	vm.mu.Lock()
	draft, editing := vm.draft, vm.editing
	vm.mu.Unlock()

	op := OpCreate
	if editing {
		op = OpUpdate
	}
	item, err := draft.Item()
	if err != nil {
		return vm.fail(op, draft.ID, err)
	}

	if editing {
		err = vm.store.Update(ctx, item)
	} else {
		item.ID = vm.newID()
		err = vm.store.Create(ctx, item)
	}
	if err != nil {
		return vm.fail(op, item.ID, err)
	}
	vm.logger.Info("inventory item saved", "op", op, "id", item.ID)

	vm.mu.Lock()
	if vm.draft == draft && vm.editing == editing {
		vm.draft = Draft{}
		vm.editing = false
	}
	vm.mu.Unlock()

	return vm.LoadAll(ctx)
}

// BeginEdit copies item into the draft and switches to edit mode.
func (vm *ViewModel) BeginEdit(item grocery.Item) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.draft = DraftFromItem(item)
	vm.editing = true
}

// CancelEdit clears the draft and returns to create mode.
func (vm *ViewModel) CancelEdit() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.draft = Draft{}
	vm.editing = false
}

// DeleteItem deletes id on the backend and reloads the list.
func (vm *ViewModel) DeleteItem(ctx context.Context, id grocery.ID) error {
	if err := vm.store.Delete(ctx, id); err != nil {
		return vm.fail(OpDelete, id, err)
	}
	vm.logger.Info("inventory item deleted", "id", id)
	return vm.LoadAll(ctx)
}

// SetSearchFilter sets the name filter applied by VisibleItems.
func (vm *ViewModel) SetSearchFilter(text string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filter = text
}

// VisibleItems returns the items matching the search filter.
func (vm *ViewModel) VisibleItems() []grocery.Item {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return FilterByName(vm.items, vm.filter)
}

// Items returns a copy of the last fetched list.
func (vm *ViewModel) Items() []grocery.Item {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]grocery.Item(nil), vm.items...)
}

func (vm *ViewModel) Draft() Draft {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.draft
}

func (vm *ViewModel) Editing() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.editing
}

func (vm *ViewModel) SearchFilter() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.filter
}

// Err returns the error of the last failed operation, or nil once a later
// reload succeeds.
func (vm *ViewModel) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// Snapshot returns a consistent copy of the whole state.
func (vm *ViewModel) Snapshot() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return State{
		Items:   append([]grocery.Item(nil), vm.items...),
		Visible: FilterByName(vm.items, vm.filter),
		Draft:   vm.draft,
		Editing: vm.editing,
		Filter:  vm.filter,
		Err:     vm.err,
	}
}

func (vm *ViewModel) fail(op Op, id grocery.ID, err error) error {
	opErr := &OpError{Op: op, ID: id, Err: err}
	vm.mu.Lock()
	vm.err = opErr
	vm.mu.Unlock()
	vm.logger.Warn("inventory operation failed", "op", op, "id", id, "error", err)
	return opErr
}
