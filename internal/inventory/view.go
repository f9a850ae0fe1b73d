package inventory

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// ViewModel is what a rendering layer binds to: the visible item list plus
// the inventory actions. It owns exactly one subscription for its lifetime.
type ViewModel struct {
	store    *Store
	sub      *Subscription
	onChange func([]models.Item)

	// emitMu is held from recompute until onChange returns, so emissions
	// reach onChange in the order their lists were computed.
	emitMu sync.Mutex

	mu       sync.RWMutex
	loaded   bool
	snapshot models.Snapshot
	filter   Filter
	visible  []models.Item
}

type ViewOption func(*ViewModel)

// WithFilter sets the filter in place before the first snapshot arrives.
func WithFilter(f Filter) ViewOption {
	return func(vm *ViewModel) { vm.filter = f }
}

// NewViewModel subscribes to store. onChange, when non-nil, receives the
// recomputed visible list after every snapshot, and after every filter change
// once a first snapshot arrived. It may be called from the subscription
// goroutine and from the caller of the setters, never concurrently, and must
// not call back into the setters.
func NewViewModel(store *Store, onChange func([]models.Item), opts ...ViewOption) (*ViewModel, error) {
	vm := &ViewModel{
		store:    store,
		onChange: onChange,
		visible:  []models.Item{},
	}
	for _, opt := range opts {
		opt(vm)
	}
	sub, err := store.Subscribe(vm.apply)
	if err != nil {
		return nil, err
	}
	vm.sub = sub
	return vm, nil
}

func (vm *ViewModel) apply(snap models.Snapshot) {
	vm.emitMu.Lock()
	defer vm.emitMu.Unlock()

	vm.mu.Lock()
	vm.loaded = true
	vm.snapshot = snap
	items := vm.recompute()
	vm.mu.Unlock()
	vm.emit(items)
}

// recompute must be called with mu held. It returns the list to emit, or
// nil before the first snapshot.
func (vm *ViewModel) recompute() []models.Item {
	vm.visible = vm.filter.Apply(vm.snapshot)
	if !vm.loaded {
		return nil
	}
	return models.Snapshot(vm.visible).Clone()
}

func (vm *ViewModel) emit(items []models.Item) {
	if items != nil && vm.onChange != nil {
		vm.onChange(items)
	}
}

// Items returns the current visible list.
func (vm *ViewModel) Items() []models.Item {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return models.Snapshot(vm.visible).Clone()
}

func (vm *ViewModel) SetSearchQuery(query string) {
	vm.emitMu.Lock()
	defer vm.emitMu.Unlock()

	vm.mu.Lock()
	vm.filter.Query = query
	items := vm.recompute()
	vm.mu.Unlock()
	vm.emit(items)
}

// SetQuantityBounds limits the list to quantities within [min, max]; nil
// leaves that side open.
func (vm *ViewModel) SetQuantityBounds(min, max *int) {
	vm.emitMu.Lock()
	defer vm.emitMu.Unlock()

	vm.mu.Lock()
	vm.filter.MinQty = min
	vm.filter.MaxQty = max
	items := vm.recompute()
	vm.mu.Unlock()
	vm.emit(items)
}

func (vm *ViewModel) AddItem(ctx context.Context, in NewItem) (string, error) {
	return vm.store.Add(ctx, in)
}

func (vm *ViewModel) RemoveItem(ctx context.Context, id string) error {
	return vm.store.Remove(ctx, id)
}

func (vm *ViewModel) IncrementQuantity(ctx context.Context, id string) error {
	return vm.store.Increment(ctx, id)
}

func (vm *ViewModel) DecrementQuantity(ctx context.Context, id string) error {
	return vm.store.Decrement(ctx, id)
}

// Close cancels the subscription. The last visible list stays readable.
func (vm *ViewModel) Close() {
	vm.sub.Cancel()
}
