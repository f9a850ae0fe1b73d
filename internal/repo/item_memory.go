package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// InMemoryItemRepository is an in-memory implementation of ItemRepository.
type InMemoryItemRepository struct {
	mu    sync.RWMutex
	items []models.Item
}

// NewInMemoryItemRepository creates a new instance of InMemoryItemRepository.
func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items: []models.Item{},
	}
}

// Insert assigns an id and appends the item.
func (r *InMemoryItemRepository) Insert(_ context.Context, item models.Item) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items = append(r.items, item)
	return item, nil
}

// GetByID retrieves an item by its ID.
func (r *InMemoryItemRepository) GetByID(_ context.Context, id string) (models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

// List returns a copy of the whole collection in insertion order.
func (r *InMemoryItemRepository) List(_ context.Context) (models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return models.Snapshot(r.items).Clone(), nil
}

// UpdateQuantity overwrites the quantity of an existing item.
func (r *InMemoryItemRepository) UpdateQuantity(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items[i].Quantity = quantity
			r.items[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrItemNotFound
}

// Delete removes an item from the repository by its ID.
func (r *InMemoryItemRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryItemRepository) Clear() {
	r.mu.Lock()
	r.items = []models.Item{}
	r.mu.Unlock()
}
