package repo

import (
	"context"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// ItemRepository is the document collection holding the inventory.
type ItemRepository interface {
	Insert(ctx context.Context, item models.Item) (models.Item, error)
	GetByID(ctx context.Context, id string) (models.Item, error)
	List(ctx context.Context) (models.Snapshot, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}
