package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ItemRepository is the persistence port for the inventory table.
// The domain layer owns this interface; infrastructure implements it.
//
// Each method is a single independent unit of work against the store: no
// method participates in a transaction shared with a caller's subsequent
// read. Implementations wrap connectivity failures in
// domain.ErrStoreUnavailable and report missing rows as domain.ErrItemNotFound.
type ItemRepository interface {
	// List returns all current items in insertion (id) order.
	List(ctx context.Context) ([]*models.Item, error)

	// Insert persists a new row and returns the store-assigned id.
	// Input is assumed validated; the store applies no constraints of its own.
	Insert(ctx context.Context, name models.ItemName, quantity int, price decimal.Decimal) (int64, error)

	// SetQuantity overwrites the quantity of the row matching id.
	SetQuantity(ctx context.Context, id int64, quantity int) error

	// Delete removes the row matching id.
	Delete(ctx context.Context, id int64) error
}
