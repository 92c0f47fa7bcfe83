// Package services contains stateless domain services for the inventory
// bounded context. Domain services enforce business rules that operate purely
// on domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"strconv"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// MutationKind enumerates the store mutations a settlement can decide.
type MutationKind int

const (
	// MutationNoOp means nothing is written: the item is missing or out of stock.
	MutationNoOp MutationKind = iota
	// MutationSetQuantity overwrites the item's quantity with NewQuantity.
	MutationSetQuantity
	// MutationDelete removes the row. Produced when a sale drains the stock;
	// rows are never persisted at quantity zero.
	MutationDelete
)

// Mutation is the store write a settlement decided on. ItemID and NewQuantity
// are meaningful only for the kinds that use them.
type Mutation struct {
	Kind        MutationKind
	ItemID      int64
	NewQuantity int
}

// Settlement is the outcome of a sale request: the mutation the caller must
// apply to the store, and the record to append to the sales log. Record is
// nil exactly when Mutation.Kind is MutationNoOp.
//
// Settle never touches the store itself. The caller applies the mutation and
// then reloads the full item list; the store stays the sole source of truth.
type Settlement struct {
	Mutation Mutation
	Record   *models.SaleRecord
}

// ParseSaleQuantity interprets user-supplied sale quantity text.
// Anything that is not a positive integer is treated as a request for one
// unit rather than rejected; a sale button press always means "sell something".
func ParseSaleQuantity(text string) int {
	qty, err := strconv.Atoi(text)
	if err != nil || qty <= 0 {
		return 1
	}
	return qty
}

// Settle decides how a sale of requested units of itemID plays out against
// the given snapshot of items.
//
//   - Unknown id, or an item with no stock: NoOp, no record.
//   - Otherwise the sold quantity is clamped to the available stock
//     (over-requests are filled partially, not rejected).
//   - Remaining stock > 0: SetQuantity(remaining). Remaining == 0: Delete.
func Settle(items []*models.Item, itemID int64, requested int) Settlement {
	var item *models.Item
	for _, it := range items {
		if it.ID == itemID {
			item = it
			break
		}
	}
	if item == nil || item.Quantity <= 0 {
		return Settlement{Mutation: Mutation{Kind: MutationNoOp, ItemID: itemID}}
	}

	sold := min(requested, item.Quantity)
	remaining := item.Quantity - sold

	mutation := Mutation{Kind: MutationDelete, ItemID: itemID}
	if remaining > 0 {
		mutation = Mutation{Kind: MutationSetQuantity, ItemID: itemID, NewQuantity: remaining}
	}

	record := models.NewSaleRecord(item, sold)
	return Settlement{Mutation: mutation, Record: &record}
}
