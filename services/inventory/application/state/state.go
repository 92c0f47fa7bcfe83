// Package state holds the in-memory application state mirrored from the
// inventory store: the item snapshot, the append-only sales log, and the
// transient sale-quantity form inputs.
//
// The snapshot is a read-only cache of the store. It is replaced wholesale
// after every mutation and never patched in place; the sales log and inputs
// exist only here and are never persisted.
package state

import (
	"sync"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// State is one client's view of the application.
// All methods are safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	items     []*models.Item
	sales     []models.SaleRecord
	qtyInputs map[int64]string
}

// New returns an empty State.
func New() *State {
	return &State{qtyInputs: make(map[int64]string)}
}

// Items returns the current snapshot. The returned slice is a copy; the
// pointed-to items must be treated as read-only.
func (s *State) Items() []*models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// ReplaceItems swaps in a fresh snapshot loaded from the store.
func (s *State) ReplaceItems(items []*models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

// Sales returns a copy of the sales log, oldest first.
func (s *State) Sales() []models.SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SaleRecord, len(s.sales))
	copy(out, s.sales)
	return out
}

// AppendSale adds a record to the sales log. Records are never removed.
func (s *State) AppendSale(rec models.SaleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, rec)
}

// SetSaleQuantityInput stores the raw quantity text typed next to an item.
func (s *State) SetSaleQuantityInput(itemID int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qtyInputs[itemID] = text
}

// SaleQuantityInput returns the raw quantity text for an item ("" if unset).
func (s *State) SaleQuantityInput(itemID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.qtyInputs[itemID]
}

// ClearSaleQuantityInput resets the input after a completed sale.
func (s *State) ClearSaleQuantityInput(itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.qtyInputs, itemID)
}
