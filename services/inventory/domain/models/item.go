package models

import "github.com/shopspring/decimal"

// Item is a persisted inventory row. ID is store-assigned on insert.
//
// Invariant: a persisted Item always has Quantity > 0. A sale that would
// drain the stock deletes the row instead of writing quantity zero.
type Item struct {
	ID       int64
	Name     ItemName
	Quantity int
	Price    decimal.Decimal
}
