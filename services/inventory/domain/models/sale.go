package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord describes one completed sale. Records are append-only and live
// in the application state's sales log; they are never persisted or mutated.
type SaleRecord struct {
	ItemName     string
	UnitPrice    decimal.Decimal
	QuantitySold int
	LineTotal    decimal.Decimal
	SoldAt       time.Time
}

// NewSaleRecord builds a record for quantity units of item at its current
// price. LineTotal is price × quantity.
func NewSaleRecord(item *Item, quantity int) SaleRecord {
	return SaleRecord{
		ItemName:     item.Name.String(),
		UnitPrice:    item.Price,
		QuantitySold: quantity,
		LineTotal:    item.Price.Mul(decimal.NewFromInt(int64(quantity))),
		SoldAt:       time.Now().UTC(),
	}
}
