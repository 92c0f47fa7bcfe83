package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Watermill topics published by the inventory context.
const (
	// TopicItemCreated is published when a new item row is inserted.
	TopicItemCreated = "inventory.item.created"
	// TopicItemSold is published after a sale mutation has been applied.
	TopicItemSold = "inventory.item.sold"
)

// ItemCreatedEvent is published within the insert transaction (outbox).
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated).
type ItemCreatedEvent struct {
	EventID    uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int             `json:"version"`  // Schema version; increment on breaking changes
	ItemID     int64           `json:"item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ItemSoldEvent is published after a settled sale was written to the store.
// Remaining is zero when the sale drained the stock and the row was deleted.
type ItemSoldEvent struct {
	EventID      uuid.UUID       `json:"event_id"`
	Version      int             `json:"version"`
	ItemID       int64           `json:"item_id"`
	ItemName     string          `json:"item_name"`
	QuantitySold int             `json:"quantity_sold"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Remaining    int             `json:"remaining"`
	OccurredAt   time.Time       `json:"occurred_at"`
}
