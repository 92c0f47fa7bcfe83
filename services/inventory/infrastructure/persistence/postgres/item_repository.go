package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
	domainevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Driver-level failures surface as domain.ErrStoreUnavailable instead of
// crashing the caller; missing rows surface as domain.ErrItemNotFound.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. The bus is used to publish an ItemCreatedEvent inside
// the insert transaction; pass nil to disable publishing (tests).
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// List returns all current items ordered by id.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, name, quantity, price FROM inventory ORDER BY id`)
	if err != nil {
		return nil, storeErr("list items", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.Item
	for rows.Next() {
		var (
			item  models.Item
			name  string
			price decimal.Decimal
		)
		if err := rows.Scan(&item.ID, &name, &item.Quantity, &price); err != nil {
			return nil, storeErr("scan item", err)
		}
		item.Name = models.ItemName(name)
		item.Price = price
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate items", err)
	}
	return items, nil
}

// Insert persists a new row and returns the store-assigned id. An
// ItemCreatedEvent is published within the same transaction (outbox).
func (r *ItemRepository) Insert(ctx context.Context, name models.ItemName, quantity int, price decimal.Decimal) (int64, error) {
	var id int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO inventory (name, quantity, price) VALUES ($1, $2, $3) RETURNING id`,
			name.String(), quantity, price,
		).Scan(&id); err != nil {
			return storeErr("insert item", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, id, name, quantity, price); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SetQuantity overwrites the quantity of the row matching id.
// Returns ErrItemNotFound when the row no longer exists.
func (r *ItemRepository) SetQuantity(ctx context.Context, id int64, quantity int) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE inventory SET quantity = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return storeErr("update quantity", err)
	}
	return oneRow(res, id)
}

// Delete removes the row matching id.
// Returns ErrItemNotFound when the row no longer exists.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete item", err)
	}
	return oneRow(res, id)
}

func (r *ItemRepository) publishCreated(tx *sql.Tx, id int64, name models.ItemName, quantity int, price decimal.Decimal) error {
	event := domainevents.ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     id,
		Name:       name.String(),
		Quantity:   quantity,
		Price:      price,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicItemCreated, msg)
}

// oneRow converts a zero-rows-affected write into ErrItemNotFound.
func oneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("item %d: %w", id, invdomain.ErrItemNotFound)
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, invdomain.ErrStoreUnavailable, err)
}
