package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
	domainevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/inventory/domain/services"
	"github.com/ghuser/stockroom/services/inventory/application/state"
)

// InventoryService orchestrates the inventory intents: list, add, sell.
//
// The store is the sole source of truth. Every mutating intent ends with a
// full reload of the item list into the client's state; snapshots are never
// patched incrementally. Sales are serialized per item id so two clients
// cannot settle against the same stale snapshot and oversell.
type InventoryService struct {
	repo  repositories.ItemRepository
	cache *pkgcache.InventoryCache
	bus   *events.EventBus
	log   logger.Logger

	itemLocks sync.Map // item id → *sync.Mutex
}

// NewInventoryService wires the service. cache and bus may be nil (tests,
// degraded mode); the service then works directly against the repository.
func NewInventoryService(repo repositories.ItemRepository, invCache *pkgcache.InventoryCache, bus *events.EventBus, log logger.Logger) *InventoryService {
	return &InventoryService{repo: repo, cache: invCache, bus: bus, log: log}
}

// List serves the item list read-through:
//  1. Try the Redis list cache.
//  2. On miss (or cache error), load from the store and warm the cache.
//
// The client's snapshot is replaced either way, so a later sale settles
// against what this client last saw.
func (s *InventoryService) List(ctx context.Context, st *state.State) ([]*models.Item, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil {
			items := fromCached(cached)
			st.ReplaceItems(items)
			return items, nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "inventory cache read failed, falling back to store", "error", err)
		}
	}
	return s.Refresh(ctx, st)
}

// Refresh reloads the item list from the store, replaces the client's
// snapshot, and re-warms the cache. Always hits the store.
func (s *InventoryService) Refresh(ctx context.Context, st *state.State) ([]*models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	st.ReplaceItems(items)

	if s.cache != nil {
		if err := s.cache.Set(ctx, toCached(items)); err != nil {
			s.log.WarnContext(ctx, "inventory cache warm failed", "error", err)
		}
	}
	return items, nil
}

// AddItem validates raw form input and inserts a new row. A validation
// failure returns a RejectionError (matching domain.ErrItemRejected) and
// makes no store call at all; the caller decides whether to surface it.
// On success the client's snapshot is reloaded from the store.
func (s *InventoryService) AddItem(ctx context.Context, st *state.State, name, quantityText, priceText string) (int64, error) {
	input, err := domainsvcs.ValidateNewItem(name, quantityText, priceText)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Insert(ctx, input.Name, input.Quantity, input.Price)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	s.invalidate(ctx)
	if _, err := s.Refresh(ctx, st); err != nil {
		return id, err
	}
	return id, nil
}

// Sell settles a sale of the item against the client's current snapshot and
// applies the resulting mutation. The requested quantity comes from the
// client's sale-quantity input for that item; malformed input means one unit.
//
// Returns (nil, nil) when the sale settles to a no-op (unknown item or no
// stock): nothing is written and the sales log is untouched. Otherwise the
// snapshot is reloaded, the record is appended to the log, and the input is
// cleared.
func (s *InventoryService) Sell(ctx context.Context, st *state.State, itemID int64) (*models.SaleRecord, error) {
	unlock := s.lockItem(itemID)
	defer unlock()

	requested := domainsvcs.ParseSaleQuantity(st.SaleQuantityInput(itemID))
	settlement := domainsvcs.Settle(st.Items(), itemID, requested)

	switch settlement.Mutation.Kind {
	case domainsvcs.MutationNoOp:
		return nil, nil
	case domainsvcs.MutationSetQuantity:
		if err := s.repo.SetQuantity(ctx, itemID, settlement.Mutation.NewQuantity); err != nil {
			return nil, s.applyErr(ctx, st, itemID, err)
		}
	case domainsvcs.MutationDelete:
		if err := s.repo.Delete(ctx, itemID); err != nil {
			return nil, s.applyErr(ctx, st, itemID, err)
		}
	}

	s.invalidate(ctx)
	if _, err := s.Refresh(ctx, st); err != nil {
		return nil, err
	}

	st.AppendSale(*settlement.Record)
	st.ClearSaleQuantityInput(itemID)

	s.publishSold(ctx, settlement)
	return settlement.Record, nil
}

// applyErr handles a failed mutation. A row that vanished between snapshot
// and write (lost race with another client's drain) degrades to the same
// "nothing happens" outcome as a no-op settlement; everything else surfaces.
func (s *InventoryService) applyErr(ctx context.Context, st *state.State, itemID int64, err error) error {
	if errors.Is(err, invdomain.ErrItemNotFound) {
		s.log.DebugContext(ctx, "sale lost race with concurrent drain", "item_id", itemID)
		s.invalidate(ctx)
		_, refreshErr := s.Refresh(ctx, st)
		return refreshErr
	}
	return fmt.Errorf("apply sale mutation: %w", err)
}

func (s *InventoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "inventory cache invalidate failed", "error", err)
	}
}

// publishSold emits an ItemSoldEvent. The mutation is already committed, so
// a publish failure is logged rather than failing the sale.
func (s *InventoryService) publishSold(ctx context.Context, settlement domainsvcs.Settlement) {
	if s.bus == nil {
		return
	}

	rec := settlement.Record
	event := domainevents.ItemSoldEvent{
		EventID:      uuid.New(),
		Version:      1,
		ItemID:       settlement.Mutation.ItemID,
		ItemName:     rec.ItemName,
		QuantitySold: rec.QuantitySold,
		UnitPrice:    rec.UnitPrice,
		LineTotal:    rec.LineTotal,
		Remaining:    settlement.Mutation.NewQuantity,
		OccurredAt:   rec.SoldAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal item sold event", "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	if err := s.bus.Publish(ctx, domainevents.TopicItemSold, msg); err != nil {
		s.log.ErrorContext(ctx, "publish item sold event", "error", err)
	}
}

// lockItem serializes sales per item id (lost-update guard for concurrent
// clients). Locks are never removed; the map grows with the catalog, which
// stays small.
func (s *InventoryService) lockItem(id int64) func() {
	v, _ := s.itemLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func toCached(items []*models.Item) []pkgcache.CachedItem {
	out := make([]pkgcache.CachedItem, len(items))
	for i, it := range items {
		out[i] = pkgcache.CachedItem{
			ID:       it.ID,
			Name:     it.Name.String(),
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return out
}

func fromCached(cached []pkgcache.CachedItem) []*models.Item {
	out := make([]*models.Item, len(cached))
	for i, c := range cached {
		out[i] = &models.Item{
			ID:       c.ID,
			Name:     models.ItemName(c.Name),
			Quantity: c.Quantity,
			Price:    c.Price,
		}
	}
	return out
}
