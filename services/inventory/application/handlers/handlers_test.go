package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/session"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/application/state"
	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

const testStateID = "test-client"

// stubItemRepo is an in-memory ItemRepository for handler tests.
type stubItemRepo struct {
	items    []*models.Item
	nextID   int64
	failWith error
}

func (r *stubItemRepo) List(_ context.Context) ([]*models.Item, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]*models.Item, len(r.items))
	for i, it := range r.items {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

func (r *stubItemRepo) Insert(_ context.Context, name models.ItemName, quantity int, price decimal.Decimal) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	if r.nextID == 0 {
		r.nextID = int64(len(r.items)) + 1
	}
	id := r.nextID
	r.nextID++
	r.items = append(r.items, &models.Item{ID: id, Name: name, Quantity: quantity, Price: price})
	return id, nil
}

func (r *stubItemRepo) SetQuantity(_ context.Context, id int64, quantity int) error {
	if r.failWith != nil {
		return r.failWith
	}
	for _, it := range r.items {
		if it.ID == id {
			it.Quantity = quantity
			return nil
		}
	}
	return invdomain.ErrItemNotFound
}

func (r *stubItemRepo) Delete(_ context.Context, id int64) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return invdomain.ErrItemNotFound
}

// withStateID injects a fixed state ID, standing in for EnsureState.
func withStateID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(session.WithStateID(r.Context(), testStateID)))
	})
}

func testRouter(t *testing.T, repo *stubItemRepo) (*chi.Mux, *state.Registry) {
	t.Helper()
	log := logger.New(&config.Config{LogLevel: "error"})
	svcs := &appsvcs.Services{Inventory: appsvcs.NewInventoryService(repo, nil, nil, log)}
	states := state.NewRegistry()

	r := chi.NewRouter()
	r.Use(withStateID)
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", NewGetInventoryHandler(svcs, states).Execute)
		r.Post("/", NewPostItemHandler(svcs, states, log).Execute)
		r.Put("/{id}/sale-quantity", NewPutSaleQuantityHandler(states).Execute)
		r.Post("/{id}/sell", NewPostSaleHandler(svcs, states).Execute)
	})
	r.Get("/sales", NewGetSalesHandler(states).Execute)
	return r, states
}

func stubRepo(t *testing.T) *stubItemRepo {
	t.Helper()
	name, err := models.NewItemName("Widget")
	if err != nil {
		t.Fatalf("NewItemName: %v", err)
	}
	return &stubItemRepo{
		items:  []*models.Item{{ID: 1, Name: name, Quantity: 5, Price: decimal.RequireFromString("2.50")}},
		nextID: 2,
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetInventory(t *testing.T) {
	router, _ := testRouter(t, stubRepo(t))

	rec := doJSON(t, router, http.MethodGet, "/inventory", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var items []ItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Widget" || items[0].Quantity != 5 {
		t.Errorf("items = %+v", items)
	}
}

func TestGetInventoryStoreDown(t *testing.T) {
	repo := stubRepo(t)
	repo.failWith = invdomain.ErrStoreUnavailable
	router, _ := testRouter(t, repo)

	rec := doJSON(t, router, http.MethodGet, "/inventory", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestPostItem(t *testing.T) {
	t.Run("valid item returns refreshed list", func(t *testing.T) {
		router, _ := testRouter(t, stubRepo(t))

		rec := doJSON(t, router, http.MethodPost, "/inventory", CreateItemRequest{
			Name: "Gadget", Quantity: "3", Price: "9.99",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
		}

		var items []ItemResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(items) != 2 {
			t.Errorf("got %d items, want 2", len(items))
		}
	})

	invalid := []struct {
		name string
		req  CreateItemRequest
	}{
		{name: "empty name", req: CreateItemRequest{Name: "", Quantity: "1", Price: "1.00"}},
		{name: "zero quantity", req: CreateItemRequest{Name: "Gadget", Quantity: "0", Price: "1.00"}},
		{name: "non-numeric quantity", req: CreateItemRequest{Name: "Gadget", Quantity: "many", Price: "1.00"}},
		{name: "negative price", req: CreateItemRequest{Name: "Gadget", Quantity: "1", Price: "-2"}},
	}

	for _, tt := range invalid {
		t.Run(tt.name+" answers 204", func(t *testing.T) {
			repo := stubRepo(t)
			router, _ := testRouter(t, repo)

			rec := doJSON(t, router, http.MethodPost, "/inventory", tt.req)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("status = %d, want 204; body: %s", rec.Code, rec.Body.String())
			}
			if len(repo.items) != 1 {
				t.Errorf("store has %d items, want 1 (nothing added)", len(repo.items))
			}
		})
	}
}

func TestPutSaleQuantity(t *testing.T) {
	router, states := testRouter(t, stubRepo(t))

	rec := doJSON(t, router, http.MethodPut, "/inventory/1/sale-quantity", SetSaleQuantityRequest{Quantity: "3"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := states.Get(testStateID).SaleQuantityInput(1); got != "3" {
		t.Errorf("stored input = %q, want %q", got, "3")
	}

	rec = doJSON(t, router, http.MethodPut, "/inventory/abc/sale-quantity", SetSaleQuantityRequest{Quantity: "3"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status for bad id = %d, want 400", rec.Code)
	}
}

func TestPostSale(t *testing.T) {
	t.Run("sale returns record and refreshed list", func(t *testing.T) {
		router, states := testRouter(t, stubRepo(t))

		// Load the snapshot and set the quantity like the UI would.
		if rec := doJSON(t, router, http.MethodGet, "/inventory", nil); rec.Code != http.StatusOK {
			t.Fatalf("list status = %d", rec.Code)
		}
		if rec := doJSON(t, router, http.MethodPut, "/inventory/1/sale-quantity", SetSaleQuantityRequest{Quantity: "3"}); rec.Code != http.StatusNoContent {
			t.Fatalf("set quantity status = %d", rec.Code)
		}

		rec := doJSON(t, router, http.MethodPost, "/inventory/1/sell", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
		}

		var resp SellResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp.Sale.QuantitySold != 3 {
			t.Errorf("quantity sold = %d, want 3", resp.Sale.QuantitySold)
		}
		if !resp.Sale.LineTotal.Equal(decimal.RequireFromString("7.50")) {
			t.Errorf("line total = %s, want 7.50", resp.Sale.LineTotal)
		}
		if len(resp.Items) != 1 || resp.Items[0].Quantity != 2 {
			t.Errorf("refreshed items = %+v", resp.Items)
		}
		if sales := states.Get(testStateID).Sales(); len(sales) != 1 {
			t.Errorf("sales log has %d records, want 1", len(sales))
		}
	})

	t.Run("unknown item answers 204", func(t *testing.T) {
		router, states := testRouter(t, stubRepo(t))
		if rec := doJSON(t, router, http.MethodGet, "/inventory", nil); rec.Code != http.StatusOK {
			t.Fatalf("list status = %d", rec.Code)
		}

		rec := doJSON(t, router, http.MethodPost, "/inventory/42/sell", nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204; body: %s", rec.Code, rec.Body.String())
		}
		if sales := states.Get(testStateID).Sales(); len(sales) != 0 {
			t.Errorf("sales log has %d records, want 0", len(sales))
		}
	})

	t.Run("bad id answers 400", func(t *testing.T) {
		router, _ := testRouter(t, stubRepo(t))
		rec := doJSON(t, router, http.MethodPost, "/inventory/abc/sell", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestGetSales(t *testing.T) {
	router, _ := testRouter(t, stubRepo(t))

	rec := doJSON(t, router, http.MethodGet, "/sales", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var sales []SaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sales); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(sales) != 0 {
		t.Errorf("fresh client has %d sales, want 0", len(sales))
	}

	// Drain the only item and check the log reflects it.
	if rec := doJSON(t, router, http.MethodGet, "/inventory", nil); rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPut, "/inventory/1/sale-quantity", SetSaleQuantityRequest{Quantity: "5"}); rec.Code != http.StatusNoContent {
		t.Fatalf("set quantity status = %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/inventory/1/sell", nil); rec.Code != http.StatusOK {
		t.Fatalf("sell status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/sales", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sales); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(sales) != 1 || sales[0].QuantitySold != 5 {
		t.Errorf("sales = %+v", sales)
	}
}

func TestMissingStateID(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error"})
	svcs := &appsvcs.Services{Inventory: appsvcs.NewInventoryService(stubRepo(t), nil, nil, log)}
	states := state.NewRegistry()

	// No state middleware mounted: handlers must refuse, not panic.
	r := chi.NewRouter()
	r.Get("/inventory", NewGetInventoryHandler(svcs, states).Execute)

	rec := doJSON(t, r, http.MethodGet, "/inventory", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
