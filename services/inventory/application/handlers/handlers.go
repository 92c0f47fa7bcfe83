// Package handlers contains the HTTP handlers for the inventory intents.
//
// Failure policy, inherited from the UI this service fronts: invalid input
// and sales that settle to nothing answer 204 No Content — the action was
// received but nothing happened, and no error is surfaced. Store outages are
// the exception and map to 503 via errhttp.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/session"
	"github.com/ghuser/stockroom/services/inventory/application/state"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ItemResponse is the wire form of one inventory row.
type ItemResponse struct {
	ID       int64           `json:"id"       example:"42"`
	Name     string          `json:"name"     example:"Widget"`
	Quantity int             `json:"quantity" example:"5"`
	Price    decimal.Decimal `json:"price"    example:"5.00"`
} // @name ItemResponse

// SaleResponse is the wire form of one sales-log entry.
type SaleResponse struct {
	Item         string          `json:"item"          example:"Widget"`
	UnitPrice    decimal.Decimal `json:"unit_price"    example:"5.00"`
	QuantitySold int             `json:"quantity_sold" example:"3"`
	LineTotal    decimal.Decimal `json:"line_total"    example:"15.00"`
	SoldAt       time.Time       `json:"sold_at"       example:"2024-01-15T10:30:00Z"`
} // @name SaleResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"inventory store unavailable"`
} // @name ErrorResponse

func itemsResponse(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = ItemResponse{
			ID:       it.ID,
			Name:     it.Name.String(),
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return out
}

func saleResponse(rec models.SaleRecord) SaleResponse {
	return SaleResponse{
		Item:         rec.ItemName,
		UnitPrice:    rec.UnitPrice,
		QuantitySold: rec.QuantitySold,
		LineTotal:    rec.LineTotal,
		SoldAt:       rec.SoldAt,
	}
}

// clientState resolves the per-client State for the request. A missing state
// ID means the EnsureState middleware is not mounted on this route; that is
// a wiring bug, answered with 500.
func clientState(w http.ResponseWriter, r *http.Request, states *state.Registry) (*state.State, bool) {
	id, err := session.StateIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "client state unavailable")
		return nil, false
	}
	return states.Get(id), true
}

// itemIDParam parses the {id} URL parameter.
func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}
