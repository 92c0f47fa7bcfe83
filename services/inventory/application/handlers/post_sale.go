package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/application/state"
)

// SellResponse is returned on a completed sale: the new sales-log entry plus
// the freshly reloaded inventory.
type SellResponse struct {
	Sale  SaleResponse   `json:"sale"`
	Items []ItemResponse `json:"items"`
} // @name SellResponse

// PostSaleHandler handles POST /inventory/{id}/sell requests.
type PostSaleHandler struct {
	svc    *appsvcs.Services
	states *state.Registry
}

// NewPostSaleHandler returns a PostSaleHandler backed by the given services.
func NewPostSaleHandler(svc *appsvcs.Services, states *state.Registry) *PostSaleHandler {
	return &PostSaleHandler{svc: svc, states: states}
}

// Execute sells units of an item using the client's stored quantity input.
//
//	@Summary		Sell item
//	@Description	Settles a sale against the client's snapshot; a sale of an unknown or out-of-stock item does nothing (204)
//	@Tags			inventory
//	@Produce		json
//	@Param			id	path		int	true	"Item id"
//	@Success		200	{object}	SellResponse
//	@Success		204	"nothing to sell"
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/inventory/{id}/sell [post]
func (h *PostSaleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	st, ok := clientState(w, r, h.states)
	if !ok {
		return
	}
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	record, err := h.svc.Inventory.Sell(r.Context(), st, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if record == nil {
		httpx.NoContent(w)
		return
	}

	httpx.JSON(w, http.StatusOK, SellResponse{
		Sale:  saleResponse(*record),
		Items: itemsResponse(st.Items()),
	})
}
