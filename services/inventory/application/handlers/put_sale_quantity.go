package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	"github.com/ghuser/stockroom/services/inventory/application/state"
)

// SetSaleQuantityRequest carries the raw text typed into an item's sale
// quantity box. It is stored as-is; interpretation happens at sale time.
type SetSaleQuantityRequest struct {
	Quantity string `json:"quantity" validate:"max=20" example:"3"`
} // @name SetSaleQuantityRequest

// PutSaleQuantityHandler handles PUT /inventory/{id}/sale-quantity requests.
type PutSaleQuantityHandler struct {
	states *state.Registry
}

// NewPutSaleQuantityHandler returns a PutSaleQuantityHandler.
func NewPutSaleQuantityHandler(states *state.Registry) *PutSaleQuantityHandler {
	return &PutSaleQuantityHandler{states: states}
}

// Execute records the client's sale-quantity input for an item.
//
//	@Summary		Set sale quantity input
//	@Description	Stores the quantity text for a later sale of this item
//	@Tags			inventory
//	@Accept			json
//	@Param			id		path	int						true	"Item id"
//	@Param			request	body	SetSaleQuantityRequest	true	"Quantity text"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Router			/inventory/{id}/sale-quantity [put]
func (h *PutSaleQuantityHandler) Execute(w http.ResponseWriter, r *http.Request) {
	st, ok := clientState(w, r, h.states)
	if !ok {
		return
	}
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[SetSaleQuantityRequest](w, r)
	if !ok {
		return
	}

	st.SetSaleQuantityInput(id, req.Quantity)
	httpx.NoContent(w)
}
