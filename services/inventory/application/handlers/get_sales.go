package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/services/inventory/application/state"
)

// GetSalesHandler handles GET /sales requests.
type GetSalesHandler struct {
	states *state.Registry
}

// NewGetSalesHandler returns a GetSalesHandler.
func NewGetSalesHandler(states *state.Registry) *GetSalesHandler {
	return &GetSalesHandler{states: states}
}

// Execute returns the client's sales log, oldest first.
//
//	@Summary		Sales log
//	@Description	Returns this client's in-memory sales log
//	@Tags			sales
//	@Produce		json
//	@Success		200	{array}	SaleResponse
//	@Router			/sales [get]
func (h *GetSalesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	st, ok := clientState(w, r, h.states)
	if !ok {
		return
	}

	sales := st.Sales()
	out := make([]SaleResponse, len(sales))
	for i, rec := range sales {
		out[i] = saleResponse(rec)
	}
	httpx.JSON(w, http.StatusOK, out)
}
