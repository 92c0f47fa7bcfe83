package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/application/state"
)

// GetInventoryHandler handles GET /inventory requests.
type GetInventoryHandler struct {
	svc    *appsvcs.Services
	states *state.Registry
}

// NewGetInventoryHandler returns a GetInventoryHandler backed by the given services.
func NewGetInventoryHandler(svc *appsvcs.Services, states *state.Registry) *GetInventoryHandler {
	return &GetInventoryHandler{svc: svc, states: states}
}

// Execute lists the current inventory.
//
//	@Summary		List inventory
//	@Description	Returns all items in stock and refreshes the client's snapshot
//	@Tags			inventory
//	@Produce		json
//	@Success		200	{array}		ItemResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/inventory [get]
func (h *GetInventoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	st, ok := clientState(w, r, h.states)
	if !ok {
		return
	}

	items, err := h.svc.Inventory.List(r.Context(), st)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, itemsResponse(items))
}
