package handlers

import (
	"errors"
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/application/state"
	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
)

// CreateItemRequest is the request body for POST /inventory.
// Quantity and price arrive as raw form text; parsing and the positive-value
// rules live in the domain intake validation, not here. The tags only cap
// sizes at the protocol edge.
type CreateItemRequest struct {
	Name     string `json:"name"     validate:"max=255" example:"Widget"`
	Quantity string `json:"quantity" validate:"max=20"  example:"3"`
	Price    string `json:"price"    validate:"max=64"  example:"5.00"`
} // @name CreateItemRequest

// PostItemHandler handles POST /inventory requests.
type PostItemHandler struct {
	svc    *appsvcs.Services
	states *state.Registry
	log    logger.Logger
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, states *state.Registry, log logger.Logger) *PostItemHandler {
	return &PostItemHandler{svc: svc, states: states, log: log}
}

// Execute adds a new inventory item.
//
//	@Summary		Add item
//	@Description	Adds a new item; invalid input is silently dropped (204)
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Add-item form input"
//	@Success		200		{array}		ItemResponse
//	@Success		204		"input rejected, nothing changed"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/inventory [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	st, ok := clientState(w, r, h.states)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Inventory.AddItem(r.Context(), st, req.Name, req.Quantity, req.Price); err != nil {
		// Rejected input is dropped without user feedback; the reason still
		// lands in the debug log.
		if errors.Is(err, invdomain.ErrItemRejected) {
			h.log.DebugContext(r.Context(), "add item rejected", "reason", err.Error())
			httpx.NoContent(w)
			return
		}
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, itemsResponse(st.Items()))
}
