package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// InventoryRoutes registers inventory endpoints on the provided chi router.
// Routes assume the session.EnsureState middleware already ran.
func InventoryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handlers.NewGetInventoryHandler(svcs, a.States).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs, a.States, a.Logger).Execute)
			r.Put("/{id}/sale-quantity", handlers.NewPutSaleQuantityHandler(a.States).Execute)
			r.Post("/{id}/sell", handlers.NewPostSaleHandler(svcs, a.States).Execute)
		})
		r.Get("/sales", handlers.NewGetSalesHandler(a.States).Execute)
	})
}
