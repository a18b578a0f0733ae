package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/privacydash/privacydash/internal/handler"
)

// Handlers collects the wired handler groups the router mounts.
type Handlers struct {
	Requests *handler.RequestHandler
	Pay      *handler.PayHandler
	Vault    *handler.VaultHandler
	Profile  *handler.ProfileHandler
}

// SetupRouter sets up the router with all handlers.
func SetupRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Swagger UI
	r.Mount("/swagger", httpSwagger.WrapHandler)

	// Merchant-side API
	r.Route("/api", func(r chi.Router) {
		r.Post("/requests", h.Requests.Create)
		r.Get("/requests", h.Requests.List)
		r.Get("/requests/{id}", h.Requests.Get)
		r.Post("/requests/{id}/cancel", h.Requests.Cancel)
		r.Get("/requests/{id}/invoice", h.Requests.Invoice)
		r.Get("/stats/{creator}", h.Requests.Stats)

		r.Get("/profile/{pubkey}", h.Profile.GetOrCreate)

		r.Get("/vault/key", h.Vault.Export)
		r.Post("/vault/key", h.Vault.Import)
		r.Delete("/vault/key", h.Vault.Reset)
	})

	// Public payer surface, no authentication
	r.Get("/pay/{id}", h.Pay.View)
	r.Post("/pay/{id}", h.Pay.Pay)
	r.Post("/pay/{id}/reconcile", h.Pay.Reconcile)

	return r
}
