package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dolcemiga/dolceweb/internal/auth"
	"github.com/dolcemiga/dolceweb/internal/inventory/products"
	"github.com/dolcemiga/dolceweb/internal/reports"
	"github.com/dolcemiga/dolceweb/internal/sales/orders"
	"github.com/dolcemiga/dolceweb/internal/shared"
	"github.com/dolcemiga/dolceweb/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	SessionManager  *shared.SessionManager
	AuthHandler     *auth.Handler
	UsersHandler    *users.Handler
	ProductsHandler *products.Handler
	OrdersHandler   *orders.Handler
	ReportsHandler  *reports.Handler
}

// NewRouter assembles the full route tree.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         p.Logger,
		Config:         p.Config,
		SessionManager: p.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		p.AuthHandler.MountRoutes(api)

		api.Group(func(private chi.Router) {
			private.Use(shared.RequireAuthenticated)
			p.UsersHandler.MountNavigation(private)
			p.ProductsHandler.MountRoutes(private)
			p.OrdersHandler.MountRoutes(private)
			p.ReportsHandler.MountRoutes(private)
		})

		api.Group(func(admin chi.Router) {
			admin.Use(shared.RequireRole(shared.RoleAdmin))
			p.UsersHandler.MountRoutes(admin)
		})
	})

	return r
}
