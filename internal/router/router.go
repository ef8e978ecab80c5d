package router

import (
	"net/http"

	"marketplace/internal/handler"
	"marketplace/internal/middleware"
	"marketplace/internal/model"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	User       *handler.UserHandler
	Catalog    *handler.CatalogHandler
	Order      *handler.OrderHandler
	Coordinate *handler.CoordinateHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, gate *middleware.Gate, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public auth routes
	mux.HandleFunc("POST /api/auth/register", h.User.Register)
	mux.HandleFunc("POST /api/auth/login", h.User.Login)
	mux.Handle("POST /api/auth/logout", gate.Authenticated(h.User.Logout))

	// Buyer routes
	mux.Handle("GET /api/buyer/list-of-sellers", gate.RequireRole(model.RoleBuyer, h.User.ListSellers))
	mux.Handle("GET /api/buyer/seller-catalog/{seller_id}", gate.RequireRole(model.RoleBuyer, h.Catalog.GetBySeller))
	mux.Handle("POST /api/buyer/create-order/{seller_id}", gate.RequireRole(model.RoleBuyer, h.Order.Create))

	// Seller routes
	mux.Handle("POST /api/seller/create-catalog", gate.RequireRole(model.RoleSeller, h.Catalog.Create))
	mux.Handle("PUT /api/seller/catalog", gate.RequireRole(model.RoleSeller, h.Catalog.Update))
	mux.Handle("GET /api/seller/orders", gate.RequireRole(model.RoleSeller, h.Order.ListForSeller))

	// Coordinate routes are public
	mux.HandleFunc("POST /api/array", h.Coordinate.AddBatch)
	mux.HandleFunc("GET /api/mean-coordinates", h.Coordinate.Mean)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
