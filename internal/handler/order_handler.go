package handler

import (
	"net/http"

	"marketplace/internal/model"
	"marketplace/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/buyer/create-order/{seller_id}.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request, principal model.Principal) {
	var req model.OrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), principal, r.PathValue("seller_id"), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrderResponse{
		Message: "Order created successfully",
		Order:   order,
	})
}

// ListForSeller handles GET /api/seller/orders.
func (h *OrderHandler) ListForSeller(w http.ResponseWriter, r *http.Request, principal model.Principal) {
	orders, err := h.service.ListOrdersForSeller(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
