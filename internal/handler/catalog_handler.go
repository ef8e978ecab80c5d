package handler

import (
	"net/http"

	"marketplace/internal/model"
	"marketplace/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles catalog HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Create handles POST /api/seller/create-catalog.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request, principal model.Principal) {
	var req model.CatalogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	catalog, err := h.service.CreateCatalog(r.Context(), principal, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, catalog)
}

// Update handles PUT /api/seller/catalog.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request, principal model.Principal) {
	var req model.CatalogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	catalog, err := h.service.UpdateCatalog(r.Context(), principal, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, catalog)
}

// GetBySeller handles GET /api/buyer/seller-catalog/{seller_id}.
func (h *CatalogHandler) GetBySeller(w http.ResponseWriter, r *http.Request, principal model.Principal) {
	products, err := h.service.GetCatalog(r.Context(), principal, r.PathValue("seller_id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
