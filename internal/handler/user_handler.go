package handler

import (
	"net/http"

	"marketplace/internal/middleware"
	"marketplace/internal/model"
	"marketplace/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles registration, login, logout and seller listing.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/auth/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.service.Register(r.Context(), &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /api/auth/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request, principal model.Principal) {
	if err := h.service.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.logger.Debug().Str("username", principal.Username).Msg("user logged out")
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Logged out successfully"})
}

// ListSellers handles GET /api/buyer/list-of-sellers.
func (h *UserHandler) ListSellers(w http.ResponseWriter, r *http.Request, principal model.Principal) {
	sellers, err := h.service.ListSellers(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sellers)
}
