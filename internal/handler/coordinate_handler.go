package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"marketplace/internal/model"
	"marketplace/internal/service"

	"github.com/rs/zerolog"
)

// CoordinateHandler handles coordinate batch inserts and the global mean.
type CoordinateHandler struct {
	service service.CoordinateService
	logger  zerolog.Logger
}

// NewCoordinateHandler creates a new coordinate handler.
func NewCoordinateHandler(service service.CoordinateService, logger zerolog.Logger) *CoordinateHandler {
	return &CoordinateHandler{
		service: service,
		logger:  logger.With().Str("handler", "coordinate").Logger(),
	}
}

// AddBatch handles POST /api/array.
func (h *CoordinateHandler) AddBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	raw := bytes.TrimSpace(body.Coordinates)
	if len(raw) == 0 || raw[0] != '[' {
		writeDomainError(w, model.ErrInvalidCoordinates, h.logger)
		return
	}

	var inputs []model.CoordinateInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		writeDomainError(w, model.NewInvalidCoordinatesError("coordinates must contain numeric lat and lon values"), h.logger)
		return
	}

	resp, err := h.service.AddCoordinates(r.Context(), inputs)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Mean handles GET /api/mean-coordinates.
func (h *CoordinateHandler) Mean(w http.ResponseWriter, r *http.Request) {
	mean, err := h.service.GetMeanCoordinates(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, mean)
}
