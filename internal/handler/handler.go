package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"marketplace/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// statusByCode maps domain error codes to HTTP statuses.
var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:         http.StatusBadRequest,
	model.ErrCodeValidationFailed:    http.StatusBadRequest,
	model.ErrCodeInvalidProduct:      http.StatusBadRequest,
	model.ErrCodeInvalidCoordinates:  http.StatusBadRequest,
	model.ErrCodeMissingToken:        http.StatusUnauthorized,
	model.ErrCodeInvalidToken:        http.StatusUnauthorized,
	model.ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	model.ErrCodeForbidden:           http.StatusForbidden,
	model.ErrCodeCatalogNotFound:     http.StatusNotFound,
	model.ErrCodeCoordinatesNotFound: http.StatusNotFound,
	model.ErrCodeUsernameTaken:       http.StatusConflict,
	model.ErrCodeEmailTaken:          http.StatusConflict,
	model.ErrCodeCatalogExists:       http.StatusConflict,
	model.ErrCodeInternalError:       http.StatusInternalServerError,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps err to its HTTP status. Anything that is not a
// DomainError is logged and reported as an opaque 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unhandled service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error", logger)
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return model.NewDomainError(model.ErrCodeInvalidJSON, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
		}
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}
