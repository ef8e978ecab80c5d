package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeBody marshals v, passing strings through verbatim so tests can send malformed JSON.
func encodeBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	if v == nil {
		return bytes.NewBuffer(nil)
	}
	if str, ok := v.(string); ok {
		return bytes.NewBufferString(str)
	}
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "Invalid JSON", err: model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body"), expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeInvalidJSON},
		{name: "Validation", err: model.NewValidationError("username is required"), expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeValidationFailed},
		{name: "Invalid product", err: model.NewInvalidProductError(0, "name is required"), expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeInvalidProduct},
		{name: "Invalid coordinates", err: model.ErrInvalidCoordinates, expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeInvalidCoordinates},
		{name: "Missing token", err: model.ErrAuthMissing, expectedStatus: http.StatusUnauthorized, expectedCode: model.ErrCodeMissingToken},
		{name: "Invalid token", err: model.ErrAuthInvalid, expectedStatus: http.StatusUnauthorized, expectedCode: model.ErrCodeInvalidToken},
		{name: "Invalid credentials", err: model.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized, expectedCode: model.ErrCodeInvalidCredentials},
		{name: "Forbidden", err: model.NewForbiddenError(model.RoleBuyer), expectedStatus: http.StatusForbidden, expectedCode: model.ErrCodeForbidden},
		{name: "Catalog not found", err: model.ErrCatalogNotFound, expectedStatus: http.StatusNotFound, expectedCode: model.ErrCodeCatalogNotFound},
		{name: "Coordinates not found", err: model.ErrCoordinatesNotFound, expectedStatus: http.StatusNotFound, expectedCode: model.ErrCodeCoordinatesNotFound},
		{name: "Username taken", err: model.ErrUsernameTaken, expectedStatus: http.StatusConflict, expectedCode: model.ErrCodeUsernameTaken},
		{name: "Email taken", err: model.ErrEmailTaken, expectedStatus: http.StatusConflict, expectedCode: model.ErrCodeEmailTaken},
		{name: "Catalog exists", err: model.ErrCatalogExists, expectedStatus: http.StatusConflict, expectedCode: model.ErrCodeCatalogExists},
		{name: "Wrapped domain error", err: fmt.Errorf("create: %w", model.ErrCatalogExists), expectedStatus: http.StatusConflict, expectedCode: model.ErrCodeCatalogExists},
		{name: "Unknown domain code", err: model.NewDomainError("SOMETHING_NEW", "odd"), expectedStatus: http.StatusInternalServerError, expectedCode: "SOMETHING_NEW"},
		{name: "Plain error", err: errors.New("connection refused"), expectedStatus: http.StatusInternalServerError, expectedCode: model.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeDomainError(w, tt.err, zerolog.Nop())

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestWriteDomainError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()

	writeDomainError(w, errors.New("pq: password authentication failed"), zerolog.Nop())

	assert.NotContains(t, w.Body.String(), "password authentication")
	assert.JSONEq(t, `{"error":"INTERNAL_ERROR","message":"Internal server error"}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
		expected    model.LoginRequest
	}{
		{name: "Valid body", body: `{"username":"alice","password":"secret1"}`, expected: model.LoginRequest{Username: "alice", Password: "secret1"}},
		{name: "Empty body", body: "", expected: model.LoginRequest{}},
		{name: "Unknown fields ignored", body: `{"username":"alice","extra":1}`, expected: model.LoginRequest{Username: "alice"}},
		{name: "Malformed", body: `{"username":`, expectError: true},
		{name: "Wrong type", body: `{"username":42}`, expectError: true},
		{name: "Oversized", body: `{"username":"` + strings.Repeat("a", maxBodyBytes) + `"}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var got model.LoginRequest
			err := decodeJSON(w, req, &got)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.NewDomainError(model.ErrCodeInvalidJSON, ""))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
