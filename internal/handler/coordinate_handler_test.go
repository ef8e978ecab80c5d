package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCoordinateHandler_AddBatch(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockReturn     *model.CoordinateBatchResponse
		mockError      error
		expectedStatus int
		expectedCode   string
		expectService  bool
	}{
		{
			name:        "Success",
			requestBody: `{"coordinates":[{"lat":10,"lon":20},{"lat":20,"lon":30,"foodOrders":[{"itemName":"Pizza","quantity":2}]}]}`,
			mockReturn: &model.CoordinateBatchResponse{
				Message:       "Coordinates added successfully",
				InsertedCount: 2,
				MeanLatitude:  15,
				MeanLongitude: 25,
			},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Coordinates is not an array",
			requestBody:    `{"coordinates":{"lat":10,"lon":20}}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidCoordinates,
		},
		{
			name:           "Coordinates is a string",
			requestBody:    `{"coordinates":"10,20"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidCoordinates,
		},
		{
			name:           "Coordinates missing",
			requestBody:    `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidCoordinates,
		},
		{
			name:           "Coordinates null",
			requestBody:    `{"coordinates":null}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidCoordinates,
		},
		{
			name:           "Non-numeric latitude",
			requestBody:    `{"coordinates":[{"lat":"ten","lon":20}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidCoordinates,
		},
		{
			name:           "Empty array reaches the service",
			requestBody:    `{"coordinates":[]}`,
			mockError:      model.ErrInvalidCoordinates,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidCoordinates,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{"coordinates":[`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Insert failure",
			requestBody:    `{"coordinates":[{"lat":1,"lon":2}]}`,
			mockError:      errors.New("failed to insert coordinate 0"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCoordinateService)
			handler := NewCoordinateHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("AddCoordinates", mock.Anything, mock.AnythingOfType("[]model.CoordinateInput")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/array", encodeBody(t, tt.requestBody))
			w := httptest.NewRecorder()

			handler.AddBatch(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			} else {
				assert.JSONEq(t, `{"message":"Coordinates added successfully","insertedCount":2,"meanLatitude":15,"meanLongitude":25}`, w.Body.String())
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "AddCoordinates", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCoordinateHandler_AddBatch_PassesInputs(t *testing.T) {
	mockService := new(MockCoordinateService)
	handler := NewCoordinateHandler(mockService, zerolog.Nop())

	var captured []model.CoordinateInput
	mockService.On("AddCoordinates", mock.Anything, mock.AnythingOfType("[]model.CoordinateInput")).
		Run(func(args mock.Arguments) { captured = args.Get(1).([]model.CoordinateInput) }).
		Return(&model.CoordinateBatchResponse{Message: "Coordinates added successfully", InsertedCount: 1}, nil)

	body := `{"coordinates":[{"lat":-33.5,"lon":151.25,"foodOrders":[{"itemName":"Sushi","quantity":3}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/array", encodeBody(t, body))
	w := httptest.NewRecorder()

	handler.AddBatch(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, captured, 1)
	assert.Equal(t, floatPtr(-33.5), captured[0].Lat)
	assert.Equal(t, floatPtr(151.25), captured[0].Lon)
	assert.Equal(t, []model.FoodOrder{{ItemName: "Sushi", Quantity: 3}}, captured[0].FoodOrders)
}

func TestCoordinateHandler_Mean(t *testing.T) {
	tests := []struct {
		name           string
		mockReturn     *model.MeanCoordinates
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			mockReturn:     &model.MeanCoordinates{MeanLat: 10, MeanLon: 16.5, Count: 4},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"meanLat":10,"meanLon":16.5,"count":4}`,
		},
		{
			name:           "Empty store",
			mockError:      model.ErrCoordinatesNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"COORDINATES_NOT_FOUND","message":"No coordinates stored"}`,
		},
		{
			name:           "Store failure",
			mockError:      errors.New("failed to compute mean"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"INTERNAL_ERROR","message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCoordinateService)
			handler := NewCoordinateHandler(mockService, zerolog.Nop())
			mockService.On("GetMeanCoordinates", mock.Anything).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/mean-coordinates", nil)
			w := httptest.NewRecorder()

			handler.Mean(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
