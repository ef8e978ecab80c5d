package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInvalidProduct      = "INVALID_PRODUCT"
	ErrCodeInvalidCoordinates  = "INVALID_COORDINATES"
	ErrCodeMissingToken        = "MISSING_TOKEN"
	ErrCodeInvalidToken        = "INVALID_TOKEN"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeCatalogNotFound     = "CATALOG_NOT_FOUND"
	ErrCodeCoordinatesNotFound = "COORDINATES_NOT_FOUND"
	ErrCodeUsernameTaken       = "USERNAME_TAKEN"
	ErrCodeEmailTaken          = "EMAIL_TAKEN"
	ErrCodeCatalogExists       = "CATALOG_EXISTS"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so errors built with
// a custom message still satisfy errors.Is against the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrAuthMissing         = NewDomainError(ErrCodeMissingToken, "Unauthorized")
	ErrAuthInvalid         = NewDomainError(ErrCodeInvalidToken, "Token is not valid")
	ErrInvalidCredentials  = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrForbidden           = NewDomainError(ErrCodeForbidden, "Forbidden")
	ErrCatalogNotFound     = NewDomainError(ErrCodeCatalogNotFound, "Catalog not found")
	ErrCoordinatesNotFound = NewDomainError(ErrCodeCoordinatesNotFound, "No coordinates stored")
	ErrUsernameTaken       = NewDomainError(ErrCodeUsernameTaken, "Username is already registered")
	ErrEmailTaken          = NewDomainError(ErrCodeEmailTaken, "Email is already registered")
	ErrCatalogExists       = NewDomainError(ErrCodeCatalogExists, "Catalog already exists for this seller")
	ErrInvalidCoordinates  = NewDomainError(ErrCodeInvalidCoordinates, "coordinates must be a non-empty array of {lat, lon}")
)

// NewForbiddenError names the role the endpoint expects.
func NewForbiddenError(expected Role) *DomainError {
	return NewDomainError(ErrCodeForbidden, fmt.Sprintf("Forbidden: %s access required", expected))
}

// NewValidationError wraps a request validation failure.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidationFailed, message)
}

// NewInvalidProductError reports a malformed product at the given position.
func NewInvalidProductError(index int, reason string) *DomainError {
	return NewDomainError(ErrCodeInvalidProduct, fmt.Sprintf("product %d: %s", index, reason))
}

// NewInvalidCoordinatesError reports a malformed coordinate payload.
func NewInvalidCoordinatesError(reason string) *DomainError {
	return NewDomainError(ErrCodeInvalidCoordinates, reason)
}
