package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the marketplace side a user acts on.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	Username string
	Role     Role
}

// User represents a registered buyer or seller.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"type" db:"role"`
	Email        *string   `json:"email,omitempty" db:"email"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	Address      *string   `json:"address,omitempty" db:"address"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// RegisterRequest represents the request payload for registering a user.
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=64"`
	Password    string  `json:"password" validate:"required,min=1,max=72"`
	Type        Role    `json:"type" validate:"required,oneof=buyer seller"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=512"`
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
