// Package auth issues and verifies bearer tokens and hashes user passwords.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the signed assertion carried by a bearer token.
type Claims struct {
	Username string     `json:"username"`
	Role     model.Role `json:"type"`
	jwt.RegisteredClaims
}

// TokenIssuer creates signed tokens for a verified identity.
type TokenIssuer interface {
	Issue(principal model.Principal) (string, time.Time, error)
}

// TokenVerifier turns a presented token back into a principal.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (model.Principal, error)
}

// TokenRevoker invalidates a token before its expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// TokenManager signs and verifies HS256 tokens with a single static secret.
type TokenManager struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	denylist Denylist
	now      func() time.Time
}

// NewTokenManager creates a token manager. A nil denylist disables revocation checks.
func NewTokenManager(secret string, ttl time.Duration, issuer string, denylist Denylist) *TokenManager {
	if denylist == nil {
		denylist = NopDenylist{}
	}
	return &TokenManager{
		secret:   []byte(secret),
		ttl:      ttl,
		issuer:   issuer,
		denylist: denylist,
		now:      time.Now,
	}
}

// Issue signs a token for the principal and returns it with its expiry.
func (m *TokenManager) Issue(principal model.Principal) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Username: principal.Username,
		Role:     principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principal.Username,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature, algorithm, issuer, expiry, claim shape and
// revocation. It returns model.ErrAuthMissing for an empty token and
// model.ErrAuthInvalid for every rejection.
func (m *TokenManager) Verify(ctx context.Context, token string) (model.Principal, error) {
	if token == "" {
		return model.Principal{}, model.ErrAuthMissing
	}

	claims, err := m.parse(token)
	if err != nil {
		return model.Principal{}, err
	}

	revoked, err := m.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return model.Principal{}, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return model.Principal{}, model.ErrAuthInvalid
	}

	return model.Principal{Username: claims.Username, Role: claims.Role}, nil
}

// Revoke puts a valid token on the denylist until it would have expired.
func (m *TokenManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return model.ErrAuthMissing
	}

	claims, err := m.parse(token)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Time.Sub(m.now())
	if ttl <= 0 {
		return nil
	}

	if err := m.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (m *TokenManager) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, model.ErrAuthInvalid
	}

	if claims.Username == "" || claims.ID == "" || !claims.Role.Valid() {
		return nil, model.ErrAuthInvalid
	}

	return claims, nil
}

// IsAuthError reports whether err is one of the token rejections.
func IsAuthError(err error) bool {
	return errors.Is(err, model.ErrAuthMissing) || errors.Is(err, model.ErrAuthInvalid)
}

// TokenService is the full token lifecycle used by the user service and the gate.
type TokenService interface {
	TokenIssuer
	TokenVerifier
	TokenRevoker
}
