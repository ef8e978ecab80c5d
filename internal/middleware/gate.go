package middleware

import (
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/auth"
	"marketplace/internal/model"

	"github.com/rs/zerolog"
)

// PrincipalHandler serves a request on behalf of an authenticated caller.
type PrincipalHandler func(w http.ResponseWriter, r *http.Request, principal model.Principal)

// Gate authenticates bearer tokens and enforces route roles.
type Gate struct {
	verifier auth.TokenVerifier
	logger   zerolog.Logger
}

// NewGate creates a gate backed by the given token verifier.
func NewGate(verifier auth.TokenVerifier, logger zerolog.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		logger:   logger.With().Str("component", "gate").Logger(),
	}
}

// Authenticated admits any caller holding a valid token.
func (g *Gate) Authenticated(next PrincipalHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		next(w, r, principal)
	})
}

// RequireRole admits only callers whose token carries the given role.
func (g *Gate) RequireRole(role model.Role, next PrincipalHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := g.authenticate(w, r)
		if !ok {
			return
		}

		if principal.Role != role {
			g.logger.Warn().
				Str("path", r.URL.Path).
				Str("username", principal.Username).
				Str("role", string(principal.Role)).
				Str("required", string(role)).
				Msg("role rejected")
			forbidden := model.NewForbiddenError(role)
			writeError(w, http.StatusForbidden, forbidden.Code, forbidden.Message)
			return
		}

		next(w, r, principal)
	})
}

func (g *Gate) authenticate(w http.ResponseWriter, r *http.Request) (model.Principal, bool) {
	principal, err := g.verifier.Verify(r.Context(), BearerToken(r))
	if err == nil {
		return principal, true
	}

	var domainErr *model.DomainError
	if auth.IsAuthError(err) && errors.As(err, &domainErr) {
		g.logger.Warn().Str("path", r.URL.Path).Str("code", domainErr.Code).Msg("token rejected")
		writeError(w, http.StatusUnauthorized, domainErr.Code, domainErr.Message)
		return model.Principal{}, false
	}

	g.logger.Error().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error")
	return model.Principal{}, false
}

// BearerToken returns the token from the Authorization header. Both a bare
// token and "Bearer <token>" are accepted; the scheme is case-insensitive.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}

	scheme, token, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return header
}
