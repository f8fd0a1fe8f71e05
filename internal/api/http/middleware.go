package http

import (
	"context"
	"net/http"
	"strings"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "user_claims"

// AuthMiddleware validates the access token from the auth cookie or the
// Authorization header and injects the claims into the request context.
type AuthMiddleware struct {
	tokenManager security.TokenManager
	cookieName   string
}

func NewAuthMiddleware(tm security.TokenManager, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, cookieName: cookieName}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return auth[7:]
	}
	return ""
}

// RequireAdmin gates a handler behind the ADMIN role. Must run after
// Authenticate.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.Role != domain.UserRoleAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required"})
			return
		}
		next(w, r)
	}
}

// ClaimsFromContext retrieves the authenticated user's claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}
