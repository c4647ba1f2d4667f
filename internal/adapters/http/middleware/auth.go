package middleware

import (
	"context"
	"net/http"
	"strings"

	"aiclub/internal/adapters/auth"
	"aiclub/internal/domain/account"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const claimsContextKey contextKey = "claims"

// Client-facing auth failures.
const (
	MsgNoToken        = "No token"
	MsgInvalidToken   = "Invalid token"
	MsgAdminsOnly     = "Admins only"
	MsgSuperAdminOnly = "Super admin only"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Authenticate returns middleware that rejects requests without a valid bearer token
// and stores the token's claims in the request context.
// Claims reflect the user as of token issuance.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			claims, err := tokens.Parse(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin blocks callers whose token role is not admin.
// PRE: runs after Authenticate
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, MsgNoToken)
			return
		}
		if claims.Role != account.RoleAdmin {
			writeError(w, http.StatusForbidden, MsgAdminsOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin blocks callers whose token email is not superAdminEmail.
// PRE: runs after Authenticate
func RequireSuperAdmin(superAdminEmail string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			if !account.IsSuperAdminEmail(claims.Email, superAdminEmail) {
				writeError(w, http.StatusForbidden, MsgSuperAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext extracts the authenticated claims from the request context.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return c, ok && c != nil
}

// ContextWithClaims returns a context carrying claims.
func ContextWithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, c)
}
