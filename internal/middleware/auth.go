// Package middleware provides HTTP middleware for authentication, request
// IDs, and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"tiretrack/internal/domain"
)

// IdentityValidator turns a bearer token string into an authenticated
// identity. Implemented by the token package for local HS256 tokens.
type IdentityValidator interface {
	Validate(tokenString string) (*domain.Identity, error)
}

// OIDCIdentityResolver maps externally-issued token claims onto a local user
// account. Optional; nil disables the OIDC path.
type OIDCIdentityResolver interface {
	Resolve(ctx context.Context, claims *JWTClaims) (*domain.Identity, error)
}

// RequireAuth returns a middleware that authenticates requests via a Bearer
// token. Local HS256 tokens are tried first; if an OIDC validator and
// resolver are configured, externally-issued tokens are accepted too.
// Unauthenticated requests get a 401 JSON response.
func RequireAuth(local IdentityValidator, oidcValidator JWTValidator, resolver OIDCIdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "provide a Bearer token")
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")

			if ident, err := local.Validate(tokenStr); err == nil {
				ctx := domain.WithIdentity(r.Context(), ident)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if oidcValidator != nil && resolver != nil {
				claims, err := oidcValidator.Validate(r.Context(), tokenStr)
				if err == nil {
					ident, err := resolver.Resolve(r.Context(), claims)
					if err == nil {
						ctx := domain.WithIdentity(r.Context(), ident)
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			writeUnauthorized(w, "invalid or expired token")
		})
	}
}

// RequireOwner returns a middleware that rejects tenant identities with 403.
// Must run after RequireAuth.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := domain.IdentityFromContext(r.Context())
		if !ok || ident.AccessKind != domain.AccessOwner {
			writeForbidden(w, "owner access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin returns a middleware that only admits SuperAdmin
// identities. Must run after RequireAuth.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := domain.IdentityFromContext(r.Context())
		if !ok || ident.Role != domain.RoleSuperAdmin {
			writeForbidden(w, "super admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    401,
		"message": "unauthorized: " + msg,
	})
}

func writeForbidden(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    403,
		"message": "forbidden: " + msg,
	})
}
