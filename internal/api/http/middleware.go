package http

import (
	"context"
	"net/http"
	"strings"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/security"
)

type contextKey int

const claimsKey contextKey = iota

// ClaimsFromContext returns the identity resolved by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// AuthMiddleware resolves the bearer token into an identity and
// enforces role membership. It is a pure function of the request
// headers and the declared role set; a failed step short-circuits
// before any handler code runs.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid "Bearer <token>"
// Authorization header and stores the verified claims in the context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, "Token is missing")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			respondError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RequireRoles gates a handler on the authenticated role. It must run
// after RequireAuth; an endpoint with no role restriction simply skips
// this wrapper and accepts any authenticated identity.
func (m *AuthMiddleware) RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}

// WithCORS answers preflight requests and stamps the CORS headers for
// configured origins. It wraps the whole router so OPTIONS requests
// are handled before route matching.
func WithCORS(next http.Handler, origins []string) http.Handler {
	allowed := make(map[string]bool, len(origins))
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
