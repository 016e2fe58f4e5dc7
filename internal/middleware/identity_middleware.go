package middleware

import (
	"context"
	"net/http"
	"strings"

	"catalog-api-server/internal/domain"
	"catalog-api-server/pkg/response"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityResolver turns a presented access token into a caller identity.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (domain.Identity, error)
}

// IdentityMiddleware resolves the caller's identity from the Authorization
// header. A missing or non-Bearer header is not an error: the request
// proceeds as anonymous and the per-operation policy decides downstream.
// A Bearer token that is present but invalid, expired, or bound to an
// unknown user rejects the request outright with 401.
func IdentityMiddleware(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := domain.Anonymous()

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					resolved, err := resolver.ResolveIdentity(r.Context(), parts[1])
					if err != nil {
						response.Unauthorized(w, "Invalid or expired token")
						return
					}
					identity = resolved
				}
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the resolved identity for the request, or anonymous
// when the identity middleware did not run.
func GetIdentity(r *http.Request) domain.Identity {
	identity, ok := r.Context().Value(identityKey).(domain.Identity)
	if !ok {
		return domain.Anonymous()
	}
	return identity
}
