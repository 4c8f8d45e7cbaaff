package auth

import (
	"context"
	"net/http"
	"strings"

	"supportchat/internal/common"
)

type contextKey struct{}

var identityKey contextKey

// WithIdentity returns ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, id *common.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity injected by Middleware.
func IdentityFromContext(ctx context.Context) (*common.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*common.Identity)
	return id, ok
}

// Middleware authenticates every request on the wrapped routes: extract
// the bearer token, resolve it, inject the identity into the request
// context. Requests without a valid credential get 401 and never reach
// the handler.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"you must be authenticated"}`, http.StatusUnauthorized)
				return
			}

			identity, err := verifier.Resolve(r.Context(), parts[1])
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
