package handlers

import (
	"context"
	"net/http"

	"github.com/beastgym/apiserver/internal/auth"
)

// RequireAuth returns middleware that authenticates the request against
// the named session cookie and injects the resulting principal into the
// request context. Every verification failure collapses to the same 401
// before any endpoint logic runs.
func RequireAuth(codec *auth.Codec, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := codec.Authenticate(r, cookieName)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), contextPrincipalKey, &principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns middleware that gates access on the authenticated
// principal's role. It must run after RequireAuth.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := principalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if !auth.Authorize(principal, roles...) {
				writeError(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
