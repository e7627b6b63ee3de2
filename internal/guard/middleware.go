// internal/guard/middleware.go
//
// Edge route guard: pre-render gatekeeper for every non-public path.
//
// Context
// -------
// This middleware runs before any protected page handler.  It has no
// access to the server-side session area; the auth-token cookie is its
// only input, which is why the session store writes the token to both
// locations.  The algorithm:
//
//   1. Public path → pass through unconditionally.
//   2. No cookie   → redirect to the login page, carrying the original
//      path in ?from= so the login flow can return the user afterward.
//   3. Cookie      → verify against the server.  Success passes through
//      with the fresh profile attached to the request context; any
//      failure, including transport failure, redirects to login.
//
// Public paths: "/" exactly, the login and register pages by prefix,
// and asset, metrics, and health namespaces, which bypass the guard
// entirely.  ("/" is an exact match; a prefix match on "/" would allow
// every path and the guard would never run.)
package guard

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/atrium/internal/auth"
	"github.com/yanizio/atrium/internal/metrics"
)

// LoginPath is where both guards send unauthenticated visitors.
const LoginPath = "/auth/login"

// publicPrefixes are matched with strings.HasPrefix.
var publicPrefixes = []string{
	"/auth/login",
	"/auth/register",
	"/static/",
	"/assets/",
	"/favicon.ico",
	"/metrics",
	"/healthz",
}

// Public reports whether path is served without a session check.
func Public(path string) bool {
	if path == "/" {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Middleware returns the edge guard wrapping next.
func Middleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Public(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			c, err := r.Cookie(TokenCookie)
			if err != nil || c.Value == "" {
				redirectToLogin(w, r)
				return
			}

			profile, err := v.Verify(r.Context(), c.Value)
			if err != nil {
				zap.S().Infow("edge guard rejected request",
					"path", r.URL.Path, "reason", err.Error())
				redirectToLogin(w, r)
				return
			}

			// Hand the confirmed identity to the in-page guard so it
			// does not validate the same navigation twice.
			next.ServeHTTP(w, r.WithContext(auth.WithVerified(r.Context(), profile)))
		})
	}
}

// redirectToLogin sends the visitor to the login page with the original
// path preserved in the from query parameter.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	metrics.GuardRedirectsTotal.Inc()
	target := LoginPath + "?from=" + url.QueryEscape(r.URL.Path)
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}
