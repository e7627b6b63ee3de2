// internal/acl/middleware.go
//
// Chi middleware that enforces permission checks on verified requests.

package acl

import (
	"net/http"

	"github.com/yanizio/atrium/internal/auth"
)

// RequirePermission ensures the verified identity on the request
// carries ANY of the supplied permissions.  It must sit behind the edge
// guard, which attaches the verified profile; a request without one is
// unauthorized, and one whose role lacks every permission is forbidden.
func RequirePermission(perms ...string) func(http.Handler) http.Handler {
	if len(perms) == 0 {
		panic("acl.RequirePermission: at least one permission must be supplied")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.Verified(r.Context())
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			for _, perm := range perms {
				if ProfileAllowed(p, perm) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}
