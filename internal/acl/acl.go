// internal/acl/acl.go
//
// Permission checks over role data.
//
// Context
// -------
// Atrium does not own a role table; the remote Auth API embeds the
// user's role, slug, and an ordered permission list in every profile
// response.  These helpers answer the one question components ask:
// does the current identity carry a given permission?
package acl

import (
	"github.com/yanizio/atrium/internal/authapi"
	"github.com/yanizio/atrium/internal/user"
)

// Allowed reports whether the user's role carries perm.
func Allowed(u *user.User, perm string) bool {
	if u == nil {
		return false
	}
	return contains(u.Role.Permissions, perm)
}

// ProfileAllowed is the same check against a raw server profile, for
// call sites that hold a verified profile rather than a mapped User.
func ProfileAllowed(p *authapi.Profile, perm string) bool {
	if p == nil {
		return false
	}
	return contains(p.Role.Permissions, perm)
}

func contains(perms []string, perm string) bool {
	for _, p := range perms {
		if p == perm {
			return true
		}
	}
	return false
}
