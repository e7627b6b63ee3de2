// internal/user/user.go
//
// Atrium's user shape and its one constructor from server data.
//
// Context
// -------
// The remote Auth API speaks in underscore-prefixed identifiers and
// carries role bookkeeping Atrium does not need.  FromProfile is the
// single translation point: it renames server identifiers, flattens the
// role, and preserves permission order.  No other code builds a User
// from scratch, which keeps the serialized copy in the session store in
// lockstep with whatever the server last said.
package user

import "github.com/yanizio/atrium/internal/authapi"

// Role is the flattened role attached to a User.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Permissions []string `json:"permissions"`
}

// User is the profile Atrium renders and persists.  Derived entirely
// from server responses.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// FromProfile maps a server profile into a User.  Nil in, nil out.
func FromProfile(p *authapi.Profile) *User {
	if p == nil {
		return nil
	}
	return &User{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role: Role{
			ID:          p.Role.ID,
			Name:        p.Role.Name,
			Slug:        p.Role.Slug,
			Permissions: p.Role.Permissions,
		},
	}
}
