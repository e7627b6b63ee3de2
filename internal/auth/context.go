// internal/auth/context.go
//
// Request-context plumbing for verified identities.
//
// Usage
// -----
//     // Edge guard attaches the freshly validated profile.
//     ctx = auth.WithVerified(ctx, profile)
//
//     // The in-page guard reuses it instead of validating again.
//     p, ok := auth.Verified(ctx)
//
// Notes
// -----
// • A profile in the context means "the token on this request was
//   confirmed against the server during this navigation."  It is never
//   persisted; every navigation re-derives it.
// • Oxford commas, two spaces after periods.

package auth

import (
	"context"

	"github.com/yanizio/atrium/internal/authapi"
)

// verifiedKey is unexported to avoid context-key collisions.
type verifiedKey struct{}

// WithVerified returns a new context carrying the validated profile.
func WithVerified(ctx context.Context, p *authapi.Profile) context.Context {
	return context.WithValue(ctx, verifiedKey{}, p)
}

// Verified extracts the validated profile from ctx.  It returns
// (nil, false) when no guard has confirmed the token on this request.
func Verified(ctx context.Context) (*authapi.Profile, bool) {
	p, ok := ctx.Value(verifiedKey{}).(*authapi.Profile)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
