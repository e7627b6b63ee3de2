// internal/guard/verifier.go
//
// Shared session-verification capability.
//
// Context
// -------
// Two checkpoints guard protected content: the edge middleware (runs
// before routing, sees only cookies) and the in-page check (runs inside
// protected handlers, sees the session store).  Both used to imply their
// own round-trip to the validate endpoint.  The Verifier is the single
// verification function injected into both boundaries: concurrent checks
// for the same token collapse into one in-flight call via singleflight,
// and the edge guard hands its fresh result to the in-page guard through
// the request context (see internal/auth), so one navigation costs one
// validation round-trip.
//
// Verdicts
// --------
//   - nil error          – token confirmed; a fresh profile is returned.
//   - ErrUnauthorized    – the server said no (401).  The session is dead.
//   - ErrUnavailable     – transport failure or a non-401 rejection.  The
//     server's opinion is unknown; callers must NOT clear local state.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package guard

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/atrium/internal/authapi"
	"github.com/yanizio/atrium/internal/metrics"
)

// TokenCookie is the cookie the session layer writes and the edge guard
// reads.  The name matches the session store key on purpose: both are
// views of the same value, kept in sync by one write path.
const TokenCookie = "auth-token"

var (
	// ErrUnauthorized means the server rejected the token outright.
	ErrUnauthorized = errors.New("session no longer valid")

	// ErrUnavailable means verification could not be completed; existing
	// session state must be left alone.
	ErrUnavailable = errors.New("verification unavailable")
)

// Verifier wraps the validate endpoint with request coalescing.  Safe
// for concurrent use; create one per process.
type Verifier struct {
	api   *authapi.Client
	group singleflight.Group
}

// NewVerifier builds a Verifier on top of the Auth API client.
func NewVerifier(client *authapi.Client) *Verifier {
	return &Verifier{api: client}
}

// Verify confirms token against the server and returns the fresh
// profile.  Concurrent calls for the same token share one round-trip.
func (v *Verifier) Verify(ctx context.Context, token string) (*authapi.Profile, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	res, err, _ := v.group.Do(token, func() (any, error) {
		metrics.TokenValidationsTotal.Inc()

		resp := v.api.ValidateToken(ctx, token)
		if resp.Success && resp.Data != nil {
			return resp.Data, nil
		}
		if resp.StatusCode == http.StatusUnauthorized {
			metrics.SessionExpiriesTotal.Inc()
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Message)
	})
	if err != nil {
		return nil, err
	}
	return res.(*authapi.Profile), nil
}
