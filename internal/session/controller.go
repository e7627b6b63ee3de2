// internal/session/controller.go
//
// Session lifecycle orchestration.
//
// Context
// -------
// The Controller sequences Auth API calls and Store reads/writes into
// the session operations the rest of the application consumes: Login,
// Logout, ValidateToken, CurrentUser, and IsAuthenticated.  Ordering
// guarantees within one call: the token is persisted strictly before
// the profile fetch is issued, and the user is persisted strictly
// before Login returns success, so callers never observe a returned
// user that does not match the stored token.
//
// Failure policy follows the error taxonomy: a server "no" (401 on
// validation) clears the session; "server unreachable" leaves it alone,
// so a transient outage never silently logs anyone out.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/atrium/internal/activity"
	"github.com/yanizio/atrium/internal/authapi"
	"github.com/yanizio/atrium/internal/guard"
	"github.com/yanizio/atrium/internal/metrics"
	"github.com/yanizio/atrium/internal/requestinfo"
	"github.com/yanizio/atrium/internal/user"
)

// Credentials is the transient login input.  Never persisted; it exists
// only for the duration of one Login call.
type Credentials struct {
	Email    string
	Password string
}

// Manager is the process-wide session aggregate.  It owns the memory
// store and the collaborators every per-request Controller needs.
type Manager struct {
	api      *authapi.Client
	verifier *guard.Verifier
	mem      *Memory
	activity *activity.Repository // nil disables recording
}

// NewManager wires the session layer together.  activityRepo may be nil.
func NewManager(client *authapi.Client, verifier *guard.Verifier, mem *Memory, activityRepo *activity.Repository) *Manager {
	return &Manager{api: client, verifier: verifier, mem: mem, activity: activityRepo}
}

// Controller binds the manager to one request/response pair.
func (m *Manager) Controller(w http.ResponseWriter, r *http.Request) *Controller {
	return &Controller{
		api:      m.api,
		verifier: m.verifier,
		activity: m.activity,
		store:    newStore(m.mem, w, r),
	}
}

// Controller performs the session lifecycle operations for one request.
type Controller struct {
	api      *authapi.Client
	verifier *guard.Verifier
	activity *activity.Repository
	store    *Store
}

// Compile-time assertion: *Controller satisfies the in-page guard.
var _ guard.Session = (*Controller)(nil)

// Login exchanges credentials for a session.  On success the token is
// persisted to both locations, the profile is fetched with it, and the
// mapped user is persisted and returned.  Any failure at any step
// returns nil.
func (c *Controller) Login(ctx context.Context, creds Credentials) *user.User {
	loginResp := c.api.Login(ctx, creds.Email, creds.Password)
	if !loginResp.Success || loginResp.Data == nil || loginResp.Data.AccessToken == "" {
		zap.S().Infow("login rejected",
			"email", creds.Email,
			"message", loginResp.Message,
			"status", loginResp.StatusCode,
		)
		metrics.LoginFailuresTotal.Inc()
		c.record(activity.KindLoginFailure, "", creds.Email)
		return nil
	}

	token := loginResp.Data.AccessToken
	c.store.SetToken(token)

	profResp := c.api.GetProfile(ctx, token)
	if !profResp.Success || profResp.Data == nil {
		// The token is already stored; we deliberately do not roll it
		// back (matches the original flow).  Callers see nil and the
		// next guard check settles the session's fate.
		zap.S().Warnw("profile fetch failed after login",
			"message", profResp.Message, "status", profResp.StatusCode)
		metrics.LoginFailuresTotal.Inc()
		c.record(activity.KindLoginFailure, "", creds.Email)
		return nil
	}

	u := user.FromProfile(profResp.Data)
	c.store.SetUser(u)
	metrics.LoginsTotal.Inc()
	c.record(activity.KindLogin, u.ID, u.Email)
	return u
}

// Logout unconditionally clears the persisted token and user.
// Idempotent; safe with no active session.
func (c *Controller) Logout() {
	if u := c.store.User(); u != nil {
		c.record(activity.KindLogout, u.ID, u.Email)
	}
	c.store.Clear()
	metrics.LogoutsTotal.Inc()
}

// ValidateToken re-confirms the stored token against the server.  An
// absent token is false with no network call.  Success re-persists the
// user from the fresh profile (the token itself is not re-stored; the
// server does not rotate it on validation).  A 401 clears the session;
// any other failure returns false and leaves the session alone.
func (c *Controller) ValidateToken(ctx context.Context) bool {
	token := c.store.Token()
	if token == "" {
		return false
	}

	profile, err := c.verifier.Verify(ctx, token)
	switch {
	case err == nil:
		c.store.SetUser(user.FromProfile(profile))
		return true
	case errors.Is(err, guard.ErrUnauthorized):
		if u := c.store.User(); u != nil {
			c.record(activity.KindSessionExpired, u.ID, u.Email)
		}
		c.Logout()
		return false
	default:
		// Server unreachable or a non-401 rejection: keep the session.
		zap.S().Warnw("token validation unavailable", "err", err.Error())
		return false
	}
}

// ApplyProfile persists a freshly verified profile as the current user.
// Used by the in-page guard when the edge guard already validated this
// navigation.
func (c *Controller) ApplyProfile(p *authapi.Profile) *user.User {
	u := user.FromProfile(p)
	if u == nil {
		return nil
	}
	c.store.SetUser(u)
	return u
}

// CurrentUser is a pure read of the persisted user.
func (c *Controller) CurrentUser() *user.User {
	return c.store.User()
}

// IsAuthenticated reports whether both a persisted user and token
// exist.  This is a purely local check; it answers "is there a session
// to attempt to validate," not "is the session currently valid."
func (c *Controller) IsAuthenticated() bool {
	return c.store.User() != nil && c.store.Token() != ""
}

// Store exposes the underlying store, mainly for tests.
func (c *Controller) Store() *Store { return c.store }

// record writes one activity event, enriched with the request's UA and
// geo fingerprint when the requestinfo middleware ran.  Best-effort.
func (c *Controller) record(kind, userID, email string) {
	if c.activity == nil {
		return
	}

	ev := activity.Event{UserID: userID, Kind: kind, Email: email}
	if info := requestinfo.FromContext(c.store.r.Context()); info != nil {
		if info.Geo.IP != nil {
			ev.IP = info.Geo.IP.String()
		}
		ev.Country = info.Geo.CountryISO
		ev.Browser = info.UA.Browser
		ev.OS = info.UA.OS
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.activity.Record(ctx, ev); err != nil {
		zap.S().Warnw("activity record failed", "kind", kind, "err", err)
	}
}
