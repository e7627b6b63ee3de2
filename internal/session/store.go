// internal/session/store.go
//
// Dual-location session store.
//
// Context
// -------
// A session value has two readers with different capability sets: page
// handlers, which can reach the server-side session area, and the edge
// guard, which sees nothing but cookies.  The Store is the single write
// path that keeps both locations in sync:
//
//   - "auth-token" in the session area AND an auth-token cookie
//     (path "/", 7-day expiry, Secure over TLS, SameSite=Lax).
//   - "user-data" in the session area only, as JSON-serialized User.
//
// Token and user are set together and cleared together; neither is ever
// written independently.  A corrupted user-data blob reads as "no user,"
// never as a hard failure.
//
// The session area itself is addressed by a separate session-ID cookie
// ("atrium_session"), which has no expiry and therefore lives only as
// long as the browser session, matching the original's session-scoped
// storage.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/atrium/internal/guard"
	"github.com/yanizio/atrium/internal/user"
)

const (
	// sidCookie identifies the server-side session area.
	sidCookie = "atrium_session"

	// tokenCookieTTL matches the original's 7-day cookie expiry.
	tokenCookieTTL = 7 * 24 * time.Hour
)

// Store binds one request/response pair to the session area and cookie
// jar.  Build one per request via Manager.Controller; do not share
// across requests.
type Store struct {
	mu  sync.Mutex
	mem *Memory
	sid string
	w   http.ResponseWriter
	r   *http.Request
}

// newStore resolves (or creates) the session ID for this request.
func newStore(mem *Memory, w http.ResponseWriter, r *http.Request) *Store {
	s := &Store{mem: mem, w: w, r: r}

	if c, err := r.Cookie(sidCookie); err == nil && c.Value != "" {
		s.sid = c.Value
		return s
	}

	s.sid = newSID()
	http.SetCookie(w, &http.Cookie{
		Name:     sidCookie,
		Value:    s.sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		// No Expires: browser-session scoped, like the area it names.
	})
	return s
}

// Token returns the stored bearer token, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, _ := s.mem.Get(s.sid, tokenKey)
	return tok
}

// User returns the stored user, or nil when absent or unparsable.
func (s *Store) User() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.mem.Get(s.sid, userKey)
	if !ok || raw == "" {
		return nil
	}
	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		zap.S().Warnw("stored user unparsable, treating as absent", "err", err)
		return nil
	}
	return &u
}

// SetToken writes the token to both locations.
func (s *Store) SetToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem.Set(s.sid, tokenKey, tok)
	http.SetCookie(s.w, &http.Cookie{
		Name:     guard.TokenCookie,
		Value:    tok,
		Path:     "/",
		Expires:  time.Now().Add(tokenCookieTTL),
		Secure:   s.r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetUser serializes and stores the user.
func (s *Store) SetUser(u *user.User) {
	if u == nil {
		return
	}
	raw, err := json.Marshal(u)
	if err != nil {
		zap.S().Errorw("serialize user", "err", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.Set(s.sid, userKey, string(raw))
}

// Clear removes the token from both locations and drops the user.
// Idempotent; clearing an absent session is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem.Delete(s.sid, tokenKey, userKey)
	http.SetCookie(s.w, &http.Cookie{
		Name:   guard.TokenCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// newSID returns a 128-bit random hex session ID.
func newSID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
