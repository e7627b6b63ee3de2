package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yanizio/atrium/internal/user"
)

func newTestStore(t *testing.T) (*Store, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return newStore(NewMemory(time.Hour), w, r), w
}

func TestStoreSessionIDCookie(t *testing.T) {
	_, w := newTestStore(t)

	var sid *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == sidCookie {
			sid = c
		}
	}
	if sid == nil {
		t.Fatal("session-ID cookie not set")
	}
	if sid.Value == "" {
		t.Error("session-ID cookie has no value")
	}
	// Browser-session scoped: no Expires, no MaxAge.
	if !sid.Expires.IsZero() || sid.MaxAge != 0 {
		t.Errorf("session-ID cookie must not persist: Expires=%v MaxAge=%d", sid.Expires, sid.MaxAge)
	}
	if !sid.HttpOnly {
		t.Error("session-ID cookie must be HttpOnly")
	}
}

func TestStoreReusesExistingSessionID(t *testing.T) {
	mem := NewMemory(time.Hour)

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	s1 := newStore(mem, w1, r1)
	s1.SetToken("tok-123")

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(&http.Cookie{Name: sidCookie, Value: s1.sid})
	s2 := newStore(mem, httptest.NewRecorder(), r2)

	if s2.sid != s1.sid {
		t.Fatalf("sid changed between requests: %q vs %q", s2.sid, s1.sid)
	}
	if got := s2.Token(); got != "tok-123" {
		t.Errorf("token not visible across requests: %q", got)
	}
}

func TestStoreUserRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	s.SetUser(&user.User{ID: "u1", Name: "Ada", Email: "ada@example.com"})
	u := s.User()
	if u == nil || u.ID != "u1" || u.Email != "ada@example.com" {
		t.Fatalf("User() = %+v", u)
	}
}

func TestStoreCorruptUserReadsAsAbsent(t *testing.T) {
	s, _ := newTestStore(t)

	s.mem.Set(s.sid, userKey, "{not json")
	if u := s.User(); u != nil {
		t.Fatalf("User() = %+v, want nil for corrupt data", u)
	}
}

func TestStoreClear(t *testing.T) {
	s, w := newTestStore(t)

	s.SetToken("tok-123")
	s.SetUser(&user.User{ID: "u1"})
	s.Clear()

	if got := s.Token(); got != "" {
		t.Errorf("token after Clear = %q", got)
	}
	if u := s.User(); u != nil {
		t.Errorf("user after Clear = %+v", u)
	}

	var last *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth-token" {
			last = c
		}
	}
	if last == nil || last.MaxAge >= 0 {
		t.Errorf("Clear did not expire the token cookie: %+v", last)
	}
}

func TestMemorySweep(t *testing.T) {
	m := NewMemory(time.Hour)
	m.Set("sid-1", tokenKey, "tok")

	// Age the area past the TTL and sweep directly.
	m.mu.Lock()
	m.areas["sid-1"].lastSeen = time.Now().Add(-2 * time.Hour)
	m.mu.Unlock()
	m.sweep()

	if _, ok := m.Get("sid-1", tokenKey); ok {
		t.Fatal("idle area survived the sweep")
	}
}
