package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yanizio/atrium/internal/authapi"
	"github.com/yanizio/atrium/internal/guard"
)

const profileJSON = `{
	"data": {
		"_id": "u1",
		"name": "Ada",
		"email": "ada@example.com",
		"role": {
			"_id": "r1",
			"name": "Admin",
			"slug": "admin",
			"permissions": ["admin"]
		}
	}
}`

// newTestManager builds a Manager against a stub Auth API.
func newTestManager(t *testing.T, h http.HandlerFunc) *Manager {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client := authapi.New(srv.URL, time.Second)
	return NewManager(client, guard.NewVerifier(client), NewMemory(time.Hour), nil)
}

// happyAPI serves a successful login, profile, and validate flow.
func happyAPI(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/login":
		w.Write([]byte(`{"success":true,"access_token":"tok-123"}`))
	case "/auth/profile", "/auth/validate":
		w.Write([]byte(profileJSON))
	default:
		http.NotFound(w, r)
	}
}

// tokenCookie extracts the auth-token cookie from a recorder, or nil.
func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == guard.TokenCookie {
			return c
		}
	}
	return nil
}

func TestLoginSuccessPersistsBothLocations(t *testing.T) {
	m := newTestManager(t, happyAPI)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	ctrl := m.Controller(w, r)

	u := ctrl.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "pw"})
	if u == nil {
		t.Fatal("Login returned nil")
	}
	if u.Email != "ada@example.com" || u.Role.Slug != "admin" {
		t.Errorf("user mismatch: %+v", u)
	}

	// Server-side area holds both values.
	if got := ctrl.Store().Token(); got != "tok-123" {
		t.Errorf("stored token = %q", got)
	}
	if stored := ctrl.Store().User(); stored == nil || stored.ID != "u1" {
		t.Errorf("stored user = %+v", stored)
	}

	// Cookie side holds the same token.
	c := tokenCookie(w)
	if c == nil {
		t.Fatal("auth-token cookie not set")
	}
	if c.Value != "tok-123" {
		t.Errorf("cookie value = %q", c.Value)
	}
	if c.Path != "/" {
		t.Errorf("cookie path = %q", c.Path)
	}

	if !ctrl.IsAuthenticated() {
		t.Error("IsAuthenticated = false after successful login")
	}
}

func TestLoginRejectedPersistsNothing(t *testing.T) {
	m := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials","statusCode":401}`))
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	ctrl := m.Controller(w, r)

	if u := ctrl.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "bad"}); u != nil {
		t.Fatalf("Login = %+v, want nil", u)
	}
	if got := ctrl.Store().Token(); got != "" {
		t.Errorf("token stored on rejected login: %q", got)
	}
	if stored := ctrl.Store().User(); stored != nil {
		t.Errorf("user stored on rejected login: %+v", stored)
	}
	if c := tokenCookie(w); c != nil {
		t.Errorf("cookie written on rejected login: %+v", c)
	}
	if ctrl.IsAuthenticated() {
		t.Error("IsAuthenticated = true after rejected login")
	}
}

func TestLoginProfileFetchFailure(t *testing.T) {
	m := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Write([]byte(`{"success":true,"access_token":"tok-123"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	ctrl := m.Controller(w, r)

	if u := ctrl.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "pw"}); u != nil {
		t.Fatalf("Login = %+v, want nil", u)
	}
	// The token write precedes the profile fetch and is not rolled
	// back; the session is token-only and IsAuthenticated stays false.
	if got := ctrl.Store().Token(); got != "tok-123" {
		t.Errorf("token = %q, want tok-123", got)
	}
	if stored := ctrl.Store().User(); stored != nil {
		t.Errorf("user stored despite failed profile fetch: %+v", stored)
	}
	if ctrl.IsAuthenticated() {
		t.Error("IsAuthenticated = true without a stored user")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	m := newTestManager(t, happyAPI)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	ctrl := m.Controller(w, r)

	ctrl.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "pw"})
	ctrl.Logout()
	ctrl.Logout() // second call must be a harmless no-op

	if got := ctrl.Store().Token(); got != "" {
		t.Errorf("token after logout = %q", got)
	}
	if stored := ctrl.Store().User(); stored != nil {
		t.Errorf("user after logout = %+v", stored)
	}

	// The last auth-token cookie written must be an expiry.
	var last *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == guard.TokenCookie {
			last = c
		}
	}
	if last == nil {
		t.Fatal("no auth-token cookie written")
	}
	if last.MaxAge >= 0 {
		t.Errorf("final cookie MaxAge = %d, want negative", last.MaxAge)
	}
}

func TestValidateTokenSuccessRefreshesUser(t *testing.T) {
	m := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/validate" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(profileJSON))
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	ctrl := m.Controller(w, r)
	ctrl.Store().SetToken("tok-123")

	if !ctrl.ValidateToken(context.Background()) {
		t.Fatal("ValidateToken = false, want true")
	}
	u := ctrl.Store().User()
	if u == nil || u.ID != "u1" {
		t.Errorf("user after validation = %+v", u)
	}
}

func TestValidateTokenExpiredClearsSession(t *testing.T) {
	m := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired","statusCode":401}`))
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	ctrl := m.Controller(w, r)
	ctrl.Store().SetToken("stale")
	ctrl.ApplyProfile(&authapi.Profile{ID: "u1", Email: "ada@example.com"})

	if ctrl.ValidateToken(context.Background()) {
		t.Fatal("ValidateToken = true for an expired token")
	}
	if got := ctrl.Store().Token(); got != "" {
		t.Errorf("token survived 401: %q", got)
	}
	if stored := ctrl.Store().User(); stored != nil {
		t.Errorf("user survived 401: %+v", stored)
	}
}

func TestValidateTokenNetworkErrorKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(happyAPI))
	srv.Close() // unreachable from here on

	client := authapi.New(srv.URL, time.Second)
	m := NewManager(client, guard.NewVerifier(client), NewMemory(time.Hour), nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	ctrl := m.Controller(w, r)
	ctrl.Store().SetToken("tok-123")
	ctrl.ApplyProfile(&authapi.Profile{ID: "u1", Email: "ada@example.com"})

	if ctrl.ValidateToken(context.Background()) {
		t.Fatal("ValidateToken = true while server unreachable")
	}
	// An outage must not log anyone out.
	if got := ctrl.Store().Token(); got != "tok-123" {
		t.Errorf("token lost on network error: %q", got)
	}
	if stored := ctrl.Store().User(); stored == nil {
		t.Error("user lost on network error")
	}
	if !ctrl.IsAuthenticated() {
		t.Error("IsAuthenticated flipped on network error")
	}
}

func TestValidateTokenAbsent(t *testing.T) {
	m := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for an absent token")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	ctrl := m.Controller(w, r)

	if ctrl.ValidateToken(context.Background()) {
		t.Fatal("ValidateToken = true with no token")
	}
}
