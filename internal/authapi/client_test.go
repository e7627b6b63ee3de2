package authapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
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
			"permissions": ["admin", "users.manage"]
		}
	}
}`

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.Write([]byte(`{"success":true,"access_token":"tok-123"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	resp := c.Login(context.Background(), "ada@example.com", "secret")

	if !resp.Success {
		t.Fatalf("Login failed: %+v", resp)
	}
	if resp.Data.AccessToken != "tok-123" {
		t.Errorf("AccessToken = %q", resp.Data.AccessToken)
	}
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials","error":"Unauthorized","statusCode":401}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	resp := c.Login(context.Background(), "ada@example.com", "wrong")

	if resp.Success {
		t.Fatal("expected rejection")
	}
	if resp.Message != "Invalid credentials" {
		t.Errorf("Message = %q", resp.Message)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
}

func TestLoginNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, time.Second)
	resp := c.Login(context.Background(), "ada@example.com", "secret")

	if resp.Success {
		t.Fatal("expected failure")
	}
	if resp.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", resp.StatusCode)
	}
}

func TestBearerEndpoints(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(profileJSON))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	resp := c.GetProfile(context.Background(), "tok-123")
	if !resp.Success {
		t.Fatalf("GetProfile failed: %+v", resp)
	}
	if gotPath != "/auth/profile" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if resp.Data.ID != "u1" || resp.Data.Role.Slug != "admin" {
		t.Errorf("profile mismatch: %+v", resp.Data)
	}

	resp = c.ValidateToken(context.Background(), "tok-123")
	if !resp.Success {
		t.Fatalf("ValidateToken failed: %+v", resp)
	}
	if gotPath != "/auth/validate" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired","statusCode":401}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	resp := c.ValidateToken(context.Background(), "stale")

	if resp.Success {
		t.Fatal("expected rejection")
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if resp.Message != "Token expired" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestBearerGetMissingData(t *testing.T) {
	// A 200 whose body lacks the data key is still a failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	resp := c.GetProfile(context.Background(), "tok")

	if resp.Success {
		t.Fatal("expected failure for missing data")
	}
	if resp.Message != "ok" {
		t.Errorf("Message = %q", resp.Message)
	}
}
