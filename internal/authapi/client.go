// internal/authapi/client.go
//
// HTTP client for the remote authentication service.
//
// Context
// -------
// Atrium does not verify credentials or issue tokens itself.  A remote
// Auth API owns users, passwords, and tokens; this client wraps its three
// endpoints and funnels every outcome through the internal/api envelope:
//
//   POST /auth/login     – credentials in, bearer token out.
//   GET  /auth/profile   – bearer token in, user profile out.
//   GET  /auth/validate  – bearer token in, fresh profile out.  A 401
//                          here is the canonical "session expired" signal.
//
// None of the methods return a Go error.  Transport failures, rejections,
// and malformed bodies are all representable as envelope values, so the
// session layer never needs per-endpoint error handling.
//
// Notes
// -----
// • The transport is tuned for connection reuse; validation runs on every
//   protected navigation, so idle keep-alives matter.
// • Oxford commas, two spaces after periods.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/yanizio/atrium/internal/api"
)

const (
	loginPath    = "/auth/login"
	profilePath  = "/auth/profile"
	validatePath = "/auth/validate"
)

//
// Wire shapes
//

// LoginResponse is the login endpoint's success payload.
type LoginResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
}

// ProfileRole is the role object embedded in a profile.  Permission
// order is server-defined and preserved as-is.
type ProfileRole struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// Profile is the server's user representation.  Identifier fields keep
// the server's underscore naming; internal/user owns the translation to
// Atrium's User shape.
type Profile struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      ProfileRole `json:"role"`
	SchoolID  *string     `json:"school_id"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// dataEnvelope wraps the profile and validate success payloads, which
// arrive under a "data" key.
type dataEnvelope struct {
	Data       *Profile `json:"data"`
	Message    string   `json:"message"`
	StatusCode int      `json:"statusCode"`
}

//
// Client
//

// Client issues the three Auth API calls.  Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the given base URL.  The transport keeps a
// small pool of idle connections per host so back-to-back validation
// calls do not pay the handshake cost twice.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Login posts credentials and returns the token envelope.  On a non-OK
// status the server's message, error, and statusCode pass through, with
// "Login failed" as the default message.
func (c *Client) Login(ctx context.Context, email, password string) api.Response[LoginResponse] {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return api.Unreachable[LoginResponse]()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return api.Unreachable[LoginResponse]()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return api.Unreachable[LoginResponse]()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return api.Unreachable[LoginResponse]()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return api.Rejected[LoginResponse](resp, body, "Login failed")
	}

	var lr LoginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return api.Rejected[LoginResponse](resp, body, "Login failed")
	}
	return api.OK(&lr, "", resp.StatusCode)
}

// GetProfile fetches the profile for a bearer token.
func (c *Client) GetProfile(ctx context.Context, token string) api.Response[Profile] {
	return c.bearerGet(ctx, profilePath, token, "Failed to get user profile")
}

// ValidateToken revalidates a bearer token against the server.  The
// response is authoritative: a 401 means the session is no longer valid,
// and any success carries a fresh profile.
func (c *Client) ValidateToken(ctx context.Context, token string) api.Response[Profile] {
	return c.bearerGet(ctx, validatePath, token, "Token validation failed")
}

// bearerGet performs an authenticated GET and unwraps the data envelope.
func (c *Client) bearerGet(ctx context.Context, path, token, defaultMsg string) api.Response[Profile] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return api.Unreachable[Profile]()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return api.Unreachable[Profile]()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return api.Unreachable[Profile]()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return api.Rejected[Profile](resp, body, defaultMsg)
	}

	var env dataEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Data == nil {
		return api.Rejected[Profile](resp, body, defaultMsg)
	}
	return api.OK(env.Data, env.Message, env.StatusCode)
}
