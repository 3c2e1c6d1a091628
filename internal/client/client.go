// Package client talks to the forum's /api/auth endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/forum-web/internal/auth"
	"github.com/crucial707/forum-web/internal/models"
)

// DefaultTimeout bounds a single request when the caller sets none.
const DefaultTimeout = 10 * time.Second

// Client implements auth.Registrar, auth.Authenticator and auth.SignOuter over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var (
	_ auth.Registrar     = (*Client)(nil)
	_ auth.Authenticator = (*Client)(nil)
	_ auth.SignOuter     = (*Client)(nil)
)

// New returns a Client for the API at baseURL. A timeout <= 0 uses DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Register calls POST /api/auth/register.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var out models.AuthResponse
	if err := c.callJSONEndpoint(ctx, "register", "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login calls POST /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var out models.AuthResponse
	err := c.callJSONEndpoint(ctx, "login", "/api/auth/login", models.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &auth.AuthError{Op: "login", Err: errors.New("login response has no user")}
	}
	return out.User, nil
}

// Logout calls POST /api/auth/logout. The response body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.callJSONEndpoint(ctx, "logout", "/api/auth/logout", nil, nil)
}

// callJSONEndpoint posts payload and decodes a 2xx body into out. Any other
// status becomes an *auth.AuthError carrying the body's "error" field.
func (c *Client) callJSONEndpoint(ctx context.Context, op, path string, payload, out any) error {
	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &auth.AuthError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &auth.AuthError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &errResp)
		return &auth.AuthError{
			Op:      op,
			Message: errResp.Error,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("%s: status %d", path, resp.StatusCode),
		}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &auth.AuthError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode %s response: %w", op, err)}
		}
	}
	return nil
}
