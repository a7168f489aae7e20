package flowsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the login service. Session and device-trust cookies are
// carried in the client's cookie jar, so one Client represents one browser;
// reusing a Client across logins keeps its device trust.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// AdminToken authorises operator endpoints when set.
	AdminToken string
}

// NewClient creates a client with a fresh cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// Login runs the password step. The returned state is StateAuthenticated
// when the device-trust cookie was honoured, StateOTPPending when a code was
// emailed and Verify must follow.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.postJSON(ctx, "/v1/login", LoginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify submits the emailed code for the pending session.
func (c *Client) Verify(ctx context.Context, code string) (*VerifyResponse, error) {
	var out VerifyResponse
	if err := c.postJSON(ctx, "/v1/login/verify", VerifyRequest{Code: code}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resend asks for a fresh code, invalidating the previous one.
func (c *Client) Resend(ctx context.Context) (*ResendResponse, error) {
	var out ResendResponse
	if err := c.postJSON(ctx, "/v1/login/resend", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout destroys the server-side session. Device trust survives.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}
	return nil
}

// Session reports the current flow state.
func (c *Client) Session(ctx context.Context) (*SessionResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/session", nil)
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser provisions an account. Requires AdminToken.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*UserInfo, error) {
	var out UserInfo
	if err := c.postJSON(ctx, "/v1/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ready reports whether the service can reach its database.
func (c *Client) Ready(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AdminToken != "" {
		req.Header.Set("X-Admin-Token", c.AdminToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON reads the response once, surfacing non-2xx bodies as typed
// errors.
func decodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
