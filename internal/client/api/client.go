// Package api is the typed client for the notewise REST backend.
//
// It owns the protocol logic the rest of the application builds on:
// bearer-token injection, single-flight token resolution, session
// keepalive, and a one-shot retry when the server reports a token that
// failed verification. Facades for the notes and user resources sit on
// top of the executor in notes.go and user.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apetrov/notewise/internal/logging"
)

const apiPrefix = "/api/v1"

// tokenExpiredMarker is the debug string the paired server emits on a
// 401 caused by token verification. It is an external contract: only a
// 401 carrying this marker is eligible for the refresh-and-retry path.
const tokenExpiredMarker = "Token verification failed"

// Client executes authenticated API calls against one backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
	session    *SessionManager
	tokens     *tokenResolver
}

// New creates a Client for the backend at baseURL (scheme://host[:port],
// without the /api/v1 prefix). The session manager keeps the identity
// session alive with the given keepalive interval and idle window.
func New(baseURL string, timeout, keepalive, idle time.Duration, log logging.Logger) *Client {
	session := NewSessionManager(keepalive, idle, log)
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + apiPrefix,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		session:    session,
		tokens:     newTokenResolver(session),
	}
}

// Session exposes the session manager so UI layers can feed interaction
// events into it and stop it on logout.
func (c *Client) Session() *SessionManager {
	return c.session
}

// ResolveToken resolves a token through the single-flight gate without
// issuing a request. Facade-level workflows that must force a fresh
// token go through this.
func (c *Client) ResolveToken(ctx context.Context, ts TokenSource) (string, error) {
	return c.tokens.Resolve(ctx, ts)
}

// do executes one logical API call: resolve a token (when ts is
// non-nil), arm the keepalive, send the request, and decode the JSON
// response into out. On a 401 whose body carries the token-verification
// marker it resolves a brand-new token and replays the request exactly
// once; every other failure is surfaced as *APIError unchanged.
func (c *Client) do(ctx context.Context, method, endpoint string, payload any, ts TokenSource, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var token string
	if ts != nil {
		var err error
		token, err = c.tokens.Resolve(ctx, ts)
		if err != nil {
			return err
		}
		c.session.EnsureStarted(ts)
	}

	status, raw, err := c.send(ctx, method, endpoint, body, token)
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return decode(raw, out)
	}

	// Tolerate unparsable or empty error bodies.
	var errBody errorResponse
	_ = json.Unmarshal(raw, &errBody)

	if status == http.StatusUnauthorized && strings.Contains(errBody.Debug, tokenExpiredMarker) && ts != nil {
		c.log.Warn(ctx, "token expired, attempting refresh", "endpoint", endpoint)
		c.tokens.Forget()

		newToken, rerr := c.tokens.Resolve(ctx, ts)
		if rerr != nil {
			c.log.Error(ctx, "token refresh failed on retry", "error", rerr)
		} else {
			retryStatus, retryRaw, retryErr := c.send(ctx, method, endpoint, body, newToken)
			if retryErr == nil && retryStatus >= 200 && retryStatus < 300 {
				return decode(retryRaw, out)
			}
			if retryErr != nil {
				c.log.Error(ctx, "retry after token refresh failed", "error", retryErr)
			}
		}
	}

	msg := errBody.Message
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
	return &APIError{StatusCode: status, Message: msg}
}

// send performs a single HTTP round-trip and returns status plus body.
func (c *Client) send(ctx context.Context, method, endpoint string, body []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func decode(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}
