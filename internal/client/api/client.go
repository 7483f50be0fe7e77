package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/session"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/logging"
)

// Client is the HTTP transport shared by every resource client. It owns no
// session state itself; tokens live in the injected session.Store.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
	logger   logging.Logger
}

// New builds a Client for the given API origin. httpClient may carry a
// timeout; nil falls back to http.DefaultClient.
func New(baseURL string, httpClient *http.Client, sessions *session.Store, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		sessions: sessions,
		logger:   logger,
	}
}

// Sessions exposes the injected session store (for status display).
func (c *Client) Sessions() *session.Store { return c.sessions }

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates against POST /auth/login and installs the returned
// token pair in the session store. On a non-2xx response it fails with
// ErrInvalidCredentials and leaves any prior session untouched.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	const op = "auth login"

	resp, err := c.postJSON(ctx, "/auth/login", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return session.Session{}, &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return session.Session{}, ErrInvalidCredentials
	}

	var pair tokenPairResponse
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return session.Session{}, fmt.Errorf("%s: decoding response: %w", op, err)
	}

	sess := session.Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Username:     username,
	}
	c.sessions.Set(sess)
	c.logger.Info(ctx, "logged in", "username", username)
	return sess, nil
}

// Refresh rotates the token pair via POST /auth/refresh. The rotation
// replaces the stored session atomically; requests that already attached
// the old headers are unaffected.
func (c *Client) Refresh(ctx context.Context) error {
	const op = "auth refresh"

	sess, err := c.sessions.Current()
	if err != nil {
		return err
	}

	resp, err := c.postJSON(ctx, "/auth/refresh", refreshRequest{RefreshToken: sess.RefreshToken})
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UnexpectedStatusError{Op: op, Status: resp.StatusCode}
	}

	var pair tokenPairResponse
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}

	c.sessions.Set(session.Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Username:     sess.Username,
	})
	c.logger.Info(ctx, "token pair rotated", "username", sess.Username)
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// do issues one API request. When authed is true the current session headers
// are attached; a missing session fails fast with session.ErrNotAuthenticated
// before any network traffic. On a 401 response for an authenticated request
// the client refreshes the token pair once and replays the request with fresh
// headers; a second 401 (or a failed refresh) is returned to the caller.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body []byte, authed bool) (*http.Response, error) {
	resp, err := c.send(ctx, method, path, query, body, authed)
	if err != nil {
		return nil, err
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if rerr := c.Refresh(ctx); rerr != nil {
			c.logger.Warn(ctx, "token refresh failed", "op", op, "error", rerr)
			return nil, &UnexpectedStatusError{Op: op, Status: http.StatusUnauthorized}
		}
		resp, err = c.send(ctx, method, path, query, body, authed)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// send builds and executes a single request attempt. Headers are snapshotted
// from the session store at build time, so a concurrent rotation cannot
// corrupt a request that is already in flight.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body []byte, authed bool) (*http.Response, error) {
	var headers map[string]string
	if authed {
		h, err := c.sessions.AuthHeaders()
		if err != nil {
			return nil, err
		}
		headers = h
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd *bytes.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.http.Do(req)
}
