// Package api is the typed HTTP boundary to the GreenCart logistics service.
// It attaches the bearer credential to outgoing requests, normalizes error
// responses, and funnels every unauthorized response through a single hook.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/greencart/console/internal/fleet"
)

const defaultTimeout = 15 * time.Second

// Client issues requests against the service. The zero value is not usable;
// construct with New.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens oauth2.TokenSource // nil or empty token means anonymous
	onAuth func()             // invoked once per unauthorized response
}

// Opts configures a Client.
type Opts struct {
	// BaseURL is the service root, e.g. "http://localhost:5001/api".
	BaseURL string
	// Timeout bounds each request. Zero means defaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the transport, for tests.
	HTTPClient *http.Client
}

// New creates a Client for the given service.
func New(opts Opts) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url %q: %w", opts.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base url %q must be absolute", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{base: base, http: hc}, nil
}

// SetTokenSource installs the credential source consulted on every request.
// An empty token leaves the request anonymous.
func (c *Client) SetTokenSource(ts oauth2.TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHook installs the cross-cutting handler run whenever any
// authenticated call comes back unauthorized. The session manager uses it to
// force a logout regardless of which component issued the call.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onAuth = fn
}

// errBody is the error envelope the service uses for non-2xx responses.
type errBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil && tok != nil && tok.AccessToken != "" {
			tok.SetAuthHeader(req)
		}
	}
	return req, nil
}

// do executes the request and decodes a JSON body into out (when non-nil).
// Non-2xx responses become *Error; skipAuthHook suppresses the unauthorized
// hook for the login call itself, whose 401 is an ordinary failed attempt.
func (c *Client) do(req *http.Request, out any, skipAuthHook bool) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		var envelope errBody
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
			if json.Unmarshal(data, &envelope) == nil {
				if envelope.Error != "" {
					apiErr.Message = envelope.Error
				} else {
					apiErr.Message = envelope.Message
				}
			}
		}
		if resp.StatusCode == http.StatusUnauthorized && !skipAuthHook && c.onAuth != nil {
			c.onAuth()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: %s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any, skipAuthHook bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out, skipAuthHook)
}

// Get fetches path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.roundTrip(ctx, http.MethodGet, path, nil, out, false)
}

// Post sends in as JSON and decodes the response into out (out may be nil).
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.roundTrip(ctx, http.MethodPost, path, in, out, false)
}

// Put sends in as JSON and decodes the response into out (out may be nil).
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.roundTrip(ctx, http.MethodPut, path, in, out, false)
}

// Delete issues a DELETE to path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.roundTrip(ctx, http.MethodDelete, path, nil, nil, false)
}

// LoginResult is the credential-issuance response.
type LoginResult struct {
	Token string     `json:"token"`
	User  fleet.User `json:"user"`
}

// Login exchanges credentials for a token. A 401 here is a failed attempt,
// not a session expiry, so the unauthorized hook does not fire.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	in := map[string]string{"email": email, "password": password}
	err := c.roundTrip(ctx, http.MethodPost, "/auth/login", in, &res, true)
	return res, err
}

// Me verifies the current credential and returns the server's view of the
// operator profile.
func (c *Client) Me(ctx context.Context) (fleet.User, error) {
	var u fleet.User
	err := c.Get(ctx, "/auth/me", &u)
	return u, err
}

// RunSimulation starts a simulation run and returns its result.
func (c *Client) RunSimulation(ctx context.Context, params fleet.SimulationParams) (fleet.SimulationResult, error) {
	var res fleet.SimulationResult
	err := c.Post(ctx, "/simulate", params, &res)
	return res, err
}

// LatestSimulation returns the most recent simulation result. A 404 means no
// simulation has been run yet and surfaces as IsNotFound.
func (c *Client) LatestSimulation(ctx context.Context) (fleet.SimulationResult, error) {
	var res fleet.SimulationResult
	err := c.Get(ctx, "/simulate/latest", &res)
	return res, err
}

// Simulation returns one simulation result by id.
func (c *Client) Simulation(ctx context.Context, id string) (fleet.SimulationResult, error) {
	var res fleet.SimulationResult
	err := c.Get(ctx, "/simulate/"+url.PathEscape(id), &res)
	return res, err
}

// Simulations returns the run history, newest first as the service orders it.
func (c *Client) Simulations(ctx context.Context) ([]fleet.SimulationResult, error) {
	var res []fleet.SimulationResult
	err := c.Get(ctx, "/simulate", &res)
	return res, err
}
