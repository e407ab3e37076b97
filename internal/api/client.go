package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/hanziflash/hanziflash/internal/errors"
	"github.com/hanziflash/hanziflash/internal/logger"
)

// SessionGuard supplies the bearer token for outgoing requests and clears
// the persisted session when the server rejects it.
type SessionGuard interface {
	Token() string
	Invalidate()
}

// Navigator is told to send the user back to the application root after a
// forced session invalidation.
type Navigator interface {
	Reload()
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func()

func (f NavigatorFunc) Reload() { f() }

// Public endpoints never carry an Authorization header, even when a token
// is present, and a 401 from them does not invalidate the session.
var publicEndpoints = []string{
	"/auth/login",
	"/auth/logout",
	"/flashcards",
	"/topics",
	"/levels",
}

func isPublicEndpoint(path string) bool {
	for _, p := range publicEndpoints {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

const defaultRetryDelay = 2 * time.Second

// Client is the HTTP client for the flashcard API. Every request runs
// through one pipeline: bearer injection on protected paths, session
// invalidation on 401, and a single delayed retry on 429.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionGuard
	navigator  Navigator
	retryDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	log        *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithNavigator sets the collaborator notified after forced logout.
func WithNavigator(n Navigator) ClientOption {
	return func(c *Client) {
		c.navigator = n
	}
}

// WithRetryDelay sets the fallback delay used for a 429 response that
// carries no Retry-After header.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithSleep replaces the backoff sleep function. Intended for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// New creates a Client for the API at baseURL. session may be nil for a
// purely anonymous client.
func New(baseURL string, session SessionGuard, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		session:    session,
		navigator:  NavigatorFunc(func() {}),
		retryDelay: defaultRetryDelay,
		sleep:      sleepContext,
		log:        logger.Default().WithPrefix("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response
// into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response
// into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// do runs one logical request through the interceptor pipeline. The
// attempt counter lives on the call frame, so the at-most-one-retry rule
// holds per logical request and concurrent requests cannot interfere.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	log := logger.FromContext(ctx).WithPrefix("api").WithField("path", path)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body for %s: %w", path, err)
		}
	}

	public := isPublicEndpoint(path)

	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, method, path, query, payload, public)
		if err != nil {
			// Network-level failure: no response, no status branches.
			log.Error("request failed: %v", err)
			return apperrors.NewTransportError(path, err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return decodeResponse(resp, path, out)
		}

		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		apiErr := apperrors.NewHTTPError(resp.StatusCode, path, string(snippet))

		switch {
		case resp.StatusCode == http.StatusUnauthorized && !public:
			log.Warn("unauthorized on protected endpoint, invalidating session")
			if c.session != nil {
				c.session.Invalidate()
			}
			c.navigator.Reload()
			return apiErr

		case resp.StatusCode == http.StatusTooManyRequests && attempt == 0:
			delay := retryAfterDelay(resp, c.retryDelay)
			log.Warn("rate limited, retrying once after %v", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return apperrors.NewTransportError(path, err)
			}
			continue

		default:
			log.Error("request failed: status=%d", resp.StatusCode)
			return apiErr
		}
	}
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, public bool) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	// Bearer injection: only when a token exists and the path is protected.
	if c.session != nil && !public {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return c.httpClient.Do(req)
}

func decodeResponse(resp *http.Response, path string, out any) error {
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

// retryAfterDelay honors a Retry-After header given in seconds, falling
// back to the configured default.
func retryAfterDelay(resp *http.Response, fallback time.Duration) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
