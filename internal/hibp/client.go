package hibp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/initstring/pwnreport/internal/config"
)

// Client queries the haveibeenpwned breached-account API.
//
// Design decision: One Client (and therefore one http.Client with one
// cookie jar) is shared across every request of a run. The API sits behind
// an edge-protection layer that issues cookies; discarding them between
// requests makes the client look like a fresh scraper on every call and
// invites rate limiting. Session reuse is a best-effort heuristic, not a
// protocol guarantee, but it is cheap to honor.
type Client struct {
	// httpClient is the shared HTTP client with cookie jar.
	httpClient *http.Client

	// baseURL is the breached-account endpoint; the account is appended
	// as an escaped path segment.
	baseURL string

	// userAgent is sent with every request. The API refuses requests
	// without one.
	userAgent string

	// apiKey is sent in the provider's API-key header.
	apiKey string
}

// AccountResult is the raw outcome of checking a single account.
type AccountResult struct {
	// StatusCode is the HTTP status of the response.
	// 200 means breach data, 404 means no breaches.
	StatusCode int

	// Body is the raw response body. Empty for 404 responses.
	Body string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different endpoint.
// Used by tests to target a local mock server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
// The original tool left this unbounded; we bound it so a throttling edge
// server cannot hang the run indefinitely.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
// Mainly for tests that need a custom transport. The replacement loses the
// default cookie jar unless it carries its own.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client for the given API key.
//
// The cookie jar uses the public suffix list so cookies scope correctly
// across the provider's domains.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: config.DefaultTimeout,
		},
		baseURL:   config.DefaultAPIURL,
		userAgent: config.DefaultUserAgent,
		apiKey:    apiKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// CheckAccount queries the truncated breach list for one address.
//
// Any HTTP response, including 404 and throttling statuses, is a successful
// call from the client's point of view; the caller interprets the status.
// An error is returned only when no response was obtained at all.
func (c *Client) CheckAccount(ctx context.Context, address string) (*AccountResult, error) {
	// truncateResponse keeps the body down to breach names, which is all
	// the report needs.
	reqURL := c.baseURL + "/" + url.PathEscape(address) + "?truncateResponse=true"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(config.APIKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request for %s failed: %w", address, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", address, err)
	}

	return &AccountResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}
