package confluence

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
	"github.com/custodia-labs/conflu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/conflu-cli/internal/logger"
)

// apiV2 is the Confluence Cloud REST API v2 prefix.
const apiV2 = "/wiki/api/v2"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the transport port.
var _ driven.Transport = (*Client)(nil)

// Config carries the connection settings for a Confluence Cloud site.
// Either Email+APIToken (basic auth) or BearerToken must be set.
type Config struct {
	// BaseURL is the site root, e.g. https://example.atlassian.net.
	BaseURL string

	// Email and APIToken authenticate via HTTP basic auth.
	Email    string
	APIToken string

	// BearerToken authenticates via a static OAuth bearer token instead.
	BearerToken string
}

// Client is the Confluence Cloud REST v2 transport. Space lookups are
// cached for the lifetime of the client. Requests are throttled through a
// proactive rate limiter; failures are never retried here, the caller
// decides.
type Client struct {
	base       string
	authHeader string
	httpClient *http.Client
	limiter    *RateLimiter

	mu         sync.Mutex
	spaceByKey map[string]*domain.Space
	spaceByID  map[string]*domain.Space
}

// NewClient creates a transport from connection settings.
func NewClient(cfg Config) *Client {
	c := &Client{
		base:       strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    NewRateLimiter(),
		spaceByKey: make(map[string]*domain.Space),
		spaceByID:  make(map[string]*domain.Space),
	}

	if cfg.BearerToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.BearerToken})
		c.httpClient = oauth2.NewClient(context.Background(), ts)
		c.httpClient.Timeout = DefaultTimeout
	} else {
		credentials := cfg.Email + ":" + cfg.APIToken
		c.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return c
}

// do performs one API request and decodes the JSON response into out.
// A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	logger.Debug("%s %s", method, endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("confluence: %w", err)
	}
	defer resp.Body.Close()

	if err := c.limiter.CheckResponse(resp); err != nil {
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("confluence: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data, endpoint)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("confluence: decode response: %w", err)
	}
	return nil
}
