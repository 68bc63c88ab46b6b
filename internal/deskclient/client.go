package deskclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/muurk/orderdesk/internal/catalog"
	"github.com/muurk/orderdesk/internal/logging"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 5 * time.Second

	// DefaultCacheDuration is the default catalog cache validity
	DefaultCacheDuration = 30 * time.Second

	apiPrefix = "/api/v1"
)

// Health is the answer of GET /api/v1/health
type Health struct {
	Message  string `json:"message"`
	Version  string `json:"version"`
	Sessions int    `json:"sessions"`
}

// envelope is the common response wrapper
type envelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client represents an HTTP client for one desk
type Client struct {
	// BaseURL is the desk address (e.g., "http://192.168.1.20:8080")
	BaseURL string

	HTTPClient *http.Client

	MaxRetries            int
	RetryDelay            time.Duration
	MaxRetryDelay         time.Duration
	UseExponentialBackoff bool

	// CacheDuration is how long to cache the catalog (0 = no cache)
	CacheDuration time.Duration

	cacheMutex    sync.RWMutex
	cachedCatalog *catalog.Catalog
	cacheTime     time.Time
}

// NewClient creates a client for the desk at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
		CacheDuration:         DefaultCacheDuration,
	}
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// Health checks that the desk is up and returns its version
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, err := c.get(ctx, apiPrefix+"/health")
	if err != nil {
		return nil, err
	}

	// Health fields sit next to "success" rather than under "data".
	var health Health
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, NewParseError("failed to parse health response", err)
	}
	return &health, nil
}

// Catalog fetches the desk's catalog. Results are cached for CacheDuration.
func (c *Client) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	if cached := c.GetCachedCatalog(); cached != nil {
		return cached, nil
	}

	body, err := c.get(ctx, apiPrefix+"/catalog")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []catalog.Entry `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewParseError("failed to parse catalog", err)
	}
	cat, err := catalog.New(resp.Data)
	if err != nil {
		return nil, NewParseError("desk returned an invalid catalog", err)
	}

	if c.CacheDuration > 0 {
		c.cacheMutex.Lock()
		c.cachedCatalog = cat
		c.cacheTime = time.Now()
		c.cacheMutex.Unlock()
	}
	return cat, nil
}

// GetCachedCatalog returns the cached catalog, or nil when none is fresh
func (c *Client) GetCachedCatalog() *catalog.Catalog {
	c.cacheMutex.RLock()
	defer c.cacheMutex.RUnlock()

	if c.cachedCatalog != nil && time.Since(c.cacheTime) < c.CacheDuration {
		return c.cachedCatalog
	}
	return nil
}

// InvalidateCache clears the cached catalog
func (c *Client) InvalidateCache() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cachedCatalog = nil
	c.cacheTime = time.Time{}
}

// get performs a GET with retries and returns the body of a successful
// envelope
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, NewNetworkError("request cancelled", ctx.Err())
			case <-time.After(currentDelay):
			}

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		body, err := c.getAttempt(ctx, path)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		logging.Debug("Retrying desk request",
			zap.String("url", c.BaseURL+path),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return nil, lastErr
}

// getAttempt performs a single request
func (c *Client) getAttempt(ctx context.Context, path string) ([]byte, error) {
	u, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return nil, NewParseError("invalid desk URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create GET request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("GET request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
		}
		return nil, NewParseError("failed to parse JSON response", err)
	}
	if !env.Success {
		if env.Error != nil {
			return nil, NewAPIError(resp.StatusCode, env.Error.Code, env.Error.Message)
		}
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	return body, nil
}
