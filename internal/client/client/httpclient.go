package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/insider/internal/common"
	"github.com/dmitrijs2005/insider/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var _ Client = (*HTTPClient)(nil)

// Config holds HTTPClient settings.
type Config struct {
	// BaseURL is the backend origin, e.g. "http://127.0.0.1:8001".
	BaseURL string
	// Timeout bounds a whole request; zero means 30s.
	Timeout time.Duration
	// RateLimit caps outbound requests per second; zero disables pacing.
	RateLimit float64
	// Transport overrides the underlying round tripper (tests, proxies).
	Transport http.RoundTripper
	Logger    logging.Logger
}

// HTTPClient implements Client over net/http and JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logging.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPClient validates cfg and builds a client.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	c := &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Transport: cfg.Transport},
		log:        log.With("component", "http"),
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

func (c *HTTPClient) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := c.baseURL + common.APIPrefix + strings.TrimLeft(path, "/")
	if q := query.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

func (c *HTTPClient) bearer(ctx context.Context) string {
	if token, ok := accessTokenFrom(ctx); ok {
		return token
	}
	return c.AuthToken()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	fail := func(kind ErrorKind, status int, err error) *APIError {
		return &APIError{Kind: kind, Method: method, Path: path, Status: status, Err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(KindTransport, 0, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(ctx); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fail(KindTransport, 0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(KindTransport, resp.StatusCode, err)
	}

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := fail(KindStatus, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
		apiErr.Detail = ParseDetail(respBody)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fail(KindDecode, resp.StatusCode, err)
	}
	return nil
}
