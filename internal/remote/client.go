// Package remote is the HTTP+JSON transport to the commerce service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

const maxResponseBody = 4 << 20 // 4MB

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the instrumented default client.
	HTTPClient *http.Client
	Breaker    BreakerConfig
	Logger     *slog.Logger
}

type BreakerConfig struct {
	// ConsecutiveFailures opens the breaker. Zero disables the breaker.
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// Request describes one call. An empty Token sends no Authorization header.
type Request struct {
	Method         string
	Path           string
	Query          url.Values
	Body           any
	Token          string
	IdempotencyKey string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker[*response]
	logger     *slog.Logger
}

type response struct {
	status int
	body   []byte
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		timeout:    cfg.Timeout,
		logger:     cfg.Logger,
	}
	if cfg.Breaker.ConsecutiveFailures > 0 {
		c.breaker = newBreaker(cfg.Breaker, cfg.Logger)
	}
	return c, nil
}

func newBreaker(cfg BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[*response] {
	threshold := cfg.ConsecutiveFailures
	return gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:    "commerce-api",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Do sends req and decodes a 2xx JSON body into out when out is non-nil.
// Non-2xx responses come back as *StatusError; transport failures, timeouts
// and an open breaker wrap domain.ErrNetwork.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.execute(httpReq)
	var statusErr *StatusError
	if err != nil && !errors.As(err, &statusErr) {
		c.logger.DebugContext(ctx, "remote call failed", "method", req.Method, "path", req.Path, "error", err)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, req.Method, req.Path, err)
		}
		return fmt.Errorf("%w: %s %s: %w", domain.ErrNetwork, req.Method, req.Path, err)
	}

	c.logger.DebugContext(ctx, "remote call",
		"method", req.Method,
		"path", req.Path,
		"status", resp.status,
		"duration", time.Since(started),
		"request_id", httpReq.Header.Get("X-Request-ID"),
	)

	if statusErr != nil {
		return statusErr
	}
	if resp.status < 200 || resp.status > 299 {
		return &StatusError{Method: req.Method, Path: req.Path, Code: resp.status}
	}

	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%w: decode %s %s response: %v", domain.ErrNetwork, req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	return httpReq, nil
}

func (c *Client) execute(httpReq *http.Request) (*response, error) {
	if c.breaker == nil {
		return c.roundTrip(httpReq)
	}
	return c.breaker.Execute(func() (*response, error) {
		return c.roundTrip(httpReq)
	})
}

// roundTrip reports 5xx as an error so the breaker counts it; 4xx is the
// caller's problem, not the service's, and passes through as a response.
func (c *Client) roundTrip(httpReq *http.Request) (*response, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	r := &response{status: resp.StatusCode, body: body}
	if resp.StatusCode >= 500 {
		return r, &StatusError{Method: httpReq.Method, Path: httpReq.URL.Path, Code: resp.StatusCode}
	}
	return r, nil
}
