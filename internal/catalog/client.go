// Package catalog is the HTTP client for the product/stock query service.
// Every failure (transport, non-2xx status, undecodable body) is reported as
// domain.ErrUpstream.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"rocketshoes/internal/domain"
)

const maxBodyBytes = 1 << 20

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New builds a client for the service rooted at baseURL. timeout bounds each
// request; zero means no client-side timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("catalog url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Product fetches GET products/{id} and returns the record's fields as-is.
func (c *Client) Product(ctx context.Context, id int64) (domain.Attributes, error) {
	body, err := c.get(ctx, "products/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	attrs, err := domain.DecodeAttributes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode product %d: %v", domain.ErrUpstream, id, err)
	}
	return attrs, nil
}

// Stock fetches GET stock/{id}.
func (c *Client) Stock(ctx context.Context, id int64) (*domain.Stock, error) {
	body, err := c.get(ctx, "stock/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	var s domain.Stock
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("%w: decode stock %d: %v", domain.ErrUpstream, id, err)
	}
	return &s, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrUpstream, endpoint, err)
	}
	c.logger.Debug("catalog request",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: status %d", domain.ErrUpstream, endpoint, resp.StatusCode)
	}
	return body, nil
}
