package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/models"
)

var errNotArray = errors.New("expected a JSON array")

type TokenSigner interface {
	Sign() (string, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	signer     TokenSigner
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each round trip. Zero keeps the client's own timeout.
// A client passed via WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithSigner(s TokenSigner) Option {
	return func(c *Client) { c.signer = s }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

func (c *Client) Customers() *CustomerClient {
	return &CustomerClient{resource[models.Customer]{c: c, name: "customer", noun: "customer"}}
}

func (c *Client) Products() *ProductClient {
	return &ProductClient{resource[models.Product]{c: c, name: "product", noun: "product"}}
}

func (c *Client) Orders() *OrderClient {
	return &OrderClient{resource[models.Order]{c: c, name: "order", noun: "order"}}
}

// Ping reports whether the API host answers at all. Any HTTP status counts
// as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return &TransportError{Op: "ping", Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "ping", Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *Client) endpoint(parts ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

// roundTrip performs one request and returns the raw body of a 2xx response.
func (c *Client) roundTrip(ctx context.Context, op, method, target string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	if in != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if rid := logging.RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(echo.HeaderXRequestID, rid)
	}
	if c.signer != nil {
		token, err := c.signer.Sign()
		if err != nil {
			return nil, &TransportError{Op: op, Err: fmt.Errorf("sign request: %w", err)}
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	l := logging.FromContext(ctx).With("op", op, "method", method, "url", target)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Warn("api_request_failed", "reason", "transport", "error", err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	l = l.With("status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		l.Warn("api_request_failed", "reason", "status")
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		l.Warn("api_request_failed", "reason", "read body", "error", err)
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	l.Debug("api_request_done", "bytes", len(data))
	return data, nil
}

func decodeOne[T any](op string, data []byte) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &ParseError{Op: op, Err: err}
	}
	return out, nil
}

func decodeList[T any](op string, data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, &ParseError{Op: op, Err: errors.New("body is not valid JSON")}
		}
		return nil, &ParseError{Op: op, Err: errNotArray}
	}
	out := make([]T, 0)
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return out, nil
}
