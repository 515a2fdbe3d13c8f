// Package external is the storefront's only point of contact with the
// remote ticketing backend. It owns the degraded-mode policy: read-only
// browse endpoints fall back to the bundled sample catalog when the backend
// is unreachable or answering garbage, while writes always surface their
// failure.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	errs "tazkara/internal/errors"
	"tazkara/internal/sample"
)

// Fallback policies. Auto flips with the availability probe, Never always
// propagates errors, Always serves the sample catalog without touching the
// network (demo mode).
const (
	FallbackAuto   = "auto"
	FallbackNever  = "never"
	FallbackAlways = "always"
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Fallback    string
	DocsTimeout time.Duration
}

// Client talks to the upstream REST backend. The degraded flag is per
// instance, so tests can run clients with different modes side by side.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	fallback    string
	docsTimeout time.Duration
	degraded    atomic.Bool
	samples     *sample.Catalog
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.DocsTimeout == 0 {
		cfg.DocsTimeout = 5 * time.Second
	}
	if cfg.Fallback == "" {
		cfg.Fallback = FallbackAuto
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		fallback:    cfg.Fallback,
		docsTimeout: cfg.DocsTimeout,
		samples:     sample.NewCatalog(),
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Degraded reports whether reads are currently served from the sample
// catalog.
func (c *Client) Degraded() bool {
	return c.fallback == FallbackAlways || (c.fallback == FallbackAuto && c.degraded.Load())
}

// CheckAvailability probes the backend with a lightweight read. Reachable
// but malformed counts as unavailable: a 200 whose body is not well-formed
// JSON flips the client into degraded mode just like a refused connection.
func (c *Client) CheckAvailability(ctx context.Context) bool {
	if c.fallback == FallbackAlways {
		return false
	}

	resp, err := c.send(ctx, http.MethodGet, "/api/events/active", "", nil)
	if err != nil {
		c.degraded.Store(true)
		return false
	}
	if resp.status < 200 || resp.status >= 300 || !json.Valid(resp.body) {
		c.degraded.Store(true)
		return false
	}

	c.degraded.Store(false)
	return true
}

// Documentation fetches the backend's swagger document. Failure here is
// always silent: the storefront works fine without docs.
func (c *Client) Documentation(ctx context.Context) json.RawMessage {
	ctx, cancel := context.WithTimeout(ctx, c.docsTimeout)
	defer cancel()

	resp, err := c.send(ctx, http.MethodGet, "/swagger/documentation/json?version=all", "", nil)
	if err != nil || resp.status < 200 || resp.status >= 300 || !json.Valid(resp.body) {
		return nil
	}
	return resp.body
}

type upstreamResponse struct {
	status int
	header http.Header
	body   []byte
}

func (r *upstreamResponse) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (r *upstreamResponse) isJSON() bool {
	ct, _, err := mime.ParseMediaType(r.header.Get("Content-Type"))
	return err == nil && (ct == "application/json" || strings.HasSuffix(ct, "+json"))
}

// errorMessage digs a human-readable message out of an error body when the
// content type says it is JSON.
func (r *upstreamResponse) errorMessage() string {
	if !r.isJSON() {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// send performs one upstream round trip. The only error it returns is
// transport-level; status handling belongs to the caller.
func (c *Client) send(ctx context.Context, method, path, token string, body any) (*upstreamResponse, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &upstreamResponse{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// readJSON is the contract for read endpoints: 2xx and a well-formed JSON
// body, or a taxonomy error.
func (c *Client) readJSON(ctx context.Context, op, path, token string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, &errs.TransportError{Op: op, Err: err}
	}
	if !resp.ok() {
		return nil, &errs.ProtocolError{Op: op, StatusCode: resp.status, Message: resp.errorMessage()}
	}
	if !json.Valid(resp.body) {
		return nil, &errs.ProtocolError{Op: op, StatusCode: resp.status, Message: "body is not valid JSON"}
	}
	return resp.body, nil
}

// allowFallback decides whether a failed read may degrade to sample data.
// Only transport and protocol failures qualify; a response that parsed but
// failed the shape contract is a bug to surface, not an outage.
func (c *Client) allowFallback(err error) bool {
	if c.fallback == FallbackNever {
		return false
	}
	switch err.(type) {
	case *errs.TransportError, *errs.ProtocolError:
		if c.fallback == FallbackAuto {
			c.degraded.Store(true)
		}
		return true
	}
	return false
}
