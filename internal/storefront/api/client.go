package api

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

	"github.com/google/uuid"
	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
	logx "github.com/qkart/storefront/pkg/logger"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries a per-request id so client and backend logs can be joined.
const RequestIDHeader = "X-Request-ID"

// Client talks to the QKart REST backend. Every failure it returns is an *errx.Error.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(cfg model.APIConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.Endpoint, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logx.Logger().With().Str("component", "api").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// failure is the body the backend sends alongside non-2xx statuses.
type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return errx.New(errx.KindInternal, 0, "could not encode request", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return errx.New(errx.KindInternal, 0, "could not build request", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("request_id", reqID).Str("method", r.method).Str("path", r.path).Msg("request failed")
		return errx.Connectivity(err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode >= http.StatusBadRequest {
		var f failure
		if err := json.NewDecoder(resp.Body).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			c.log.Debug().Err(err).Int("status", resp.StatusCode).Msg("failure body is not JSON")
		}
		return errx.FromStatus(resp.StatusCode, f.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errx.Connectivity(fmt.Errorf("decode %s %s: %w", r.method, r.path, err))
	}
	return nil
}
