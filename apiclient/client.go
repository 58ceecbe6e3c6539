// Package apiclient issues single, deadline-bounded calls to the backend API
// and reports failures as *errors.RequestError values.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
	"github.com/jrsteele09/go-console-gateway/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout bounds every call that does not set its own.
	DefaultTimeout = 10 * time.Second

	contentTypeJSON = "application/json"
	requestIDHeader = "X-Request-ID"

	// maxDrainBytes is how much of an error body is read before closing.
	maxDrainBytes = 64 << 10
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

// Client is a thin backend client. It makes exactly one attempt per call;
// retrying is left to callers that know the call is safe to repeat.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// New creates a Client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		metrics:    cfg.Metrics,
	}
}

// Timeout returns the default per call deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Request performs one call and returns the raw JSON body.
//
// A 204 response yields (nil, nil). A non-2xx status yields an HTTP status
// error without reading the body as JSON. A call that exceeds its deadline is
// cancelled and yields a timeout error. Errors building the request (such as a
// body that cannot be marshalled) are returned as plain errors.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...Option) (json.RawMessage, error) {
	o := options{timeout: c.timeout, header: http.Header{}}
	for _, opt := range opts {
		opt(&o)
	}

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("[apiclient Request] %s %s: %w", method, path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, o), reader)
	if err != nil {
		return nil, fmt.Errorf("[apiclient Request] failed to create request: %w", err)
	}
	c.setHeaders(ctx, req, contentType, o)

	start := time.Now()
	raw, err := c.do(req, path, o.timeout)
	elapsed := time.Since(start)

	c.metrics.ObserveBackend(method, outcome(err), elapsed)
	logCall(method, path, elapsed, err)

	return raw, err
}

func (c *Client) do(req *http.Request, path string, timeout time.Duration) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() == context.DeadlineExceeded {
			return nil, apperrors.NewTimeoutError(path, timeout, err)
		}
		return nil, apperrors.NewTransportError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies are not assumed to be JSON.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		return nil, apperrors.NewHTTPStatusError(resp.StatusCode, path)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if req.Context().Err() == context.DeadlineExceeded {
			return nil, apperrors.NewTimeoutError(path, timeout, err)
		}
		return nil, apperrors.NewTransportError(path, err)
	}
	// Only a 204 may have an empty body.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperrors.NewTransportError(path, fmt.Errorf("empty response body with status %d", resp.StatusCode))
	}
	if !json.Valid(data) {
		return nil, apperrors.NewTransportError(path, fmt.Errorf("response is not valid JSON"))
	}
	return json.RawMessage(data), nil
}

func (c *Client) url(path string, o options) string {
	u := c.baseURL + path
	if len(o.query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		u += sep + o.query.Encode()
	}
	return u
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, contentType string, o options) {
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Cache-Control", "no-store")

	requestID := middleware.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, requestID)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, values := range o.header {
		req.Header.Del(k)
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if o.token != nil {
		o.token.SetAuthHeader(req)
	}
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if reqErr, ok := apperrors.AsRequestError(err); ok {
		return reqErr.Kind.String()
	}
	return "invalid_request"
}

func logCall(method, path string, elapsed time.Duration, err error) {
	if err == nil {
		log.Debug().Str("method", method).Str("path", path).Dur("elapsed", elapsed).Msg("backend request")
		return
	}
	event := log.Warn()
	if reqErr, ok := apperrors.AsRequestError(err); ok && reqErr.Kind == apperrors.KindHTTPStatus && reqErr.Status < 500 {
		event = log.Debug()
	}
	event.Err(err).Str("method", method).Str("path", path).Dur("elapsed", elapsed).Msg("backend request failed")
}
