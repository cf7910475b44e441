package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"stockroom/infrastructure/metrics"
	"stockroom/inventory"
)

// ErrUnavailable is the generic failure callers see for network,
// timeout and malformed-body errors. Handlers map it to the generic
// error message; no partial state is ever applied.
var ErrUnavailable = errors.New("backend unavailable")

// Config tunes the remote script client. Zero values fall back to the
// defaults below.
type Config struct {
	BaseURL string

	// ReadAttempts bounds read retries; writes run once unless
	// WriteAttempts is raised explicitly, to avoid duplicate side
	// effects on the remote sheet.
	ReadAttempts  int
	WriteAttempts int

	// RetryBase is the linear backoff unit: attempt n waits n*RetryBase.
	RetryBase time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const (
	defaultReadAttempts = 3
	defaultRetryBase    = 400 * time.Millisecond
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
)

// Client calls the remote script endpoint with named operations and
// JSON payloads, unwrapping the {result: ...} response envelope.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.ReadAttempts <= 0 {
		cfg.ReadAttempts = defaultReadAttempts
	}
	if cfg.WriteAttempts <= 0 {
		cfg.WriteAttempts = 1
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = defaultRetryBase
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: &http.Client{}}
}

// Read issues a read operation with bounded retry and linear backoff.
func (c *Client) Read(ctx context.Context, op string, payload any) (json.RawMessage, error) {
	return c.call(ctx, op, payload, c.cfg.ReadAttempts, c.cfg.ReadTimeout)
}

// Write issues a write operation. By default it is attempted once.
func (c *Client) Write(ctx context.Context, op string, payload any) (json.RawMessage, error) {
	return c.call(ctx, op, payload, c.cfg.WriteAttempts, c.cfg.WriteTimeout)
}

type requestBody struct {
	Op        string `json:"op"`
	Payload   any    `json:"payload,omitempty"`
	RequestID string `json:"requestId"`
}

func (c *Client) call(ctx context.Context, op string, payload any, attempts int, timeout time.Duration) (json.RawMessage, error) {
	// One request ID across attempts so the backend can deduplicate.
	reqID := uuid.NewString()
	body, err := json.Marshal(requestBody{Op: op, Payload: payload, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", op, err)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			metrics.GatewayRetries.WithLabelValues(op).Inc()
			if err := sleepBackoff(ctx, time.Duration(attempt-1)*c.cfg.RetryBase); err != nil {
				lastErr = err
				break
			}
		}
		metrics.GatewayRequests.WithLabelValues(op).Inc()

		result, retryable, err := c.attempt(ctx, op, body, timeout)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		slog.Warn("gateway attempt failed", slog.String("op", op), slog.Int("attempt", attempt), slog.Any("err", err))
	}

	metrics.GatewayFailures.WithLabelValues(op).Inc()
	return nil, lastErr
}

// attempt runs one HTTP round trip under its own timeout. The cancel
// func is released on every path so no timer leaks.
func (c *Client) attempt(ctx context.Context, op string, body []byte, timeout time.Duration) (result json.RawMessage, retryable bool, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, true, fmt.Errorf("%w: read %s response: %v", ErrUnavailable, op, err)
	}
	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, op, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, false, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, op, resp.StatusCode)
	}

	value, err := unwrap(raw)
	if err != nil {
		return nil, false, err
	}
	return value, false, nil
}

// unwrap extracts the value from a {result: ...} envelope, surfaces
// ok:false messages verbatim, and treats non-JSON bodies as a generic
// failure.
func unwrap(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: malformed response body", ErrUnavailable)
	}
	if trimmed[0] == '{' {
		var env struct {
			Result  json.RawMessage `json:"result"`
			Ok      *bool           `json:"ok"`
			Message string          `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil {
			if env.Ok != nil && !*env.Ok {
				return nil, &inventory.RejectedError{Message: env.Message}
			}
			if env.Result != nil {
				return env.Result, nil
			}
		}
	}
	return json.RawMessage(trimmed), nil
}

func sleepBackoff(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	case <-timer.C:
		return nil
	}
}
