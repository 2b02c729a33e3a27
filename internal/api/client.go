// Package api is the HTTP client for the DriftWatch backend. It speaks
// three JSON endpoints: GET /api/drift, POST /api/analyze, POST /api/chat.
// The backend owns all drift math and LLM reasoning; this client only
// moves payloads and classifies transport failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"driftwatch/internal/drift"
)

const defaultTimeout = 60 * time.Second

// NetworkError is any transport-level failure: connection errors, non-2xx
// statuses, or malformed response bodies. Status is 0 when no HTTP response
// was received.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ChatTurn is one turn of conversation history in wire form. Role is
// "user" or "model" — the backend's naming, not the UI's.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to one DriftWatch backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	// Collapses duplicate concurrent report fetches. Retries are always
	// explicit user actions, but nothing stops a user from mashing the
	// retry key; single-flight keeps that to one request on the wire.
	reports singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger attaches a logger. The default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchReport retrieves the current drift report. Idempotent; a failure
// leaves no partial state behind, so callers may simply call again.
func (c *Client) FetchReport(ctx context.Context) (*drift.Report, error) {
	v, err, shared := c.reports.Do("report", func() (interface{}, error) {
		var report drift.Report
		if err := c.get(ctx, "/api/drift", &report); err != nil {
			return nil, err
		}
		return &report, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("report fetch coalesced with in-flight request")
	}
	return v.(*drift.Report), nil
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
}

// Analyze asks the backend's AI agent for a full narrative analysis of the
// current report. The request body is an empty JSON object by contract.
func (c *Client) Analyze(ctx context.Context) (string, error) {
	var resp analyzeResponse
	if err := c.post(ctx, "/api/analyze", struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.Analysis, nil
}

type chatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat sends one message plus the prior conversation history and returns
// the agent's reply. History must already be in wire roles (user/model)
// and must exclude the message being sent.
func (c *Client) Chat(ctx context.Context, message string, history []ChatTurn) (string, error) {
	if history == nil {
		history = []ChatTurn{}
	}
	var resp chatResponse
	if err := c.post(ctx, "/api/chat", chatRequest{Message: message, History: history}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &NetworkError{Op: "GET " + path, Err: err}
	}
	return c.do(req, path, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &NetworkError{Op: "POST " + path, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &NetworkError{Op: "POST " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	op := req.Method + " " + path
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	// Non-2xx is a NetworkError regardless of what the body says.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("backend error status",
			zap.String("op", op), zap.Int("status", resp.StatusCode))
		return &NetworkError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("malformed response body", zap.String("op", op), zap.Error(err))
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	c.logger.Debug("request complete",
		zap.String("op", op), zap.Duration("elapsed", time.Since(start)))
	return nil
}
