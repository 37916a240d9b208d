// Package source fetches dashboard Markdown from the PyBot backend.
package source

import (
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
	"go.uber.org/zap"
)

const (
	MessageLoginRequired = "Please log in to view your personalized dashboard."
	MessageNoData        = "No personalized data yet."
	MessageLoadFailed    = "Failed to load personalized data."
)

var ErrMissingUserID = errors.New("source: missing user id")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("source: dashboard request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("source: dashboard request failed with status %d: %s", e.StatusCode, e.Message)
}

// Fetcher retrieves the raw dashboard document for a user.
type Fetcher interface {
	Fetch(ctx context.Context, userID string) (string, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type dashboardResponse struct {
	Markdown string `json:"markdown"`
	Error    string `json:"error"`
}

// Fetch calls GET /api/dashboard. An empty markdown field in a successful
// response comes back as MessageNoData.
func (c *Client) Fetch(ctx context.Context, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrMissingUserID
	}
	endpoint := c.baseURL + "/api/dashboard?" + url.Values{"user_id": {userID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build dashboard request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("dashboard request failed", zap.String("request_id", requestID), zap.Error(err))
		return "", fmt.Errorf("get dashboard: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read dashboard body: %w", err)
	}
	c.logger.Debug("dashboard response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("bytes", len(body)),
	)

	var decoded dashboardResponse
	decodeErr := json.Unmarshal(body, &decoded)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Message: decoded.Error}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode dashboard: %w", decodeErr)
	}
	if strings.TrimSpace(decoded.Markdown) == "" {
		return MessageNoData, nil
	}
	return decoded.Markdown, nil
}

// Result is what the dashboard shows after one load attempt.
type Result struct {
	Markdown string
	Failed   bool
	Err      error
}

// Resolve never fails: a missing user or a failed fetch turns into one of
// the fixed user-facing messages.
func Resolve(ctx context.Context, fetcher Fetcher, userID string) Result {
	if strings.TrimSpace(userID) == "" {
		return Result{Markdown: MessageLoginRequired, Failed: true, Err: ErrMissingUserID}
	}
	markdown, err := fetcher.Fetch(ctx, userID)
	if err != nil {
		return Result{Markdown: MessageLoadFailed, Failed: true, Err: err}
	}
	return Result{Markdown: markdown}
}
