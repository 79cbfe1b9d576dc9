package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	analyzePath    = "/analyze_mood"
	userAgent      = "moodify/1.0"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// StatusError reports a non-2xx response from the remote classifier.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to analyze mood: %d %s", e.Code, e.Status)
}

// HTTPClient calls a remote emotion-analysis service.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	delays     []time.Duration
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(h *HTTPClient) {
		if c != nil {
			h.httpClient = c
		}
	}
}

// WithRetryDelays sets the backoff schedule used when the service is
// rate limited or temporarily unavailable.
func WithRetryDelays(delays ...time.Duration) ClientOption {
	return func(h *HTTPClient) {
		h.delays = delays
	}
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		delays: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

// errRetryable marks a response worth retrying.
var errRetryable = errors.New("retryable response")

// Classify sends text to the service and returns its verdict.
// Rate-limited (429) and unavailable (503) responses are retried with
// exponential backoff; the last failure is returned as ErrRateLimited.
func (c *HTTPClient) Classify(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}

	payload, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("encoding request: %w", err)
	}

	for attempt := 0; attempt <= len(c.delays); attempt++ {
		// Wait before retry (skip on first attempt)
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(c.delays[attempt-1]):
			}
		}

		result, err := c.doSingleRequest(ctx, payload)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, errRetryable) {
			continue
		}
		return Result{}, err
	}

	return Result{}, ErrRateLimited
}

func (c *HTTPClient) doSingleRequest(ctx context.Context, payload []byte) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, errRetryable
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("reading response body: %w", err)
	}

	var parsed analyzeResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && parsed.Error != "" {
			return Result{}, fmt.Errorf("%w: %s", &StatusError{Code: resp.StatusCode, Status: statusText(resp)}, parsed.Error)
		}
		return Result{}, &StatusError{Code: resp.StatusCode, Status: statusText(resp)}
	}

	if decodeErr != nil {
		return Result{}, fmt.Errorf("parsing response: %w", decodeErr)
	}
	if parsed.Error != "" {
		return Result{}, errors.New(parsed.Error)
	}

	return Result{Emotion: parsed.Emotion, Confidence: parsed.Confidence}, nil
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
