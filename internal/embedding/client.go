package embedding

// In this file: the HTTP embedding client with rate limiting and retries.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultModel is the embedding model requested unless overridden.
const DefaultModel = "all-MiniLM-L6-v2"

const (
	defNumAttempts = 4
	defRateLimit   = rate.Limit(5) // requests per second
	defBurst       = 1

	baseRetryDelay = 200 * time.Millisecond
)

// maxAllowedWaitTime is the maximum time to wait before a retry.
var maxAllowedWaitTime = 30 * time.Second

// waitFn returns the amount of time to wait before retrying depending on the
// current attempt.  This variable exists to reduce the test time.
var waitFn = expWait

// StatusError is returned when the embeddings endpoint responds with a
// non-2xx status code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("embeddings endpoint returned status %d: %s", e.Code, e.Body)
}

// Client calls an OpenAI-compatible embeddings HTTP endpoint.  It is safe for
// concurrent use.
type Client struct {
	url    string
	model  string
	apiKey string
	dims   int
	cl     *http.Client
	lim    *rate.Limiter
}

var _ Embedder = (*Client)(nil)

// ClientOption is a functional option for NewClient.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(cl *http.Client) ClientOption {
	return func(c *Client) {
		if cl != nil {
			c.cl = cl
		}
	}
}

// WithModel overrides the embedding model name.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithDimensions sets the vector size the endpoint is expected to return.
func WithDimensions(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.dims = n
		}
	}
}

// WithRateLimit overrides the request rate limit.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		c.lim = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewClient creates an embedding client for the endpoint at url.  apiKey may
// be empty for unauthenticated endpoints.
func NewClient(url, apiKey string, opt ...ClientOption) *Client {
	c := &Client{
		url:    url,
		model:  DefaultModel,
		apiKey: apiKey,
		dims:   DefaultDimensions,
		cl:     &http.Client{Timeout: 30 * time.Second},
		lim:    rate.NewLimiter(defRateLimit, defBurst),
	}
	for _, o := range opt {
		o(c)
	}
	return c
}

// Dimensions returns the vector size of the configured model.
func (c *Client) Dimensions() int { return c.dims }

// embedRequest and embedResponse follow the OpenAI embeddings wire format.
type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the embedding vector for text.  Transient endpoint failures
// are retried with exponential backoff.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := c.withRetry(ctx, func() error {
		v, err := c.embed(ctx, text)
		if err != nil {
			return err
		}
		vec = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vec, nil
}

func (c *Client) embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Model: c.model, Input: []string{text}})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}

	var er embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if len(er.Data) == 0 {
		return nil, errors.New("embeddings response has no data")
	}
	vec := er.Data[0].Embedding
	if c.dims > 0 && len(vec) != c.dims {
		return nil, fmt.Errorf("embeddings response has %d dimensions, want %d", len(vec), c.dims)
	}
	return vec, nil
}

// withRetry runs fn, retrying transient failures up to defNumAttempts times.
// The rate limiter is consulted before every attempt.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < defNumAttempts; attempt++ {
		if err := c.lim.Wait(ctx); err != nil {
			return err
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var (
			se *StatusError
			ne net.Error
		)
		switch {
		case errors.As(err, &se) && isRecoverable(se.Code):
		case errors.As(err, &ne):
		default:
			return err
		}
		if err := sleepCtx(ctx, waitFn(attempt)); err != nil {
			return err
		}
	}
	return fmt.Errorf("embeddings request failed after %d attempts: %w", defNumAttempts, lastErr)
}

// isRecoverable returns true if the status code indicates a transient
// condition.
func isRecoverable(statusCode int) bool {
	return (statusCode >= http.StatusInternalServerError && statusCode <= 599 && statusCode != http.StatusNotImplemented) ||
		statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests
}

// expWait returns the backoff delay for the given attempt, doubling from
// baseRetryDelay and capped at maxAllowedWaitTime.
func expWait(attempt int) time.Duration {
	delay := baseRetryDelay << uint(attempt)
	if delay > maxAllowedWaitTime {
		return maxAllowedWaitTime
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
