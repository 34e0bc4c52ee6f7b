// Package backend provides the HTTP client for the external document
// generation service. The client makes exactly one attempt per submission;
// retry and cancellation policy belong to the caller's context.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/docgen-client/internal/types"
)

// DefaultTimeout is the default request timeout. Generation runs a template
// render and a PDF conversion on the backend, so it is generous.
const DefaultTimeout = 120 * time.Second

// DefaultContentType is assumed when the backend omits the artifact
// content type.
const DefaultContentType = "application/pdf"

// Error represents a failed generation request. Detail carries the
// backend-provided message when one was present in the error body.
type Error struct {
	URL        string
	StatusCode int
	Detail     string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation request to %s failed: %v", e.URL, e.Cause)
	}
	if e.Detail != "" {
		return fmt.Sprintf("generation request to %s failed (status %d): %s", e.URL, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("generation request to %s failed (status %d)", e.URL, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Result holds the rendered artifact returned by the backend. The client
// never inspects the content beyond its declared type.
type Result struct {
	Data        []byte
	ContentType string
}

// Options configures the client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: "docgen-client/1.0",
	}
}

// Client talks to one generation backend.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", baseURL)
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: opts.UserAgent,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}, nil
}

// errorBody is the JSON error shape the backend produces: HTTPException
// responses carry "detail", conversion failures carry "error" and "detail".
type errorBody struct {
	Detail string `json:"detail"`
	Err    string `json:"error"`
}

// Generate submits a payload and returns the rendered artifact. Non-2xx
// responses and transport failures come back as *Error.
func (c *Client) Generate(ctx context.Context, payload *types.GenerationPayload) (*Result, error) {
	endpoint := c.baseURL + "/generate"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{URL: endpoint, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: endpoint, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: endpoint, StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(data),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DefaultContentType
	}
	return &Result{Data: data, ContentType: contentType}, nil
}

// extractDetail pulls the textual message out of an error body. It returns
// empty when the body is not JSON or carries no message, leaving the caller
// to fall back to a generic message.
func extractDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Detail != "" {
		return eb.Detail
	}
	return eb.Err
}
