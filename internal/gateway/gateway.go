// ABOUTME: Single egress point for every backend call
// ABOUTME: Runs requests through the decorator chain and classifies responses

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request so a hung call cannot stall a caller forever
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is read for its detail
const maxErrorBody = 64 << 10

// Options configures a Gateway
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Tokens    TokenSource
	Navigator Navigator
	Logger    *slog.Logger
	// Language, when set, supplies the Accept-Language header
	Language func() string
	// Transport overrides the HTTP transport (tests)
	Transport http.RoundTripper
}

// Gateway attaches credentials to outbound calls and reacts to authorization failure
type Gateway struct {
	baseURL string
	send    Doer
}

// New builds a gateway with the standard policy chain
func New(opts Options) *Gateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: opts.Transport,
	}

	middlewares := []Middleware{
		WithLogging(logger),
		WithRequestID(),
	}
	if opts.Language != nil {
		middlewares = append(middlewares, WithAcceptLanguage(opts.Language))
	}
	if opts.Tokens != nil {
		middlewares = append(middlewares,
			WithBearer(opts.Tokens),
			WithUnauthorizedPurge(opts.Tokens, opts.Navigator),
		)
	}

	return &Gateway{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		send:    Chain(httpClient.Do, middlewares...),
	}
}

// BaseURL returns the backend origin
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Send runs req through the policy chain.
// Callers own the response body.
func (g *Gateway) Send(req *http.Request) (*http.Response, error) {
	return g.send(req)
}

// Do performs a JSON exchange. body, when non-nil, is encoded as the request
// body; out, when non-nil, receives the decoded 2xx response.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.Send(req)
	if err != nil {
		return &NetworkError{BaseURL: g.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return classify(resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// Get is Do with GET and no body
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

// Post is Do with POST
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPost, path, body, out)
}

// Put is Do with PUT
func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPut, path, body, out)
}
