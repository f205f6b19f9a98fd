package identifier

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// LivenessChecker reports whether a URL answers HTTP 200. Implementations
// must be total: network errors, timeouts and non-200 statuses all mean
// "not alive", never a propagated fault.
type LivenessChecker interface {
	Alive(ctx context.Context, url string) bool
}

// HTTPChecker is the production LivenessChecker: a bounded GET with one
// retry after a short backoff. Every request carries the configured timeout.
type HTTPChecker struct {
	client  *http.Client
	backoff time.Duration
	logger  *slog.Logger
}

// HTTPCheckerOption configures an HTTPChecker.
type HTTPCheckerOption func(*HTTPChecker)

// WithHTTPClient replaces the underlying HTTP client (tests inject a
// httptest client here).
func WithHTTPClient(c *http.Client) HTTPCheckerOption {
	return func(h *HTTPChecker) { h.client = c }
}

// WithBackoff sets the delay before the single retry.
func WithBackoff(d time.Duration) HTTPCheckerOption {
	return func(h *HTTPChecker) { h.backoff = d }
}

// WithLogger attaches a logger for failed probes.
func WithLogger(l *slog.Logger) HTTPCheckerOption {
	return func(h *HTTPChecker) { h.logger = l }
}

// NewHTTPChecker builds a checker with an explicit per-request timeout.
func NewHTTPChecker(timeout time.Duration, opts ...HTTPCheckerOption) *HTTPChecker {
	h := &HTTPChecker{
		client:  &http.Client{Timeout: timeout},
		backoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Alive issues a GET and reports status 200. One additional attempt is made
// after a backoff; beyond that the URL is treated as dead.
func (h *HTTPChecker) Alive(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(h.backoff):
			}
		}
		if h.probe(ctx, url) {
			return true
		}
	}
	return false
}

func (h *HTTPChecker) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	if isDOIResolver(url) {
		// DOI resolvers answer content negotiation with a citation format.
		req.Header.Set("Accept", "application/vnd.citationstyles.csl+json;q=1.0")
	}
	resp, err := h.client.Do(req)
	if err != nil {
		if h.logger != nil {
			h.logger.DebugContext(ctx, "liveness probe failed", "url", url, "error", err)
		}
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isDOIResolver(url string) bool {
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/"} {
		if len(url) > len(prefix) && url[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
