// Package http provides a static implementation of pagescope.Loader that
// fetches pages over plain HTTP without executing JavaScript.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/pagescope"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultTimeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "pagescope/1.0"

// MaxBodySize caps the number of bytes read from a response.
const MaxBodySize = 5 << 20

// Ensure Loader implements pagescope.Loader at compile time.
var _ pagescope.Loader = (*Loader)(nil)

// Loader captures static snapshots over HTTP. Snapshots carry the final URL
// and the decoded HTML only: no rendered text, layout or resource timeline.
type Loader struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// WithLogger sets the logger used to report truncated responses.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a new HTTP-based Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.client = &http.Client{
		Timeout: l.timeout,
	}

	return l
}

// Load fetches url and returns a snapshot of the response body decoded to
// UTF-8 using the declared or sniffed charset. Bodies longer than
// MaxBodySize are cut at the limit and a warning is logged.
func (l *Loader) Load(ctx context.Context, url string) (*pagescope.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxBodySize {
		raw = raw[:MaxBodySize]
		l.logger.Warn("response body truncated", "url", url, "limit", MaxBodySize)
	}

	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &pagescope.Snapshot{
		URL:  resp.Request.URL.String(),
		HTML: string(body),
	}, nil
}

// Close releases resources. For the HTTP loader this is a no-op since
// http.Client doesn't require explicit cleanup.
func (l *Loader) Close() error {
	return nil
}
