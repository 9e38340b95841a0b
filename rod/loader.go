// Package rod provides a pagescope.Loader backed by a headless Chrome
// browser driven through go-rod.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Loader defaults.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultSettle    = 500 * time.Millisecond
	DefaultUserAgent = "pagescope/1.0"
)

// Ensure Loader implements pagescope.Loader at compile time.
var _ pagescope.Loader = (*Loader)(nil)

// Loader renders pages in headless Chrome and captures the live DOM,
// computed backgrounds, image layout and the resource timeline.
// Loader is safe for concurrent use by multiple goroutines.
type Loader struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	timeout   time.Duration
	settle    time.Duration
	userAgent string

	mu     sync.Mutex
	closed atomic.Bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout bounds a single Load, including navigation and capture.
// Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithSettle sets how long to wait after the load event before capturing,
// giving client-side rendering time to finish. Defaults to DefaultSettle.
func WithSettle(d time.Duration) Option {
	return func(l *Loader) {
		l.settle = d
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// NewLoader launches a headless Chrome browser and returns a Loader using it.
// Close must be called when the Loader is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{
		timeout:   DefaultTimeout,
		settle:    DefaultSettle,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	l.browser = browser
	l.launcher = lnchr
	return l, nil
}

// Load navigates a fresh tab to url, waits for the load event and the
// settle delay, then captures the page state.
func (l *Loader) Load(ctx context.Context, url string) (*pagescope.Snapshot, error) {
	if l.closed.Load() {
		return nil, pagescope.Errorf(pagescope.EINVALID, "loader closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	page, err := l.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	if l.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: l.userAgent}); err != nil {
			return nil, err
		}
	}

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	if l.settle > 0 {
		select {
		case <-time.After(l.settle):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	res, err := page.Eval(collectJS)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(res.Value.Str())
}

// Close shuts down the browser and kills the launcher process.
// Close is safe to call multiple times.
func (l *Loader) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	if l.browser != nil {
		err = l.browser.Close()
		l.browser = nil
	}
	if l.launcher != nil {
		l.launcher.Kill()
		l.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (l *Loader) LauncherPID() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.launcher == nil {
		return 0
	}
	return l.launcher.PID()
}
