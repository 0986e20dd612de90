// Package browser drives a live Chrome tab through chromedp and exposes it
// as a page.Document, so fills and scans run against the rendered page.
package browser

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/job-autofill/internal/fetch"
)

// Defaults for Options.
const (
	DefaultTimeout = 60 * time.Second
	DefaultSettle  = 2 * time.Second
)

// Options configures the browser session.
type Options struct {
	// Headful shows the Chrome window instead of running headless.
	Headful bool
	// Timeout bounds the lifetime of each opened page.
	Timeout time.Duration
	// Settle is how long to wait after load for client-side rendering.
	Settle  time.Duration
	Verbose bool
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Settle < 0 {
		o.Settle = 0
	} else if o.Settle == 0 {
		o.Settle = DefaultSettle
	}
	return o
}

func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !opts.Headful),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
}

// Session is a running Chrome instance. Pages opened from it share the browser.
// Requires Chrome/Chromium to be installed on the system.
type Session struct {
	ctx    context.Context
	cancel func()
	opts   Options
}

// NewSession starts Chrome.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	if opts.Verbose {
		log.Printf("[BROWSER] Starting browser (headful=%v)", opts.Headful)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// An empty Run launches the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, &BrowserError{Message: "failed to start browser", Cause: err}
	}

	return &Session{
		ctx: browserCtx,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
		opts: opts,
	}, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	s.cancel()
}

// Open navigates a new tab to url and waits for it to render.
func (s *Session) Open(url string) (*Page, error) {
	if fetch.IsRestrictedURL(url) {
		return nil, &BrowserError{URL: url, Message: "cannot autofill restricted pages"}
	}
	if s.opts.Verbose {
		log.Printf("[BROWSER] Opening %s", url)
	}

	tabCtx, tabCancel := chromedp.NewContext(s.ctx)
	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, s.opts.Timeout)
	cancel := func() {
		timeoutCancel()
		tabCancel()
	}

	var location, title string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(s.opts.Settle),
		chromedp.Location(&location),
		chromedp.Title(&title),
	)
	if err != nil {
		cancel()
		return nil, &BrowserError{URL: url, Message: "navigation failed", Cause: err}
	}

	if s.opts.Verbose {
		log.Printf("[BROWSER] Loaded %q (%s)", title, location)
	}
	return &Page{ctx: tabCtx, cancel: cancel, url: location, title: title, verbose: s.opts.Verbose}, nil
}
