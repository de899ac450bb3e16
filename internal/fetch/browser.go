package fetch

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
)

// DefaultRenderTimeout bounds a whole browser render, launch included.
const DefaultRenderTimeout = 45 * time.Second

// Renderer loads a page in a real browser and returns the rendered HTML.
type Renderer interface {
	Render(ctx context.Context, pageURL string) ([]byte, error)
}

// ShouldUseBrowser reports whether text extracted from the static HTML is
// too short to be the page's real copy, which usually means the page builds
// its content with JavaScript.
func ShouldUseBrowser(extracted string, minChars int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(extracted)) < minChars
}

// Browser renders pages with a headless Chrome. Chrome or Chromium must be
// installed; it is started per render and closed afterwards.
type Browser struct {
	Timeout time.Duration
	// Settle is how long to wait after the body is ready for scripts to fill it.
	Settle    time.Duration
	UserAgent string
	Verbose   bool
}

// NewBrowser returns a Browser with default timings.
func NewBrowser(verbose bool) *Browser {
	return &Browser{
		Timeout:   DefaultRenderTimeout,
		Settle:    3 * time.Second,
		UserAgent: DefaultUserAgent,
		Verbose:   verbose,
	}
}

// Render navigates to pageURL and returns the document's outer HTML.
func (b *Browser) Render(ctx context.Context, pageURL string) ([]byte, error) {
	if err := checkURL(pageURL); err != nil {
		return nil, err
	}
	if b.Verbose {
		log.Printf("[browser] Rendering %s", pageURL)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.UserAgent))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "browser rendering failed", Cause: err}
	}

	if b.Verbose {
		log.Printf("[browser] Rendered %s: %d bytes", pageURL, len(html))
	}
	return []byte(html), nil
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, pageURL string) ([]byte, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, pageURL string) ([]byte, error) {
	return f(ctx, pageURL)
}
