// Package fetch retrieves web pages for sample import.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Copydesk/1.0; +https://copydesk.example.com/about)"

// DefaultMaxBytes caps how much of a page is read.
const DefaultMaxBytes = 2 << 20

// Result holds a fetched page.
type Result struct {
	URL         string
	HTML        []byte
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior. A nil Client gets one with Timeout.
type Options struct {
	Client    *http.Client
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
	}
}

func (o *Options) withDefaults() Options {
	out := *DefaultOptions()
	if o == nil {
		return out
	}
	if o.Client != nil {
		out.Client = o.Client
	}
	if o.Timeout > 0 {
		out.Timeout = o.Timeout
	}
	if o.UserAgent != "" {
		out.UserAgent = o.UserAgent
	}
	if o.MaxBytes > 0 {
		out.MaxBytes = o.MaxBytes
	}
	return out
}

// Page retrieves an HTML page. Only http(s) URLs are accepted, and a body
// that is not HTML is refused. Bodies beyond MaxBytes are truncated.
func Page(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	o := opts.withDefaults()

	if err := checkURL(urlStr); err != nil {
		return nil, err
	}

	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", o.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	result := &Result{
		URL:         urlStr,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	if !isHTML(result.ContentType) {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("not an HTML page (%s)", result.ContentType)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, o.MaxBytes))
	if err != nil {
		return result, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	result.HTML = body
	return result, nil
}

// checkURL accepts absolute http(s) URLs only.
func checkURL(urlStr string) error {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	return nil
}

// isHTML accepts a missing content type since some servers omit it.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
