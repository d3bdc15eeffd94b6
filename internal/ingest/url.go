package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; AssessorAgent/1.0)"

// Error represents a failed resume fetch.
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

// Options configures URL fetching.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.UserAgent == "" {
		out.UserAgent = DefaultUserAgent
	}
	return out
}

// FromURL fetches a resume from a URL and returns its cleaned text. Plain
// text responses are cleaned directly; HTML goes through the extractor. When
// the served HTML yields too little text and the browser fallback is
// enabled, the page is re-rendered in headless Chrome before giving up.
func FromURL(ctx context.Context, urlStr string, opts *Options) (string, error) {
	o := opts.withDefaults()

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: o.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", o.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	// Plain text resumes skip HTML extraction entirely.
	if strings.Contains(resp.Header.Get("Content-Type"), "text/plain") {
		return CleanText(string(body)), nil
	}

	text, err := ExtractHTMLText(string(body))
	if err != nil {
		return "", &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if o.UseBrowser && len(strings.TrimSpace(text)) < MinContentLength {
		if rendered, rerr := renderBrowser(ctx, urlStr, o.Timeout); rerr == nil {
			if extracted, xerr := ExtractHTMLText(rendered); xerr == nil && len(extracted) > len(text) {
				text = extracted
			}
		}
	}

	return CleanText(text), nil
}
