package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrFetch indicates a network error or a non-success response.
var ErrFetch = errors.New("fetch failure")

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "oasref"
)

// Downloader retrieves the content behind a URL.
type Downloader interface {
	Fetch(url string) ([]byte, error)
}

// HTTPDownloader fetches specification documents over HTTP(S). Fetches are
// synchronous and are not retried.
type HTTPDownloader struct {
	client *http.Client
}

// Option configures an HTTPDownloader.
type Option func(*HTTPDownloader)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(d *HTTPDownloader) {
		d.client = c
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *HTTPDownloader) {
		d.client.Timeout = timeout
	}
}

// New creates an HTTPDownloader with the given options.
func New(opts ...Option) *HTTPDownloader {
	d := &HTTPDownloader{
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch downloads url and returns the response body.
func (d *HTTPDownloader) Fetch(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request for %s: %v", ErrFetch, url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: downloading %s: %v", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %v", ErrFetch, url, err)
	}
	return body, nil
}
