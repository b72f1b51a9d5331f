// ABOUTME: HTTP feed fetching and RSS/Atom parsing via gofeed
// ABOUTME: Applies a per-request timeout, response size cap, and custom user agent

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// MaxResponseSize caps feed payloads at 10MB to keep a hostile or broken
// server from exhausting memory.
const MaxResponseSize = 10 * 1024 * 1024

const userAgent = "feedvault/1.0 (RSS materializer)"

// Fetcher retrieves and parses syndication feeds.
type Fetcher struct {
	client  *http.Client
	parser  *gofeed.Parser
	timeout time.Duration
}

// New creates a fetcher whose requests are bounded by timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

// Fetch retrieves a feed URL and parses it as RSS or Atom. Network
// failures, non-200 responses, and parse failures are all returned as
// errors; the caller decides how a failed feed affects the rest of a run.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	body, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	feed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return feed, nil
}

// Get retrieves a raw URL body with the fetcher's timeout and size cap.
// Used directly by feed discovery, which needs the HTML of non-feed pages.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("fetch %s: response exceeds %d bytes", url, MaxResponseSize)
	}
	return body, nil
}
