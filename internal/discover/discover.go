// ABOUTME: RSS/Atom feed autodiscovery from an arbitrary page URL
// ABOUTME: Tries the URL as a direct feed, then HTML alternate links, then common paths

package discover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"github.com/harper/feedvault/internal/fetch"
)

// Errors returned by Discover.
var (
	ErrNoFeedFound = errors.New("no RSS/Atom feed found at URL")
	ErrInvalidURL  = errors.New("invalid URL")
)

// commonFeedPaths are probed as a last resort against the site root.
var commonFeedPaths = []string{
	"/feed.xml",
	"/feed",
	"/rss.xml",
	"/rss",
	"/atom.xml",
	"/atom",
	"/index.xml",
	"/feeds/posts/default",
}

// Feed is a feed located during discovery.
type Feed struct {
	URL   string
	Title string
}

// Discoverer locates feeds starting from a page URL.
type Discoverer struct {
	fetcher *fetch.Fetcher
}

// New creates a discoverer that fetches through the given fetcher.
func New(fetcher *fetch.Fetcher) *Discoverer {
	return &Discoverer{fetcher: fetcher}
}

// Discover finds a feed for the given URL. Strategies, in order: parse
// the URL itself as a feed, follow <link rel="alternate"> elements in its
// HTML, probe common feed paths on the same host.
func (d *Discoverer) Discover(ctx context.Context, inputURL string) (*Feed, error) {
	parsedURL, err := url.Parse(inputURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	body, err := d.fetcher.Get(ctx, inputURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", inputURL, err)
	}
	if feed := asFeed(inputURL, body); feed != nil {
		return feed, nil
	}

	for _, candidate := range alternateLinks(body, parsedURL) {
		verified, err := d.verify(ctx, candidate.URL)
		if err != nil {
			continue
		}
		if verified.Title == "" {
			verified.Title = candidate.Title
		}
		return verified, nil
	}

	root := &url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}
	for _, p := range commonFeedPaths {
		if feed, err := d.verify(ctx, root.String()+p); err == nil {
			return feed, nil
		}
	}

	return nil, ErrNoFeedFound
}

// verify fetches a candidate URL and confirms it parses as a feed.
func (d *Discoverer) verify(ctx context.Context, feedURL string) (*Feed, error) {
	body, err := d.fetcher.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	if feed := asFeed(feedURL, body); feed != nil {
		return feed, nil
	}
	return nil, ErrNoFeedFound
}

// asFeed attempts to parse a body as RSS/Atom, returning nil when it is
// not a feed.
func asFeed(feedURL string, body []byte) *Feed {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	return &Feed{URL: feedURL, Title: parsed.Title}
}

// alternateLinks extracts feed candidates from <link rel="alternate">
// elements, resolving relative hrefs against the page URL.
func alternateLinks(body []byte, base *url.URL) []Feed {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var feeds []Feed
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, linkType, href, title string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "type":
					linkType = attr.Val
				case "href":
					href = attr.Val
				case "title":
					title = attr.Val
				}
			}
			if rel == "alternate" && href != "" && isFeedType(linkType) {
				if ref, err := url.Parse(href); err == nil {
					feeds = append(feeds, Feed{URL: base.ResolveReference(ref).String(), Title: title})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return feeds
}

func isFeedType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "rss") ||
		strings.Contains(contentType, "atom") ||
		strings.Contains(contentType, "xml")
}
