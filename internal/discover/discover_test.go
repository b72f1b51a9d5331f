// ABOUTME: Tests for feed autodiscovery strategies
// ABOUTME: Uses an httptest site with HTML alternate links and probed paths

package discover

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harper/feedvault/internal/fetch"
)

const discoverFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Site Feed</title></channel></rss>`

func newDiscoverer() *Discoverer {
	return New(fetch.New(5 * time.Second))
}

func TestDiscoverDirectFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(discoverFeed))
	}))
	defer srv.Close()

	feed, err := newDiscoverer().Discover(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if feed.URL != srv.URL || feed.Title != "Site Feed" {
		t.Errorf("feed = %+v", feed)
	}
}

func TestDiscoverFromAlternateLink(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<link rel="alternate" type="application/rss+xml" title="The Feed" href="/blog/feed.xml">
		</head><body>hi</body></html>`))
	})
	mux.HandleFunc("/blog/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(discoverFeed))
	})

	feed, err := newDiscoverer().Discover(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if feed.URL != srv.URL+"/blog/feed.xml" {
		t.Errorf("feed URL = %q", feed.URL)
	}
	if feed.Title != "Site Feed" {
		t.Errorf("feed title = %q", feed.Title)
	}
}

func TestDiscoverByProbing(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head></head><body>no links</body></html>"))
	})
	mux.HandleFunc("/rss.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(discoverFeed))
	})

	feed, err := newDiscoverer().Discover(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if feed.URL != srv.URL+"/rss.xml" {
		t.Errorf("feed URL = %q", feed.URL)
	}
}

func TestDiscoverNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte("<html><body>plain page</body></html>"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newDiscoverer().Discover(context.Background(), srv.URL)
	if !errors.Is(err, ErrNoFeedFound) {
		t.Errorf("err = %v, want ErrNoFeedFound", err)
	}
}

func TestDiscoverInvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-url", "/relative/only"} {
		if _, err := newDiscoverer().Discover(context.Background(), u); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Discover(%q) err = %v, want ErrInvalidURL", u, err)
		}
	}
}

func TestDiscoverProbeRelativeToHost(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/deep/page", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>page</body></html>"))
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(discoverFeed))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	feed, err := newDiscoverer().Discover(context.Background(), srv.URL+"/deep/page")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if feed.URL != srv.URL+"/feed.xml" {
		t.Errorf("feed URL = %q, want probe against host root", feed.URL)
	}
}
