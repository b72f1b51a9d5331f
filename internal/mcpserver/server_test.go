package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/feedvault/internal/config"
	feedsync "github.com/harper/feedvault/internal/sync"
	"github.com/harper/feedvault/internal/vault"
)

type stubSyncer struct {
	report feedsync.Report
	called bool
}

func (s *stubSyncer) Sync(ctx context.Context) feedsync.Report {
	s.called = true
	return s.report
}

func testServer(t *testing.T) (*Server, *vault.Vault, *stubSyncer) {
	t.Helper()

	store, err := vault.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Feeds: []config.FeedConfig{
			{ID: "example", Name: "Example", URL: "https://example.com/feed.xml"},
		},
	}
	syncer := &stubSyncer{report: feedsync.Report{FeedsSynced: 1, Created: 2, Skipped: 3}}
	return New(cfg, store, syncer), store, syncer
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool result content is not text: %T", res.Content[0])
	}
	return text.Text
}

func TestSyncFeedsTool(t *testing.T) {
	srv, _, syncer := testServer(t)

	res, err := srv.syncFeeds(context.Background(), toolRequest("sync_feeds", nil))
	if err != nil {
		t.Fatalf("syncFeeds() error = %v", err)
	}
	if !syncer.called {
		t.Error("syncFeeds() did not invoke the syncer")
	}
	got := resultText(t, res)
	if !strings.Contains(got, "2 created") || !strings.Contains(got, "3 skipped") {
		t.Errorf("syncFeeds() result = %q, want counts from report", got)
	}
}

func TestListFeedsTool(t *testing.T) {
	srv, _, _ := testServer(t)

	res, err := srv.listFeeds(context.Background(), toolRequest("list_feeds", nil))
	if err != nil {
		t.Fatalf("listFeeds() error = %v", err)
	}
	got := resultText(t, res)
	if !strings.Contains(got, "example: Example (https://example.com/feed.xml)") {
		t.Errorf("listFeeds() result = %q", got)
	}
}

func TestListDocumentsTool(t *testing.T) {
	srv, store, _ := testServer(t)

	if err := store.Create("Feeds/02.10.24 - Hello.md", "guid: a\n"); err != nil {
		t.Fatal(err)
	}

	res, err := srv.listDocuments(context.Background(), toolRequest("list_documents", nil))
	if err != nil {
		t.Fatalf("listDocuments() error = %v", err)
	}
	if got := resultText(t, res); !strings.Contains(got, "Feeds/02.10.24 - Hello.md") {
		t.Errorf("listDocuments() result = %q", got)
	}
}

func TestListDocumentsEmpty(t *testing.T) {
	srv, _, _ := testServer(t)

	res, err := srv.listDocuments(context.Background(), toolRequest("list_documents", nil))
	if err != nil {
		t.Fatalf("listDocuments() error = %v", err)
	}
	if got := resultText(t, res); got != "no documents found" {
		t.Errorf("listDocuments() result = %q, want %q", got, "no documents found")
	}
}

func TestReadDocumentTool(t *testing.T) {
	srv, store, _ := testServer(t)

	if err := store.Create("note.md", "# Hello\n"); err != nil {
		t.Fatal(err)
	}

	res, err := srv.readDocument(context.Background(), toolRequest("read_document", map[string]interface{}{
		"path": "note.md",
	}))
	if err != nil {
		t.Fatalf("readDocument() error = %v", err)
	}
	if got := resultText(t, res); got != "# Hello\n" {
		t.Errorf("readDocument() result = %q", got)
	}
}

func TestReadDocumentMissing(t *testing.T) {
	srv, _, _ := testServer(t)

	res, err := srv.readDocument(context.Background(), toolRequest("read_document", map[string]interface{}{
		"path": "missing.md",
	}))
	if err != nil {
		t.Fatalf("readDocument() error = %v", err)
	}
	if !res.IsError {
		t.Error("readDocument() expected error result for missing document")
	}
}
