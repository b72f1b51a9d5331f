// ABOUTME: MCP server exposing feed synchronization tools over stdio
// ABOUTME: Lets LLM clients sync feeds and browse the materialized documents

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/feedvault/internal/config"
	feedsync "github.com/harper/feedvault/internal/sync"
)

// SyncRunner runs a full synchronization pass.
type SyncRunner interface {
	Sync(ctx context.Context) feedsync.Report
}

// Server wraps the MCP server with feedvault tools.
type Server struct {
	mcp    *server.MCPServer
	cfg    *config.Config
	store  feedsync.DocumentStore
	syncer SyncRunner
}

// New creates an MCP server with all feedvault tools registered.
func New(cfg *config.Config, store feedsync.DocumentStore, syncer SyncRunner) *Server {
	s := &Server{cfg: cfg, store: store, syncer: syncer}

	s.mcp = server.NewMCPServer(
		"feedvault",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("sync_feeds",
		mcp.WithDescription("Fetch all configured feeds and materialize new items as Markdown documents."),
	), s.syncFeeds)

	s.mcp.AddTool(mcp.NewTool("list_feeds",
		mcp.WithDescription("List the configured feed subscriptions."),
	), s.listFeeds)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the Markdown documents in the vault."),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the full content of a materialized document."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document (e.g. Feeds/02.10.24 - Title.md)")),
	), s.readDocument)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) syncFeeds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report := s.syncer.Sync(ctx)
	summary := fmt.Sprintf("synced %d feeds (%d failed): %d created, %d skipped, %d failed",
		report.FeedsSynced, report.FeedsFailed, report.Created, report.Skipped, report.Failed)
	return mcp.NewToolResultText(summary), nil
}

func (s *Server) listFeeds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if len(s.cfg.Feeds) == 0 {
		return mcp.NewToolResultText("no feeds configured"), nil
	}
	var lines []string
	for _, f := range s.cfg.Feeds {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", f.ID, f.Name, f.URL))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(paths) == 0 {
		return mcp.NewToolResultText("no documents found"), nil
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(text), nil
}
