// ABOUTME: MCP server command for feedvault CLI
// ABOUTME: Starts stdio-based MCP server for AI agent integration

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/harper/feedvault/internal/fetch"
	"github.com/harper/feedvault/internal/mcpserver"
	feedsync "github.com/harper/feedvault/internal/sync"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Start the Model Context Protocol (MCP) server on stdio.

This lets AI agents sync your feeds and browse the materialized
documents through structured tools. The server communicates via
JSON-RPC on stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer := feedsync.New(cfg, fetch.New(cfg.FetchTimeout()), store, nil, slog.Default())
		server := mcpserver.New(cfg, store, syncer)

		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
