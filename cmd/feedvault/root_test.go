// ABOUTME: Tests for root command wiring and feed snippet output
// ABOUTME: Verifies subcommand registration and config snippet formatting

package main

import (
	"testing"

	"github.com/harper/feedvault/internal/config"
	"gopkg.in/yaml.v3"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"sync", "feed", "docs", "read", "mcp", "version"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestFeedSnippetRoundTrip(t *testing.T) {
	feeds := []config.FeedConfig{
		{ID: "example", Name: "Example", URL: "https://example.com/feed.xml", Path: "Tech"},
	}
	out, err := yaml.Marshal(map[string][]config.FeedConfig{"feeds": feeds})
	if err != nil {
		t.Fatal(err)
	}

	var parsed struct {
		Feeds []config.FeedConfig `yaml:"feeds"`
	}
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("snippet does not parse back: %v", err)
	}
	if len(parsed.Feeds) != 1 || parsed.Feeds[0] != feeds[0] {
		t.Errorf("round trip = %+v, want %+v", parsed.Feeds, feeds)
	}
}

func TestVersionCommand(t *testing.T) {
	if Version == "" || Commit == "" || BuildDate == "" {
		t.Error("expected version variables to have defaults")
	}
	if versionCmd.Use != "version" {
		t.Errorf("expected Use to be 'version', got %q", versionCmd.Use)
	}
}
