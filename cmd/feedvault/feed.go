// ABOUTME: Feed management commands for listing, discovering, and importing feeds
// ABOUTME: Discovery probes pages for linked feeds; import reads OPML subscription lists

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/feedvault/internal/config"
	"github.com/harper/feedvault/internal/discover"
	"github.com/harper/feedvault/internal/fetch"
	"github.com/harper/feedvault/internal/opml"
	"github.com/harper/feedvault/internal/render"
)

var feedCmd = &cobra.Command{
	Use:     "feed",
	Aliases: []string{"f"},
	Short:   "Manage feed subscriptions",
	Long:    "List configured feeds, discover feed URLs on web pages, and import OPML subscription lists",
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Feeds) == 0 {
			fmt.Println("No feeds configured. Add feeds to", configPath)
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		for _, f := range cfg.Feeds {
			fmt.Printf("%s %s\n", bold(f.ID), f.Name)
			fmt.Printf("  %s %s\n", faint("url:"), f.URL)
			if f.Path != "" {
				fmt.Printf("  %s %s\n", faint("path:"), f.Path)
			}
			if f.FeedTypeID != "" {
				fmt.Printf("  %s %s\n", faint("feed type:"), f.FeedTypeID)
			}
		}
		return nil
	},
}

var feedDiscoverCmd = &cobra.Command{
	Use:   "discover <url>",
	Short: "Find the feed URL for a website",
	Long: `Probe a URL for an RSS/Atom feed. The URL itself is tried first, then
any feed links advertised in the page's HTML, then common feed paths on
the site. Prints a config snippet for the discovered feed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := discover.New(fetch.New(cfg.FetchTimeout()))
		found, err := d.Discover(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("discover feed: %w", err)
		}

		color.Green("Found feed: %s", found.URL)
		if found.Title != "" {
			fmt.Printf("  title: %s\n", found.Title)
		}

		fmt.Println("\nAdd to your config:")
		return printFeedSnippet([]config.FeedConfig{{
			ID:   render.SanitizeTitle(found.Title),
			Name: found.Title,
			URL:  found.URL,
		}})
	},
}

var feedImportCmd = &cobra.Command{
	Use:   "import <opml-file>",
	Short: "Import feeds from an OPML file",
	Long: `Read an OPML subscription list and print the feeds as a config snippet.
Folders in the OPML become per-feed path overrides.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feeds, err := opml.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("import OPML: %w", err)
		}
		if len(feeds) == 0 {
			fmt.Println("No feeds found in", args[0])
			return nil
		}

		entries := make([]config.FeedConfig, 0, len(feeds))
		for _, f := range feeds {
			entries = append(entries, config.FeedConfig{
				ID:   render.SanitizeTitle(f.Title),
				Name: f.Title,
				URL:  f.URL,
				Path: f.Folder,
			})
		}

		color.Green("Imported %d feeds. Add to your config:", len(entries))
		return printFeedSnippet(entries)
	},
}

func printFeedSnippet(feeds []config.FeedConfig) error {
	out, err := yaml.Marshal(map[string][]config.FeedConfig{"feeds": feeds})
	if err != nil {
		return fmt.Errorf("marshal feeds: %w", err)
	}
	fmt.Printf("\n%s", out)
	return nil
}

func init() {
	feedCmd.AddCommand(feedListCmd)
	feedCmd.AddCommand(feedDiscoverCmd)
	feedCmd.AddCommand(feedImportCmd)
	rootCmd.AddCommand(feedCmd)
}
