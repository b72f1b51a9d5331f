// ABOUTME: Docs command for listing the materialized documents in the vault
// ABOUTME: Optionally filters by vault subdirectory

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs [prefix]",
	Short: "List documents in the vault",
	Long:  "List the Markdown documents in the vault, optionally limited to a path prefix.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := store.List()
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}

		if len(args) == 1 {
			prefix := strings.TrimSuffix(args[0], "/") + "/"
			filtered := paths[:0]
			for _, p := range paths {
				if strings.HasPrefix(p, prefix) {
					filtered = append(filtered, p)
				}
			}
			paths = filtered
		}

		if len(paths) == 0 {
			fmt.Println("No documents found.")
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		color.New(color.Faint).Printf("%d documents\n", len(paths))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
