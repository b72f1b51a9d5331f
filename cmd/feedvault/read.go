// ABOUTME: Read command for viewing a materialized document in the terminal
// ABOUTME: Renders Markdown with glamour, falling back to plain text

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Read a document",
	Long:  "Display a document from the vault with terminal Markdown rendering.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		text, err := store.Read(args[0])
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		if raw {
			fmt.Print(text)
			return nil
		}

		rendered, err := glamour.Render(text, "dark")
		if err != nil {
			faint := color.New(color.Faint).SprintFunc()
			fmt.Printf("%s\n\n%s", faint("(markdown rendering unavailable, showing plain text)"), text)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	readCmd.Flags().Bool("raw", false, "print the document without rendering")
	rootCmd.AddCommand(readCmd)
}
