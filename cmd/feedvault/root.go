// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads the YAML config and opens the vault for the subcommands

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/feedvault/internal/config"
	"github.com/harper/feedvault/internal/vault"
)

var (
	configPath string
	verbose    bool

	cfg   *config.Config
	store *vault.Vault
)

var rootCmd = &cobra.Command{
	Use:   "feedvault",
	Short: "Materialize RSS/Atom feed items as Markdown documents",
	Long: `feedvault syncs RSS/Atom feeds into a folder of Markdown documents.

Each new feed item becomes one document, rendered from a template and
named after its publication date and title. Items already materialized
are recognized by the guid line in their documents and skipped, so runs
are idempotent and safe to schedule.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version and feed import work without a config file.
		switch cmd.Name() {
		case "version", "help", "import":
			return nil
		}

		// A .env next to the working directory may carry secrets the
		// config references via $VAR expansion.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		if configPath == "" {
			configPath = config.DefaultConfigPath()
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		store, err = vault.Open(config.ExpandPath(cfg.Vault.Path))
		if err != nil {
			return fmt.Errorf("open vault: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.config/feedvault/feedvault.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
