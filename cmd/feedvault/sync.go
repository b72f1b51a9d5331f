// ABOUTME: Sync command running the feed-to-document pipeline
// ABOUTME: Supports one-shot runs, fixed intervals, and config-change watching

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/harper/feedvault/internal/config"
	"github.com/harper/feedvault/internal/fetch"
	feedsync "github.com/harper/feedvault/internal/sync"
)

// consoleNotifier prints sync notifications to the terminal.
type consoleNotifier struct{}

func (consoleNotifier) Notify(message string) {
	color.Cyan("%s", message)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch all feeds and materialize new items",
	Long: `Fetch every configured feed and create a Markdown document for each
item not yet present in the vault. Existing documents are never modified.

With --interval the sync repeats on a fixed schedule. With --watch the
config file is additionally watched, and edits trigger an immediate
re-sync with the new configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		watch, _ := cmd.Flags().GetBool("watch")
		quiet, _ := cmd.Flags().GetBool("quiet")

		var notifier feedsync.Notifier
		if !quiet {
			notifier = consoleNotifier{}
		}

		runOnce := func(ctx context.Context, c *config.Config) feedsync.Report {
			syncer := feedsync.New(c, fetch.New(c.FetchTimeout()), store, notifier, slog.Default())
			report := syncer.Sync(ctx)
			summary := fmt.Sprintf("Synced %d feeds: %d created, %d skipped",
				report.FeedsSynced, report.Created, report.Skipped)
			if report.FeedsFailed > 0 || report.Failed > 0 {
				color.Yellow("%s (%d feeds failed, %d items failed)", summary, report.FeedsFailed, report.Failed)
			} else {
				color.Green("%s", summary)
			}
			return report
		}

		if interval == 0 && !watch {
			runOnce(cmd.Context(), cfg)
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var configEvents chan fsnotify.Event
		if watch {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("start config watcher: %w", err)
			}
			defer watcher.Close()
			// Watch the directory: editors replace files on save and a
			// watch on the file itself would be lost after the rename.
			if err := watcher.Add(filepath.Dir(configPath)); err != nil {
				return fmt.Errorf("watch config dir: %w", err)
			}
			configEvents = make(chan fsnotify.Event, 1)
			go forwardConfigEvents(ctx, watcher, configPath, configEvents)
		}

		var tick <-chan time.Time
		if interval > 0 {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		runOnce(ctx, cfg)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
				runOnce(ctx, cfg)
			case <-configEvents:
				fresh, err := config.Load(configPath)
				if err != nil {
					color.Yellow("Config reload failed, keeping previous config: %v", err)
					continue
				}
				cfg = fresh
				slog.Info("config reloaded", slog.String("path", configPath))
				runOnce(ctx, cfg)
			}
		}
	},
}

// forwardConfigEvents debounces write events for the config file onto out.
func forwardConfigEvents(ctx context.Context, watcher *fsnotify.Watcher, path string, out chan<- fsnotify.Event) {
	var timer *time.Timer
	var fire <-chan time.Time
	var pending fsnotify.Event

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = ev
			if timer == nil {
				timer = time.NewTimer(250 * time.Millisecond)
				fire = timer.C
			} else {
				timer.Reset(250 * time.Millisecond)
			}
		case <-fire:
			select {
			case out <- pending:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", slog.String("error", err.Error()))
		}
	}
}

func init() {
	syncCmd.Flags().Duration("interval", 0, "re-sync on this interval (e.g. 15m); 0 syncs once and exits")
	syncCmd.Flags().Bool("watch", false, "watch the config file and re-sync on changes")
	syncCmd.Flags().Bool("quiet", false, "suppress per-item notifications")
	rootCmd.AddCommand(syncCmd)
}
