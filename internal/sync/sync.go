// ABOUTME: Sync orchestrator: fetches feeds and materializes new items as documents
// ABOUTME: Per-feed and per-item failures degrade gracefully and never abort the whole run

package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/harper/feedvault/internal/config"
	"github.com/harper/feedvault/internal/docmodel"
	"github.com/harper/feedvault/internal/render"
	"github.com/harper/feedvault/internal/timeutil"
	"github.com/harper/feedvault/internal/vault"
)

// DocumentStore is the document corpus the syncer reads and appends to.
// Create must return an error satisfying errors.Is(err, vault.ErrExists)
// when the target name is taken.
type DocumentStore interface {
	List() ([]string, error)
	Read(path string) (string, error)
	Create(path, text string) error
}

// FeedSource retrieves and parses a feed by URL.
type FeedSource interface {
	Fetch(ctx context.Context, url string) (*gofeed.Feed, error)
}

// Notifier is the fire-and-forget user notification sink.
type Notifier interface {
	Notify(message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(string) {}

// Report summarizes one sync run.
type Report struct {
	FeedsSynced int
	FeedsFailed int
	Created     int
	Skipped     int
	Failed      int
}

// Syncer drives the sync of all configured feeds. Feeds and their items
// are processed strictly sequentially: the guid index snapshot and the
// create calls are not synchronized against concurrent writers, and
// serializing keeps the membership check and the create from racing
// each other.
type Syncer struct {
	cfg      *config.Config
	source   FeedSource
	store    DocumentStore
	notifier Notifier
	logger   *slog.Logger
}

// New creates a syncer. A nil notifier discards notifications and a nil
// logger falls back to slog.Default().
func New(cfg *config.Config, source FeedSource, store DocumentStore, notifier Notifier, logger *slog.Logger) *Syncer {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{cfg: cfg, source: source, store: store, notifier: notifier, logger: logger}
}

// Sync processes every configured feed in order. A failed feed is
// reported and does not block the feeds after it; ctx cancellation stops
// the run at the next feed or item boundary.
func (s *Syncer) Sync(ctx context.Context) Report {
	logger := s.logger.With(slog.String("run", uuid.New().String()[:8]))

	var report Report
	for _, feed := range s.cfg.Feeds {
		if ctx.Err() != nil {
			logger.Warn("sync cancelled", slog.String("error", ctx.Err().Error()))
			break
		}

		created, skipped, failed, err := s.syncFeed(ctx, logger, feed)
		report.Created += created
		report.Skipped += skipped
		report.Failed += failed
		if err != nil {
			report.FeedsFailed++
			s.notifier.Notify(fmt.Sprintf("Failed to sync feed %s: %v", feed.Name, err))
			logger.Warn("feed sync failed",
				slog.String("feed", feed.ID),
				slog.String("error", err.Error()))
			continue
		}
		report.FeedsSynced++
	}
	return report
}

// syncFeed fetches one feed and materializes its new items. Only fetch
// and index-build problems surface as an error; item-level failures are
// reported and counted but the loop continues.
func (s *Syncer) syncFeed(ctx context.Context, logger *slog.Logger, feed config.FeedConfig) (created, skipped, failed int, err error) {
	logger = logger.With(slog.String("feed", feed.ID))
	s.notifier.Notify("Sync feed: " + feed.Name)

	parsed, err := s.source.Fetch(ctx, feed.URL)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("fetch %s: %w", feed.URL, err)
	}

	feedType, _ := s.cfg.FeedType(feed.FeedTypeID)

	feedDoc := docmodel.FromFeed(parsed)
	docmodel.ApplyFieldMap(feedDoc, feedType.FeedFields)
	feedDoc["name"] = docmodel.String(feed.Name)

	index, err := BuildGuidIndex(s.store)
	if err != nil {
		return 0, 0, 0, err
	}

	targetPath := feed.Path
	if targetPath == "" {
		targetPath = s.cfg.Defaults.Path
	}
	bodyTemplate := feed.Template
	if bodyTemplate == "" {
		bodyTemplate = s.cfg.Defaults.Template
	}

	logger.Info("syncing feed",
		slog.String("url", feed.URL),
		slog.Int("items", len(parsed.Items)))

	for _, item := range parsed.Items {
		if ctx.Err() != nil {
			return created, skipped, failed, nil
		}

		itemDoc := docmodel.FromItem(item)
		docmodel.ApplyFieldMap(itemDoc, feedType.ItemFields)
		render.PrepareItem(itemDoc)

		guid := itemDoc.Lookup("guid").Text()
		if guid != "" && index.Has(guid) {
			logger.Debug("item already materialized", slog.String("guid", guid))
			skipped++
			continue
		}

		title := itemDoc.Lookup("title").Text()
		if feed.Title != "" {
			title = render.RenderItem(feed.Title, feedDoc, itemDoc)
		}
		text := render.RenderItem(bodyTemplate, feedDoc, itemDoc)

		name := documentName(itemDoc, title)
		rel := path.Join(targetPath, name)

		switch err := s.store.Create(rel, text); {
		case err == nil:
			s.notifier.Notify("Note created: " + rel)
			logger.Info("document created", slog.String("path", rel), slog.String("guid", guid))
			created++
		case errors.Is(err, vault.ErrExists):
			// Name collision with an existing document: the corpus
			// already has this content, so this is a no-op.
			logger.Debug("document name collision", slog.String("path", rel))
			skipped++
		default:
			s.notifier.Notify(fmt.Sprintf("Error creating note %s: %v", rel, err))
			logger.Warn("document create failed",
				slog.String("path", rel),
				slog.String("error", err.Error()))
			failed++
		}
	}
	return created, skipped, failed, nil
}

// documentName derives the deterministic document file name for an item:
// "<date> - <sanitized title>.md".
func documentName(itemDoc docmodel.Doc, title string) string {
	sanitized := render.SanitizeTitle(render.DecodeEntities(title))
	date := timeutil.FormatPubDate(
		itemDoc.Lookup("pubDate").Text(),
		itemDoc.Lookup("isoDate").Text(),
	)
	return date + " - " + sanitized + ".md"
}
