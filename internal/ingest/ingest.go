package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/rickgao/metawin-stats/internal/api"
	"github.com/rickgao/metawin-stats/internal/store"
)

// Ingestor drives pagination for the configured sources, one at a time.
type Ingestor struct {
	client    *api.Client
	store     *store.Store
	logger    *slog.Logger
	pageDelay time.Duration
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithPageDelay sets the politeness delay between history page fetches.
func WithPageDelay(d time.Duration) Option {
	return func(in *Ingestor) {
		in.pageDelay = d
	}
}

// New creates an Ingestor over the given client and store.
func New(client *api.Client, st *store.Store, logger *slog.Logger, opts ...Option) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	in := &Ingestor{
		client:    client,
		store:     st,
		logger:    logger,
		pageDelay: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Ingest runs one incremental pass for src. An error means the source was
// abandoned for this run; the store always holds a consistent watermark
// and, when pagination died mid-pass, a resume checkpoint. Errors here
// never abort other sources.
func (in *Ingestor) Ingest(ctx context.Context, src Source) error {
	lastSeen, err := in.store.LastSeen(src.Key)
	if err != nil {
		return fmt.Errorf("read watermark for %s: %w", src.Key, err)
	}
	resumePage, resumeTotal, err := in.store.Resume(src.Key)
	if err != nil {
		return fmt.Errorf("read resume state for %s: %w", src.Key, err)
	}

	resuming := resumePage > 0
	startPage := 2
	totalPages := 0
	// Blobs are never overwritten: each pass files its pages under the
	// pass's high-water id, which is distinct whenever there is new data.
	// A resumed pass recovers the same bucket from the watermark, which
	// was already advanced before the interrupted page loop began.
	bucket := strconv.FormatInt(lastSeen, 10)

	if resuming {
		in.logger.Info("resuming interrupted pass",
			"source", src.Key,
			"page", resumePage,
			"total_pages", resumeTotal,
		)
		startPage = resumePage
		totalPages = resumeTotal
	} else {
		in.logger.Info("checking for new data", "source", src.Key)

		first, err := in.client.GetPage(ctx, src.URL, 1)
		if err != nil {
			return fmt.Errorf("fetch %s page 1: %w", src.Key, err)
		}

		newItems := itemsNewerThan(first.Items, src.IDKind, lastSeen)
		if len(newItems) == 0 {
			in.logger.Info("source up to date", "source", src.Key)
			return nil
		}

		maxID := maxItemID(newItems, src.IDKind)
		bucket = strconv.FormatInt(maxID, 10)

		trimmed := *first
		trimmed.Items = newItems
		if err := in.store.SavePage(src.Key, 1, bucket, &trimmed); err != nil {
			return fmt.Errorf("persist %s page 1: %w", src.Key, err)
		}

		// Advance the watermark now, before any further fetch: a crash
		// from here on must never re-ingest page 1's items.
		if err := in.store.SetLastSeen(src.Key, maxID); err != nil {
			return fmt.Errorf("advance watermark for %s: %w", src.Key, err)
		}

		totalPages = first.PageCount
		in.logger.Info("new data incoming",
			"source", src.Key,
			"new_items", len(newItems),
			"total_pages", totalPages,
		)
	}

	for page := startPage; page <= totalPages; page++ {
		in.logger.Info("retrieving page",
			"source", src.Key,
			"page", page,
			"total_pages", totalPages,
		)

		pageData, err := in.client.GetPage(ctx, src.URL, page)
		if err != nil {
			if serr := in.store.SetResume(src.Key, page, totalPages); serr != nil {
				return fmt.Errorf("record resume state for %s: %w", src.Key, serr)
			}
			return fmt.Errorf("fetch %s page %d (will resume next run, check bearer token): %w",
				src.Key, page, err)
		}

		// Once a page dips to at-or-below the watermark, everything after
		// it is older still (descending order invariant): truncate, store
		// and stop. Resumed passes skip this and persist pages whole.
		if !resuming && lastSeen > 0 && anyAtOrBelow(pageData.Items, src.IDKind, lastSeen) {
			trimmed := *pageData
			trimmed.Items = itemsNewerThan(pageData.Items, src.IDKind, lastSeen)
			if err := in.store.SavePage(src.Key, page, bucket, &trimmed); err != nil {
				return fmt.Errorf("persist %s page %d: %w", src.Key, page, err)
			}
			in.logger.Info("reached previously ingested items, stopping early",
				"source", src.Key,
				"page", page,
			)
			break
		}

		if err := in.store.SavePage(src.Key, page, bucket, pageData); err != nil {
			return fmt.Errorf("persist %s page %d: %w", src.Key, page, err)
		}
	}

	if err := in.store.ClearResume(src.Key); err != nil {
		return fmt.Errorf("clear resume state for %s: %w", src.Key, err)
	}

	in.logger.Info("source ingested", "source", src.Key)
	return nil
}

func itemsNewerThan(items []json.RawMessage, kind IDKind, watermark int64) []json.RawMessage {
	var newer []json.RawMessage
	for _, item := range items {
		if itemID(item, kind) > watermark {
			newer = append(newer, item)
		}
	}
	return newer
}

func anyAtOrBelow(items []json.RawMessage, kind IDKind, watermark int64) bool {
	for _, item := range items {
		if itemID(item, kind) <= watermark {
			return true
		}
	}
	return false
}

func maxItemID(items []json.RawMessage, kind IDKind) int64 {
	var max int64
	for _, item := range items {
		if id := itemID(item, kind); id > max {
			max = id
		}
	}
	return max
}
