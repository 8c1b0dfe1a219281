package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// historyEpoch bounds the first-activity probe; the platform did not
// exist before this.
var historyEpoch = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

// DownloadHistory fetches the day-bucketed wagering history for src up to
// today. The newest stored day is dropped and re-fetched in full, which
// both completes any day that was only partially stored and picks up
// records added since the last run. On an empty store the start day comes
// from probing for the account's first activity.
func (in *Ingestor) DownloadHistory(ctx context.Context, src Source) error {
	start, ok, err := in.store.DropLatestHistoryDay(src.Key)
	if err != nil {
		return fmt.Errorf("drop latest history day: %w", err)
	}
	if !ok {
		start, ok, err = in.findFirstActivity(ctx, src)
		if err != nil {
			return fmt.Errorf("find first activity: %w", err)
		}
		if !ok {
			in.logger.Warn("no history found for this account", "source", src.Key)
			return nil
		}
		in.logger.Info("first activity located", "source", src.Key, "day", start.Format("2006-01-02"))
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	for d := start.UTC().Truncate(24 * time.Hour); !d.After(today); d = d.AddDate(0, 0, 1) {
		if err := in.fetchDay(ctx, src, d); err != nil {
			return err
		}
	}

	return nil
}

// fetchDay pages through one UTC day of history. A failed page stops that
// day's pagination without failing the run; the dropped-day resume
// strategy re-fetches it next time.
func (in *Ingestor) fetchDay(ctx context.Context, src Source, day time.Time) error {
	from := day
	to := day.Add(24*time.Hour - time.Millisecond)
	bucket := day.Format("2006-01-02")

	in.logger.Info("fetching history day", "source", src.Key, "day", bucket)

	pageCount := 1
	for page := 1; page <= pageCount; page++ {
		data, err := in.client.GetPageRange(ctx, src.URL, page, from, to)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			in.logger.Warn("skipping rest of history day",
				"source", src.Key,
				"day", bucket,
				"page", page,
				"err", err,
			)
			return nil
		}

		if page == 1 && data.PageCount > 0 {
			pageCount = data.PageCount
		}

		if err := in.store.SavePage(src.Key, page, bucket, data); err != nil {
			return fmt.Errorf("persist %s %s page %d: %w", src.Key, bucket, page, err)
		}

		if page < pageCount {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(in.pageDelay):
			}
		}
	}

	return nil
}

// findFirstActivity probes 6-month windows forward from the platform
// epoch until one returns records, and reports the oldest record's day.
func (in *Ingestor) findFirstActivity(ctx context.Context, src Source) (time.Time, bool, error) {
	today := time.Now().UTC()

	for start := historyEpoch; start.Before(today); {
		end := start.AddDate(0, 6, 0)
		if end.After(today) {
			end = today
		}

		data, err := in.client.GetPageRange(ctx, src.URL, 1, start, end)
		if err != nil {
			if ctx.Err() != nil {
				return time.Time{}, false, ctx.Err()
			}
			start = end
			continue
		}

		if data.TotalCount > 0 && len(data.Items) > 0 {
			// Descending order: the last item on the page is the oldest.
			var probe itemProbe
			if err := json.Unmarshal(data.Items[len(data.Items)-1], &probe); err != nil {
				return time.Time{}, false, fmt.Errorf("decode first-activity item: %w", err)
			}
			return probe.CreateTime, true, nil
		}

		start = end
	}

	return time.Time{}, false, nil
}
