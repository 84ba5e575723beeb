package preview

import (
	"context"
	"time"

	"media-sorter/internal/catalog"
	"media-sorter/internal/logging"
	"media-sorter/internal/metrics"
	"media-sorter/internal/workers"

	"golang.org/x/sync/errgroup"
)

// Prewarm renders previews for all entries into the cache so that
// navigation hits warm entries. Per-entry failures are logged and
// skipped; cancellation stops scheduling new work.
func (r *Renderer) Prewarm(ctx context.Context, dir string, entries []catalog.Entry, targetWidth, targetHeight int) {
	if len(entries) == 0 {
		return
	}

	start := time.Now()
	limit := workers.ForMixed(len(entries))
	logging.Info("Prewarming %d previews for %s with %d workers", len(entries), dir, limit)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// Interactive requests never pause; background warming
			// yields under memory pressure.
			if r.monitor != nil && !r.monitor.WaitIfPaused() {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			if _, err := r.Render(ctx, dir, entry, targetWidth, targetHeight); err != nil {
				logging.Debug("Prewarm skipped %s: %v", entry.Name, err)
				return nil
			}
			metrics.PrewarmedPreviewsTotal.Inc()
			return nil
		})
	}

	_ = g.Wait()
	logging.Info("Prewarm for %s finished in %v", dir, time.Since(start).Round(time.Millisecond))
}
