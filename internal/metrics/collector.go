package metrics

import (
	"time"

	"media-sorter/internal/logging"
)

// StatsProvider supplies a snapshot of the loaded catalog for gauge
// metrics.
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the current catalog statistics.
type Stats struct {
	TotalImages    int
	TotalVideos    int
	TotalFavorites int
	CatalogStale   bool
}

// Collector periodically collects and updates library gauges.
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector.
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop.
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection.
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	MediaEntriesTotal.WithLabelValues("image").Set(float64(stats.TotalImages))
	MediaEntriesTotal.WithLabelValues("video").Set(float64(stats.TotalVideos))
	MediaFavoritesTotal.Set(float64(stats.TotalFavorites))
	if stats.CatalogStale {
		CatalogStale.Set(1)
	} else {
		CatalogStale.Set(0)
	}

	logging.Debug("Metrics collected: images=%d, videos=%d, favorites=%d, stale=%v",
		stats.TotalImages, stats.TotalVideos, stats.TotalFavorites, stats.CatalogStale)
}
