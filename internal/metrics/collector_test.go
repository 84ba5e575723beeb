package metrics

import (
	"testing"
	"time"
)

// =============================================================================
// Mock StatsProvider
// =============================================================================

type mockStatsProvider struct {
	stats Stats
}

func (m *mockStatsProvider) GetStats() Stats {
	return m.stats
}

// =============================================================================
// Collector Tests
// =============================================================================

func TestNewCollector(t *testing.T) {
	provider := &mockStatsProvider{
		stats: Stats{
			TotalImages:    80,
			TotalVideos:    20,
			TotalFavorites: 15,
		},
	}

	collector := NewCollector(provider, 5*time.Second)

	if collector == nil {
		t.Fatal("NewCollector returned nil")
	}

	if collector.statsProvider != provider {
		t.Error("statsProvider not set correctly")
	}

	if collector.interval != 5*time.Second {
		t.Errorf("interval = %v, want %v", collector.interval, 5*time.Second)
	}

	if collector.stopChan == nil {
		t.Error("stopChan not initialized")
	}
}

func TestNewCollectorWithNilProvider(t *testing.T) {
	collector := NewCollector(nil, 5*time.Second)

	if collector == nil {
		t.Fatal("NewCollector returned nil")
	}

	if collector.statsProvider != nil {
		t.Error("statsProvider should be nil")
	}
}

func TestCollectorStartStop(_ *testing.T) {
	provider := &mockStatsProvider{
		stats: Stats{TotalImages: 50},
	}

	collector := NewCollector(provider, 100*time.Millisecond)

	// Start collector
	collector.Start()

	// Let it run briefly
	time.Sleep(150 * time.Millisecond)

	// Stop collector
	collector.Stop()

	// Test should complete without hanging
}

func TestCollectorMultipleCollectCycles(_ *testing.T) {
	provider := &mockStatsProvider{
		stats: Stats{
			TotalImages: 100,
			TotalVideos: 50,
		},
	}

	collector := NewCollector(provider, 50*time.Millisecond)

	collector.Start()

	// Let it run through multiple collection cycles
	time.Sleep(200 * time.Millisecond)

	collector.Stop()

	// Test should complete without hanging
}

func TestCollectWithNilProvider(t *testing.T) {
	collector := NewCollector(nil, 1*time.Second)

	// Should not panic when collecting with nil provider
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("collect() panicked with nil provider: %v", r)
		}
	}()

	collector.collect()
}

func TestCollectUpdatesGauges(_ *testing.T) {
	provider := &mockStatsProvider{
		stats: Stats{
			TotalImages:    30,
			TotalVideos:    12,
			TotalFavorites: 7,
			CatalogStale:   true,
		},
	}

	collector := NewCollector(provider, 1*time.Second)
	collector.collect()

	// Stale flag flips back down on the next snapshot
	provider.stats.CatalogStale = false
	collector.collect()

	// Should complete without error
}
