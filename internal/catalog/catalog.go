package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"media-sorter/internal/filesystem"
	"media-sorter/internal/metrics"
)

// ErrDirectoryNotFound marks a scan target that is missing, unreadable, or
// not a directory. Callers keep their previous state when they see it.
var ErrDirectoryNotFound = errors.New("directory not found or unreadable")

// Scan lists the eligible media files of a single directory. It is not
// recursive: subdirectories (including favorites/) never become entries.
// Dotfiles and non-regular files are skipped. Entries come back sorted by
// name ascending, compared case-insensitively with a byte-order tiebreak so
// the order is deterministic across platforms.
func Scan(dir string) ([]Entry, error) {
	start := time.Now()
	var scanErr error
	defer func() {
		status := "success"
		if scanErr != nil {
			status = "error"
		}
		metrics.CatalogScansTotal.WithLabelValues(status).Inc()
		metrics.CatalogScanDuration.Observe(time.Since(start).Seconds())
	}()

	dirEntries, err := filesystem.ReadDirWithRetry(dir, filesystem.DefaultRetryConfig())
	if err != nil {
		scanErr = err
		return nil, fmt.Errorf("scan %s: %w: %w", dir, ErrDirectoryNotFound, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !de.Type().IsRegular() {
			continue
		}
		kind, ok := KindForName(name)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Name: name, Kind: kind})
	}

	sortEntries(entries)

	metrics.CatalogEntriesReturned.Observe(float64(len(entries)))

	return entries, nil
}

// sortEntries orders entries by lowercased name, falling back to the raw
// name for entries that differ only by case.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		ni := strings.ToLower(entries[i].Name)
		nj := strings.ToLower(entries[j].Name)
		if ni != nj {
			return ni < nj
		}
		return entries[i].Name < entries[j].Name
	})
}
