package favorites

import (
	"fmt"
	"os"
	"path/filepath"

	"media-sorter/internal/filesystem"
	"media-sorter/internal/logging"
	"media-sorter/internal/metrics"
)

// DirName is the mirror subdirectory created inside the curated directory.
const DirName = "favorites"

// MirrorDir returns the favorites directory for a curated directory.
func MirrorDir(dir string) string {
	return filepath.Join(dir, DirName)
}

func mirrorPath(dir, name string) string {
	return filepath.Join(dir, DirName, name)
}

// IsFavorite reports whether name in dir is currently favorited. Membership
// is the existence of the mirror file, checked on every call; nothing is
// cached, so external edits to favorites/ are always honored.
func IsFavorite(dir, name string) bool {
	info, err := filesystem.StatWithRetry(mirrorPath(dir, name), filesystem.DefaultRetryConfig())
	return err == nil && info.Mode().IsRegular()
}

// Toggle flips favorite membership for name in dir and returns the new
// state. Favoriting copies the file into favorites/ preserving contents,
// mode and modification time; unfavoriting removes the mirror. The original
// file is never touched. On error membership is unchanged and will be
// re-derived on the next query.
func Toggle(dir, name string) (bool, error) {
	mirror := mirrorPath(dir, name)

	if IsFavorite(dir, name) {
		if err := filesystem.RemoveWithRetry(mirror, filesystem.DefaultRetryConfig()); err != nil {
			metrics.FavoriteOpsTotal.WithLabelValues("remove", "error").Inc()
			return true, fmt.Errorf("remove favorite mirror %s: %w", mirror, err)
		}
		metrics.FavoriteOpsTotal.WithLabelValues("remove", "success").Inc()
		logging.Debug("Removed favorite mirror: %s", mirror)
		return false, nil
	}

	if err := os.MkdirAll(MirrorDir(dir), 0o755); err != nil {
		metrics.FavoriteOpsTotal.WithLabelValues("add", "error").Inc()
		return false, fmt.Errorf("create favorites directory: %w", err)
	}
	if err := filesystem.CopyPreserving(filepath.Join(dir, name), mirror); err != nil {
		metrics.FavoriteOpsTotal.WithLabelValues("add", "error").Inc()
		return false, fmt.Errorf("mirror favorite %s: %w", name, err)
	}

	metrics.FavoriteOpsTotal.WithLabelValues("add", "success").Inc()
	logging.Debug("Mirrored favorite: %s", mirror)
	return true, nil
}

// Count returns how many mirrors exist for dir. Used for status reporting;
// a missing favorites directory simply counts as zero.
func Count(dir string) int {
	entries, err := os.ReadDir(MirrorDir(dir))
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if e.Type().IsRegular() {
			count++
		}
	}
	return count
}
