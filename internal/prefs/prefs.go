package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-sorter/internal/filesystem"
	"media-sorter/internal/logging"
	"media-sorter/internal/metrics"
)

// Store persists the last successfully loaded directory as a single
// plain-text file: the absolute path, nothing else. The format is the whole
// contract, so the file stays human-readable and trivially editable.
type Store struct {
	path string
}

// DefaultPath returns the conventional state file location
// (os.UserConfigDir()/media-sorter/lastdir).
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "media-sorter", "lastdir"), nil
}

// New creates a Store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted directory. The second return is false when the
// state file is missing or unreadable, holds no path, or names something
// that is no longer a readable directory. A stale or corrupt state file is
// never an error: startup just begins with no directory.
func (s *Store) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Debug("State file %s unreadable: %v", s.path, err)
		}
		metrics.StateOpsTotal.WithLabelValues("load", "miss").Inc()
		return "", false
	}

	dir := strings.TrimSpace(string(data))
	if dir == "" {
		metrics.StateOpsTotal.WithLabelValues("load", "miss").Inc()
		return "", false
	}

	info, err := filesystem.StatWithRetry(dir, filesystem.DefaultRetryConfig())
	if err != nil || !info.IsDir() {
		logging.Debug("Persisted directory %s no longer usable, ignoring", dir)
		metrics.StateOpsTotal.WithLabelValues("load", "stale").Inc()
		return "", false
	}

	metrics.StateOpsTotal.WithLabelValues("load", "success").Inc()
	return dir, true
}

// Save writes dir to the state file, creating the parent directory when
// needed. Callers treat failure as a warning, never as a reason to abort
// the load that triggered it.
func (s *Store) Save(dir string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		metrics.StateOpsTotal.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(dir+"\n"), 0o644); err != nil {
		metrics.StateOpsTotal.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("write state file: %w", err)
	}

	metrics.StateOpsTotal.WithLabelValues("save", "success").Inc()
	logging.Debug("Persisted last directory: %s", dir)
	return nil
}
