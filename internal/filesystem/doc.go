/*
Package filesystem provides resilient filesystem operations with automatic
retry logic for NFS stale file handle errors, plus the metadata-preserving
copy used for the favorites mirror.

# Purpose

Curated directories frequently live on NFS mounts. This package wraps the
filesystem operations the application performs (os.Stat, os.Open, os.ReadDir,
os.Remove) with retry logic for transient ESTALE (stale file handle) errors
that occur when NFS-mounted files are accessed during network issues or
server-side changes.

# Usage

Basic usage with default retry configuration:

	import "media-sorter/internal/filesystem"

	info, err := filesystem.StatWithRetry("/nfs/photos/file.jpg", filesystem.DefaultRetryConfig())
	if err != nil {
	    log.Fatal(err)
	}

	entries, err := filesystem.ReadDirWithRetry("/nfs/photos", filesystem.DefaultRetryConfig())

Custom retry configuration:

	config := filesystem.RetryConfig{
	    MaxRetries:     5,
	    InitialBackoff: 100 * time.Millisecond,
	    MaxBackoff:     1 * time.Second,
	}
	info, err := filesystem.StatWithRetry(path, config)

# Retry Behavior

The retry logic implements exponential backoff with the following defaults:
  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

Only NFS stale file handle errors (ESTALE) trigger retries. All other errors
fail immediately without retry attempts.

# Favorites Mirror

CopyPreserving copies a file and carries over its permission bits and
modification time, so a favorited file's mirror matches the original the way
the curation contract requires.

# Metrics

Retry attempts, successes, failures and stale-error counts are reported
through the Observer interface. The metrics package provides the
implementation; register it once at startup:

	filesystem.SetObserver(metrics.NewFilesystemObserver())

Paths are labeled by volume ("media", "cache", "state") via the package-level
VolumeResolver, which the engine refreshes when a new directory is loaded.
*/
package filesystem
