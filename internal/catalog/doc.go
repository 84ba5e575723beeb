// Package catalog lists the curated contents of a single directory.
//
// A catalog is the sorted set of eligible media files (a fixed extension
// set: png, jpg, jpeg, gif, bmp, heic images and mov videos) directly
// inside one directory. Scans are shallow, skip dotfiles and non-regular
// files, and sort case-insensitively so the same directory always produces
// the same order.
//
// The package also provides a Watcher that reports external changes to
// eligible entries via fsnotify. The watcher only signals; re-scanning is
// always an explicit caller decision, which keeps navigation state under a
// single control flow.
package catalog
