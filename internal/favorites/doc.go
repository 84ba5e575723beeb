// Package favorites mirrors curated files into a favorites/ subdirectory
// of the loaded directory. The filesystem is the store: membership is the
// existence of the mirror file, so favorites survive restarts and remain
// visible to any file manager without a database.
package favorites
