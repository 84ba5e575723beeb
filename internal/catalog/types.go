package catalog

import (
	"path/filepath"
	"strings"
)

// Kind classifies a catalog entry by how it is previewed and played.
type Kind string

const (
	// KindImage is a still image shown directly.
	KindImage Kind = "image"
	// KindVideo is a video, previewed as its first frame and playable.
	KindVideo Kind = "video"
)

// Entry is one curated file in the loaded directory. Name is the base name
// only; the owning directory is tracked by the engine.
type Entry struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// ImageExtensions maps file extensions to whether they are curated as images.
// The set is fixed; extension matching is case-insensitive.
var ImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".heic": true,
}

// VideoExtensions maps file extensions to whether they are curated as videos.
var VideoExtensions = map[string]bool{
	".mov": true,
}

// KindForName returns the Kind for a file name based on its extension.
// The second return is false for ineligible names.
func KindForName(name string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ImageExtensions[ext] {
		return KindImage, true
	}
	if VideoExtensions[ext] {
		return KindVideo, true
	}
	return "", false
}
