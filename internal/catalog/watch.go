package catalog

import (
	"path/filepath"
	"strings"

	"media-sorter/internal/logging"
	"media-sorter/internal/metrics"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes one loaded directory for changes to eligible entries.
// It never mutates catalog state itself: relevant events are reported
// through a callback and the owner decides when to re-scan.
type Watcher struct {
	watcher *fsnotify.Watcher
	dir     string
}

// WatchDirectory starts watching dir (not recursive) and invokes onChange
// with an event type ("create", "write", "remove", "rename") whenever an
// eligible entry changes. Close the returned Watcher to stop.
func WatchDirectory(dir string, onChange func(eventType string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		metrics.WatcherErrors.Inc()
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		metrics.WatcherErrors.Inc()
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{watcher: fw, dir: dir}
	go w.loop(onChange)

	logging.Debug("Catalog watcher started for %s", dir)
	return w, nil
}

// Close stops the watcher. The event loop exits once the underlying
// channels close.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(onChange func(eventType string)) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			eventType, relevant := relevantEvent(event)
			if !relevant {
				continue
			}
			metrics.WatcherEventsTotal.WithLabelValues(eventType).Inc()
			logging.Debug("Catalog change in %s: %s %s", w.dir, eventType, filepath.Base(event.Name))
			onChange(eventType)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Catalog watcher error: %v", err)
			metrics.WatcherErrors.Inc()
		}
	}
}

// relevantEvent filters raw fsnotify events down to the ones that can
// change the catalog or a preview: create/write/remove/rename of an
// eligible, non-hidden name. Chmod never qualifies.
func relevantEvent(event fsnotify.Event) (string, bool) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	if _, ok := KindForName(name); !ok {
		return "", false
	}

	switch {
	case event.Op&fsnotify.Create != 0:
		return "create", true
	case event.Op&fsnotify.Write != 0:
		return "write", true
	case event.Op&fsnotify.Remove != 0:
		return "remove", true
	case event.Op&fsnotify.Rename != 0:
		return "rename", true
	}
	return "", false
}
