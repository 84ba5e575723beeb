package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"media-sorter/internal/catalog"
	"media-sorter/internal/favorites"
	"media-sorter/internal/filesystem"
	"media-sorter/internal/logging"
	"media-sorter/internal/metrics"
	"media-sorter/internal/navigator"
	"media-sorter/internal/playback"
	"media-sorter/internal/prefs"
	"media-sorter/internal/preview"
)

// Sentinel errors for conditions hosts branch on.
var (
	// ErrEmpty means there is no current entry to operate on.
	ErrEmpty = errors.New("no media loaded")
	// ErrNotVideo means playback was requested for a non-video entry.
	ErrNotVideo = errors.New("current entry is not a video")
	// ErrBusy means a playback session is already running.
	ErrBusy = errors.New("playback already in progress")
)

// Default prewarm render size until a host requests a preview and the
// real viewport becomes known.
const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 800
)

// Messages shown in place of a preview for the three empty states.
const (
	msgNoDirectory = "Select a folder to begin"
	msgNoMedia     = "No supported files in this folder"
	msgNowEmpty    = "Folder is now empty"
)

// Status is a snapshot of the curation state.
type Status struct {
	Directory string `json:"directory,omitempty"`
	Name      string `json:"name,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	Favorite  bool   `json:"favorite"`
	Stale     bool   `json:"stale"`
	Playing   bool   `json:"playing"`
	Message   string `json:"message,omitempty"`
}

// Options configures engine behavior.
type Options struct {
	// CacheDir is the preview cache location, used for filesystem volume
	// attribution in retry metrics.
	CacheDir string
	// Prewarm enables background cache warming after a directory loads.
	Prewarm bool
}

// Engine is the facade over the catalog, navigator, favorites, preview and
// playback packages. All curation state lives behind one mutex; hosts call
// from any goroutine. Playback blocks the calling goroutine but holds only
// a busy flag, so status queries and stop requests stay responsive during
// a session.
type Engine struct {
	mu  sync.Mutex
	nav *navigator.State

	dir             string
	stale           bool
	everLoaded      bool
	emptiedByDelete bool

	store    *prefs.Store
	renderer *preview.Renderer
	player   *playback.Player

	watcher *catalog.Watcher

	prewarm       bool
	prewarmCancel context.CancelFunc
	viewportW     int
	viewportH     int

	playing    bool
	playCancel context.CancelFunc

	cacheDir string
	retryCfg filesystem.RetryConfig
}

// New creates an engine with no directory loaded.
func New(store *prefs.Store, renderer *preview.Renderer, player *playback.Player, opts Options) *Engine {
	return &Engine{
		nav:       navigator.New(),
		store:     store,
		renderer:  renderer,
		player:    player,
		prewarm:   opts.Prewarm,
		cacheDir:  opts.CacheDir,
		viewportW: defaultViewportWidth,
		viewportH: defaultViewportHeight,
		retryCfg:  filesystem.DefaultRetryConfig(),
	}
}

// LoadDirectory scans path and makes it the current directory. On scan
// failure the previous state is untouched. A successful load persists the
// location best-effort, restarts the directory watcher and kicks off
// prewarming.
func (e *Engine) LoadDirectory(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entries, err := catalog.Scan(abs)
	if err != nil {
		return err
	}

	e.dir = abs
	e.nav.Load(entries)
	e.stale = false
	e.everLoaded = true
	e.emptiedByDelete = false
	metrics.NavigationOpsTotal.WithLabelValues("load").Inc()
	logging.Info("Loaded directory %s (%d entries)", abs, len(entries))

	if err := e.store.Save(abs); err != nil {
		logging.Warn("Failed to persist directory location: %v", err)
	}

	e.installVolumeResolver(abs)
	e.restartWatcherLocked(abs)
	e.kickPrewarmLocked()

	return nil
}

// RestoreLastDirectory loads the persisted directory, if any and still
// valid. It reports whether a directory was loaded.
func (e *Engine) RestoreLastDirectory() bool {
	dir, ok := e.store.Load()
	if !ok {
		return false
	}
	if err := e.LoadDirectory(dir); err != nil {
		logging.Warn("Persisted directory %s no longer loads: %v", dir, err)
		return false
	}
	return true
}

// Refresh re-scans the current directory on the caller's goroutine. The
// cursor stays on the same entry name when it survives the re-scan, else
// clamps near its old index. A failed re-scan keeps prior state.
func (e *Engine) Refresh() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dir == "" {
		return ErrEmpty
	}

	prev, hadCurrent := e.nav.Current()
	prevIndex := e.nav.Index()

	entries, err := catalog.Scan(e.dir)
	if err != nil {
		return err
	}

	e.nav.Load(entries)
	if hadCurrent {
		e.nav.PositionAt(prev.Name, prevIndex)
	}
	e.stale = false
	e.emptiedByDelete = false
	metrics.NavigationOpsTotal.WithLabelValues("refresh").Inc()
	logging.Info("Refreshed %s (%d entries)", e.dir, len(entries))

	e.kickPrewarmLocked()

	return nil
}

// Next advances the cursor, clamping at the last entry.
func (e *Engine) Next() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nav.Next() {
		metrics.NavigationOpsTotal.WithLabelValues("next").Inc()
	}
	return e.statusLocked()
}

// Previous moves the cursor back, clamping at the first entry.
func (e *Engine) Previous() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nav.Previous() {
		metrics.NavigationOpsTotal.WithLabelValues("previous").Inc()
	}
	return e.statusLocked()
}

// ToggleFavorite flips favorite membership of the current entry and
// returns the new state.
func (e *Engine) ToggleFavorite() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, ok := e.nav.Current()
	if !ok {
		return false, ErrEmpty
	}
	return favorites.Toggle(e.dir, cur.Name)
}

// Delete removes the current entry's file and drops it from the catalog.
// On filesystem failure nothing changes. The favorites mirror, if any, is
// deliberately left in place.
func (e *Engine) Delete() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, ok := e.nav.Current()
	if !ok {
		return ErrEmpty
	}

	path := filepath.Join(e.dir, cur.Name)
	if err := filesystem.RemoveWithRetry(path, e.retryCfg); err != nil {
		metrics.DeleteOpsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("delete %s: %w", cur.Name, err)
	}

	e.nav.RemoveCurrent()
	if e.nav.Empty() {
		e.emptiedByDelete = true
	}
	metrics.DeleteOpsTotal.WithLabelValues("success").Inc()
	logging.Info("Deleted %s", path)

	return nil
}

// CurrentPreview renders the current entry as a JPEG sized for the given
// viewport. Non-positive dimensions fall back to the last-known viewport,
// so such renders share cache keys with prewarmed previews. The render
// happens outside the engine mutex; a concurrent delete surfaces as an
// UnreadableError, never a crash.
func (e *Engine) CurrentPreview(ctx context.Context, width, height int) ([]byte, error) {
	e.mu.Lock()
	cur, ok := e.nav.Current()
	dir := e.dir
	if ok && width > 0 && height > 0 {
		e.viewportW = width
		e.viewportH = height
	}
	width, height = e.viewportW, e.viewportH
	e.mu.Unlock()

	if !ok {
		return nil, ErrEmpty
	}

	return e.renderer.Render(ctx, dir, cur, width, height)
}

// PlayCurrent runs a playback session for the current entry, blocking
// until it completes, fails, or is stopped. Only one session runs at a
// time.
func (e *Engine) PlayCurrent(ctx context.Context, viewer playback.Viewer) error {
	e.mu.Lock()
	cur, ok := e.nav.Current()
	if !ok {
		e.mu.Unlock()
		return ErrEmpty
	}
	if cur.Kind != catalog.KindVideo {
		e.mu.Unlock()
		return ErrNotVideo
	}
	if e.playing {
		e.mu.Unlock()
		return ErrBusy
	}

	playCtx, cancel := context.WithCancel(ctx)
	e.playing = true
	e.playCancel = cancel
	path := filepath.Join(e.dir, cur.Name)
	e.mu.Unlock()

	metrics.PlaybackActive.Set(1)
	err := e.player.Play(playCtx, path, viewer)
	metrics.PlaybackActive.Set(0)

	e.mu.Lock()
	e.playing = false
	e.playCancel = nil
	e.mu.Unlock()
	cancel()

	return err
}

// StopPlayback cancels the active playback session, if any, and reports
// whether one was running.
func (e *Engine) StopPlayback() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.playCancel == nil {
		return false
	}
	e.playCancel()
	return true
}

// Status returns a snapshot of the curation state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

// Listing returns the loaded directory, a copy of its entries and the
// stale flag.
func (e *Engine) Listing() (string, []catalog.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := make([]catalog.Entry, e.nav.Len())
	copy(entries, e.nav.Entries())
	return e.dir, entries, e.stale
}

// GetStats implements metrics.StatsProvider for the gauge collector.
func (e *Engine) GetStats() metrics.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	var images, videos int
	for _, entry := range e.nav.Entries() {
		switch entry.Kind {
		case catalog.KindImage:
			images++
		case catalog.KindVideo:
			videos++
		}
	}

	fav := 0
	if e.dir != "" {
		fav = favorites.Count(e.dir)
	}

	return metrics.Stats{
		TotalImages:    images,
		TotalVideos:    videos,
		TotalFavorites: fav,
		CatalogStale:   e.stale,
	}
}

// Close stops the watcher, prewarming and any playback session.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopPrewarmLocked()
	if e.playCancel != nil {
		e.playCancel()
	}
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			logging.Warn("Failed to close watcher: %v", err)
		}
		e.watcher = nil
	}
}

func (e *Engine) statusLocked() Status {
	st := Status{
		Directory: e.dir,
		Total:     e.nav.Len(),
		Stale:     e.stale,
		Playing:   e.playing,
	}

	cur, ok := e.nav.Current()
	if !ok {
		st.Message = e.emptyMessageLocked()
		return st
	}

	st.Name = cur.Name
	st.Kind = string(cur.Kind)
	st.Index = e.nav.Index() + 1
	st.Favorite = favorites.IsFavorite(e.dir, cur.Name)
	return st
}

func (e *Engine) emptyMessageLocked() string {
	switch {
	case !e.everLoaded:
		return msgNoDirectory
	case e.emptiedByDelete:
		return msgNowEmpty
	default:
		return msgNoMedia
	}
}

// installVolumeResolver attributes retry metrics to the media, cache and
// state volumes.
func (e *Engine) installVolumeResolver(dir string) {
	volumes := map[string]string{"media": dir}
	if e.cacheDir != "" {
		volumes["cache"] = e.cacheDir
	}
	if e.store != nil && e.store.Path() != "" {
		volumes["state"] = filepath.Dir(e.store.Path())
	}
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(volumes))
}

func (e *Engine) restartWatcherLocked(dir string) {
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			logging.Warn("Failed to close previous watcher: %v", err)
		}
		e.watcher = nil
	}

	w, err := catalog.WatchDirectory(dir, func(eventType string) {
		e.markStale(dir, eventType)
	})
	if err != nil {
		// Degraded but functional: refresh still works, staleness is
		// just never flagged automatically
		logging.Warn("Directory watch unavailable for %s: %v", dir, err)
		return
	}
	e.watcher = w
}

// markStale runs on the watcher goroutine.
func (e *Engine) markStale(dir, eventType string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Events from a superseded watcher must not mark the new directory
	if e.dir != dir || e.stale {
		return
	}
	e.stale = true
	logging.Debug("Catalog marked stale (%s event in %s)", eventType, dir)
}

func (e *Engine) kickPrewarmLocked() {
	e.stopPrewarmLocked()

	if !e.prewarm || e.nav.Empty() {
		return
	}

	entries := make([]catalog.Entry, e.nav.Len())
	copy(entries, e.nav.Entries())
	dir := e.dir
	width, height := e.viewportW, e.viewportH

	ctx, cancel := context.WithCancel(context.Background())
	e.prewarmCancel = cancel

	go func() {
		e.renderer.Prewarm(ctx, dir, entries, width, height)
		cancel()
	}()
}

func (e *Engine) stopPrewarmLocked() {
	if e.prewarmCancel != nil {
		e.prewarmCancel()
		e.prewarmCancel = nil
	}
}
