package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-sorter/internal/engine"
	"media-sorter/internal/filesystem"
	"media-sorter/internal/handlers"
	"media-sorter/internal/logging"
	"media-sorter/internal/memory"
	"media-sorter/internal/metrics"
	"media-sorter/internal/middleware"
	"media-sorter/internal/playback"
	"media-sorter/internal/prefs"
	"media-sorter/internal/preview"
	"media-sorter/internal/startup"
	"media-sorter/internal/transcoder"

	"github.com/gorilla/mux"
)

const collectInterval = 30 * time.Second

func main() {
	startTime := time.Now()

	// Set GOMEMLIMIT before anything allocates seriously
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize image and video decoding
	if err := preview.InitVips(); err != nil {
		logging.Warn("libvips unavailable, falling back to pure-Go decoding: %v", err)
	}
	startup.LogTranscoderInit()
	trans := transcoder.New()

	// Initialize metrics
	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	// Memory monitor pauses prewarming under pressure
	monitor := memory.NewMonitor(memory.DefaultConfig())
	monitor.Start()

	// Initialize the curation engine
	store := prefs.New(config.StateFile)
	renderer := preview.NewRenderer(config.PreviewCacheDir, trans, monitor)
	player := playback.NewPlayer(trans)
	eng := engine.New(store, renderer, player, engine.Options{
		CacheDir: config.CacheDir,
		Prewarm:  config.Prewarm,
	})

	// An explicit start directory wins over the persisted location
	if config.StartDir != "" {
		if err := eng.LoadDirectory(config.StartDir); err != nil {
			logging.Warn("Start directory %s did not load: %v", config.StartDir, err)
		}
	} else if !eng.RestoreLastDirectory() {
		logging.Info("No directory restored; waiting for one via the API")
	}

	// Collect engine gauges on a fixed cadence
	collector := metrics.NewCollector(eng, collectInterval)
	collector.Start()

	// Initialize handlers
	h := handlers.New(eng)

	// Setup router
	router := setupRouter(h)
	if config.MetricsEnabled {
		router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
	}

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	loggedHandler := middleware.Logger(loggingConfig)(router)

	// Apply compression middleware
	compressionConfig := middleware.DefaultCompressionConfig()
	handler := middleware.Compression(compressionConfig)(loggedHandler)

	// Create server; WriteTimeout stays zero because playback streams
	// run for the length of a video
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = startMetricsServer(h, config.MetricsPort)
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, eng, collector, monitor, trans)

	// Start server
	h.SetReady()
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Curation API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/directory", h.SetDirectory).Methods("POST")
	api.HandleFunc("/directory", h.GetDirectory).Methods("GET")
	api.HandleFunc("/refresh", h.RefreshDirectory).Methods("POST")
	api.HandleFunc("/next", h.NextEntry).Methods("POST")
	api.HandleFunc("/previous", h.PreviousEntry).Methods("POST")
	api.HandleFunc("/current", h.GetCurrent).Methods("GET")
	api.HandleFunc("/current", h.DeleteCurrent).Methods("DELETE")
	api.HandleFunc("/preview", h.GetPreview).Methods("GET")
	api.HandleFunc("/favorite", h.ToggleFavorite).Methods("POST")
	api.HandleFunc("/play", h.PlayVideo).Methods("GET")
	api.HandleFunc("/stop", h.StopPlayback).Methods("POST")

	return r
}

// startMetricsServer serves Prometheus metrics on its own port so
// scrapes never compete with playback streams.
func startMetricsServer(h *handlers.Handlers, port string) *http.Server {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", h.MetricsHandler()).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      metricsRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Metrics server error: %v", err)
		}
	}()

	return srv
}

func handleShutdown(srv, metricsSrv *http.Server, eng *engine.Engine, collector *metrics.Collector, monitor *memory.Monitor, trans *transcoder.Transcoder) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Ending playback first lets the server drain its streaming
	// requests instead of waiting out the timeout.
	startup.LogShutdownStep("Stopping engine")
	eng.Close()
	startup.LogShutdownStepComplete("Engine stopped")

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Cleaning up decoders")
	monitor.Stop()
	trans.Cleanup()
	preview.ShutdownVips()
	startup.LogShutdownStepComplete("Decoder cleanup complete")

	startup.LogShutdownComplete()
}
