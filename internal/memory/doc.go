/*
Package memory configures the Go memory limit from container constraints
and provides a backpressure monitor for background work.

ConfigureFromEnv derives GOMEMLIMIT from MEMORY_LIMIT (the container limit
in bytes) scaled by MEMORY_RATIO, keeping headroom for ffmpeg child
processes and libvips allocations that live outside the Go heap.

Monitor samples heap usage against the limit and pauses cooperative
background work (the preview prewarmer) above a critical watermark:

	monitor := memory.NewMonitor(memory.DefaultConfig())
	monitor.Start()
	defer monitor.Stop()

	for _, entry := range entries {
	    if !monitor.WaitIfPaused() {
	        return // monitor stopped
	    }
	    render(entry)
	}

Interactive requests never consult the monitor; only deferrable work yields.
*/
package memory
