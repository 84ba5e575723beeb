package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count returns the worker count for a pool, derived from the CPUs actually
// available (GOMAXPROCS respects container limits in Go 1.19+).
//
// The multiplier adjusts for task characteristics:
//   - 1.0 for CPU-bound tasks
//   - 2.0 for I/O-bound tasks
//   - 1.5 for mixed tasks
//
// The limit parameter caps the worker count; use 0 for no limit. The
// PREWARM_WORKERS environment variable overrides the calculation, still
// subject to the limit.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv("PREWARM_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	available := runtime.GOMAXPROCS(0)

	workers := int(float64(available) * multiplier)

	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}

	return workers
}

// ForCPU returns worker count for CPU-bound tasks (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}

// ForIO returns worker count for I/O-bound tasks (2 per CPU).
func ForIO(limit int) int {
	return Count(2.0, limit)
}

// ForMixed returns worker count for mixed tasks (1.5 per CPU).
// Preview prewarming (read file, decode, encode, write cache) is the
// canonical mixed workload here.
func ForMixed(limit int) int {
	return Count(1.5, limit)
}
