/*
Package workers determines worker pool sizes that respect container CPU
limits.

runtime.NumCPU() reports the host's CPUs even inside a cgroup-limited
container; runtime.GOMAXPROCS(0) reflects the actual limit (Go 1.19+). The
helpers here size pools from GOMAXPROCS with a workload multiplier:

	// Preview prewarming: mixed decode + disk work, capped at 8
	n := workers.ForMixed(8)

The PREWARM_WORKERS environment variable overrides the calculation for
operators tuning a specific environment.
*/
package workers
