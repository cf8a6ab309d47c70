//go:build !linux

// Package sobel stub counter implementation for platforms without perf_event_open
package sobel

type perfHandles struct{}

// PerfSupported reports whether hardware counter collection is available.
func PerfSupported() bool {
	return false
}

func (pm *PerfMonitor) open() error {
	return NewExecutionError("PerfMonitor.Start", "hardware counters not supported on this platform", nil)
}

func (pm *PerfMonitor) read() (*PerfCounters, error) {
	return nil, NewExecutionError("PerfMonitor.Stop", "hardware counters not supported on this platform", nil)
}

func (pm *PerfMonitor) close() {}
