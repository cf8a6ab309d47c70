// Package sobel performance counter collection for sweep measurements
package sobel

import (
	"time"
)

// PerfCounters holds hardware performance counter measurements for one
// timed sweep or dispatch
type PerfCounters struct {
	// Timing
	Duration time.Duration `json:"duration"`

	// CPU counters
	Cycles       uint64 `json:"cycles"`
	Instructions uint64 `json:"instructions"`
	CacheMisses  uint64 `json:"cache_misses"`
	BranchMisses uint64 `json:"branch_misses"`

	// Derived metrics
	IPC float64 `json:"ipc"` // Instructions per cycle
}

// PerfMonitor manages performance counter collection around a parallel
// region. Counters are opened on Start and read, disabled and closed on
// Stop. On platforms without counter support Start reports an execution
// error and callers degrade to timing-only measurement.
type PerfMonitor struct {
	handles perfHandles
}

// NewPerfMonitor creates a new performance monitor
func NewPerfMonitor() *PerfMonitor {
	return &PerfMonitor{}
}

// Start begins collecting performance counters
func (pm *PerfMonitor) Start() error {
	return pm.open()
}

// Stop ends collection and returns the counter values. Derived metrics are
// filled in from the raw counts.
func (pm *PerfMonitor) Stop() (*PerfCounters, error) {
	counters, err := pm.read()
	pm.close()
	if err != nil {
		return nil, err
	}

	if counters.Cycles > 0 {
		counters.IPC = float64(counters.Instructions) / float64(counters.Cycles)
	}

	return counters, nil
}
