//go:build linux

// Package sobel Linux performance counter implementation using perf_event_open
package sobel

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/unix"
)

// perfEvents lists the hardware events collected around each sweep, in the
// order their file descriptors are opened.
var perfEvents = []struct {
	name   string
	config uint64
}{
	{"cycles", unix.PERF_COUNT_HW_CPU_CYCLES},
	{"instructions", unix.PERF_COUNT_HW_INSTRUCTIONS},
	{"cache-misses", unix.PERF_COUNT_HW_CACHE_MISSES},
	{"branch-misses", unix.PERF_COUNT_HW_BRANCH_MISSES},
}

type perfHandles struct {
	fds []int
}

// PerfSupported reports whether hardware counter collection is available.
// Opening can still fail at Start time when perf_event_paranoid forbids it.
func PerfSupported() bool {
	return true
}

// open creates one counter file descriptor per event, scoped to the calling
// process across all CPUs, and enables them.
func (pm *PerfMonitor) open() error {
	attrSize := uint32(unsafe.Sizeof(unix.PerfEventAttr{}))

	for _, ev := range perfEvents {
		attr := unix.PerfEventAttr{
			Type:   unix.PERF_TYPE_HARDWARE,
			Size:   attrSize,
			Config: ev.config,
			Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
		}

		fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			pm.close()
			return NewExecutionError("PerfMonitor.Start", "perf_event_open "+ev.name+" failed", err)
		}
		pm.handles.fds = append(pm.handles.fds, fd)
	}

	for _, fd := range pm.handles.fds {
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
			pm.close()
			return NewExecutionError("PerfMonitor.Start", "counter reset failed", err)
		}
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
			pm.close()
			return NewExecutionError("PerfMonitor.Start", "counter enable failed", err)
		}
	}

	return nil
}

// read disables the counters and collects their values.
func (pm *PerfMonitor) read() (*PerfCounters, error) {
	counters := &PerfCounters{}
	values := make([]uint64, len(pm.handles.fds))

	for i, fd := range pm.handles.fds {
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0); err != nil {
			return nil, NewExecutionError("PerfMonitor.Stop", "counter disable failed", err)
		}

		var buf [8]byte
		if _, err := unix.Read(fd, buf[:]); err != nil {
			return nil, NewExecutionError("PerfMonitor.Stop", "counter read failed", err)
		}
		values[i] = binary.NativeEndian.Uint64(buf[:])
	}

	counters.Cycles = values[0]
	counters.Instructions = values[1]
	counters.CacheMisses = values[2]
	counters.BranchMisses = values[3]

	return counters, nil
}

// close releases all counter file descriptors.
func (pm *PerfMonitor) close() {
	for _, fd := range pm.handles.fds {
		unix.Close(fd)
	}
	pm.handles.fds = nil
}
