package sobel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SweepRecord captures one timed run in a form the companion sweep script
// can scrape: the driver, its parallel shape, and the measured throughput.
type SweepRecord struct {
	Driver          string        `json:"driver"` // "cpu" or "device"
	Workers         int           `json:"workers,omitempty"`
	Blocks          int           `json:"blocks,omitempty"`
	ThreadsPerBlock int           `json:"threads_per_block,omitempty"`
	Pixels          int           `json:"pixels"`
	Duration        time.Duration `json:"duration"`
	PixelsPerSec    float64       `json:"pixels_per_sec"`
	Counters        *PerfCounters `json:"counters,omitempty"`
	Timestamp       time.Time     `json:"timestamp"`
}

// SweepLogger appends timing records to a per-session JSON file.
type SweepLogger struct {
	mu          sync.Mutex
	records     []SweepRecord
	logDir      string
	sessionFile string
}

var globalLogger = &SweepLogger{
	logDir: "sweep_logs",
}

// InitSweepLogger starts a new logging session. Records logged afterwards
// land in <dir>/<sessionName>_<timestamp>.json. An empty dir keeps the
// default "sweep_logs".
func InitSweepLogger(sessionName, dir string) error {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	if dir != "" {
		globalLogger.logDir = dir
	}

	if err := os.MkdirAll(globalLogger.logDir, 0755); err != nil {
		return NewIOError("InitSweepLogger", globalLogger.logDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	globalLogger.sessionFile = filepath.Join(globalLogger.logDir,
		fmt.Sprintf("%s_%s.json", sessionName, timestamp))

	globalLogger.records = nil

	return globalLogger.flush()
}

// LogSweep appends a single record to the session file. Each append is
// flushed to disk immediately so a crashed run keeps its completed sweeps.
func LogSweep(record SweepRecord) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	if globalLogger.sessionFile == "" {
		return
	}

	record.Timestamp = time.Now()
	globalLogger.records = append(globalLogger.records, record)

	globalLogger.flush()
}

// SessionFile returns the path of the current session file, empty when no
// session is active.
func SessionFile() string {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	return globalLogger.sessionFile
}

// flush writes all records to the session file. Caller holds the lock.
func (l *SweepLogger) flush() error {
	if l.sessionFile == "" {
		return nil
	}

	data, err := json.MarshalIndent(l.records, "", "  ")
	if err != nil {
		return NewIOError("SweepLogger.flush", "marshal records", err)
	}

	if err := os.WriteFile(l.sessionFile, data, 0644); err != nil {
		return NewIOError("SweepLogger.flush", l.sessionFile, err)
	}

	return nil
}
