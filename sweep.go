package sobel

import (
	"sync"
	"time"
)

// Sweep fills every element of dst with the Sobel gradient magnitude of the
// corresponding pixel of src, partitioning the rows x cols iteration space
// across workers goroutines. Each worker owns a contiguous block of rows, so
// output writes are disjoint by construction and the sweep needs no locks:
// src is read-only during the pass and no two workers touch the same dst
// index. Sweep returns only after every worker has finished.
func Sweep(src, dst []float32, cols, rows, workers int) {
	if workers < 1 {
		workers = 1
	}
	if workers > rows {
		workers = rows
	}

	rowsPerWorker := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for workerID := 0; workerID < workers; workerID++ {
		startRow := workerID * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > rows {
			endRow = rows
		}

		go func() {
			defer wg.Done()

			for row := startRow; row < endRow; row++ {
				for col := 0; col < cols; col++ {
					dst[row*cols+col] = FilteredPixel(src, row, col, cols, rows, &Gx, &Gy)
				}
			}
		}()
	}

	wg.Wait()
}

// SweepResult captures one timed full-image sweep.
type SweepResult struct {
	Workers      int           `json:"workers"`
	Duration     time.Duration `json:"duration"`
	PixelsPerSec float64       `json:"pixels_per_sec"`
	Counters     *PerfCounters `json:"counters,omitempty"`
}

// SweepSeries runs the full-image sweep once per worker count in the fixed
// doubling sequence SweepWorkersMin..SweepWorkersMax (1, 2, 4, 8, 16). Each
// sweep is timed independently, from immediately before to immediately after
// the full-image pass; the worker count changes only between sweeps. When
// hardware performance counters are available the per-sweep counter values
// are attached to the result.
func SweepSeries(src, dst []float32, cols, rows int) []SweepResult {
	n := rows * cols
	var results []SweepResult

	for workers := SweepWorkersMin; workers <= SweepWorkersMax; workers *= 2 {
		var pm *PerfMonitor
		if PerfSupported() {
			pm = NewPerfMonitor()
			if err := pm.Start(); err != nil {
				pm = nil
			}
		}

		start := time.Now()
		Sweep(src, dst, cols, rows, workers)
		elapsed := time.Since(start)

		result := SweepResult{
			Workers:      workers,
			Duration:     elapsed,
			PixelsPerSec: float64(n) / elapsed.Seconds(),
		}
		if pm != nil {
			if counters, err := pm.Stop(); err == nil {
				counters.Duration = elapsed
				result.Counters = counters
			}
		}

		results = append(results, result)
	}

	return results
}
