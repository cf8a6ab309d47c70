package sobel

import (
	"math/rand"
	"testing"
)

// testImage builds a deterministic pseudo-random normalized image.
func testImage(cols, rows int, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	img := make([]float32, cols*rows)
	for i := range img {
		img[i] = rng.Float32()
	}
	return img
}

// sequentialReference applies the evaluator pixel by pixel with no
// partitioning at all.
func sequentialReference(src []float32, cols, rows int) []float32 {
	dst := make([]float32, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			dst[row*cols+col] = FilteredPixel(src, row, col, cols, rows, &Gx, &Gy)
		}
	}
	return dst
}

func TestSweepMatchesSequential(t *testing.T) {
	const cols, rows = 64, 48
	src := testImage(cols, rows, 1)
	want := sequentialReference(src, cols, rows)

	for _, workers := range []int{1, 2, 4, 8, 16} {
		dst := make([]float32, cols*rows)
		Sweep(src, dst, cols, rows, workers)

		for i := range want {
			if dst[i] != want[i] {
				t.Fatalf("workers=%d: mismatch at index %d: got %v, want %v", workers, i, dst[i], want[i])
			}
		}
	}
}

func TestSweepWorkerClamping(t *testing.T) {
	// More workers than rows must still visit every pixel exactly once.
	const cols, rows = 10, 3
	src := testImage(cols, rows, 2)
	want := sequentialReference(src, cols, rows)

	dst := make([]float32, cols*rows)
	Sweep(src, dst, cols, rows, 16)

	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("mismatch at index %d: got %v, want %v", i, dst[i], want[i])
		}
	}

	// Zero or negative worker counts fall back to a single worker.
	dst2 := make([]float32, cols*rows)
	Sweep(src, dst2, cols, rows, 0)
	for i := range want {
		if dst2[i] != want[i] {
			t.Fatalf("workers=0 fallback: mismatch at index %d", i)
		}
	}
}

func TestSweepSeriesSequence(t *testing.T) {
	const cols, rows = 32, 32
	src := testImage(cols, rows, 3)
	dst := make([]float32, cols*rows)

	results := SweepSeries(src, dst, cols, rows)

	wantWorkers := []int{1, 2, 4, 8, 16}
	if len(results) != len(wantWorkers) {
		t.Fatalf("Series length: got %d, want %d", len(results), len(wantWorkers))
	}
	for i, r := range results {
		if r.Workers != wantWorkers[i] {
			t.Errorf("Sweep %d: workers=%d, want %d", i, r.Workers, wantWorkers[i])
		}
		if r.Duration <= 0 {
			t.Errorf("Sweep %d: non-positive duration %v", i, r.Duration)
		}
		if r.PixelsPerSec <= 0 {
			t.Errorf("Sweep %d: non-positive throughput %v", i, r.PixelsPerSec)
		}
	}

	// The final sweep leaves dst holding the full result.
	want := sequentialReference(src, cols, rows)
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("Series output mismatch at index %d", i)
		}
	}
}

func TestSweepFlatFieldIsZero(t *testing.T) {
	const cols, rows = 20, 20
	src := make([]float32, cols*rows)
	for i := range src {
		src[i] = 0.75
	}

	dst := make([]float32, cols*rows)
	Sweep(src, dst, cols, rows, 4)

	// Interior pixels cancel by kernel symmetry. Edge pixels see the
	// missing zero-padded neighbors and are generally nonzero.
	for row := 1; row < rows-1; row++ {
		for col := 1; col < cols-1; col++ {
			if g := dst[row*cols+col]; g != 0.0 {
				t.Errorf("Flat field interior (%d,%d): got %v, want 0.0", row, col, g)
			}
		}
	}
}
