package sobel

import (
	"fmt"
	"testing"
)

const (
	benchCols = 512
	benchRows = 512
)

func BenchmarkSweep(b *testing.B) {
	src := testImage(benchCols, benchRows, 42)
	dst := make([]float32, benchCols*benchRows)

	for _, workers := range []int{1, 2, 4, 8, 16} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			b.SetBytes(int64(benchCols * benchRows * 4))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Sweep(src, dst, benchCols, benchRows, workers)
			}
		})
	}
}

func BenchmarkDispatch(b *testing.B) {
	src := testImage(benchCols, benchRows, 42)
	dims := Dims{Cols: benchCols, Rows: benchRows}

	im, err := AcquireDeviceImage(src)
	if err != nil {
		b.Fatalf("Failed to acquire device image: %v", err)
	}
	defer im.Release()

	shapes := []struct {
		blocks          int
		threadsPerBlock int
	}{
		{1, 256},
		{4, 256},
		{16, 256},
		{64, 256},
	}

	for _, shape := range shapes {
		b.Run(fmt.Sprintf("blocks_%d_tpb_%d", shape.blocks, shape.threadsPerBlock), func(b *testing.B) {
			b.SetBytes(int64(benchCols * benchRows * 4))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := im.Run(dims, shape.blocks, shape.threadsPerBlock); err != nil {
					b.Fatalf("Dispatch failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkFilteredPixel(b *testing.B) {
	src := testImage(64, 64, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FilteredPixel(src, 32, 32, 64, 64, &Gx, &Gy)
	}
}

func BenchmarkBytesToFloats(b *testing.B) {
	raw := make([]byte, benchCols*benchRows)
	for i := range raw {
		raw[i] = byte(i)
	}
	f := make([]float32, len(raw))
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BytesToFloats(raw, f)
	}
}
