// Package sobel computes Sobel edge-gradient magnitude images from raw 8-bit
// greyscale buffers and benchmarks the same stencil under two parallel
// execution strategies.
//
// The first strategy is a shared-memory sweep: the image is statically
// partitioned across a configurable number of worker goroutines, and the full
// sweep is repeated over a doubling series of worker counts with each pass
// timed independently. The second strategy is a device-style dispatch: a
// single kernel launch over a blocks x threadsPerBlock grid, where each
// execution unit covers a strided subset of the pixel index space. The device
// model (grid/block/thread identification, device pointers, memory pool,
// streams) executes on the CPU, so both strategies can be compared on the
// same hardware with the same inputs.
//
// Example device-side usage:
//
//	dSrc, _ := sobel.Malloc(n * 4)
//	dDst, _ := sobel.Malloc(n * 4)
//	defer sobel.Free(dSrc)
//	defer sobel.Free(dDst)
//
//	sobel.Memcpy(dSrc, src, n*4, sobel.MemcpyHostToDevice)
//	sobel.Dispatch(dSrc, dDst, n, rows, cols, dGx, dGy, blocks, threadsPerBlock)
package sobel
