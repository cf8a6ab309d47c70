package sobel

import (
	"fmt"
)

// Dispatch applies the Sobel stencil over all n = rows*cols pixels of the
// device-resident source buffer with a single kernel launch of shape
// blocks x threadsPerBlock. The launch may be far smaller than n: each
// execution unit starts at its global linear index and strides by
// blocks*threadsPerBlock, so every pixel in [0,n) is visited by exactly one
// unit regardless of launch shape. Each linear index maps back to
// (idx/cols, idx%cols) before evaluation.
//
// dSrc, dDst, dGx and dGy must all be device-resident before the call
// (see DeviceImage). Dispatch synchronizes the device before returning;
// dDst is valid once Dispatch returns nil.
func Dispatch(dSrc, dDst DevicePtr, n, rows, cols int, dGx, dGy DevicePtr, blocks, threadsPerBlock int) error {
	if blocks < 1 {
		return NewInvalidArgError("Dispatch", fmt.Sprintf("block count must be positive, got %d", blocks))
	}
	if threadsPerBlock < 1 || threadsPerBlock > MaxThreadsPerBlock {
		return NewInvalidArgError("Dispatch",
			fmt.Sprintf("threads per block must be in [1,%d], got %d", MaxThreadsPerBlock, threadsPerBlock))
	}
	if dSrc.Size() < n*4 || dDst.Size() < n*4 {
		return NewInvalidArgError("Dispatch", "image buffers smaller than n samples")
	}
	if dGx.Size() < 9*4 || dGy.Size() < 9*4 {
		return NewInvalidArgError("Dispatch", "weight buffers smaller than 9 samples")
	}

	stride := blocks * threadsPerBlock

	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		src := dSrc.Float32()
		dst := dDst.Float32()
		gx := (*[9]float32)(dGx.Float32())
		gy := (*[9]float32)(dGy.Float32())

		for idx := tid.Global(); idx < n; idx += stride {
			row := idx / cols
			col := idx % cols
			dst[idx] = FilteredPixel(src, row, col, cols, rows, gx, gy)
		}
	})

	err := Launch(kernel,
		Dim3{X: blocks, Y: 1, Z: 1},
		Dim3{X: threadsPerBlock, Y: 1, Z: 1})
	if err != nil {
		return NewDeviceError("Dispatch", "kernel launch failed", err)
	}

	// Full-device barrier: dDst must not be read before every unit is done.
	if err := Synchronize(); err != nil {
		return NewDeviceError("Dispatch", "device synchronization failed", err)
	}

	return nil
}

// DeviceImage owns the device-resident buffers of one dispatch run: source
// and destination image buffers plus both weight tables. Acquire migrates
// everything the kernel reads onto the device up front; Release returns the
// buffers to the pool on every exit path, including the fatal-error path, so
// repeated runs do not leak device memory.
type DeviceImage struct {
	Src DevicePtr
	Dst DevicePtr
	Gx  DevicePtr
	Gy  DevicePtr

	n int
}

// AcquireDeviceImage allocates device memory for an n-pixel run and migrates
// the normalized source image and both Sobel weight tables. On failure it
// releases whatever was already acquired before returning.
func AcquireDeviceImage(src []float32) (*DeviceImage, error) {
	n := len(src)
	im := &DeviceImage{n: n}

	alloc := func(size int) (DevicePtr, error) {
		ptr, err := Malloc(size)
		if err != nil {
			im.Release()
			return DevicePtr{}, NewDeviceError("AcquireDeviceImage", "device allocation failed", err)
		}
		return ptr, nil
	}

	var err error
	if im.Src, err = alloc(n * 4); err != nil {
		return nil, err
	}
	if im.Dst, err = alloc(n * 4); err != nil {
		return nil, err
	}
	if im.Gx, err = alloc(len(Gx) * 4); err != nil {
		return nil, err
	}
	if im.Gy, err = alloc(len(Gy) * 4); err != nil {
		return nil, err
	}

	if err := Memcpy(im.Src, src, n*4, MemcpyHostToDevice); err != nil {
		im.Release()
		return nil, NewDeviceError("AcquireDeviceImage", "source migration failed", err)
	}
	if err := Memcpy(im.Gx, Gx[:], len(Gx)*4, MemcpyHostToDevice); err != nil {
		im.Release()
		return nil, NewDeviceError("AcquireDeviceImage", "Gx migration failed", err)
	}
	if err := Memcpy(im.Gy, Gy[:], len(Gy)*4, MemcpyHostToDevice); err != nil {
		im.Release()
		return nil, NewDeviceError("AcquireDeviceImage", "Gy migration failed", err)
	}

	return im, nil
}

// N returns the number of pixels the image was acquired for.
func (im *DeviceImage) N() int {
	return im.n
}

// Run dispatches the stencil over the acquired buffers at the given launch
// shape.
func (im *DeviceImage) Run(dims Dims, blocks, threadsPerBlock int) error {
	return Dispatch(im.Src, im.Dst, im.n, dims.Rows, dims.Cols, im.Gx, im.Gy, blocks, threadsPerBlock)
}

// Result copies the device destination buffer back into dst, which must
// hold at least N samples. Call only after a successful Run.
func (im *DeviceImage) Result(dst []float32) error {
	if err := Memcpy(dst, im.Dst, im.n*4, MemcpyDeviceToHost); err != nil {
		return NewDeviceError("Result", "destination readback failed", err)
	}
	return nil
}

// Release frees every device buffer the image holds. It is safe to call
// after a partial acquire and safe to call more than once.
func (im *DeviceImage) Release() {
	for _, ptr := range []*DevicePtr{&im.Src, &im.Dst, &im.Gx, &im.Gy} {
		if ptr.ptr != nil {
			Free(*ptr)
			*ptr = DevicePtr{}
		}
	}
}
