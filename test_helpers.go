package sobel

import (
	"testing"
)

// MallocOrFail allocates device memory and fails the test if unsuccessful
func MallocOrFail(t testing.TB, size int) DevicePtr {
	t.Helper()
	ptr, err := Malloc(size)
	if err != nil {
		t.Fatalf("Failed to allocate %d bytes: %v", size, err)
	}
	return ptr
}

// MemcpyOrFail copies data and fails the test if unsuccessful
func MemcpyOrFail(t testing.TB, dst DevicePtr, src interface{}, size int, direction MemcpyKind) {
	t.Helper()
	err := Memcpy(dst, src, size, direction)
	if err != nil {
		t.Fatalf("Memcpy failed: %v", err)
	}
}

// AcquireOrFail acquires a device image and fails the test if unsuccessful
func AcquireOrFail(t testing.TB, src []float32) *DeviceImage {
	t.Helper()
	im, err := AcquireDeviceImage(src)
	if err != nil {
		t.Fatalf("Failed to acquire device image: %v", err)
	}
	return im
}

// DispatchOrFail runs a dispatch and fails the test if unsuccessful
func DispatchOrFail(t testing.TB, im *DeviceImage, dims Dims, blocks, threadsPerBlock int) {
	t.Helper()
	err := im.Run(dims, blocks, threadsPerBlock)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
}
