package sobel

import (
	"testing"
)

// Test basic memory allocation and deallocation
func TestMemoryAllocation(t *testing.T) {
	sizes := []int{100, 1000, 10000, 1000000}

	for _, size := range sizes {
		ptr, err := Malloc(size * 4)
		if err != nil {
			t.Fatalf("Failed to allocate %d bytes: %v", size*4, err)
		}

		// Verify we can access the memory
		slice := ptr.Float32()
		if len(slice) != size {
			t.Errorf("Expected slice length %d, got %d", size, len(slice))
		}

		// Write and read test
		limit := size
		if limit > 100 {
			limit = 100
		}
		for i := 0; i < limit; i++ {
			slice[i] = float32(i)
		}
		for i := 0; i < limit; i++ {
			if slice[i] != float32(i) {
				t.Errorf("Memory corruption at index %d", i)
			}
		}

		err = Free(ptr)
		if err != nil {
			t.Fatalf("Failed to free memory: %v", err)
		}
	}
}

func TestMallocRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -4} {
		ptr, err := Malloc(size)
		if err == nil {
			Free(ptr)
			t.Errorf("Malloc(%d): expected error, got nil", size)
		}
	}
}

// Test memory copy operations
func TestMemcpy(t *testing.T) {
	const N = 1000

	hSrc := make([]float32, N)
	hDst := make([]float32, N)
	for i := 0; i < N; i++ {
		hSrc[i] = float32(i) * 0.5
	}

	dSrc := MallocOrFail(t, N*4)
	dDst := MallocOrFail(t, N*4)
	defer Free(dSrc)
	defer Free(dDst)

	MemcpyOrFail(t, dSrc, hSrc, N*4, MemcpyHostToDevice)

	if err := Memcpy(dDst, dSrc, N*4, MemcpyDeviceToDevice); err != nil {
		t.Fatalf("D2D copy failed: %v", err)
	}
	if err := Memcpy(hDst, dDst, N*4, MemcpyDeviceToHost); err != nil {
		t.Fatalf("D2H copy failed: %v", err)
	}

	for i := 0; i < N; i++ {
		if hSrc[i] != hDst[i] {
			t.Errorf("Data mismatch at index %d: %f vs %f", i, hSrc[i], hDst[i])
		}
	}
}

func TestMemcpyRejectsUnsupportedType(t *testing.T) {
	d := MallocOrFail(t, 64)
	defer Free(d)

	err := Memcpy(d, []int64{1, 2}, 16, MemcpyHostToDevice)
	if err == nil {
		t.Fatal("Expected error for unsupported source type")
	}
	if !IsInvalidArgError(err) {
		t.Errorf("Expected invalid argument error, got %v", err)
	}
}

func TestDoubleFree(t *testing.T) {
	ptr := MallocOrFail(t, 256)

	if err := Free(ptr); err != nil {
		t.Fatalf("First free failed: %v", err)
	}
	if err := Free(ptr); err == nil {
		t.Fatal("Second free should fail")
	} else if !IsMemoryError(err) {
		t.Errorf("Expected memory error, got %v", err)
	}
}

func TestMemoryPoolReuse(t *testing.T) {
	pool := NewMemoryPool()

	a, err := pool.Allocate(1024)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if err := pool.Free(a); err != nil {
		t.Fatalf("Free failed: %v", err)
	}

	// A same-size allocation should come from the free list.
	b, err := pool.Allocate(1024)
	if err != nil {
		t.Fatalf("Reallocate failed: %v", err)
	}
	if b.ptr != a.ptr {
		t.Error("Expected allocation to reuse the freed block")
	}

	allocated, peak := pool.GetStats()
	if allocated <= 0 {
		t.Errorf("Expected positive allocated bytes, got %d", allocated)
	}
	if peak < allocated {
		t.Errorf("Peak %d below current %d", peak, allocated)
	}
}

func TestDevicePtrOffset(t *testing.T) {
	ptr := MallocOrFail(t, 16*4)
	defer Free(ptr)

	data := ptr.Float32()
	for i := range data {
		data[i] = float32(i)
	}

	half := ptr.Offset(8 * 4)
	view := half.Float32()
	if len(view) != 8 {
		t.Fatalf("Offset view length: got %d, want 8", len(view))
	}
	for i, v := range view {
		if v != float32(i+8) {
			t.Errorf("Offset view[%d]: got %v, want %v", i, v, float32(i+8))
		}
	}
}
