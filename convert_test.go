package sobel

import (
	"testing"
)

func TestByteRoundTrip(t *testing.T) {
	// Exact round-trip at the values where float rounding cannot cross a
	// quantization boundary.
	for _, b := range []byte{0, 1, 127, 128, 254, 255} {
		f := make([]float32, 1)
		out := make([]byte, 1)

		BytesToFloats([]byte{b}, f)
		FloatsToBytes(f, out)

		if out[0] != b {
			t.Errorf("Round trip of %d: got %d", b, out[0])
		}
	}
}

func TestBytesToFloatsRange(t *testing.T) {
	in := make([]byte, 256)
	for i := range in {
		in[i] = byte(i)
	}
	f := make([]float32, 256)
	BytesToFloats(in, f)

	if f[0] != 0.0 {
		t.Errorf("f[0]: got %v, want 0.0", f[0])
	}
	if f[255] != 255*float32(ByteScale) {
		t.Errorf("f[255]: got %v, want %v", f[255], 255*float32(ByteScale))
	}
	for i := 1; i < 256; i++ {
		if f[i] <= f[i-1] {
			t.Fatalf("Normalization not monotonic at %d: %v <= %v", i, f[i], f[i-1])
		}
	}
}

func TestFloatsToBytesTruncates(t *testing.T) {
	// The cast truncates toward zero rather than rounding.
	f := []float32{0.999 / 255.0, 1.001 / 255.0}
	out := make([]byte, 2)
	FloatsToBytes(f, out)

	if out[0] != 0 {
		t.Errorf("Truncation below 1: got %d, want 0", out[0])
	}
	if out[1] != 1 {
		t.Errorf("Truncation above 1: got %d, want 1", out[1])
	}
}

func TestFloatsToBytesOverflowWraps(t *testing.T) {
	// Gradient magnitudes above 1.0 are not clamped; they wrap through the
	// 8-bit truncation. 1.2*255 = 306 -> 306 mod 256 = 50.
	f := []float32{1.2}
	out := make([]byte, 1)
	FloatsToBytes(f, out)

	if out[0] != 50 {
		t.Errorf("Overflow wrap of 1.2: got %d, want 50", out[0])
	}
}
