package sobel

// BytesToFloats maps an 8-bit image buffer into the normalized [0,1] domain,
// writing b[i]/255 into f[i]. The normalized domain avoids precision loss
// during the convolution accumulation. f must be at least as long as b.
func BytesToFloats(b []byte, f []float32) {
	for i, v := range b {
		f[i] = float32(v) * ByteScale
	}
}

// FloatsToBytes re-quantizes a normalized image buffer back to 8 bits,
// writing byte(f[i]*255) into b[i] with a truncating cast. There is no
// clamp: the Sobel kernel gains can push a gradient magnitude above 1.0, and
// such values wrap through the integer truncation. This matches the output
// format of the original harness byte for byte.
func FloatsToBytes(f []float32, b []byte) {
	for i, v := range f {
		b[i] = byte(int32(v * 255.0))
	}
}
