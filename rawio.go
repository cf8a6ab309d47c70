package sobel

import (
	"fmt"
	"os"
)

// ReadRaw reads a flat binary image file of exactly dims.N() unsigned 8-bit
// samples, row-major, no header. A missing file or a short read is an I/O
// error carrying the path; trailing bytes beyond dims.N() are ignored, the
// way the original harness read exactly rows*cols samples.
func ReadRaw(path string, dims Dims) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewIOError("ReadRaw", path, err)
	}

	n := dims.N()
	if len(data) < n {
		return nil, NewIOError("ReadRaw",
			fmt.Sprintf("%s: short read, got %d bytes, want %d", path, len(data), n), nil)
	}

	return data[:n], nil
}

// WriteRaw writes data as a flat binary file at path, same layout as the
// input format. Callers write only after the full computation has
// completed; no partial result is ever persisted.
func WriteRaw(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return NewIOError("WriteRaw", path, err)
	}
	return nil
}
