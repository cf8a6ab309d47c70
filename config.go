// Package sobel configuration constants
package sobel

// Thread and block dimensions
const (
	// Default number of blocks for a dispatch when none is given
	DefaultBlockCount = 1

	// Default threads per block for a dispatch when none is given
	DefaultBlockSize = 256

	// Maximum threads per block accepted by a dispatch
	MaxThreadsPerBlock = 1024
)

// Sweep series parameters
const (
	// First worker count of the doubling sweep series
	SweepWorkersMin = 1

	// Last worker count of the doubling sweep series
	SweepWorkersMax = 16
)

// Memory pool parameters
const (
	// Memory alignment for allocations (cache line)
	MemoryAlignment = 64
)

// Quantization constants
const (
	// Byte-to-normalized-float scale factor (1/255)
	ByteScale = 0.003921568627451
)

// Dims gives the shape of an image buffer. Samples are addressed row-major:
// index = row*Cols + col.
type Dims struct {
	Cols int
	Rows int
}

// N returns the number of samples in a buffer of this shape.
func (d Dims) N() int {
	return d.Cols * d.Rows
}

// Config carries the run parameters the drivers need. It is constructed by
// the CLI layer and injected; the core holds no hard-coded path or dimension.
type Config struct {
	InputPath  string
	OutputPath string
	Dims       Dims
}
