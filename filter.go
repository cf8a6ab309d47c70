package sobel

import (
	"math"
)

// Sobel filter weights, each a 3x3 matrix flattened row-major. The weight
// for neighborhood offset (dy,dx) lives at index (dy+1)*3+(dx+1). The tables
// are fixed for the lifetime of the program and shared by every execution
// path.
//
// See https://en.wikipedia.org/wiki/Sobel_operator
var (
	// Gx approximates the horizontal intensity gradient.
	Gx = [9]float32{1, 0, -1, 2, 0, -2, 1, 0, -1}

	// Gy approximates the vertical intensity gradient.
	Gy = [9]float32{1, 2, 1, 0, 0, 0, -1, -2, -1}
)

// FilteredPixel computes the Sobel gradient magnitude at (row,col) of src,
// a fully populated normalized image buffer of shape cols x rows. It
// convolves the 3x3 neighborhood against gx and gy and returns
// sqrt(gxSum^2 + gySum^2).
//
// Neighbors outside [0,rows) x [0,cols) are skipped, contributing exactly
// zero to both sums. This zero-padding-by-omission boundary policy changes
// edge-pixel values relative to clamping or reflection and is part of the
// output contract. Every neighbor is bounds-checked here, so callers may
// pass boundary pixels freely.
//
// The function reads only src and has no side effects, so concurrent calls
// over disjoint output pixels need no synchronization.
func FilteredPixel(src []float32, row, col, cols, rows int, gx, gy *[9]float32) float32 {
	var gxSum, gySum float32

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			neighborRow := row + dy
			neighborCol := col + dx

			if neighborRow < 0 || neighborRow >= rows || neighborCol < 0 || neighborCol >= cols {
				continue
			}

			neighborIndex := neighborRow*cols + neighborCol
			weightIndex := (dy+1)*3 + (dx + 1)

			gxSum += gx[weightIndex] * src[neighborIndex]
			gySum += gy[weightIndex] * src[neighborIndex]
		}
	}

	return float32(math.Sqrt(float64(gxSum*gxSum + gySum*gySum)))
}
