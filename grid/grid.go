// Package grid provides the observation grid and the stride-1, no-padding patch
// addressing used by the coder.
//
// A grid is a row-major rows x cols array of float64 values. Patches are
// enumerated by their top-left position in row-major order:
//
//	for r, c := range grid.Positions(rows, cols, patch) {
//	    g.Extract(r, c, patch, dst)
//	}
package grid

import (
	"fmt"
	"iter"

	"github.com/arloliu/sparcode/errs"
)

// Shape is the size of a rectangular patch window.
type Shape struct {
	Rows int
	Cols int
}

// Size returns the number of samples in the window.
func (s Shape) Size() int {
	return s.Rows * s.Cols
}

// Grid is an immutable, caller-owned observation.
type Grid struct {
	Rows int
	Cols int
	Data []float64
}

// New wraps data as a rows x cols grid without copying.
//
// Returns errs.ErrInvalidImageSize for non-positive dimensions and
// errs.ErrInvalidGridData when len(data) != rows*cols.
func New(rows, cols int, data []float64) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d", errs.ErrInvalidImageSize, rows, cols)
	}
	if len(data) != rows*cols {
		return Grid{}, fmt.Errorf("%w: got %d, want %d", errs.ErrInvalidGridData, len(data), rows*cols)
	}

	return Grid{Rows: rows, Cols: cols, Data: data}, nil
}

// At returns the value at row r, column c.
func (g Grid) At(r, c int) float64 {
	return g.Data[r*g.Cols+c]
}

// Extract gathers the patch whose top-left corner is (r, c) into dst, row-major.
// dst must hold at least patch.Size() values.
func (g Grid) Extract(r, c int, patch Shape, dst []float64) {
	k := 0
	for dr := range patch.Rows {
		start := FlatIndex(g.Cols, r, c, dr, 0)
		k += copy(dst[k:k+patch.Cols], g.Data[start:start+patch.Cols])
	}
}

// FlatIndex maps a patch position and an offset inside the patch to a flat grid index.
func FlatIndex(cols, r, c, dr, dc int) int {
	return (r+dr)*cols + (c + dc)
}

// PositionRows returns the number of valid top-left rows for a patch.
func PositionRows(rows int, patch Shape) int {
	return max(rows-patch.Rows+1, 0)
}

// PositionCols returns the number of valid top-left columns for a patch.
func PositionCols(cols int, patch Shape) int {
	return max(cols-patch.Cols+1, 0)
}

// PatchCount returns the number of patch positions, (rows-pr+1)*(cols-pc+1),
// or zero when the patch does not fit.
func PatchCount(rows, cols int, patch Shape) int {
	return PositionRows(rows, patch) * PositionCols(cols, patch)
}

// Positions yields every valid top-left (r, c) in row-major order.
func Positions(rows, cols int, patch Shape) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		pr := PositionRows(rows, patch)
		pc := PositionCols(cols, patch)
		for r := range pr {
			for c := range pc {
				if !yield(r, c) {
					return
				}
			}
		}
	}
}
