package coder

import (
	"unsafe"

	"github.com/arloliu/sparcode/coding"
	"github.com/arloliu/sparcode/format"
)

// Geometry describes the logical output tensor of a coding call.
//
// Cells are addressed by (pooled row, pooled column, atom, polarity channel)
// with the pooled row varying fastest:
//
//	index = pr + PooledRows*(pc + PooledCols*(atom + WordCount*ch))
//
// The pooled grid covers the observation in non-overlapping spread x spread
// neighborhoods, truncating trailing partial ones. A patch belongs to the
// neighborhood containing its center sample.
type Geometry struct {
	PooledRows int
	PooledCols int
	WordCount  int
	Channels   int
}

// NewGeometryOf returns the geometry for the given parameters.
func NewGeometryOf(rows, cols, wordCount int, polarity format.PolaritySplitType, spread int) Geometry {
	if spread <= 0 {
		return Geometry{WordCount: wordCount, Channels: polarity.Channels()}
	}

	return Geometry{
		PooledRows: rows / spread,
		PooledCols: cols / spread,
		WordCount:  wordCount,
		Channels:   polarity.Channels(),
	}
}

// NewGeometry returns the number of addressable cells of the logical output
// tensor, which bounds the number of cells a coding call can realize.
func NewGeometry(rows, cols, wordCount int, polarity format.PolaritySplitType, spread int) int {
	return NewGeometryOf(rows, cols, wordCount, polarity, spread).Size()
}

// Size returns the number of cells.
func (g Geometry) Size() int {
	return g.PooledRows * g.PooledCols * g.Slots()
}

// Slots returns the number of (atom, channel) slots per pooled cell.
func (g Geometry) Slots() int {
	return g.WordCount * g.Channels
}

// Index returns the flat index of a cell.
func (g Geometry) Index(pr, pc, atom, ch int) int {
	return g.SlotIndex(pr, pc, atom+g.WordCount*ch)
}

// SlotIndex returns the flat index of slot (atom + WordCount*ch) in pooled cell (pr, pc).
func (g Geometry) SlotIndex(pr, pc, slot int) int {
	return pr + g.PooledRows*(pc+g.PooledCols*slot)
}

// Cell is the inverse of Index.
func (g Geometry) Cell(idx int) (pr, pc, atom, ch int) {
	pr = idx % g.PooledRows
	idx /= g.PooledRows
	pc = idx % g.PooledCols
	slot := idx / g.PooledCols

	return pr, pc, slot % g.WordCount, slot / g.WordCount
}

// Byte sizes of the scratch zone elements.
const (
	sizeofFloat64     = int(unsafe.Sizeof(float64(0)))
	sizeofInt32       = int(unsafe.Sizeof(int32(0)))
	sizeofCoefficient = int(unsafe.Sizeof(coding.Coefficient{}))
)

// maxChannels is the channel count the accumulator is always sized for, so that
// the scratch size does not depend on the polarity split.
const maxChannels = 2

// CodingTmpsLength returns the scratch arena size in bytes required by a coding
// call with these parameters. It depends only on the parameters, and not on the
// image size: rows, cols and codingType are accepted for interface symmetry.
//
// The arena holds:
//   - the last-patch slot:      patchRows*patchCols float64
//   - the pending-patch window: spread^2 patches of up to k (int32 slot, float64 value) entries plus an int32 count each
//   - the matcher work area:    wordCount float64 correlations, wordCount used flags, k coefficients
//   - the pooling accumulator:  wordCount*2 float64
func CodingTmpsLength(rows, cols, patchRows, patchCols int, codingType format.CodingType, wordCount, coeffCount, spread int) int {
	k := min(coeffCount, wordCount)
	window := spread * spread

	lastPatch := patchRows * patchCols * sizeofFloat64
	pending := window*k*(sizeofInt32+sizeofFloat64) + window*sizeofInt32
	work := coding.WorkBytes(wordCount) + k*sizeofCoefficient
	acc := wordCount * maxChannels * sizeofFloat64

	return lastPatch + pending + work + acc
}
