// Package sparse holds the sparse (index, value) form of the logical output
// tensor and the assembler that fills it.
//
// A Vector is made of two parallel arrays sized by the caller, normally to the
// output geometry, and a count of the realized cells. Only non-zero cells are
// ever stored.
package sparse

import (
	"fmt"
	"iter"
	"math"
	"sort"

	"github.com/arloliu/sparcode/errs"
)

// Vector is the caller-owned sparse output of a coding call.
type Vector struct {
	Idx   []int
	Val   []float64
	Count int
}

// New allocates a vector able to hold capacity cells.
func New(capacity int) *Vector {
	return &Vector{
		Idx: make([]int, capacity),
		Val: make([]float64, capacity),
	}
}

// Cap returns the number of cells the vector can hold.
func (v *Vector) Cap() int {
	return min(len(v.Idx), len(v.Val))
}

// Len returns the number of realized cells.
func (v *Vector) Len() int {
	return v.Count
}

// Reset empties the vector, keeping its storage.
func (v *Vector) Reset() {
	v.Count = 0
}

// Append stores (idx, val) unless val is zero. It reports whether the cell was stored.
// The vector must have spare capacity for a non-zero value.
func (v *Vector) Append(idx int, val float64) bool {
	if val == 0 {
		return false
	}
	v.Idx[v.Count] = idx
	v.Val[v.Count] = val
	v.Count++

	return true
}

// Indices returns the realized indices.
func (v *Vector) Indices() []int {
	return v.Idx[:v.Count]
}

// Values returns the realized values.
func (v *Vector) Values() []float64 {
	return v.Val[:v.Count]
}

// All yields the realized (index, value) cells in storage order.
func (v *Vector) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i := range v.Count {
			if !yield(v.Idx[i], v.Val[i]) {
				return
			}
		}
	}
}

// Dense expands the vector into a dense slice of the given size.
func (v *Vector) Dense(size int) []float64 {
	out := make([]float64, size)
	for idx, val := range v.All() {
		out[idx] = val
	}

	return out
}

// Validate checks that every index is in [0, size) and indices are strictly increasing.
func (v *Vector) Validate(size int) error {
	prev := -1
	for i, idx := range v.Indices() {
		if idx < 0 || idx >= size {
			return fmt.Errorf("%w: cell %d has index %d, size %d", errs.ErrIndexOutOfRange, i, idx, size)
		}
		if idx <= prev {
			return fmt.Errorf("%w: cell %d has index %d after %d", errs.ErrIndexNotIncreasing, i, idx, prev)
		}
		prev = idx
	}

	return nil
}

// SortByIndex orders the realized cells by increasing index, in place.
func (v *Vector) SortByIndex() {
	sort.Sort(byIndex{cells{idx: v.Indices(), val: v.Values()}})
}

// SortByMagnitude orders the realized cells by decreasing |value|, in place.
// Cells of equal magnitude keep their relative order.
func (v *Vector) SortByMagnitude() {
	sort.Stable(byMagnitude{cells{idx: v.Indices(), val: v.Values()}})
}

type cells struct {
	idx []int
	val []float64
}

func (c cells) Len() int { return len(c.idx) }

func (c cells) Swap(i, j int) {
	c.idx[i], c.idx[j] = c.idx[j], c.idx[i]
	c.val[i], c.val[j] = c.val[j], c.val[i]
}

type byIndex struct{ cells }

func (s byIndex) Less(i, j int) bool { return s.idx[i] < s.idx[j] }

type byMagnitude struct{ cells }

func (s byMagnitude) Less(i, j int) bool {
	return math.Abs(s.val[i]) > math.Abs(s.val[j])
}
