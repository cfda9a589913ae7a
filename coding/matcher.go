// Package coding implements the dictionary matcher: greedy, Gram-accelerated
// matching pursuit of a single patch against a fixed dictionary.
package coding

import (
	"fmt"
	"math"

	"github.com/arloliu/sparcode/dict"
	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
)

// Coefficient is one retained (atom, value) pair of a coded patch.
type Coefficient struct {
	Atom  int
	Value float64
}

// Matcher decomposes a flattened patch into at most k coefficients.
//
// Match appends to dst[:0] and returns the result in selection order, so the
// position of a coefficient in the result is its rank (0 = strongest).
// work must have been sized for the matcher's dictionary with NewWork.
type Matcher interface {
	Type() format.CodingType
	WordCount() int
	Match(patch []float64, k int, work *Work, dst []Coefficient) []Coefficient
}

// Work is the per-call work area of a matcher: the running correlation of
// every atom with the residual and the set of atoms already selected.
type Work struct {
	corr []float64
	used []bool
}

// NewWork allocates a work area for a dictionary of wordCount atoms.
func NewWork(wordCount int) *Work {
	return WorkFrom(make([]float64, wordCount), make([]bool, wordCount))
}

// WorkFrom builds a work area over caller-provided storage of equal length.
func WorkFrom(corr []float64, used []bool) *Work {
	return &Work{corr: corr, used: used}
}

// WorkBytes is the size in bytes of a work area for wordCount atoms.
func WorkBytes(wordCount int) int {
	return wordCount*8 + wordCount
}

// New returns the matcher for codingType.
func New(codingType format.CodingType, d *dict.Dictionary) (Matcher, error) {
	switch codingType {
	case format.CodingCorrelation:
		return NewCorrelationMatcher(d), nil
	default:
		return nil, fmt.Errorf("%w: %s (%d)", errs.ErrUnsupportedCodingType, codingType, codingType)
	}
}

// CorrelationMatcher is matching pursuit driven by atom correlations.
//
// The residual is never materialized: after selecting atom a*, every
// correlation is updated with corr[a] -= corr[a*] * gram[a*, a], which keeps
// each pursuit step O(wordCount).
type CorrelationMatcher struct {
	d *dict.Dictionary
}

var _ Matcher = (*CorrelationMatcher)(nil)

// NewCorrelationMatcher creates a matcher over d. The dictionary is only read.
func NewCorrelationMatcher(d *dict.Dictionary) *CorrelationMatcher {
	return &CorrelationMatcher{d: d}
}

func (m *CorrelationMatcher) Type() format.CodingType {
	return format.CodingCorrelation
}

func (m *CorrelationMatcher) WordCount() int {
	return m.d.WordCount()
}

// Match runs up to k pursuit steps on patch, which must hold SampleCount values.
//
// Ties between equal correlation magnitudes select the lowest atom index.
// Selected coefficients keep their sign; zero-valued selections are returned
// as-is and left to the caller to drop.
func (m *CorrelationMatcher) Match(patch []float64, k int, work *Work, dst []Coefficient) []Coefficient {
	w := m.d.WordCount()
	corr := work.corr[:w]
	used := work.used[:w]

	m.correlate(patch, corr)
	clear(used)

	dst = dst[:0]
	k = min(k, w)
	for range k {
		best := -1
		bestMag := -1.0
		for a, c := range corr {
			if used[a] {
				continue
			}
			if mag := math.Abs(c); mag > bestMag {
				best, bestMag = a, mag
			}
		}

		if best < 0 {
			break
		}

		v := corr[best]
		dst = append(dst, Coefficient{Atom: best, Value: v})

		if v != 0 {
			for a, g := range m.d.GramRow(best) {
				corr[a] -= v * g
			}
		}
		used[best] = true
	}

	return dst
}

// correlate computes corr = transp^T * patch, accumulating one sample row at a time.
func (m *CorrelationMatcher) correlate(patch, corr []float64) {
	clear(corr)
	for i := range m.d.SampleCount() {
		p := patch[i]
		if p == 0 {
			continue
		}
		for a, t := range m.d.TransposedRow(i) {
			corr[a] += t * p
		}
	}
}
