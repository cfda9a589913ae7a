// Package dict holds the fixed coding dictionary in the three mutually
// consistent views used by Gram-accelerated matching pursuit.
//
// A Dictionary is immutable after construction and may be shared by any number
// of concurrent coding calls.
package dict

import (
	"fmt"
	"math"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/internal/hash"
)

// Dictionary is a set of wordCount atoms, each sampleCount long.
//
// Views:
//   - atoms:  wordCount x sampleCount, row-major (atom-by-sample)
//   - transp: sampleCount x wordCount, row-major (sample-by-atom)
//   - gram:   wordCount x wordCount, gram[a*W+b] = <atom a, atom b>
type Dictionary struct {
	wordCount   int
	sampleCount int
	atoms       []float64
	transp      []float64
	gram        []float64
	fingerprint uint64
}

// New wraps pre-computed dictionary views without copying them.
//
// Only the view lengths are checked. The views are trusted to be consistent;
// use Verify to check them outside the hot path.
func New(wordCount, sampleCount int, atoms, transp, gram []float64) (*Dictionary, error) {
	if wordCount <= 0 || sampleCount <= 0 {
		return nil, fmt.Errorf("%w: %d atoms of %d samples", errs.ErrInvalidDictionaryShape, wordCount, sampleCount)
	}

	n := wordCount * sampleCount
	switch {
	case len(atoms) != n:
		return nil, fmt.Errorf("%w: atoms has %d values, want %d", errs.ErrInvalidDictionaryShape, len(atoms), n)
	case len(transp) != n:
		return nil, fmt.Errorf("%w: transpose has %d values, want %d", errs.ErrInvalidDictionaryShape, len(transp), n)
	case len(gram) != wordCount*wordCount:
		return nil, fmt.Errorf("%w: gram has %d values, want %d", errs.ErrInvalidDictionaryShape, len(gram), wordCount*wordCount)
	}

	return &Dictionary{
		wordCount:   wordCount,
		sampleCount: sampleCount,
		atoms:       atoms,
		transp:      transp,
		gram:        gram,
		fingerprint: hash.Float64s(atoms, transp, gram),
	}, nil
}

// FromAtoms builds a dictionary from its atom-by-sample view, computing the
// transpose and the Gram matrix. The atoms slice is copied.
func FromAtoms(wordCount, sampleCount int, atoms []float64) (*Dictionary, error) {
	if wordCount <= 0 || sampleCount <= 0 || len(atoms) != wordCount*sampleCount {
		return nil, fmt.Errorf("%w: %d values for %d atoms of %d samples",
			errs.ErrInvalidDictionaryShape, len(atoms), wordCount, sampleCount)
	}

	own := make([]float64, len(atoms))
	copy(own, atoms)

	return New(wordCount, sampleCount, own, transpose(own, wordCount, sampleCount), gramOf(own, wordCount, sampleCount))
}

// WordCount returns the number of atoms.
func (d *Dictionary) WordCount() int { return d.wordCount }

// SampleCount returns the length of each atom.
func (d *Dictionary) SampleCount() int { return d.sampleCount }

// Atom returns atom a. The returned slice aliases the dictionary and must not be modified.
func (d *Dictionary) Atom(a int) []float64 {
	return d.atoms[a*d.sampleCount : (a+1)*d.sampleCount]
}

// TransposedRow returns the contribution of sample i to every atom correlation.
// The returned slice aliases the dictionary and must not be modified.
func (d *Dictionary) TransposedRow(i int) []float64 {
	return d.transp[i*d.wordCount : (i+1)*d.wordCount]
}

// GramRow returns the inner products of atom a with every atom.
// The returned slice aliases the dictionary and must not be modified.
func (d *Dictionary) GramRow(a int) []float64 {
	return d.gram[a*d.wordCount : (a+1)*d.wordCount]
}

// Fingerprint returns an xxHash64 of the three views, computed at construction.
func (d *Dictionary) Fingerprint() uint64 {
	return d.fingerprint
}

// Reconstruct accumulates sum(value * atom) for the given (atom, value) pairs into dst.
func (d *Dictionary) Reconstruct(atoms []int, values []float64, dst []float64) {
	clear(dst[:d.sampleCount])
	for i, a := range atoms {
		v := values[i]
		for j, s := range d.Atom(a) {
			dst[j] += v * s
		}
	}
}

// Verify recomputes the transpose and the Gram matrix from the atoms and
// compares them with the stored views within an absolute tolerance.
func (d *Dictionary) Verify(tol float64) error {
	w, n := d.wordCount, d.sampleCount

	for a := range w {
		for i := range n {
			if d.atoms[a*n+i] != d.transp[i*w+a] {
				return fmt.Errorf("%w: transpose differs at atom %d sample %d", errs.ErrInconsistentDictionary, a, i)
			}
		}
	}

	want := gramOf(d.atoms, w, n)
	for i, g := range want {
		if math.Abs(g-d.gram[i]) > tol {
			return fmt.Errorf("%w: gram differs at (%d,%d): got %g, want %g",
				errs.ErrInconsistentDictionary, i/w, i%w, d.gram[i], g)
		}
	}

	return nil
}

func transpose(m []float64, rows, cols int) []float64 {
	t := make([]float64, len(m))
	for r := range rows {
		for c := range cols {
			t[c*rows+r] = m[r*cols+c]
		}
	}

	return t
}

// gramOf computes m * m^T for a rows x cols row-major matrix.
func gramOf(m []float64, rows, cols int) []float64 {
	g := make([]float64, rows*rows)
	for a := range rows {
		ra := m[a*cols : (a+1)*cols]
		for b := a; b < rows; b++ {
			rb := m[b*cols : (b+1)*cols]

			var acc float64
			for j := range cols {
				acc += ra[j] * rb[j]
			}
			g[a*rows+b] = acc
			g[b*rows+a] = acc
		}
	}

	return g
}
