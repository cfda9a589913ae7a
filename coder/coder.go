// Package coder is the sparse image coder: it slides a patch window over an
// observation, encodes every patch against a fixed dictionary with matching
// pursuit, transforms and polarity-splits the retained coefficients, pools
// them over spread x spread neighborhoods and emits the non-zero cells of the
// result as a sorted sparse vector.
//
// Callers size the output and the scratch arena with NewGeometry and
// CodingTmpsLength (or the equivalent Coder methods) before coding:
//
//	c, err := coder.New(d,
//	    coder.WithImageSize(rows, cols),
//	    coder.WithPatchSize(3, 3),
//	    coder.WithCoeffCount(2),
//	    coder.WithReduce(format.ReduceMaxNoSign, 2),
//	)
//	scratch := c.NewScratch()
//	defer scratch.Release()
//	out := c.NewOutput()
//	n := c.Code(observation, scratch, out)
//
// Memory use during a call is bounded by the scratch arena, which depends on
// the patch size, the dictionary size, the coefficient count and the spread,
// but not on the image size.
package coder

import (
	"fmt"
	"slices"

	"github.com/arloliu/sparcode/coding"
	"github.com/arloliu/sparcode/dict"
	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/grid"
	"github.com/arloliu/sparcode/internal/options"
	"github.com/arloliu/sparcode/nonlinear"
	"github.com/arloliu/sparcode/polarity"
	"github.com/arloliu/sparcode/reduce"
	"github.com/arloliu/sparcode/sparse"
)

// Coder codes observations of one shape with one dictionary and one set of
// policies. It holds no mutable state and is safe for concurrent use as long
// as every call has its own Scratch and output.
type Coder struct {
	params   Params
	geo      Geometry
	dict     *dict.Dictionary
	matcher  coding.Matcher
	nl       nonlinear.Func
	post     nonlinear.PostPass
	splitter polarity.Splitter
	reducer  reduce.Reducer
}

// New creates a Coder over d from DefaultParams adjusted by opts.
// The word count is taken from the dictionary.
func New(d *dict.Dictionary, opts ...Option) (*Coder, error) {
	p := DefaultParams()
	if err := options.Apply(&p, opts...); err != nil {
		return nil, err
	}
	p.WordCount = d.WordCount()

	return NewWithParams(d, p)
}

// NewWithParams creates a Coder from explicit parameters.
func NewWithParams(d *dict.Dictionary, p Params) (*Coder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Modulator = slices.Clone(p.Modulator)
	if d.WordCount() != p.WordCount || d.SampleCount() != p.Patch.Size() {
		return nil, fmt.Errorf("%w: dictionary is %d atoms x %d samples, params want %d atoms x %d samples",
			errs.ErrDictionaryMismatch, d.WordCount(), d.SampleCount(), p.WordCount, p.Patch.Size())
	}

	matcher, err := coding.New(p.Coding, d)
	if err != nil {
		return nil, err
	}
	nl, err := nonlinear.New(p.Nonlinear, p.Modulator)
	if err != nil {
		return nil, err
	}
	splitter, err := polarity.New(p.Polarity)
	if err != nil {
		return nil, err
	}
	reducer, err := reduce.New(p.Reduce)
	if err != nil {
		return nil, err
	}

	post, _ := nl.(nonlinear.PostPass)

	return &Coder{
		params:   p,
		geo:      p.Geometry(),
		dict:     d,
		matcher:  matcher,
		nl:       nl,
		post:     post,
		splitter: splitter,
		reducer:  reducer,
	}, nil
}

// Params returns a copy of the coder's parameters.
func (c *Coder) Params() Params {
	p := c.params
	p.Modulator = slices.Clone(p.Modulator)

	return p
}

// Geometry returns the output geometry.
func (c *Coder) Geometry() Geometry {
	return c.geo
}

// Dictionary returns the coder's dictionary.
func (c *Coder) Dictionary() *dict.Dictionary {
	return c.dict
}

// NewGeometry returns the output capacity a caller must provide.
func (c *Coder) NewGeometry() int {
	return c.geo.Size()
}

// CodingTmpsLength returns the scratch arena size in bytes.
func (c *Coder) CodingTmpsLength() int {
	return c.params.TmpsLength()
}

// NewScratch allocates a scratch arena for this coder.
func (c *Coder) NewScratch() *Scratch {
	return NewScratch(c.params)
}

// NewOutput allocates a sparse vector of NewGeometry cells.
func (c *Coder) NewOutput() *sparse.Vector {
	return sparse.New(c.geo.Size())
}

// Code codes obs, a row-major Rows x Cols observation, into out and returns
// the number of realized cells, which is also stored in out.Count.
//
// obs, scratch and out are trusted to be sized for the coder; use CodeImage
// for a checked call. A result of zero cells is a valid all-zero output.
func (c *Coder) Code(obs []float64, scratch *Scratch, out *sparse.Vector) int {
	p := &c.params
	g := grid.Grid{Rows: p.Rows, Cols: p.Cols, Data: obs}
	posRows := grid.PositionRows(p.Rows, p.Patch)
	posCols := grid.PositionCols(p.Cols, p.Patch)
	spread := p.ReduceSpread
	halfRows, halfCols := p.Patch.Rows/2, p.Patch.Cols/2

	out.Reset()
	for pr := range c.geo.PooledRows {
		r0, r1 := span(pr, spread, halfRows, posRows)
		for pc := range c.geo.PooledCols {
			c0, c1 := span(pc, spread, halfCols, posCols)

			scratch.pending.reset()
			for r := r0; r < r1; r++ {
				for col := c0; col < c1; col++ {
					c.codePatch(g, r, col, scratch)
				}
			}
			c.emit(pr, pc, scratch, out)
		}
	}

	out.SortByIndex()
	if c.post != nil {
		c.post.Requantize(out)
		out.SortByIndex()
	}

	return out.Count
}

// span returns the half-open range of patch top-left coordinates whose center
// falls in neighborhood n along one axis.
func span(n, spread, half, positions int) (int, int) {
	lo := max(n*spread-half, 0)
	hi := min((n+1)*spread-half, positions)

	return lo, max(lo, hi)
}

// codePatch gathers, matches, transforms and splits the patch at (r, c) and
// queues its non-zero coefficients in the pending window.
func (c *Coder) codePatch(g grid.Grid, r, col int, s *Scratch) {
	g.Extract(r, col, c.params.Patch, s.lastPatch)
	s.coeffs = c.matcher.Match(s.lastPatch, c.params.CoeffCount, s.work, s.coeffs)

	w := c.geo.WordCount
	i := s.pending.push()
	for rank, coeff := range s.coeffs {
		if coeff.Value == 0 {
			continue
		}
		ch, v := c.splitter.Split(c.nl.Apply(coeff.Value, rank))
		s.pending.add(i, coeff.Atom+w*ch, v)
	}
}

// emit drains the pending window through the reducer and appends the non-zero
// slots of neighborhood (pr, pc) to out.
func (c *Coder) emit(pr, pc int, s *Scratch, out *sparse.Vector) {
	if s.pending.len() == 0 {
		return
	}

	acc := s.acc[:c.geo.Slots()]
	clear(acc)
	for ordinal := 0; s.pending.len() > 0; ordinal++ {
		slots, vals := s.pending.pop()
		for j, slot := range slots {
			c.reducer.Fold(acc, ordinal, int(slot), vals[j])
		}
	}

	for slot, v := range acc {
		out.Append(c.geo.SlotIndex(pr, pc, slot), v)
	}
}

// CodeImage validates p and the buffers, then codes obs into out.
//
// It is the checked counterpart of Coder.Code: the coder is built for the
// call, and scratch and out must have been sized with CodingTmpsLength and
// NewGeometry for the same parameters.
func CodeImage(p Params, d *dict.Dictionary, obs []float64, scratch *Scratch, out *sparse.Vector) (int, error) {
	c, err := NewWithParams(d, p)
	if err != nil {
		return 0, err
	}
	if len(obs) != p.Rows*p.Cols {
		return 0, fmt.Errorf("%w: got %d values, want %d", errs.ErrObservationSizeMismatch, len(obs), p.Rows*p.Cols)
	}
	if scratch == nil || !scratch.fits(p) {
		return 0, fmt.Errorf("%w: need %d bytes", errs.ErrScratchTooSmall, p.TmpsLength())
	}
	if out.Cap() < c.geo.Size() {
		return 0, fmt.Errorf("%w: capacity %d, need %d", errs.ErrOutputTooSmall, out.Cap(), c.geo.Size())
	}

	return c.Code(obs, scratch, out), nil
}
