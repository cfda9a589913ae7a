package coder

import (
	"fmt"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
	"github.com/arloliu/sparcode/grid"
)

// Params is the full parameter set of a coding call.
type Params struct {
	// Rows and Cols are the observation dimensions.
	Rows int
	Cols int
	// Patch is the sliding window shape. Patch.Size() must equal the
	// dictionary's sample count.
	Patch grid.Shape
	// Coding selects the matcher. Only format.CodingCorrelation is supported.
	Coding    format.CodingType
	WordCount int
	// CoeffCount is the maximum number of atoms retained per patch.
	CoeffCount int
	Nonlinear  format.NonlinearType
	// Modulator holds the per-rank scales of Linear or the levels of GlobalOrder.
	Modulator    []float64
	Polarity     format.PolaritySplitType
	Reduce       format.ReduceType
	ReduceSpread int
}

// DefaultParams returns a 3x3 patch, one coefficient per patch, identity
// Linear nonlinearity, no polarity split and 1x1 subsampling. Image size and
// word count must still be set.
func DefaultParams() Params {
	return Params{
		Patch:        grid.Shape{Rows: 3, Cols: 3},
		Coding:       format.CodingCorrelation,
		CoeffCount:   1,
		Nonlinear:    format.NonlinearLinear,
		Polarity:     format.PolarityNone,
		Reduce:       format.ReduceSubsample,
		ReduceSpread: 1,
	}
}

// Validate checks every parameter for range and enum validity.
func (p Params) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidImageSize, p.Rows, p.Cols)
	}
	if p.Patch.Rows <= 0 || p.Patch.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidPatchSize, p.Patch.Rows, p.Patch.Cols)
	}
	if p.Patch.Rows > p.Rows || p.Patch.Cols > p.Cols {
		return fmt.Errorf("%w: patch %dx%d, image %dx%d",
			errs.ErrPatchLargerThanImage, p.Patch.Rows, p.Patch.Cols, p.Rows, p.Cols)
	}
	if p.Coding != format.CodingCorrelation {
		return fmt.Errorf("%w: %s (%d)", errs.ErrUnsupportedCodingType, p.Coding, p.Coding)
	}
	if p.WordCount <= 0 {
		return fmt.Errorf("%w: word count %d", errs.ErrInvalidDictionaryShape, p.WordCount)
	}
	if p.CoeffCount <= 0 || p.CoeffCount > p.WordCount {
		return fmt.Errorf("%w: %d, word count %d", errs.ErrInvalidCoeffCount, p.CoeffCount, p.WordCount)
	}
	if p.ReduceSpread <= 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidReduceSpread, p.ReduceSpread)
	}

	switch p.Nonlinear {
	case format.NonlinearLinear, format.NonlinearLogistic, format.NonlinearGlobalOrder:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidNonlinearType, p.Nonlinear)
	}

	switch p.Polarity {
	case format.PolarityNone, format.PolarityNoSign, format.PolarityKeepSign:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidPolarityType, p.Polarity)
	}

	switch p.Reduce {
	case format.ReduceSubsample, format.ReduceMaxNoSign, format.ReduceMaxKeepSign, format.ReduceSumAbs, format.ReduceSumSqr:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidReduceType, p.Reduce)
	}

	return nil
}

// Geometry returns the output geometry for these parameters.
func (p Params) Geometry() Geometry {
	return NewGeometryOf(p.Rows, p.Cols, p.WordCount, p.Polarity, p.ReduceSpread)
}

// TmpsLength returns CodingTmpsLength for these parameters.
func (p Params) TmpsLength() int {
	return CodingTmpsLength(p.Rows, p.Cols, p.Patch.Rows, p.Patch.Cols, p.Coding, p.WordCount, p.CoeffCount, p.ReduceSpread)
}
