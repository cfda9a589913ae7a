package coder

import (
	"fmt"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
	"github.com/arloliu/sparcode/grid"
	"github.com/arloliu/sparcode/internal/options"
)

// Option configures the Params of a Coder.
type Option = options.Option[*Params]

// WithImageSize sets the observation dimensions.
func WithImageSize(rows, cols int) Option {
	return options.New(func(p *Params) error {
		if rows <= 0 || cols <= 0 {
			return fmt.Errorf("%w: %dx%d", errs.ErrInvalidImageSize, rows, cols)
		}
		p.Rows, p.Cols = rows, cols

		return nil
	})
}

// WithPatchSize sets the sliding window shape.
func WithPatchSize(rows, cols int) Option {
	return options.New(func(p *Params) error {
		if rows <= 0 || cols <= 0 {
			return fmt.Errorf("%w: %dx%d", errs.ErrInvalidPatchSize, rows, cols)
		}
		p.Patch = grid.Shape{Rows: rows, Cols: cols}

		return nil
	})
}

// WithCodingType selects the matcher.
func WithCodingType(codingType format.CodingType) Option {
	return options.NoError(func(p *Params) {
		p.Coding = codingType
	})
}

// WithCoeffCount sets the maximum number of atoms retained per patch.
func WithCoeffCount(k int) Option {
	return options.New(func(p *Params) error {
		if k <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCoeffCount, k)
		}
		p.CoeffCount = k

		return nil
	})
}

// WithNonlinearity selects the point nonlinearity and its modulator.
func WithNonlinearity(nonlinearType format.NonlinearType, modulator ...float64) Option {
	return options.NoError(func(p *Params) {
		p.Nonlinear = nonlinearType
		p.Modulator = modulator
	})
}

// WithPolaritySplit selects the polarity split policy.
func WithPolaritySplit(polarityType format.PolaritySplitType) Option {
	return options.NoError(func(p *Params) {
		p.Polarity = polarityType
	})
}

// WithReduce selects the pooling policy and the neighborhood edge length.
func WithReduce(reduceType format.ReduceType, spread int) Option {
	return options.New(func(p *Params) error {
		if spread <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidReduceSpread, spread)
		}
		p.Reduce = reduceType
		p.ReduceSpread = spread

		return nil
	})
}
