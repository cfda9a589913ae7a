// Package reduce implements the spatial pooling policies that collapse one
// reduce_spread x reduce_spread neighborhood of coded patches into a single
// value per (atom, channel) slot.
//
// A neighborhood is reduced by zeroing an accumulator and folding every coded
// value into it:
//
//	clear(acc)
//	for ordinal, patch := range neighborhood {
//	    for _, e := range patch {
//	        r.Fold(acc, ordinal, e.Slot, e.Value)
//	    }
//	}
//
// ordinal is the position of the patch among the neighborhood's patches in
// scan order. Folding never turns an all-zero slot into a non-zero one.
package reduce

import (
	"fmt"
	"math"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
)

// Reducer folds coded values into a per-neighborhood accumulator.
type Reducer interface {
	Type() format.ReduceType
	Fold(acc []float64, ordinal, slot int, v float64)
}

// New returns the reducer for reduceType.
func New(reduceType format.ReduceType) (Reducer, error) {
	switch reduceType {
	case format.ReduceSubsample:
		return Subsample{}, nil
	case format.ReduceMaxNoSign:
		return MaxNoSign{}, nil
	case format.ReduceMaxKeepSign:
		return MaxKeepSign{}, nil
	case format.ReduceSumAbs:
		return SumAbs{}, nil
	case format.ReduceSumSqr:
		return SumSqr{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidReduceType, reduceType)
	}
}

// SubsampleOrdinal is the designated sub-position kept by Subsample: the first
// patch of the neighborhood in scan order.
const SubsampleOrdinal = 0

// Subsample keeps the values of the designated patch and discards the rest.
type Subsample struct{}

func (Subsample) Type() format.ReduceType { return format.ReduceSubsample }

func (Subsample) Fold(acc []float64, ordinal, slot int, v float64) {
	if ordinal == SubsampleOrdinal {
		acc[slot] = v
	}
}

// MaxNoSign keeps the largest magnitude.
type MaxNoSign struct{}

func (MaxNoSign) Type() format.ReduceType { return format.ReduceMaxNoSign }

func (MaxNoSign) Fold(acc []float64, _, slot int, v float64) {
	if mag := math.Abs(v); mag > acc[slot] {
		acc[slot] = mag
	}
}

// MaxKeepSign keeps the value of largest magnitude with its sign. The first
// of several equal magnitudes wins.
type MaxKeepSign struct{}

func (MaxKeepSign) Type() format.ReduceType { return format.ReduceMaxKeepSign }

func (MaxKeepSign) Fold(acc []float64, _, slot int, v float64) {
	if math.Abs(v) > math.Abs(acc[slot]) {
		acc[slot] = v
	}
}

// SumAbs sums magnitudes.
type SumAbs struct{}

func (SumAbs) Type() format.ReduceType { return format.ReduceSumAbs }

func (SumAbs) Fold(acc []float64, _, slot int, v float64) {
	acc[slot] += math.Abs(v)
}

// SumSqr sums squares. A non-zero value whose square underflows contributes
// the smallest positive float64, so the slot is never dropped.
type SumSqr struct{}

func (SumSqr) Type() format.ReduceType { return format.ReduceSumSqr }

func (SumSqr) Fold(acc []float64, _, slot int, v float64) {
	sq := v * v
	if sq == 0 && v != 0 {
		sq = math.SmallestNonzeroFloat64
	}
	acc[slot] += sq
}
