// Package nonlinear provides the point nonlinearities applied to retained
// matching-pursuit coefficients.
//
// Every Func is pure and total. GlobalOrder additionally needs the complete
// output of a coding call and therefore also implements PostPass.
package nonlinear

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
	"github.com/arloliu/sparcode/sparse"
)

// Func transforms one coefficient. rank is the coefficient's position within
// its patch's retained set, 0 being the strongest.
type Func interface {
	Type() format.NonlinearType
	Apply(v float64, rank int) float64
}

// PostPass is implemented by nonlinearities that act on all values of a call at once.
//
// Requantize rewrites the realized values of out in place. It may reorder the
// cells; the caller restores index order afterwards.
type PostPass interface {
	Requantize(out *sparse.Vector)
}

// New builds the nonlinearity for nonlinearType. The modulator supplies the
// per-rank scales of Linear and the quantization levels of GlobalOrder.
func New(nonlinearType format.NonlinearType, modulator []float64) (Func, error) {
	switch nonlinearType {
	case format.NonlinearLinear:
		return Linear{Modulator: slices.Clone(modulator)}, nil
	case format.NonlinearLogistic:
		return Logistic{}, nil
	case format.NonlinearGlobalOrder:
		return NewGlobalOrder(modulator), nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidNonlinearType, nonlinearType)
	}
}

// Linear scales a coefficient by Modulator[rank]. Ranks past the end of the
// modulator are left unscaled.
type Linear struct {
	Modulator []float64
}

func (Linear) Type() format.NonlinearType { return format.NonlinearLinear }

func (l Linear) Apply(v float64, rank int) float64 {
	if rank < len(l.Modulator) {
		return v * l.Modulator[rank]
	}

	return v
}

// Logistic squashes a coefficient with 1/(1+e^-v).
type Logistic struct{}

func (Logistic) Type() format.NonlinearType { return format.NonlinearLogistic }

func (Logistic) Apply(v float64, _ int) float64 {
	return Sigmoid(v)
}

// Sigmoid computes 1/(1+e^-v) without overflowing for large |v|.
func Sigmoid(v float64) float64 {
	if v >= 0 {
		return 1 / (1 + math.Exp(-v))
	}
	e := math.Exp(v)

	return e / (1 + e)
}

// defaultLevels are the GlobalOrder quantization tiers used when no modulator is given.
var defaultLevels = [...]float64{1.0, 0.5}

// DefaultLevels returns a copy of the GlobalOrder tiers used when no levels are given.
func DefaultLevels() []float64 {
	return slices.Clone(defaultLevels[:])
}

// GlobalOrder quantizes values by their magnitude rank across a whole call.
//
// Values are ordered by descending magnitude and the rank range is cut into
// len(Levels) equal buckets; a value in bucket t becomes sign(v)*Levels[t].
// Equal magnitudes share the bucket of the first of them.
//
// A Coder runs Requantize on the pooled cells of a call, after the reducer, so
// with SumAbs or SumSqr the emitted values are tier values too.
type GlobalOrder struct {
	Levels []float64
}

var _ PostPass = GlobalOrder{}

// NewGlobalOrder returns a GlobalOrder over a copy of levels, or over
// DefaultLevels when levels is empty.
func NewGlobalOrder(levels []float64) GlobalOrder {
	if len(levels) == 0 {
		return GlobalOrder{Levels: DefaultLevels()}
	}

	return GlobalOrder{Levels: slices.Clone(levels)}
}

func (GlobalOrder) Type() format.NonlinearType { return format.NonlinearGlobalOrder }

// Apply is the identity; quantization happens in Requantize.
func (GlobalOrder) Apply(v float64, _ int) float64 {
	return v
}

func (g GlobalOrder) Requantize(out *sparse.Vector) {
	n := out.Len()
	if n == 0 {
		return
	}

	levels := g.Levels
	if len(levels) == 0 {
		levels = defaultLevels[:]
	}

	out.SortByMagnitude()

	val := out.Values()
	bucket := 0
	prevMag := math.Inf(1)
	for i, v := range val {
		mag := math.Abs(v)
		if mag != prevMag {
			bucket = i * len(levels) / n
			prevMag = mag
		}
		val[i] = math.Copysign(levels[bucket], v)
	}
}
