// Package polarity maps a signed coefficient onto one or two output channels.
package polarity

import (
	"fmt"
	"math"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
)

// Channel indices used by KeepSign.
const (
	ChannelPositive = 0
	ChannelNegative = 1
)

// Splitter routes a value to a channel in [0, Channels()).
type Splitter interface {
	Type() format.PolaritySplitType
	Channels() int
	Split(v float64) (channel int, value float64)
}

// New returns the splitter for polarityType.
func New(polarityType format.PolaritySplitType) (Splitter, error) {
	switch polarityType {
	case format.PolarityNone:
		return None{}, nil
	case format.PolarityNoSign:
		return NoSign{}, nil
	case format.PolarityKeepSign:
		return KeepSign{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPolarityType, polarityType)
	}
}

// None passes values through unchanged.
type None struct{}

func (None) Type() format.PolaritySplitType {
	return format.PolarityNone
}

func (None) Channels() int {
	return 1
}

func (None) Split(v float64) (channel int, value float64) {
	return 0, v
}

// NoSign keeps only the magnitude.
type NoSign struct{}

func (NoSign) Type() format.PolaritySplitType {
	return format.PolarityNoSign
}

func (NoSign) Channels() int {
	return 1
}

func (NoSign) Split(v float64) (channel int, value float64) {
	return 0, math.Abs(v)
}

// KeepSign sends non-negative values to ChannelPositive and the magnitude of
// negative values to ChannelNegative.
type KeepSign struct{}

func (KeepSign) Type() format.PolaritySplitType {
	return format.PolarityKeepSign
}

func (KeepSign) Channels() int {
	return 2
}

func (KeepSign) Split(v float64) (channel int, value float64) {
	if v < 0 {
		return ChannelNegative, -v
	}

	return ChannelPositive, v
}
