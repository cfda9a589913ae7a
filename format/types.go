// Package format defines the enumerated policy axes shared by the coder, the
// serialized feature blob and their tests.
package format

type (
	CodingType        uint8
	NonlinearType     uint8
	PolaritySplitType uint8
	ReduceType        uint8
	CompressionType   uint8
)

const (
	CodingCorrelation CodingType = 0x1 // CodingCorrelation represents Gram-accelerated matching pursuit.

	NonlinearLinear      NonlinearType = 0x1 // NonlinearLinear scales each coefficient by a rank modulator.
	NonlinearLogistic    NonlinearType = 0x2 // NonlinearLogistic squashes each coefficient with a sigmoid.
	NonlinearGlobalOrder NonlinearType = 0x3 // NonlinearGlobalOrder quantizes by magnitude rank across a call.

	PolarityNone     PolaritySplitType = 0x1 // PolarityNone keeps signed values in a single channel.
	PolarityNoSign   PolaritySplitType = 0x2 // PolarityNoSign keeps magnitudes in a single channel.
	PolarityKeepSign PolaritySplitType = 0x3 // PolarityKeepSign splits values into positive and negative channels.

	ReduceSubsample   ReduceType = 0x1 // ReduceSubsample keeps one designated sub-position.
	ReduceMaxNoSign   ReduceType = 0x2 // ReduceMaxNoSign keeps the largest magnitude.
	ReduceMaxKeepSign ReduceType = 0x3 // ReduceMaxKeepSign keeps the largest magnitude with its sign.
	ReduceSumAbs      ReduceType = 0x4 // ReduceSumAbs sums magnitudes.
	ReduceSumSqr      ReduceType = 0x5 // ReduceSumSqr sums squares.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CodingType) String() string {
	switch c {
	case CodingCorrelation:
		return "Correlation"
	default:
		return "Unknown"
	}
}

func (n NonlinearType) String() string {
	switch n {
	case NonlinearLinear:
		return "Linear"
	case NonlinearLogistic:
		return "Logistic"
	case NonlinearGlobalOrder:
		return "GlobalOrder"
	default:
		return "Unknown"
	}
}

func (p PolaritySplitType) String() string {
	switch p {
	case PolarityNone:
		return "None"
	case PolarityNoSign:
		return "NoSign"
	case PolarityKeepSign:
		return "KeepSign"
	default:
		return "Unknown"
	}
}

// Channels returns the number of polarity channels produced per atom.
func (p PolaritySplitType) Channels() int {
	if p == PolarityKeepSign {
		return 2
	}

	return 1
}

func (r ReduceType) String() string {
	switch r {
	case ReduceSubsample:
		return "Subsample"
	case ReduceMaxNoSign:
		return "MaxNoSign"
	case ReduceMaxKeepSign:
		return "MaxKeepSign"
	case ReduceSumAbs:
		return "SumAbs"
	case ReduceSumSqr:
		return "SumSqr"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
