package coder

import (
	"testing"

	"github.com/arloliu/sparcode/dict"
	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
	"github.com/arloliu/sparcode/sparse"
	"github.com/stretchr/testify/require"
)

// unitDict returns wordCount unit atoms over sampleCount samples, atom a = e_a,
// so that a patch's coefficients are its leading samples.
func unitDict(t testing.TB, wordCount, sampleCount int) *dict.Dictionary {
	t.Helper()

	atoms := make([]float64, wordCount*sampleCount)
	for a := range wordCount {
		atoms[a*sampleCount+a] = 1
	}
	d, err := dict.FromAtoms(wordCount, sampleCount, atoms)
	require.NoError(t, err)

	return d
}

// smallObs is a 4x4 observation coded below with 2x2 patches, four unit atoms,
// one coefficient per patch and 2x2 pooling.
var smallObs = []float64{
	1, 2, 0, 0,
	0, 5, 0, -7,
	3, 0, 0, 0,
	0, 0, 9, 0,
}

type cell struct {
	idx int
	val float64
}

func cellsOf(v *sparse.Vector) []cell {
	var cells []cell
	for idx, val := range v.All() {
		cells = append(cells, cell{idx, val})
	}

	return cells
}

func codeSmall(t *testing.T, opts ...Option) (*Coder, *Scratch, *sparse.Vector) {
	t.Helper()

	d := unitDict(t, 4, 4)
	base := []Option{WithImageSize(4, 4), WithPatchSize(2, 2), WithCoeffCount(1)}
	c, err := New(d, append(base, opts...)...)
	require.NoError(t, err)

	scratch := c.NewScratch()
	t.Cleanup(scratch.Release)
	out := c.NewOutput()
	n := c.Code(smallObs, scratch, out)
	require.Equal(t, n, out.Count)
	require.NoError(t, out.Validate(c.NewGeometry()))

	return c, scratch, out
}

func TestCode_Subsample(t *testing.T) {
	c, _, out := codeSmall(t, WithReduce(format.ReduceSubsample, 2))

	require.Equal(t, 16, c.NewGeometry())
	require.Equal(t, []cell{{3, 5}, {5, 5}, {10, 5}, {12, 5}}, cellsOf(out))
}

func TestCode_MaxKeepSign(t *testing.T) {
	_, _, out := codeSmall(t, WithReduce(format.ReduceMaxKeepSign, 2))

	want := []cell{{1, 3}, {3, 5}, {5, 5}, {7, -7}, {10, 5}, {11, 9}, {12, 5}, {14, -7}, {15, 9}}
	require.Equal(t, want, cellsOf(out))
}

func TestCode_MaxNoSign(t *testing.T) {
	_, _, out := codeSmall(t, WithReduce(format.ReduceMaxNoSign, 2))

	want := []cell{{1, 3}, {3, 5}, {5, 5}, {7, 7}, {10, 5}, {11, 9}, {12, 5}, {14, 7}, {15, 9}}
	require.Equal(t, want, cellsOf(out))
}

func TestCode_KeepSignPolarity(t *testing.T) {
	c, _, out := codeSmall(t, WithPolaritySplit(format.PolarityKeepSign), WithReduce(format.ReduceMaxKeepSign, 2))

	require.Equal(t, 32, c.NewGeometry())
	want := []cell{{1, 3}, {3, 5}, {5, 5}, {10, 5}, {11, 9}, {12, 5}, {15, 9}, {23, 7}, {30, 7}}
	require.Equal(t, want, cellsOf(out))

	pr, pc, atom, ch := c.Geometry().Cell(23)
	require.Equal(t, [4]int{1, 1, 1, 1}, [4]int{pr, pc, atom, ch})
}

func TestCode_LastPatch(t *testing.T) {
	_, scratch, _ := codeSmall(t, WithReduce(format.ReduceSumAbs, 2))

	// the last neighborhood's last patch has its top-left corner at (2, 2)
	require.Equal(t, []float64{0, 0, 9, 0}, scratch.LastPatch())
}

func TestCode_GlobalOrder(t *testing.T) {
	_, _, out := codeSmall(t,
		WithNonlinearity(format.NonlinearGlobalOrder),
		WithReduce(format.ReduceMaxKeepSign, 2),
	)

	// magnitudes 9,9,7,7,5,5,5,5,3: the 5s start at rank 4 and share the top
	// tier, only the 3 falls in the lower half
	want := []cell{{1, 0.5}, {3, 1}, {5, 1}, {7, -1}, {10, 1}, {11, 1}, {12, 1}, {14, -1}, {15, 1}}
	require.Equal(t, want, cellsOf(out))
}

func TestCode_LogisticKeepsZerosOut(t *testing.T) {
	_, _, out := codeSmall(t,
		WithNonlinearity(format.NonlinearLogistic),
		WithReduce(format.ReduceSubsample, 2),
	)

	// only the four retained coefficients are squashed
	require.Equal(t, 4, out.Count)
	for _, v := range out.Values() {
		require.InDelta(t, 0.9933071490757153, v, 1e-12)
	}
}

func TestCode_Reuse(t *testing.T) {
	d := unitDict(t, 4, 4)
	c, err := New(d, WithImageSize(4, 4), WithPatchSize(2, 2), WithReduce(format.ReduceSumSqr, 2))
	require.NoError(t, err)

	scratch := c.NewScratch()
	defer scratch.Release()
	out := c.NewOutput()

	first := cellsOf(codeOnce(c, scratch, out))
	for range 3 {
		require.Equal(t, first, cellsOf(codeOnce(c, scratch, out)))
	}
}

func codeOnce(c *Coder, s *Scratch, out *sparse.Vector) *sparse.Vector {
	c.Code(smallObs, s, out)
	return out
}

func TestNew_Errors(t *testing.T) {
	d := unitDict(t, 4, 4)

	tests := []struct {
		name string
		opts []Option
		err  error
	}{
		{"missing image size", []Option{WithPatchSize(2, 2)}, errs.ErrInvalidImageSize},
		{"bad image size", []Option{WithImageSize(0, 4)}, errs.ErrInvalidImageSize},
		{"bad patch size", []Option{WithImageSize(4, 4), WithPatchSize(0, 2)}, errs.ErrInvalidPatchSize},
		{"patch too large", []Option{WithImageSize(1, 4), WithPatchSize(2, 2)}, errs.ErrPatchLargerThanImage},
		{"dictionary mismatch", []Option{WithImageSize(4, 4), WithPatchSize(3, 3)}, errs.ErrDictionaryMismatch},
		{"coefficient count", []Option{WithImageSize(4, 4), WithPatchSize(2, 2), WithCoeffCount(5)}, errs.ErrInvalidCoeffCount},
		{"zero coefficient count", []Option{WithCoeffCount(0)}, errs.ErrInvalidCoeffCount},
		{"spread", []Option{WithReduce(format.ReduceSumAbs, 0)}, errs.ErrInvalidReduceSpread},
		{"coding type", []Option{WithImageSize(4, 4), WithPatchSize(2, 2), WithCodingType(9)}, errs.ErrUnsupportedCodingType},
		{"nonlinear type", []Option{WithImageSize(4, 4), WithPatchSize(2, 2), WithNonlinearity(0)}, errs.ErrInvalidNonlinearType},
		{"polarity type", []Option{WithImageSize(4, 4), WithPatchSize(2, 2), WithPolaritySplit(0)}, errs.ErrInvalidPolarityType},
		{"reduce type", []Option{WithImageSize(4, 4), WithPatchSize(2, 2), WithReduce(0, 1)}, errs.ErrInvalidReduceType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(d, tt.opts...)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func smallParams() Params {
	p := DefaultParams()
	p.Rows, p.Cols = 4, 4
	p.Patch.Rows, p.Patch.Cols = 2, 2
	p.WordCount = 4
	p.ReduceSpread = 2

	return p
}

func TestNewWithParams_CopiesModulator(t *testing.T) {
	d := unitDict(t, 4, 4)
	p := smallParams()
	p.Modulator = []float64{2}

	c, err := NewWithParams(d, p)
	require.NoError(t, err)
	scratch := c.NewScratch()
	defer scratch.Release()
	want := cellsOf(codeOnce(c, scratch, c.NewOutput()))

	p.Modulator[0] = 100
	got := c.Params()
	require.Equal(t, []float64{2}, got.Modulator)

	got.Modulator[0] = 100
	require.Equal(t, []float64{2}, c.Params().Modulator)
	require.Equal(t, want, cellsOf(codeOnce(c, scratch, c.NewOutput())))
}

func TestCodeImage(t *testing.T) {
	d := unitDict(t, 4, 4)
	p := smallParams()

	t.Run("codes", func(t *testing.T) {
		scratch := NewScratch(p)
		defer scratch.Release()
		out := sparse.New(p.Geometry().Size())

		n, err := CodeImage(p, d, smallObs, scratch, out)
		require.NoError(t, err)
		require.Equal(t, 4, n)
	})

	t.Run("observation size", func(t *testing.T) {
		_, err := CodeImage(p, d, smallObs[:15], NewScratch(p), sparse.New(16))
		require.ErrorIs(t, err, errs.ErrObservationSizeMismatch)
	})

	t.Run("scratch too small", func(t *testing.T) {
		small := p
		small.ReduceSpread = 1
		_, err := CodeImage(p, d, smallObs, NewScratch(small), sparse.New(16))
		require.ErrorIs(t, err, errs.ErrScratchTooSmall)

		_, err = CodeImage(p, d, smallObs, nil, sparse.New(16))
		require.ErrorIs(t, err, errs.ErrScratchTooSmall)
	})

	t.Run("output too small", func(t *testing.T) {
		_, err := CodeImage(p, d, smallObs, NewScratch(p), sparse.New(15))
		require.ErrorIs(t, err, errs.ErrOutputTooSmall)
	})

	t.Run("invalid params", func(t *testing.T) {
		bad := p
		bad.Reduce = 0
		_, err := CodeImage(bad, d, smallObs, NewScratch(p), sparse.New(16))
		require.ErrorIs(t, err, errs.ErrInvalidReduceType)
	})
}

func TestCode_SevenBySixSubsample(t *testing.T) {
	obs := make([]float64, 7*6)
	for i := range obs {
		obs[i] = float64(i + 1)
	}
	d := unitDict(t, 6, 9)

	c, err := New(d,
		WithImageSize(7, 6),
		WithPatchSize(3, 3),
		WithCoeffCount(2),
		WithReduce(format.ReduceSubsample, 2),
	)
	require.NoError(t, err)
	require.Equal(t, 54, c.NewGeometry())

	scratch := c.NewScratch()
	defer scratch.Release()
	out := c.NewOutput()

	n := c.Code(obs, scratch, out)
	require.Equal(t, 18, n)
	require.Equal(t, []int{
		36, 37, 38, 39, 40, 41, 42, 43, 44,
		45, 46, 47, 48, 49, 50, 51, 52, 53,
	}, out.Indices())
	require.Equal(t, []float64{
		8, 14, 26, 9, 15, 27, 11, 17, 29,
		9, 15, 27, 10, 16, 28, 12, 18, 30,
	}, out.Values())

	// the last neighborhood's only patch starts at (4, 3)
	require.Equal(t, []float64{28, 29, 30, 34, 35, 36, 40, 41, 42}, scratch.LastPatch())
}
