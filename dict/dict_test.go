package dict

import (
	"math"
	"testing"

	"github.com/arloliu/sparcode/errs"
	"github.com/stretchr/testify/require"
)

// twoAtoms returns (1,0) and (1/sqrt2, 1/sqrt2).
func twoAtoms() []float64 {
	s := 1 / math.Sqrt2
	return []float64{1, 0, s, s}
}

func TestFromAtoms(t *testing.T) {
	d, err := FromAtoms(2, 2, twoAtoms())
	require.NoError(t, err)
	require.Equal(t, 2, d.WordCount())
	require.Equal(t, 2, d.SampleCount())

	s := 1 / math.Sqrt2
	require.Equal(t, []float64{s, s}, d.Atom(1))
	require.Equal(t, []float64{1, s}, d.TransposedRow(0))
	require.Equal(t, []float64{0, s}, d.TransposedRow(1))
	require.InDelta(t, 1.0, d.GramRow(0)[0], 1e-12)
	require.InDelta(t, s, d.GramRow(0)[1], 1e-12)
	require.InDelta(t, s, d.GramRow(1)[0], 1e-12)
	require.InDelta(t, 1.0, d.GramRow(1)[1], 1e-12)
	require.NoError(t, d.Verify(1e-12))
}

func TestFromAtoms_CopiesInput(t *testing.T) {
	atoms := twoAtoms()
	d, err := FromAtoms(2, 2, atoms)
	require.NoError(t, err)

	atoms[0] = 42
	require.Equal(t, 1.0, d.Atom(0)[0])
}

func TestNew_Shape(t *testing.T) {
	tests := []struct {
		name                string
		w, n                int
		atoms, transp, gram int
	}{
		{"zero words", 0, 2, 0, 0, 0},
		{"short atoms", 2, 3, 5, 6, 4},
		{"short transpose", 2, 3, 6, 5, 4},
		{"short gram", 2, 3, 6, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.n, make([]float64, tt.atoms), make([]float64, tt.transp), make([]float64, tt.gram))
			require.ErrorIs(t, err, errs.ErrInvalidDictionaryShape)
		})
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	d, err := FromAtoms(2, 2, twoAtoms())
	require.NoError(t, err)

	t.Run("gram", func(t *testing.T) {
		gram := append([]float64{}, d.gram...)
		gram[1] += 0.1
		bad, err := New(2, 2, d.atoms, d.transp, gram)
		require.NoError(t, err)
		require.ErrorIs(t, bad.Verify(1e-9), errs.ErrInconsistentDictionary)
	})

	t.Run("transpose", func(t *testing.T) {
		transp := append([]float64{}, d.transp...)
		transp[0] = -1
		bad, err := New(2, 2, d.atoms, transp, d.gram)
		require.NoError(t, err)
		require.ErrorIs(t, bad.Verify(1e-9), errs.ErrInconsistentDictionary)
	})
}

func TestFingerprint(t *testing.T) {
	d1, err := FromAtoms(2, 2, twoAtoms())
	require.NoError(t, err)
	d2, err := FromAtoms(2, 2, twoAtoms())
	require.NoError(t, err)
	d3, err := FromAtoms(2, 2, []float64{0, 1, 1, 0})
	require.NoError(t, err)

	require.Equal(t, d1.Fingerprint(), d2.Fingerprint())
	require.NotEqual(t, d1.Fingerprint(), d3.Fingerprint())
}

func TestReconstruct(t *testing.T) {
	d, err := FromAtoms(2, 2, twoAtoms())
	require.NoError(t, err)

	dst := []float64{9, 9}
	d.Reconstruct([]int{1, 0}, []float64{math.Sqrt2, 0.5}, dst)
	require.InDelta(t, 1.5, dst[0], 1e-12)
	require.InDelta(t, 1.0, dst[1], 1e-12)
}
