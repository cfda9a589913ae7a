package nonlinear

import (
	"math"
	"testing"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
	"github.com/arloliu/sparcode/sparse"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		typ  format.NonlinearType
		want Func
	}{
		{format.NonlinearLinear, Linear{Modulator: []float64{2}}},
		{format.NonlinearLogistic, Logistic{}},
		{format.NonlinearGlobalOrder, GlobalOrder{Levels: []float64{2}}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			f, err := New(tt.typ, []float64{2})
			require.NoError(t, err)
			require.Equal(t, tt.want, f)
			require.Equal(t, tt.typ, f.Type())
		})
	}

	_, err := New(format.NonlinearType(0), nil)
	require.ErrorIs(t, err, errs.ErrInvalidNonlinearType)
}

func TestLinear(t *testing.T) {
	t.Run("identity modulator", func(t *testing.T) {
		l := Linear{Modulator: []float64{1, 1}}
		for _, v := range []float64{-3.25, 0, 1e-9, 42} {
			require.Equal(t, v, l.Apply(v, 0))
			require.Equal(t, v, l.Apply(v, 1))
		}
	})

	t.Run("scales by rank not atom", func(t *testing.T) {
		l := Linear{Modulator: []float64{1, 0.5, 0.25}}
		require.Equal(t, 4.0, l.Apply(4, 0))
		require.Equal(t, 2.0, l.Apply(4, 1))
		require.Equal(t, -1.0, l.Apply(-4, 2))
	})

	t.Run("rank past modulator is unscaled", func(t *testing.T) {
		l := Linear{Modulator: []float64{3}}
		require.Equal(t, 5.0, l.Apply(5, 1))
	})
}

func TestLogistic(t *testing.T) {
	var l Logistic
	tests := []struct {
		v, want float64
	}{
		{0, 0.5},
		{1, 0.7310585786300049},
		{-1, 0.2689414213699951},
		{5, 0.9933071490757153},
		{-800, 0},
		{800, 1},
	}

	for _, tt := range tests {
		require.InDelta(t, tt.want, l.Apply(tt.v, 0), 1e-4, "v=%v", tt.v)
		require.InDelta(t, 1/(1+math.Exp(-tt.v)), Sigmoid(tt.v), 1e-12, "v=%v", tt.v)
	}
}

func vectorOf(vals ...float64) *sparse.Vector {
	v := sparse.New(len(vals))
	for i, val := range vals {
		v.Append(i, val)
	}

	return v
}

func TestGlobalOrder(t *testing.T) {
	t.Run("apply is identity", func(t *testing.T) {
		require.Equal(t, -2.5, NewGlobalOrder(nil).Apply(-2.5, 3))
	})

	t.Run("two default tiers", func(t *testing.T) {
		v := vectorOf(3, -0.5, 7, 1)
		NewGlobalOrder(nil).Requantize(v)
		v.SortByIndex()

		require.Equal(t, []int{0, 1, 2, 3}, v.Indices())
		require.Equal(t, []float64{1, -0.5, 1, 0.5}, v.Values())
	})

	t.Run("ties share a tier", func(t *testing.T) {
		v := vectorOf(2, 2, -2, 1)
		NewGlobalOrder(nil).Requantize(v)
		v.SortByIndex()

		require.Equal(t, []float64{1, 1, -1, 0.5}, v.Values())
	})

	t.Run("custom levels", func(t *testing.T) {
		v := vectorOf(6, 5, 4, 3, 2, 1)
		NewGlobalOrder([]float64{3, 2, 1}).Requantize(v)
		v.SortByIndex()

		require.Equal(t, []float64{3, 3, 2, 2, 1, 1}, v.Values())
	})

	t.Run("empty", func(t *testing.T) {
		v := sparse.New(0)
		NewGlobalOrder(nil).Requantize(v)
		require.Equal(t, 0, v.Len())
	})
}

func TestNew_CopiesModulator(t *testing.T) {
	modulator := []float64{2, 0.5}

	linear, err := New(format.NonlinearLinear, modulator)
	require.NoError(t, err)
	global, err := New(format.NonlinearGlobalOrder, modulator)
	require.NoError(t, err)

	modulator[0] = 100

	require.Equal(t, 4.0, linear.Apply(2, 0))
	v := vectorOf(3, 1)
	global.(GlobalOrder).Requantize(v)
	v.SortByIndex()
	require.Equal(t, []float64{2, 0.5}, v.Values())
}

func TestDefaultLevels_ReturnsCopy(t *testing.T) {
	levels := DefaultLevels()
	require.Equal(t, []float64{1, 0.5}, levels)

	levels[0] = 9
	require.Equal(t, []float64{1, 0.5}, DefaultLevels())
	require.Equal(t, []float64{1, 0.5}, NewGlobalOrder(nil).Levels)
}
