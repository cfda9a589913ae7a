package grid

import (
	"testing"

	"github.com/arloliu/sparcode/errs"
	"github.com/stretchr/testify/require"
)

func seqGrid(rows, cols int) Grid {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i)
	}

	return Grid{Rows: rows, Cols: cols, Data: data}
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		g, err := New(2, 3, make([]float64, 6))
		require.NoError(t, err)
		require.Equal(t, 2, g.Rows)
		require.Equal(t, 3, g.Cols)
	})

	t.Run("bad dimensions", func(t *testing.T) {
		_, err := New(0, 3, nil)
		require.ErrorIs(t, err, errs.ErrInvalidImageSize)
	})

	t.Run("bad data length", func(t *testing.T) {
		_, err := New(2, 3, make([]float64, 5))
		require.ErrorIs(t, err, errs.ErrInvalidGridData)
	})
}

func TestPatchCount(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		patch      Shape
		want       int
	}{
		{"fixture", 7, 6, Shape{3, 3}, 20},
		{"single position", 3, 3, Shape{3, 3}, 1},
		{"unit patch", 4, 5, Shape{1, 1}, 20},
		{"too tall", 2, 5, Shape{3, 1}, 0},
		{"too wide", 5, 2, Shape{1, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PatchCount(tt.rows, tt.cols, tt.patch))
		})
	}
}

func TestPositions(t *testing.T) {
	var got [][2]int
	for r, c := range Positions(4, 4, Shape{3, 2}) {
		got = append(got, [2]int{r, c})
	}

	want := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	require.Equal(t, want, got)
	require.Len(t, got, PatchCount(4, 4, Shape{3, 2}))
}

func TestPositions_EarlyStop(t *testing.T) {
	n := 0
	for range Positions(10, 10, Shape{2, 2}) {
		n++
		if n == 5 {
			break
		}
	}
	require.Equal(t, 5, n)
}

func TestExtract(t *testing.T) {
	g := seqGrid(4, 5)
	dst := make([]float64, 6)

	g.Extract(1, 2, Shape{2, 3}, dst)
	require.Equal(t, []float64{7, 8, 9, 12, 13, 14}, dst)

	for i := range dst {
		r, c := 1+i/3, 2+i%3
		require.Equal(t, g.At(r, c), dst[i])
		require.Equal(t, g.Data[FlatIndex(g.Cols, 1, 2, i/3, i%3)], dst[i])
	}
}
