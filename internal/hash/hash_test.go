package hash

import (
	"math"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestFloat64s(t *testing.T) {
	a := []float64{1, -2.5, 0}
	b := []float64{math.Pi}

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, Float64s(a, b), Float64s(a, b))
	})

	t.Run("split point does not matter", func(t *testing.T) {
		require.Equal(t, Float64s(a, b), Float64s([]float64{1, -2.5, 0, math.Pi}))
	})

	t.Run("sensitive to values", func(t *testing.T) {
		require.NotEqual(t, Float64s(a), Float64s([]float64{1, -2.5, 1e-300}))
	})

	t.Run("empty equals empty xxhash", func(t *testing.T) {
		require.Equal(t, xxhash.Sum64(nil), Float64s())
	})
}

func TestChecksum32(t *testing.T) {
	p1 := []byte("index payload")
	p2 := []byte("value payload")

	require.Equal(t, uint32(xxhash.Sum64(append(append([]byte{}, p1...), p2...))), Checksum32(p1, p2))
	require.NotEqual(t, Checksum32(p1, p2), Checksum32(p2, p1))
}
