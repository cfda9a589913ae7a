// Package pool provides sync.Pool backed buffers: byte buffers for feature blob
// payloads and typed slices for coding scratch zones.
package pool

import "sync"

var (
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	int32SlicePool = sync.Pool{
		New: func() any { return &[]int32{} },
	}
	boolSlicePool = sync.Pool{
		New: func() any { return &[]bool{} },
	}
)

// getSlice takes a slice from p and resizes it to size. Contents are not cleared.
func getSlice[T any](p *sync.Pool, size int) ([]T, func()) {
	ptr, _ := p.Get().(*[]T)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { p.Put(ptr) }
}

// GetFloat64Slice retrieves a float64 slice of exactly size elements from the pool.
//
// The contents are unspecified. The returned cleanup function puts the slice
// back and must be called at most once, after the slice is no longer used.
//
// Example:
//
//	corr, release := pool.GetFloat64Slice(wordCount)
//	defer release()
func GetFloat64Slice(size int) ([]float64, func()) {
	return getSlice[float64](&float64SlicePool, size)
}

// GetInt32Slice retrieves an int32 slice of exactly size elements from the pool.
// See GetFloat64Slice.
func GetInt32Slice(size int) ([]int32, func()) {
	return getSlice[int32](&int32SlicePool, size)
}

// GetBoolSlice retrieves a bool slice of exactly size elements from the pool.
// See GetFloat64Slice.
func GetBoolSlice(size int) ([]bool, func()) {
	return getSlice[bool](&boolSlicePool, size)
}
