// Package hash wraps xxHash64 for dictionary fingerprints and payload checksums.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Float64s computes an xxHash64 over the little-endian IEEE 754 bits of every
// value in every slice, in order. The result does not depend on host byte order.
func Float64s(slices ...[]float64) uint64 {
	d := xxhash.New()

	var buf [8]byte
	for _, s := range slices {
		for _, v := range s {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}

// Checksum32 returns the low 32 bits of the xxHash64 of the given payloads.
func Checksum32(payloads ...[]byte) uint32 {
	d := xxhash.New()
	for _, p := range payloads {
		_, _ = d.Write(p)
	}

	return uint32(d.Sum64())
}
