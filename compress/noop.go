package compress

import (
	"fmt"

	"github.com/arloliu/sparcode/errs"
)

// NoOpCompressor stores payloads as encoded.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself; the result aliases the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself; the result aliases the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, MaxDecodedSize)
}

// DecompressLimit returns data itself if it is at most limit bytes.
func (c NoOpCompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) > limit {
		return nil, fmt.Errorf("%w: stored payload is %d bytes, limit %d", errs.ErrDecodedSizeExceeded, len(data), limit)
	}

	return data, nil
}
