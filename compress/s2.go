package compress

import (
	"fmt"

	"github.com/arloliu/sparcode/errs"
	"github.com/klauspost/compress/s2"
)

// S2Compressor compresses payloads with S2, the Snappy-compatible block format
// of klauspost/compress.
//
// It suits index payloads: delta runs of one-byte uvarints compress well and
// decode faster than with Zstd.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data as a single S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes a single S2 block of at most MaxDecodedSize bytes.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, MaxDecodedSize)
}

// DecompressLimit decodes a single S2 block. The decoded length stored in the
// block preamble is checked against limit before the output is allocated.
func (c S2Compressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n > limit {
		return nil, fmt.Errorf("%w: s2 block decodes to %d bytes, limit %d", errs.ErrDecodedSizeExceeded, n, limit)
	}

	decoded, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return decoded, nil
}
