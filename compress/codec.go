package compress

import (
	"fmt"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
)

// Compressor compresses an encoded payload.
//
// The returned slice is owned by the caller unless documented otherwise by the
// implementation; the input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// MaxDecodedSize is the largest payload Decompress restores.
const MaxDecodedSize = 128 * 1024 * 1024

// Decompressor restores a payload produced by the matching Compressor.
//
// It returns an error when data is corrupted or was produced by another
// algorithm. Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress is DecompressLimit with MaxDecodedSize.
	Decompress(data []byte) ([]byte, error)

	// DecompressLimit fails with errs.ErrDecodedSizeExceeded instead of
	// restoring more than limit bytes. Implementations check the size recorded
	// in the frame, if any, before allocating the output.
	DecompressLimit(data []byte, limit int) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes the effect of compressing one payload.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the encoded payload size before compression
	OriginalSize int64

	// CompressedSize is the stored payload size
	CompressedSize int64
}

// Add returns the element-wise sum of s and other, keeping s.Algorithm.
func (s CompressionStats) Add(other CompressionStats) CompressionStats {
	s.OriginalSize += other.OriginalSize
	s.CompressedSize += other.CompressedSize

	return s
}

// CompressionRatio returns compressed size / original size, or 0 for an empty payload.
//
// Values above 1.0 mean the algorithm expanded the payload, which happens for
// very short or high-entropy value payloads.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec creates a new Codec for compressionType. target names the payload
// in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s payload: %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
