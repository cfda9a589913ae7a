//go:build !cgo || !gozstd

package compress

import (
	"fmt"
	"sync"

	"github.com/arloliu/sparcode/errs"
	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool keeps warmed-up decoders. Each decoder refuses frames that
// need more than MaxDecodedSize bytes of memory.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
			zstd.WithDecoderMaxMemory(MaxDecodedSize),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false), // blobs carry their own checksum
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress compresses data into a single frame that records its content size.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress decompresses data of at most MaxDecodedSize bytes.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, MaxDecodedSize)
}

// DecompressLimit decompresses data with a pooled decoder. A frame that
// declares a content size above limit is rejected before decoding.
func (c ZstdCompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var frame zstd.Header
	if err := frame.Decode(data); err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if frame.HasFCS && frame.FrameContentSize > uint64(limit) { //nolint: gosec
		return nil, fmt.Errorf("%w: zstd frame declares %d bytes, limit %d",
			errs.ErrDecodedSizeExceeded, frame.FrameContentSize, limit)
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(decompressed) > limit {
		return nil, fmt.Errorf("%w: zstd payload decodes to %d bytes, limit %d",
			errs.ErrDecodedSizeExceeded, len(decompressed), limit)
	}

	return decompressed, nil
}
