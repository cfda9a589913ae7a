package section

import (
	"fmt"

	"github.com/arloliu/sparcode/errs"
)

// FeatureHeader is the fixed-size header of a feature blob. It records the
// output geometry, the payload sizes and the identity of the dictionary the
// features were coded with.
type FeatureHeader struct {
	// Flag is the packed magic, endianness and compression block.
	Flag FeatureFlag // byte offset 0-2
	// Channels is the polarity channel count, 1 or 2.
	Channels uint8 // byte offset 3

	PooledRows uint32 // byte offset 4-7
	PooledCols uint32 // byte offset 8-11
	WordCount  uint32 // byte offset 12-15

	// Count is the number of realized cells.
	Count uint32 // byte offset 16-19

	// IndexPayloadSize and ValuePayloadSize are the stored, possibly
	// compressed, payload sizes. The value payload follows the index payload.
	IndexPayloadSize uint32 // byte offset 20-23
	ValuePayloadSize uint32 // byte offset 24-27

	// Checksum covers the stored index and value payloads.
	Checksum uint32 // byte offset 28-31
	// Fingerprint identifies the dictionary.
	Fingerprint uint64 // byte offset 32-39
}

// NewFeatureHeader creates a header with the default flag. Sizes, count and
// checksum are set by the encoder when it finishes.
func NewFeatureHeader(pooledRows, pooledCols, wordCount, channels int, fingerprint uint64) *FeatureHeader {
	return &FeatureHeader{
		Flag:        NewFeatureFlag(),
		Channels:    uint8(channels),
		PooledRows:  uint32(pooledRows),
		PooledCols:  uint32(pooledCols),
		WordCount:   uint32(wordCount),
		Fingerprint: fingerprint,
	}
}

// Size returns the number of addressable cells described by the header.
func (h *FeatureHeader) Size() int {
	return int(h.PooledRows) * int(h.PooledCols) * int(h.WordCount) * int(h.Channels)
}

// Parse parses the header from exactly HeaderSize bytes.
func (h *FeatureHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	h.Channels = data[3]
	if h.Channels != 1 && h.Channels != 2 {
		return fmt.Errorf("%w: %d channels", errs.ErrInvalidHeaderFlags, h.Channels)
	}

	engine := h.Flag.GetEndianEngine()
	h.PooledRows = engine.Uint32(data[4:8])
	h.PooledCols = engine.Uint32(data[8:12])
	h.WordCount = engine.Uint32(data[12:16])
	h.Count = engine.Uint32(data[16:20])
	h.IndexPayloadSize = engine.Uint32(data[20:24])
	h.ValuePayloadSize = engine.Uint32(data[24:28])
	h.Checksum = engine.Uint32(data[28:32])
	h.Fingerprint = engine.Uint64(data[32:40])

	return nil
}

// Bytes serializes the header.
func (h *FeatureHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *FeatureHeader) AppendTo(dst []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	dst = append(dst, byte(h.Flag.Options), byte(h.Flag.Options>>8), h.Flag.CompressionType, h.Channels)
	dst = engine.AppendUint32(dst, h.PooledRows)
	dst = engine.AppendUint32(dst, h.PooledCols)
	dst = engine.AppendUint32(dst, h.WordCount)
	dst = engine.AppendUint32(dst, h.Count)
	dst = engine.AppendUint32(dst, h.IndexPayloadSize)
	dst = engine.AppendUint32(dst, h.ValuePayloadSize)
	dst = engine.AppendUint32(dst, h.Checksum)
	dst = engine.AppendUint64(dst, h.Fingerprint)

	return dst
}

// ParseFeatureHeader parses a FeatureHeader from the start of data.
func ParseFeatureHeader(data []byte) (FeatureHeader, error) {
	if len(data) < HeaderSize {
		return FeatureHeader{}, fmt.Errorf("%w: got %d bytes, want at least %d",
			errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h := FeatureHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return FeatureHeader{}, err
	}

	return h, nil
}
