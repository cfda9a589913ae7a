package section

import (
	"fmt"

	"github.com/arloliu/sparcode/endian"
	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
)

// FeatureFlag is the packed option block at the start of a feature header.
type FeatureFlag struct {
	// Options holds the magic number in bits 4-15 and the endianness in bit 0
	// (0 little-endian, 1 big-endian). Bits 1-3 are reserved and must be 0.
	Options uint16

	// CompressionType holds the index payload compression in bits 0-3 and the
	// value payload compression in bits 4-7.
	CompressionType uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewFeatureFlag returns a little-endian flag with uncompressed indices and
// Zstd-compressed values.
func NewFeatureFlag() FeatureFlag {
	flag := FeatureFlag{
		Options:         MagicFeatureV1Opt,
		CompressionType: IndexCompressionNone | ValueCompressionZstd,
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the blob is little-endian.
func (f FeatureFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the blob is big-endian.
func (f FeatureFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *FeatureFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *FeatureFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f FeatureFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IndexCompression returns the index payload compression.
func (f FeatureFlag) IndexCompression() format.CompressionType {
	return format.CompressionType(f.CompressionType & 0x0F)
}

// SetIndexCompression sets the index payload compression.
func (f *FeatureFlag) SetIndexCompression(compression format.CompressionType) {
	f.CompressionType &^= 0x0F
	f.CompressionType |= uint8(compression) & 0x0F
}

// ValueCompression returns the value payload compression.
func (f FeatureFlag) ValueCompression() format.CompressionType {
	return format.CompressionType((f.CompressionType >> 4) & 0x0F)
}

// SetValueCompression sets the value payload compression.
func (f *FeatureFlag) SetValueCompression(compression format.CompressionType) {
	f.CompressionType &^= 0xF0
	f.CompressionType |= (uint8(compression) & 0x0F) << 4
}

// Validate checks the magic number, the reserved bits and both compressions.
func (f FeatureFlag) Validate() error {
	if f.GetMagicNumber() != MagicFeatureV1Opt {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagic, f.GetMagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidHeaderFlags)
	}
	if _, ok := validCompressions[uint8(f.IndexCompression())]; !ok {
		return fmt.Errorf("%w: index compression %d", errs.ErrInvalidHeaderFlags, f.IndexCompression())
	}
	if _, ok := validCompressions[uint8(f.ValueCompression())]; !ok {
		return fmt.Errorf("%w: value compression %d", errs.ErrInvalidHeaderFlags, f.ValueCompression())
	}

	return nil
}

// GetEndianEngine returns the byte order recorded in the flag.
func (f FeatureFlag) GetEndianEngine() endian.EndianEngine {
	return endian.Select(f.IsBigEndian())
}
