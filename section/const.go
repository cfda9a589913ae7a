package section

import "github.com/arloliu/sparcode/format"

const (
	// Bit masks of the Options field
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicFeatureV1Opt is the version 1 magic number of the feature blob format.
	MagicFeatureV1Opt = 0xFE10

	// Index compression (bits 0-3)
	IndexCompressionNone = uint8(format.CompressionNone)
	IndexCompressionZstd = uint8(format.CompressionZstd)
	IndexCompressionS2   = uint8(format.CompressionS2)
	IndexCompressionLZ4  = uint8(format.CompressionLZ4)

	// Value compression (bits 4-7)
	ValueCompressionNone = uint8(format.CompressionNone) << 4
	ValueCompressionZstd = uint8(format.CompressionZstd) << 4
	ValueCompressionS2   = uint8(format.CompressionS2) << 4
	ValueCompressionLZ4  = uint8(format.CompressionLZ4) << 4
)

// HeaderSize is the fixed feature blob header size in bytes.
const HeaderSize = 40
