package section

import (
	"testing"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
	"github.com/stretchr/testify/require"
)

func sampleHeader() *FeatureHeader {
	h := NewFeatureHeader(3, 4, 6, 2, 0x0123456789abcdef)
	h.Count = 17
	h.IndexPayloadSize = 21
	h.ValuePayloadSize = 136
	h.Checksum = 0xdeadbeef

	return h
}

func TestNewFeatureHeader(t *testing.T) {
	h := NewFeatureHeader(3, 4, 6, 2, 42)

	require.True(t, h.Flag.IsLittleEndian())
	require.Equal(t, uint16(MagicFeatureV1Opt), h.Flag.GetMagicNumber())
	require.Equal(t, format.CompressionNone, h.Flag.IndexCompression())
	require.Equal(t, format.CompressionZstd, h.Flag.ValueCompression())
	require.Equal(t, uint8(2), h.Channels)
	require.Equal(t, uint64(42), h.Fingerprint)
	require.Equal(t, 3*4*6*2, h.Size())
	require.NoError(t, h.Flag.Validate())
}

func TestFeatureHeader_RoundTrip(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		original := sampleHeader()
		if bigEndian {
			original.Flag.WithBigEndian()
		}
		original.Flag.SetIndexCompression(format.CompressionS2)
		original.Flag.SetValueCompression(format.CompressionLZ4)

		data := original.Bytes()
		require.Len(t, data, HeaderSize)

		parsed, err := ParseFeatureHeader(data)
		require.NoError(t, err)
		require.Equal(t, *original, parsed)
		require.Equal(t, bigEndian, parsed.Flag.IsBigEndian())
	}
}

func TestFeatureHeader_ByteLayout(t *testing.T) {
	h := sampleHeader()
	data := h.Bytes()

	require.Equal(t, byte(0x10), data[0])
	require.Equal(t, byte(0xFE), data[1])
	require.Equal(t, IndexCompressionNone|ValueCompressionZstd, data[2])
	require.Equal(t, byte(2), data[3])
	require.Equal(t, []byte{3, 0, 0, 0}, data[4:8])
	require.Equal(t, []byte{17, 0, 0, 0}, data[16:20])
	require.Equal(t, []byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01}, data[32:40])

	h.Flag.WithBigEndian()
	data = h.Bytes()
	require.Equal(t, byte(0x11), data[0])
	require.Equal(t, []byte{0, 0, 0, 3}, data[4:8])
	require.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}, data[32:40])
}

func TestFeatureHeader_AppendTo(t *testing.T) {
	h := sampleHeader()
	prefix := []byte("blob:")

	data := h.AppendTo(prefix)
	require.Equal(t, prefix, data[:len(prefix)])
	require.Equal(t, h.Bytes(), data[len(prefix):])
}

func TestFeatureHeader_ParseErrors(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		_, err := ParseFeatureHeader(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

		var h FeatureHeader
		require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidHeaderSize)
	})

	t.Run("magic", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[1] = 0xEA
		_, err := ParseFeatureHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("reserved bits", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[0] |= 0x04
		_, err := ParseFeatureHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("compression", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[2] = 0x97
		_, err := ParseFeatureHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("channels", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[3] = 3
		_, err := ParseFeatureHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}

func TestFeatureFlag_Compression(t *testing.T) {
	f := NewFeatureFlag()
	for _, idx := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		for _, val := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
			f.SetIndexCompression(idx)
			f.SetValueCompression(val)
			require.Equal(t, idx, f.IndexCompression())
			require.Equal(t, val, f.ValueCompression())
			require.NoError(t, f.Validate())
		}
	}

	f.SetIndexCompression(format.CompressionType(0))
	require.ErrorIs(t, f.Validate(), errs.ErrInvalidHeaderFlags)
}
