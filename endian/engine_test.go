package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, CheckEndianness())
		require.False(t, IsNativeLittleEndian())
	case 0x02:
		require.Equal(t, binary.LittleEndian, CheckEndianness())
		require.True(t, IsNativeLittleEndian())
	default:
		require.Failf(t, "unexpected byte value", "got: %v", first)
	}

	require.True(t, CompareNativeEndian(CheckEndianness()))
}

func TestSelect(t *testing.T) {
	require.Equal(t, GetBigEndianEngine(), Select(true))
	require.Equal(t, GetLittleEndianEngine(), Select(false))
	require.True(t, IsBigEndian(Select(true)))
	require.False(t, IsBigEndian(Select(false)))
}

func TestEngines_AppendAndRead(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := engine.AppendUint64(nil, 0x0102030405060708)
		buf = engine.AppendUint32(buf, 0x0a0b0c0d)
		require.Len(t, buf, 12)
		require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf))
		require.Equal(t, uint32(0x0a0b0c0d), engine.Uint32(buf[8:]))
	}

	require.Equal(t, byte(0x08), GetLittleEndianEngine().AppendUint64(nil, 0x0102030405060708)[0])
	require.Equal(t, byte(0x01), GetBigEndianEngine().AppendUint64(nil, 0x0102030405060708)[0])
}
