package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeValidLSD(data uint8) []byte {
	bits16 := make([]byte, 16)
	byteToBits8(data, bits16[0:8])
	byteToBits8(lsdParity(data), bits16[8:16])
	return bits16
}

func TestP25LSDDecodeNoError(t *testing.T) {
	bits := makeValidLSD(0x5A)
	result := P25LSDDecode(bits)
	assert.Equal(t, LSDOK, result)
	assert.Equal(t, uint8(0x5A), bits8ToByte(bits[0:8]))
}

func TestP25LSDDecodeSingleDataBitError(t *testing.T) {
	for pos := 0; pos < 8; pos++ {
		bits := makeValidLSD(0x3C)
		bits[pos] ^= 1
		result := P25LSDDecode(bits)
		require.Equal(t, LSDOK, result, "pos=%d", pos)
		assert.Equal(t, uint8(0x3C), bits8ToByte(bits[0:8]), "pos=%d", pos)
	}
}

func TestP25LSDDecodeSingleParityBitError(t *testing.T) {
	for pos := 0; pos < 8; pos++ {
		bits := makeValidLSD(0x11)
		bits[8+pos] ^= 1
		result := P25LSDDecode(bits)
		require.Equal(t, LSDOK, result, "pos=%d", pos)
		assert.Equal(t, uint8(0x11), bits8ToByte(bits[0:8]), "pos=%d", pos)
	}
}
