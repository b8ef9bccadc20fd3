package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRCAppendProperty(t *testing.T) {
	msg := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1}

	cases := []struct {
		name  string
		width int
		fn    func([]byte) uint32
	}{
		{"CRC3", 3, CRC3},
		{"CRC4", 4, CRC4},
		{"CRC7", 7, CRC7},
		{"CRC8", 8, CRC8},
		{"CRC9", 9, CRC9},
		{"CRC12", 12, CRC12},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.True(t, CRCAppendOK(msg, c.width, c.fn, 0))
		})
	}
}

func TestCRC16CCITTAppendProperty(t *testing.T) {
	msg := []byte{1, 1, 0, 0, 1, 0, 1, 0, 1, 0, 1, 1}
	fn := func(b []byte) uint32 { return CRC16CCITT(b, false) }
	assert.True(t, CRCAppendOK(msg, 16, fn, 0))
}

func TestCRC8DistinctForSingleBitErrors(t *testing.T) {
	// The P25 LSD syndrome scheme in fec_lsd.go needs CRC8's 8 column
	// values (f(2^j)) to be pairwise distinct and nonzero.
	seen := make(map[uint32]bool)
	for j := 0; j < 8; j++ {
		bits := make([]byte, 8)
		bits[j] = 1
		v := CRC8(bits)
		assert.NotZero(t, v)
		assert.False(t, seen[v], "collision at bit %d", j)
		seen[v] = true
	}
}
