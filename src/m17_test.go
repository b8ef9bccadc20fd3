package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase40DecodeRoundTrip(t *testing.T) {
	// Encode "W1ABC" by hand using the same alphabet/radix convention as
	// base40Decode, then confirm we recover it.
	callsign := "W1ABC"
	var addr uint64
	for i := 0; i < len(callsign); i++ {
		idx := indexInAlphabet(callsign[i])
		addr = addr*40 + uint64(idx)
	}
	assert.Equal(t, callsign, base40Decode(addr))
}

func indexInAlphabet(c byte) int {
	for i := 0; i < len(m17Base40Alphabet); i++ {
		if m17Base40Alphabet[i] == c {
			return i
		}
	}
	return 0
}

func TestParseM17LSFFieldOffsets(t *testing.T) {
	raw := make([]byte, 30)
	raw[12] = 0x00
	raw[13] = 0x05 // TYPE = 5
	raw[14] = 0xAB // META[0]
	raw[28] = 0x12
	raw[29] = 0x34

	lsf, ok := ParseM17LSF(raw)
	assert.True(t, ok)
	assert.Equal(t, uint16(5), lsf.Type)
	assert.Equal(t, byte(0xAB), lsf.Meta[0])
	assert.Equal(t, uint16(0x1234), lsf.CRC)
}

func TestM17PacketProtocolName(t *testing.T) {
	assert.Equal(t, "SMS", M17PacketProtocolName(0x01))
	assert.Equal(t, "Unknown", M17PacketProtocolName(0xEE))
}
