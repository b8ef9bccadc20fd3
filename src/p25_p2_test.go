package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMacLengthBaseTableLookup(t *testing.T) {
	n, ok := MacLength(0x01, 0x40) // GRP_V_CH_GRANT
	assert.True(t, ok)
	assert.Equal(t, 9, n)

	n, ok = MacLength(0x01, 0x48) // UU_V_CH_GRANT
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	n, ok = MacLength(0x01, 0x71) // AUTH_DEMAND
	assert.True(t, ok)
	assert.Equal(t, 29, n)

	n, ok = MacLength(0x01, 0xF1) // AUTH_DEMAND_EXT
	assert.True(t, ok)
	assert.Equal(t, 29, n)
}

func TestMacLengthVendorOverrides(t *testing.T) {
	n, ok := MacLength(0x90, 0x91) // Motorola
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	n, ok = MacLength(0x90, 0x95) // Motorola
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	n, ok = MacLength(0xB0, 0x12) // Harris generic
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	n, ok = MacLength(0xB5, 0x34) // Tait generic
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = MacLength(0x81, 0x20) // Harris extra
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = MacLength(0x8F, 0x20) // Harris extra
	assert.True(t, ok)
	assert.Equal(t, 7, n)
}

func TestMacLengthUnknownOpcodeNoVendorMatch(t *testing.T) {
	_, ok := MacLength(0x00, 0x06)
	assert.False(t, ok)
}

func TestFACCHSACCHESSDecodeNoErrors(t *testing.T) {
	facch := make([]int, P25RSFACCH.N)
	assert.Equal(t, 0, FACCHDecode(facch))

	sacch := make([]int, P25RSSACCH.N)
	assert.Equal(t, 0, SACCHDecode(sacch))

	ess := make([]int, P25RSESS.N)
	assert.Equal(t, 0, ESSDecode(ess))
}

// uintToDibits packs v's low nDibits*2 bits, MSB first, into dibit values.
func uintToDibits(v uint32, nDibits int) []byte {
	out := make([]byte, nDibits)
	for i := nDibits - 1; i >= 0; i-- {
		out[i] = byte(v & 0x3)
		v >>= 2
	}
	return out
}

func macPDU(vendor, opcode uint8, channel, tgOrUnit uint32) []byte {
	dibits := append([]byte{}, uintToDibits(uint32(vendor), 4)...)
	dibits = append(dibits, uintToDibits(uint32(opcode), 4)...)
	dibits = append(dibits, uintToDibits(channel, 8)...)
	dibits = append(dibits, uintToDibits(tgOrUnit, 8)...)
	return dibits
}

func TestP25P2DecoderGroupGrantTunesTrunk(t *testing.T) {
	trunk := NewTrunkSM(5)
	events := NewEventRing(8)
	dec := NewP25P2Decoder(trunk, events)

	err := dec.Handle(macPDU(0x01, uint8(macOpcodeGroupVoiceGrant), 4, 99), nil)

	require.NoError(t, err)
	assert.Equal(t, TrunkTuned, trunk.State)
	assert.Equal(t, uint64(851_000_000+4*12_500), trunk.CurrentFreq)
	assert.Len(t, events.Recent(), 1)
}

func TestP25P2DecoderIndivGrantTunesTrunk(t *testing.T) {
	trunk := NewTrunkSM(5)
	dec := NewP25P2Decoder(trunk, nil)

	err := dec.Handle(macPDU(0x01, uint8(macOpcodeIndivVoiceGrant), 10, 5555), nil)

	require.NoError(t, err)
	assert.Equal(t, TrunkTuned, trunk.State)
	assert.Equal(t, uint64(851_000_000+10*12_500), trunk.CurrentFreq)
}

func TestP25P2DecoderOtherOpcodeRecordsMacActivity(t *testing.T) {
	trunk := NewTrunkSM(5)
	dec := NewP25P2Decoder(trunk, nil)

	err := dec.Handle(macPDU(0x01, 0x01, 0, 0), nil) // GRP_V_CH_USER, not a grant
	require.NoError(t, err)
	assert.True(t, trunk.Slots[0].Active)
}

func TestP25P2DecoderUnknownOpcodeNoVendorMatchIsIgnored(t *testing.T) {
	dec := NewP25P2Decoder(nil, nil)
	err := dec.Handle(macPDU(0x00, 0x06, 0, 0), nil)
	assert.NoError(t, err)
}
