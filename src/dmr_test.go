package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDMRSyncPatternsAre24Dibits(t *testing.T) {
	for _, p := range []string{DMRBSSourcedVoiceSync, DMRBSSourcedDataSync, DMRMSSourcedVoiceSync, DMRMSSourcedDataSync} {
		assert.Len(t, p, 24)
	}
}

func TestAMBEDeinterleaveSlotsDistinct(t *testing.T) {
	in := make([]byte, 72)
	for i := range in {
		in[i] = byte(i)
	}
	a := AMBEDeinterleave(in, 0)
	b := AMBEDeinterleave(in, 1)
	assert.Len(t, a, 72)
	assert.Len(t, b, 72)
	assert.NotEqual(t, a, b)
}

func TestDMRTrunkStateEmbedsTrunkSM(t *testing.T) {
	d := NewDMRTrunkState(3, 10)
	assert.Equal(t, 3, d.ColorCode)
	assert.Equal(t, TrunkOnCC, d.State)
}

func TestDMRDecoderMatchesBSVoiceAndDataSyncOnly(t *testing.T) {
	dec := NewDMRDecoder(nil, nil, nil)
	assert.True(t, dec.Matches(SyncDMRBSVoicePlus))
	assert.True(t, dec.Matches(SyncDMRBSDataMinus))
	assert.False(t, dec.Matches(SyncNXDNPlus))
}

func TestDMRDecoderColorCodeMismatchIsReportedNotFatal(t *testing.T) {
	trunk := NewDMRTrunkState(3, 5)
	events := NewEventRing(8)
	dec := NewDMRDecoder(trunk, nil, events)

	dibits := make([]byte, 2+24) // cc field both zero -> cc=0, want 3
	err := dec.Handle(dibits, nil)

	require.NoError(t, err)
	assert.Len(t, events.Recent(), 1)
}

func TestDMRDecoderVoiceBurstPushesAudioAndMarksActivity(t *testing.T) {
	trunk := NewDMRTrunkState(0, 5)
	ring := NewAudioSlotRing()
	dec := NewDMRDecoder(trunk, ring, nil)

	dibits := make([]byte, 2+24)
	err := dec.Handle(dibits, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, ring.Len())
	assert.True(t, trunk.Slots[0].Active)
}

func TestDMRDecoderSignallingBurstDecodesBPTC(t *testing.T) {
	trunk := NewDMRTrunkState(0, 5)
	events := NewEventRing(8)
	dec := NewDMRDecoder(trunk, nil, events)

	dibits := make([]byte, 2+98) // all-zero is a valid (trivial) BPTC codeword
	err := dec.Handle(dibits, nil)

	require.NoError(t, err)
	recent := events.Recent()
	require.Len(t, recent, 1)
}

func TestDMRDecoderShortBurstRejected(t *testing.T) {
	dec := NewDMRDecoder(nil, nil, nil)
	err := dec.Handle([]byte{1}, nil)
	assert.Error(t, err)
}
