package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherInvokesFirstMatchingHandler(t *testing.T) {
	nxdn := NewNXDNDecoder(nil, nil)
	ysf := NewYSFDecoder(nil, nil)
	d := NewDispatcher(nxdn, ysf)

	handled, err := d.Dispatch(FrameSyncResult{Type: SyncYSFPlus}, []byte{0, 1}, nil)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 1, ysf.frames)
	assert.Equal(t, 0, nxdn.frames)
}

func TestDispatcherReturnsFalseForUnclaimedSyncType(t *testing.T) {
	d := NewDispatcher(NewNXDNDecoder(nil, nil))
	handled, err := d.Dispatch(FrameSyncResult{Type: SyncProVoiceEDACSPlus}, nil, nil)
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestDefaultDecoderHandlesCoversEveryProtocolFamily(t *testing.T) {
	trunk := NewTrunkSM(5)
	mixer := NewStereoMixer()
	events := NewEventRing(8)
	handlers := DefaultDecoderHandles(trunk, mixer, events, 3)
	d := NewDispatcher(handlers...)

	cases := []struct {
		st     SyncType
		dibits []byte
	}{
		{SyncP25P1Plus, nidDibits(p25DUIDLDU1)},
		{SyncP25P2Plus, macPDU(0x00, 0x06, 0, 0)},
		{SyncDMRBSVoicePlus, make([]byte, 2)},
		{SyncNXDNPlus, make([]byte, 2)},
		{SyncYSFPlus, make([]byte, 2)},
		{SyncDPMRFS1Plus, make([]byte, 2)},
		{SyncProVoiceEDACSPlus, make([]byte, 2)},
	}
	for _, c := range cases {
		handled, err := d.Dispatch(FrameSyncResult{Type: c.st}, c.dibits, nil)
		assert.NoError(t, err, "sync type %v", c.st)
		assert.True(t, handled, "no handler claimed %v", c.st)
	}
}

func TestDispatcherResetAllResetsEveryHandler(t *testing.T) {
	nxdn := NewNXDNDecoder(nil, nil)
	ysf := NewYSFDecoder(nil, nil)
	d := NewDispatcher(nxdn, ysf)
	d.Dispatch(FrameSyncResult{Type: SyncNXDNPlus}, []byte{0, 0}, nil)
	d.Dispatch(FrameSyncResult{Type: SyncYSFPlus}, []byte{0, 0}, nil)
	require.Equal(t, 1, nxdn.frames)
	require.Equal(t, 1, ysf.frames)

	d.ResetAll()
	assert.Equal(t, 0, nxdn.frames)
	assert.Equal(t, 0, ysf.frames)
}
