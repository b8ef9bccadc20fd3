package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameSyncSearcherExactMatch(t *testing.T) {
	templates := []SyncTemplate{
		{PatternNorm: "333333333333333333333333", PatternInv: "111111111111111111111111", Threshold: 2, TypeNorm: SyncP25P1Plus, TypeInv: SyncP25P1Minus},
	}
	searcher := NewFrameSyncSearcher(templates)
	dibits := []byte{3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3}
	result, ok := searcher.Feed(dibits)
	assert.True(t, ok)
	assert.Equal(t, SyncP25P1Plus, result.Type)
	assert.Zero(t, result.Distance)
}

func TestFrameSyncSearcherRejectsBeyondThreshold(t *testing.T) {
	templates := []SyncTemplate{
		{PatternNorm: "333333333333333333333333", PatternInv: "111111111111111111111111", Threshold: 1, TypeNorm: SyncP25P1Plus, TypeInv: SyncP25P1Minus},
	}
	searcher := NewFrameSyncSearcher(templates)
	dibits := []byte{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3}
	_, ok := searcher.Feed(dibits)
	assert.False(t, ok)
}

func TestModDetectHysteresis(t *testing.T) {
	md := NewModDetect()
	assert.Equal(t, "", md.Observe("c4fm", 3))
	assert.Equal(t, "", md.Observe("c4fm", 3))
	assert.Equal(t, "c4fm", md.Observe("c4fm", 3))
}

func TestModDetectReset(t *testing.T) {
	md := NewModDetect()
	md.Observe("qpsk", 1)
	md.Reset()
	assert.Equal(t, "", md.Observe("", 100))
}

func TestDefaultSyncTemplatesOneEntryPerProtocolPolaritySupportsAllSyncTypes(t *testing.T) {
	templates := DefaultSyncTemplates()
	covered := make(map[SyncType]bool)
	for _, tpl := range templates {
		assert.Len(t, tpl.PatternNorm, 24)
		assert.Len(t, tpl.PatternInv, 24)
		covered[tpl.TypeNorm] = true
		covered[tpl.TypeInv] = true
	}
	for _, want := range []SyncType{
		SyncP25P1Plus, SyncP25P2Plus, SyncDMRBSVoicePlus, SyncDMRBSDataPlus,
		SyncM17LSFPlus, SyncNXDNPlus, SyncYSFPlus, SyncDPMRFS1Plus,
		SyncProVoiceEDACSPlus,
	} {
		assert.True(t, covered[want], "missing template for %v", want)
	}
}

func TestDefaultSyncTemplatesFeedMatchesOwnPattern(t *testing.T) {
	searcher := NewFrameSyncSearcher(DefaultSyncTemplates())
	dibits := make([]byte, 24)
	for i, c := range "333333333333333333333333" {
		dibits[i] = byte(c - '0')
	}
	result, ok := searcher.Feed(dibits)
	assert.True(t, ok)
	assert.Equal(t, SyncP25P1Plus, result.Type)
}
