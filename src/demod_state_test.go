package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDemodStateWiresOnlyEnabledStages(t *testing.T) {
	cfg := DemodConfig{Mode: ModeFM, HalfbandStages: 2, UseDCBlock: true, UseAGC: true}
	d := NewDemodState(cfg)
	assert.Len(t, d.halfbands, 2)
	assert.NotNil(t, d.dcBlockIQ)
	assert.NotNil(t, d.agc)
	assert.Nil(t, d.eq)
	assert.Nil(t, d.ted)
}

func TestProcessBlockFMProducesAudioSamples(t *testing.T) {
	cfg := DemodConfig{Mode: ModeFM, SquelchThreshold: 0}
	d := NewDemodState(cfg)
	in := make([]Complex64F, 64)
	for i := range in {
		in[i] = Complex64F{I: 1, Q: float32(i%4) - 1.5}
	}
	out := make([]float32, 64)
	produced, _ := d.ProcessBlockFM(in, out)
	assert.Len(t, produced, 64)
}

func TestProcessBlockPSKAppliesIndependentIQMatchedFilterHistory(t *testing.T) {
	cfg := DemodConfig{Mode: ModeQPSKDifferential, UseMatched: true}
	d := NewDemodState(cfg)
	in1 := make([]Complex64F, 8)
	for i := range in1 {
		in1[i] = Complex64F{I: 1, Q: 0}
	}
	out := make([]Complex64F, 8)
	d.ProcessBlockPSK(in1, out)

	in2 := make([]Complex64F, 8)
	for i := range in2 {
		in2[i] = Complex64F{I: 0, Q: 1}
	}
	produced := d.ProcessBlockPSK(in2, out)
	require.Len(t, produced, 8)
	// Each rail keeps its own filter history from the first (I=1,Q=0) block
	// into the second (I=0,Q=1) block: independent filter state, so the two
	// rails should not read as identical.
	assert.NotEqual(t, produced[0].I, produced[0].Q)
}

func TestCqpskStateExposedWhenEnabled(t *testing.T) {
	cfg := DemodConfig{Mode: ModeQPSKDifferential, UseCQPSK: true}
	d := NewDemodState(cfg)
	require.NotNil(t, d.CqpskState())
}
