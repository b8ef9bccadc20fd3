package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDCBlockComplexRemovesOffset(t *testing.T) {
	d := NewDCBlockComplex(0.1)
	in := make([]Complex64F, 200)
	for i := range in {
		in[i] = Complex64F{I: 5, Q: -5}
	}
	out := make([]Complex64F, 200)
	d.Process(in, out)
	for _, v := range out[len(out)-4:] {
		assert.InDelta(t, 0, v.I, 0.5)
		assert.InDelta(t, 0, v.Q, 0.5)
	}
}

func TestDCBlockRealRemovesOffset(t *testing.T) {
	d := NewDCBlockReal(0.1)
	in := make([]float32, 200)
	for i := range in {
		in[i] = 3
	}
	out := make([]float32, 200)
	d.Process(in, out)
	for _, v := range out[len(out)-4:] {
		assert.InDelta(t, 0, v, 0.5)
	}
}

func TestIQBalanceStartsDisengaged(t *testing.T) {
	b := NewIQBalance(0.3)
	assert.False(t, b.Engaged)
	assert.Equal(t, float32(1), b.gainQ)
}

func TestIQBalanceEngagesOnSustainedImpropriety(t *testing.T) {
	b := NewIQBalance(0.1)
	in := make([]Complex64F, 500)
	for i := range in {
		in[i] = Complex64F{I: 1, Q: 0}
	}
	out := make([]Complex64F, 500)
	b.Process(in, out)
	assert.True(t, b.Engaged)
}

func TestFMAGCGainDecaysTowardTargetOnLoudInput(t *testing.T) {
	a := NewFMAGC(1 << 12)
	in := make([]int32, 2000)
	for i := range in {
		in[i] = 1 << 15
	}
	out := make([]int32, 2000)
	startGain := a.GainQ15
	a.Process(in, out)
	assert.Less(t, a.GainQ15, startGain)
}

func TestPowerSquelchOpensAboveThreshold(t *testing.T) {
	sq := PowerSquelch{Threshold: 0.1}
	in := make([]float32, 16)
	for i := range in {
		in[i] = 1.0
	}
	out := make([]float32, 16)
	open := sq.Process(in, out)
	assert.True(t, open)
	assert.Equal(t, in, out)
}

func TestPowerSquelchClosesBelowThresholdZerosOutput(t *testing.T) {
	sq := PowerSquelch{Threshold: 0.5}
	in := make([]float32, 16)
	for i := range in {
		in[i] = 0.01
	}
	out := make([]float32, 16)
	for i := range out {
		out[i] = 9
	}
	open := sq.Process(in, out)
	assert.False(t, open)
	for _, v := range out {
		assert.Zero(t, v)
	}
}
