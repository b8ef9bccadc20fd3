package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalfbandDesignSymmetric(t *testing.T) {
	taps := HalfbandDesign(15)
	center := len(taps) / 2
	for k := 1; k <= center; k++ {
		assert.Equal(t, taps[center-k], taps[center+k])
	}
	assert.Equal(t, float32(0.5), taps[center])
}

func TestHalfbandDesignZeroTapSkip(t *testing.T) {
	taps := HalfbandDesign(15)
	center := len(taps) / 2
	for k := 2; k <= center; k += 2 {
		assert.Zero(t, taps[center-k])
		assert.Zero(t, taps[center+k])
	}
}

func TestHalfbandRealPassesDC(t *testing.T) {
	taps := HalfbandDesign(15)
	hb := NewHalfbandReal(taps)
	in := make([]float32, 64)
	for i := range in {
		in[i] = 1.0
	}
	out := make([]float32, 32)
	produced := hb.Process(in, out)
	// Feed a second block so transient history settles, then check DC gain.
	produced = hb.Process(in, out)
	for _, v := range produced[len(produced)-4:] {
		assert.InDelta(t, 1.0, v, 0.1)
	}
}

func TestHalfbandComplexIndependentRails(t *testing.T) {
	taps := HalfbandDesign(15)
	hb := NewHalfbandComplex(taps)
	in := make([]Complex64F, 32)
	for i := range in {
		in[i] = Complex64F{I: 1, Q: -1}
	}
	out := make([]Complex64F, 16)
	hb.Process(in, out)
	produced := hb.Process(in, out)
	for _, v := range produced {
		assert.InDelta(t, 1.0, v.I, 0.2)
		assert.InDelta(t, -1.0, v.Q, 0.2)
	}
}
