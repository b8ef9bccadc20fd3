package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCqpskEqResetAllIdentity(t *testing.T) {
	cfg := DefaultCqpskEqConfig()
	eq := NewCqpskEqState(cfg)
	eq.ResetAll()
	assert.False(t, eq.WLEngaged())
	assert.Empty(t, eq.SymbolRing())
}

func TestCqpskEqSymbolRingBounded(t *testing.T) {
	cfg := DefaultCqpskEqConfig()
	cfg.CMAWarmupSamples = 0
	eq := NewCqpskEqState(cfg)
	for i := 0; i < CqpskEqSymMax*4; i++ {
		eq.Process(Complex64F{I: 0.7071068, Q: 0.7071068})
	}
	require.LessOrEqual(t, len(eq.SymbolRing()), CqpskEqSymMax)
}

func TestCqpskEqBoundedOutput(t *testing.T) {
	cfg := DefaultCqpskEqConfig()
	eq := NewCqpskEqState(cfg)
	for i := 0; i < 200; i++ {
		y := eq.Process(Complex64F{I: 0.7071068, Q: -0.7071068})
		assert.LessOrEqual(t, y.Abs2(), cfg.MaxAbs*cfg.MaxAbs*2+1)
	}
}

func TestCqpskEqResetWLClearsEngagement(t *testing.T) {
	cfg := DefaultCqpskEqConfig()
	eq := NewCqpskEqState(cfg)
	eq.wlEngaged = true
	eq.ResetWL()
	assert.False(t, eq.WLEngaged())
}
