package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampBounds(t *testing.T) {
	assert.Equal(t, 0, clamp(-5, 0, 10))
	assert.Equal(t, 10, clamp(15, 0, 10))
	assert.Equal(t, 5, clamp(5, 0, 10))
}

func TestAbsInt(t *testing.T) {
	assert.Equal(t, 5, absInt(-5))
	assert.Equal(t, 5, absInt(5))
}

func TestMinMaxInt(t *testing.T) {
	assert.Equal(t, 2, minInt(2, 7))
	assert.Equal(t, 7, maxInt(2, 7))
}

func TestComplex64FArithmetic(t *testing.T) {
	a := Complex64F{I: 1, Q: 2}
	b := Complex64F{I: 3, Q: -1}
	assert.Equal(t, Complex64F{I: 4, Q: 1}, a.Add(b))
	assert.Equal(t, Complex64F{I: -2, Q: 3}, a.Sub(b))
	assert.Equal(t, Complex64F{I: 5, Q: 5}, a.Mul(b))
	assert.Equal(t, Complex64F{I: 2, Q: 4}, a.Scale(2))
	assert.Equal(t, Complex64F{I: 1, Q: -2}, a.Conj())
	assert.Equal(t, float32(5), a.Abs2())
}
