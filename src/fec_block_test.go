package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHamming1511CorrectsEverySingleBitError(t *testing.T) {
	zero := make([]byte, 15)
	for pos := 0; pos < 15; pos++ {
		corrupted := append([]byte(nil), zero...)
		corrupted[pos] ^= 1
		corrected, ok := Hamming1511(corrupted)
		require.True(t, ok, "position %d", pos)
		assert.Equal(t, make([]byte, 11), corrected, "position %d", pos)
	}
}

func TestHamming1006CorrectsEverySingleBitError(t *testing.T) {
	zero := make([]byte, 10)
	for pos := 0; pos < 10; pos++ {
		corrupted := append([]byte(nil), zero...)
		corrupted[pos] ^= 1
		corrected, ok := Hamming1006(corrupted)
		require.True(t, ok, "position %d", pos)
		assert.Equal(t, make([]byte, 6), corrected, "position %d", pos)
	}
}

func TestDMRHamming17123CorrectsEverySingleBitError(t *testing.T) {
	zero := make([]byte, 17)
	for pos := 0; pos < 17; pos++ {
		corrupted := append([]byte(nil), zero...)
		corrupted[pos] ^= 1
		corrected, ok := DMRHamming17123(corrupted)
		require.True(t, ok, "position %d", pos)
		assert.Equal(t, make([]byte, 12), corrected, "position %d", pos)
	}
}

func TestQR167CorrectsEverySingleBitError(t *testing.T) {
	zero := make([]byte, 16)
	for pos := 0; pos < 16; pos++ {
		corrupted := append([]byte(nil), zero...)
		corrupted[pos] ^= 1
		corrected, ok := QR167(corrupted)
		require.True(t, ok, "position %d", pos)
		assert.Equal(t, make([]byte, 7), corrected, "position %d", pos)
	}
}

func TestGolay2412CorrectsSingleDataBitError(t *testing.T) {
	zero := make([]byte, 24)
	for pos := 0; pos < 12; pos++ {
		corrupted := append([]byte(nil), zero...)
		corrupted[pos] ^= 1
		corrected, ok := Golay2412(corrupted)
		require.True(t, ok, "position %d", pos)
		assert.Equal(t, make([]byte, 12), corrected, "position %d", pos)
	}
}

func TestGolay2412TreatsSingleParityBitErrorAsDataUnaffected(t *testing.T) {
	zero := make([]byte, 24)
	for pos := 12; pos < 24; pos++ {
		corrupted := append([]byte(nil), zero...)
		corrupted[pos] ^= 1
		corrected, ok := Golay2412(corrupted)
		require.True(t, ok, "position %d", pos)
		assert.Equal(t, make([]byte, 12), corrected, "position %d", pos)
	}
}
