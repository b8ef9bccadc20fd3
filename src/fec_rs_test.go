package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSDecodeZeroCodewordNoErrors(t *testing.T) {
	recv := make([]int, P25RS2416.N)
	n := RSDecode(P25RS2416, recv)
	assert.Equal(t, 0, n)
}

func TestRSDecodeCorrectsSingleSymbolError(t *testing.T) {
	recv := make([]int, P25RS2416.N)
	recv[5] = 17 // single nonzero symbol in an otherwise all-zero (valid) codeword
	n := RSDecode(P25RS2416, recv)
	require.Equal(t, 1, n)
	assert.Equal(t, 0, recv[5])
}

func TestRSDecodeShortReceivedIsUncorrectable(t *testing.T) {
	recv := make([]int, 3)
	n := RSDecode(P25RS2416, recv)
	assert.Equal(t, -1, n)
}
