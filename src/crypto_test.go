package dsdneo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESKeystreamXORRoundTrip(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}
	payload := []byte("P25 encrypted IMBE payload!")

	cipherText, err := AESKeystreamXOR(key, iv, payload, AESModeOFB)
	require.NoError(t, err)
	plainAgain, err := AESKeystreamXOR(key, iv, cipherText, AESModeOFB)
	require.NoError(t, err)
	assert.Equal(t, payload, plainAgain)
}

func TestDESKeystreamXORRoundTrip(t *testing.T) {
	key := make([]byte, 8)
	iv := make([]byte, 8)
	for i := range key {
		key[i] = byte(i + 1)
	}
	payload := []byte("DES OFB")

	cipherText, err := DESKeystreamXOR(key, iv, payload)
	require.NoError(t, err)
	plainAgain, err := DESKeystreamXOR(key, iv, cipherText)
	require.NoError(t, err)
	assert.Equal(t, payload, plainAgain)
}

func TestRC4KeystreamXORRoundTrip(t *testing.T) {
	key := []byte("vendor-privacy-key")
	payload := []byte("IMBE voice frame bits")

	cipherText, err := RC4KeystreamXOR(key, payload)
	require.NoError(t, err)
	plainAgain, err := RC4KeystreamXOR(key, cipherText)
	require.NoError(t, err)
	assert.Equal(t, payload, plainAgain)
}

func TestVendorLFSRXOR49Involutive(t *testing.T) {
	frame := make([]byte, 49)
	for i := range frame {
		frame[i] = byte(i % 2)
	}
	l1 := NewVendorLFSR(16, 0xB400, 0xACE1)
	scrambled := l1.XOR49(frame)

	l2 := NewVendorLFSR(16, 0xB400, 0xACE1)
	recovered := l2.XOR49(scrambled)
	assert.Equal(t, frame, recovered)
}
