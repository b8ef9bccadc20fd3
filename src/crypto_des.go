package dsdneo

import (
	"crypto/cipher"
	"crypto/des"
)

// DES/3DES keystream mode for legacy P25 DES-OFB, the same rationale as
// crypto_aes.go: stdlib crypto/des supplies the block primitive, the
// protocol-specific OFB keystream wrapping is the only code this file
// adds.

// DESKeystream derives n bytes of OFB keystream from an 8-byte DES key (or
// a 24-byte 3DES key via NewTripleDESCipher) and an 8-byte IV.
func DESKeystream(key, iv []byte, n int) ([]byte, error) {
	var block cipher.Block
	var err error
	if len(key) == 24 {
		block, err = des.NewTripleDESCipher(key)
	} else {
		block, err = des.NewCipher(key)
	}
	if err != nil {
		return nil, err
	}
	stream := cipher.NewOFB(block, iv)
	ks := make([]byte, n)
	stream.XORKeyStream(ks, ks)
	return ks, nil
}

// DESKeystreamXOR XORs payload with derived DES/3DES-OFB keystream.
func DESKeystreamXOR(key, iv, payload []byte) ([]byte, error) {
	ks, err := DESKeystream(key, iv, len(payload))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(payload))
	for i := range payload {
		out[i] = payload[i] ^ ks[i]
	}
	return out, nil
}
