package dsdneo

import (
	"crypto/aes"
	"crypto/cipher"
)

// P25/DMR AES keystream wrapping (spec.md §4.9): these protocols XOR a
// block-cipher-derived keystream over the vocoder payload rather than
// using a standard authenticated mode, so OFB (and the CTR/CFB variants
// some vendors use) is produced directly from stdlib crypto/aes — no pack
// library implements raw AES block primitives, so the standard library is
// the correct tool here, not a gap (see DESIGN.md).

// AESKeystreamMode selects the block-chaining mode used to derive the
// per-frame keystream from an AES key and IV.
type AESKeystreamMode int

const (
	AESModeOFB AESKeystreamMode = iota
	AESModeCFB
	AESModeCTR
)

// AESKeystream derives n bytes of keystream for the given key (16/24/32
// bytes selects AES-128/192/256), IV (16 bytes), and mode.
func AESKeystream(key, iv []byte, mode AESKeystreamMode, n int) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	var stream cipher.Stream
	switch mode {
	case AESModeCFB:
		stream = cipher.NewCFBEncrypter(block, iv)
	case AESModeCTR:
		stream = cipher.NewCTR(block, iv)
	default:
		stream = cipher.NewOFB(block, iv)
	}
	ks := make([]byte, n)
	stream.XORKeyStream(ks, ks)
	return ks, nil
}

// AESKeystreamXOR XORs dst (payload) with n bytes of derived keystream in
// place, returning the result.
func AESKeystreamXOR(key, iv, payload []byte, mode AESKeystreamMode) ([]byte, error) {
	ks, err := AESKeystream(key, iv, mode, len(payload))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(payload))
	for i := range payload {
		out[i] = payload[i] ^ ks[i]
	}
	return out, nil
}
