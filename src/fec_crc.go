package dsdneo

// Bit-level CRC helpers for the short cyclic checks used across the
// protocol decoders (spec.md §4.8). All operate MSB-first on a []byte of
// 0/1 values and satisfy the append-property CRC(msg||CRC(msg)) == 0 (or
// the documented inverted constant).

// crcBits computes a generic bit-serial CRC of the given polynomial width,
// polynomial bits (MSB-first, implicit leading 1), and initial register
// value, over a 0/1 bit array.
func crcBits(bits []byte, width int, poly uint32, init uint32) uint32 {
	reg := init
	topBit := uint32(1) << (width - 1)
	for _, b := range bits {
		inBit := uint32(b & 1)
		feedback := ((reg >> (width - 1)) & 1) ^ inBit
		reg <<= 1
		if feedback != 0 {
			reg ^= poly
		}
		reg &= (topBit << 1) - 1
	}
	return reg
}

// CRC3 computes the 3-bit CRC used by several short P25/DMR control fields.
func CRC3(bits []byte) uint32 { return crcBits(bits, 3, 0x3, 0) }

// CRC4 computes a 4-bit CRC.
func CRC4(bits []byte) uint32 { return crcBits(bits, 4, 0x3, 0) }

// CRC7 computes a 7-bit CRC.
func CRC7(bits []byte) uint32 { return crcBits(bits, 7, 0x09, 0) }

// CRC8 computes an 8-bit CRC (CRC-8-CCITT, poly 0x07) — also the linear
// parity map used by the P25 LSD(16,8) code in fec_lsd.go.
func CRC8(bits []byte) uint32 { return crcBits(bits, 8, 0x07, 0) }

// CRC9 computes a 9-bit CRC used by some P25 TSBK variants.
func CRC9(bits []byte) uint32 { return crcBits(bits, 9, 0x059, 0) }

// CRC12 computes a 12-bit CRC used by DMR CSBK/MAC fields.
func CRC12(bits []byte) uint32 { return crcBits(bits, 12, 0x80F, 0) }

// CRC16CCITT computes the CCITT-CRC16 used for P25 TSBK/PDU checks.
// invert selects the inverted-register variant some frame types use.
func CRC16CCITT(bits []byte, invert bool) uint32 {
	init := uint32(0)
	if invert {
		init = 0xFFFF
	}
	v := crcBits(bits, 16, 0x1021, init)
	if invert {
		v ^= 0xFFFF
	}
	return v
}

// CRC16D computes the DMR data-header CRC-16 variant (poly 0x8005,
// bit-reflected convention folded into the generic engine via its
// polynomial form).
func CRC16D(bits []byte) uint32 { return crcBits(bits, 16, 0x8005, 0xFFFF) ^ 0xFFFF }

func bytesToBitsMSB(v uint32, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte((v >> (n - 1 - i)) & 1)
	}
	return out
}

// CRCAppendOK verifies the append-property for a generic CRC function:
// crc(msg || crc_bits(crc(msg))) == 0 (or invConst if the variant uses an
// inverted all-ones residue).
func CRCAppendOK(msg []byte, width int, crcFn func([]byte) uint32, invConst uint32) bool {
	c := crcFn(msg)
	full := append(append([]byte{}, msg...), bytesToBitsMSB(c, width)...)
	return crcFn(full) == invConst
}
