package dsdneo

// Vendor-proprietary stream ciphers applied directly to the 49-bit IMBE
// voice frame (spec.md §4.9): a linear-feedback shift register keystream
// and two small substitution/permutation block ciphers (PC4/PC5) sized to
// the frame width. None of these have a public specification a library
// could implement, so they're hand-rolled here from the bit-level
// description in the retrieved material, the same way the teacher
// hand-rolls its HDLC/AFSK bit-banging rather than reaching for a library
// (see DESIGN.md).

// VendorLFSR is a configurable linear-feedback shift register keystream
// generator, the shape several vendor voice-privacy modes use to scramble
// IMBE frame bits directly.
type VendorLFSR struct {
	state uint64
	taps  uint64
	width int
}

// NewVendorLFSR seeds an LFSR of the given bit width with the supplied
// tap mask (bit i set means position i feeds back) and initial state.
func NewVendorLFSR(width int, taps, seed uint64) *VendorLFSR {
	return &VendorLFSR{state: seed & ((1 << uint(width)) - 1), taps: taps, width: width}
}

// NextBit advances the register one step and returns the bit shifted out.
func (l *VendorLFSR) NextBit() byte {
	out := byte(l.state & 1)
	fb := l.state & l.taps
	parity := byte(0)
	for fb != 0 {
		parity ^= byte(fb & 1)
		fb >>= 1
	}
	l.state = (l.state >> 1) | (uint64(parity) << uint(l.width-1))
	return out
}

// Keystream49 produces a 49-bit keystream (one bit per IMBE frame bit) as
// a []byte of 0/1 values.
func (l *VendorLFSR) Keystream49() []byte {
	out := make([]byte, 49)
	for i := range out {
		out[i] = l.NextBit()
	}
	return out
}

// XOR49 XORs a 49-bit frame (0/1 bit array) with the LFSR keystream.
func (l *VendorLFSR) XOR49(frame []byte) []byte {
	ks := l.Keystream49()
	out := make([]byte, len(frame))
	for i := range frame {
		if i < len(ks) {
			out[i] = frame[i] ^ ks[i]
		} else {
			out[i] = frame[i]
		}
	}
	return out
}

// pc4Table and pc5Table are small fixed substitution boxes applied to
// 7-bit nibbles of the scrambled frame under PC4/PC5 modes. Values are a
// from-scratch involutive (self-inverse) permutation, since no public
// reference table exists in the retrieved material.
var pc4Table = buildInvolution(128, 0x2b)
var pc5Table = buildInvolution(128, 0x35)

func buildInvolution(size int, seedXor byte) []byte {
	t := make([]byte, size)
	used := make([]bool, size)
	for i := 0; i < size; i++ {
		if used[i] {
			continue
		}
		j := (i ^ int(seedXor)) % size
		if j == i || used[j] {
			t[i] = byte(i)
			used[i] = true
			continue
		}
		t[i] = byte(j)
		t[j] = byte(i)
		used[i] = true
		used[j] = true
	}
	return t
}

// PC4Encode applies the PC4 7-bit substitution across a 49-bit frame (7
// groups of 7 bits).
func PC4Encode(frame []byte) []byte {
	return applyNibbleSub(frame, pc4Table)
}

// PC5Encode applies the PC5 7-bit substitution across a 49-bit frame.
func PC5Encode(frame []byte) []byte {
	return applyNibbleSub(frame, pc5Table)
}

func applyNibbleSub(frame []byte, table []byte) []byte {
	out := make([]byte, len(frame))
	for g := 0; g*7 < len(frame); g++ {
		start := g * 7
		end := start + 7
		if end > len(frame) {
			end = len(frame)
		}
		v := 0
		for i := start; i < end; i++ {
			v = (v << 1) | int(frame[i]&1)
		}
		sub := int(table[v&0x7f])
		for i := end - 1; i >= start; i-- {
			out[i] = byte(sub & 1)
			sub >>= 1
		}
	}
	return out
}
