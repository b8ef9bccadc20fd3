package dsdneo

import "math"

// WidenU8ToFloat converts interleaved u8 I/Q biased at 127.5 into
// normalized float32 in [-1, 1], preserving complex-sample pairing.
func WidenU8ToFloat(src []uint8, dst []Complex64F) {
	n := minInt(len(src)/2, len(dst))
	const scale = float32(1.0 / 127.5)
	for i := 0; i < n; i++ {
		dst[i] = Complex64F{
			I: (float32(src[2*i]) - 127.5) * scale,
			Q: (float32(src[2*i+1]) - 127.5) * scale,
		}
	}
}

// Rotate90 rotates a complex stream by 90 degrees in a repeating 4-sample
// cycle (0, +j, -1, -j), used by some SDR front ends to shift a signal
// centered at Fs/4 down to baseband. phase is the running cycle index
// (0..3) and is returned updated for continuation across blocks.
func Rotate90(buf []Complex64F, phase int) int {
	for i := range buf {
		switch phase & 3 {
		case 0: // multiply by 1
		case 1: // multiply by +j
			buf[i] = Complex64F{-buf[i].Q, buf[i].I}
		case 2: // multiply by -1
			buf[i] = Complex64F{-buf[i].I, -buf[i].Q}
		case 3: // multiply by -j
			buf[i] = Complex64F{buf[i].Q, -buf[i].I}
		}
		phase++
	}
	return phase & 3
}

// Q14 is the fixed-point scale used by the fast atan2 approximation and
// the FM/QPSK discriminators: pi maps to 1<<14.
const Q14 = 1 << 14

// FastAtan2Q14 is a piecewise-linear approximation of atan2(y, x) scaled so
// that +-pi maps to +-Q14. Max error is about 192 units versus the double
// reference, per spec.md §4.2.
func FastAtan2Q14(y, x float32) int32 {
	if x == 0 && y == 0 {
		return 0
	}
	absY := y
	if absY < 0 {
		absY = -absY
	}
	var angle float32
	if x >= 0 {
		r := (x - absY) / (x + absY)
		angle = 0.1963*r*r*r - 0.9817*r + math.Pi/4
	} else {
		r := (x + absY) / (absY - x)
		angle = 0.1963*r*r*r - 0.9817*r + 3*math.Pi/4
	}
	if y < 0 {
		angle = -angle
	}
	return int32(angle * (Q14 / math.Pi))
}

// DiscKind selects the FM discriminator implementation.
type DiscKind int

const (
	DiscDouble DiscKind = iota // reference double-precision math.Atan2
	DiscFast                   // fast integer approximation
	DiscLUT                    // LUT-backed, falling back to Fast on allocation failure
)

// PolarDiscriminator computes the Q14 phase delta between consecutive
// complex samples cur and prev: arg(cur * conj(prev)).
type PolarDiscriminator struct {
	Kind DiscKind
	lut  []int32 // indexed by quantized angle bucket, built lazily
}

const discLUTSize = 4096

func (d *PolarDiscriminator) ensureLUT() bool {
	if d.lut != nil {
		return true
	}
	lut := make([]int32, discLUTSize)
	if lut == nil {
		return false
	}
	for i := range lut {
		ang := (float64(i)/discLUTSize*2 - 1) * math.Pi
		lut[i] = int32(ang * (Q14 / math.Pi))
	}
	d.lut = lut
	return true
}

// Discriminate returns the Q14 phase difference arg(cur*conj(prev)).
func (d *PolarDiscriminator) Discriminate(cur, prev Complex64F) int32 {
	z := cur.Mul(prev.Conj())
	switch d.Kind {
	case DiscDouble:
		return int32(math.Atan2(float64(z.Q), float64(z.I)) * (Q14 / math.Pi))
	case DiscLUT:
		if !d.ensureLUT() {
			return FastAtan2Q14(z.Q, z.I)
		}
		idx := int((math.Atan2(float64(z.Q), float64(z.I))/math.Pi + 1) / 2 * discLUTSize)
		idx = clamp(idx, 0, discLUTSize-1)
		return d.lut[idx]
	default:
		return FastAtan2Q14(z.Q, z.I)
	}
}

// QPSKDifferentialDiscriminate returns arg(cur * conj(prev)) for the
// differential QPSK demod mode, sharing the same math as the FM
// discriminator but kept distinct so history handling stays per-mode
// explicit (spec.md §4.4 step 9).
func QPSKDifferentialDiscriminate(cur, prev Complex64F) int32 {
	z := cur.Mul(prev.Conj())
	return FastAtan2Q14(z.Q, z.I)
}
