package dsdneo

import "math"

// PolyphaseResampler implements the windowed-sinc rational L/M resampler of
// spec.md §4.2: taps are designed at L*Fs_in and stored phase-major (stride
// L, index k*L+phase). DC gain is 1 within 2e-3 after warm-up.
type PolyphaseResampler struct {
	L, M        int
	tapsPerPhase int
	taps        []float32 // phase-major: taps[k*L+phase]
	hist        []Complex64F
	phase       int
}

// NewPolyphaseResampler designs a windowed-sinc prototype with the given
// number of taps per phase.
func NewPolyphaseResampler(l, m, tapsPerPhase int) *PolyphaseResampler {
	r := &PolyphaseResampler{L: l, M: m, tapsPerPhase: tapsPerPhase}
	r.taps = designPolyphase(l, tapsPerPhase)
	r.hist = make([]Complex64F, tapsPerPhase-1)
	return r
}

func designPolyphase(l, tapsPerPhase int) []float32 {
	n := tapsPerPhase * l
	taps := make([]float32, n)
	center := float64(n-1) / 2
	var sum float64
	proto := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) - center
		var sinc float64
		if x == 0 {
			sinc = 1
		} else {
			arg := math.Pi * x / float64(l)
			sinc = math.Sin(arg) / arg
		}
		win := 0.54 + 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		proto[i] = sinc * win
		sum += proto[i]
	}
	// Normalize so the prototype sums to L, giving each of the L phases a DC
	// gain of about 1 (interpolation scaling).
	scale := float64(l) / sum
	for i := 0; i < n; i++ {
		proto[i] *= scale
	}
	// Rearrange into phase-major order: taps[k*L+phase] holds prototype tap
	// at index phase + k*L.
	for k := 0; k < tapsPerPhase; k++ {
		for phase := 0; phase < l; phase++ {
			srcIdx := k*l + phase
			if srcIdx < n {
				taps[k*l+phase] = float32(proto[srcIdx])
			}
		}
	}
	return taps
}

// Process resamples in by L/M, writing into out and returning the slice
// actually produced.
func (r *PolyphaseResampler) Process(in []Complex64F, out []Complex64F) []Complex64F {
	ext := make([]Complex64F, len(r.hist)+len(in))
	copy(ext, r.hist)
	copy(ext[len(r.hist):], in)

	produced := 0
	inPos := 0
outer:
	for inPos+r.tapsPerPhase <= len(ext) {
		for r.phase < r.L {
			if produced >= len(out) {
				break outer
			}
			var acc Complex64F
			for k := 0; k < r.tapsPerPhase; k++ {
				t := r.taps[k*r.L+r.phase]
				s := ext[inPos+k]
				acc.I += t * s.I
				acc.Q += t * s.Q
			}
			out[produced] = acc
			produced++
			r.phase += r.M
		}
		r.phase -= r.L
		inPos++
	}
	// Preserve the trailing tapsPerPhase-1 samples as history for next call.
	if len(ext) >= len(r.hist) {
		copy(r.hist, ext[len(ext)-len(r.hist):])
	}
	return out[:produced]
}
