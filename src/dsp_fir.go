package dsdneo

import "math"

// SymmetricFIR is an odd-length, symmetric real FIR (used for the 5-tap
// "matched-like" filter, audio post filters, and as the building block for
// the RRC filter), normalized so DC gain is 1.
type SymmetricFIR struct {
	Taps []float32
	hist []float32
}

func NewSymmetricFIR(taps []float32) *SymmetricFIR {
	normalizeDC(taps)
	return &SymmetricFIR{Taps: taps, hist: make([]float32, len(taps)-1)}
}

func normalizeDC(taps []float32) {
	var sum float32
	for _, t := range taps {
		sum += t
	}
	if sum == 0 {
		return
	}
	for i := range taps {
		taps[i] /= sum
	}
}

func (f *SymmetricFIR) Process(in, out []float32) []float32 {
	n := minInt(len(in), len(out))
	ext := make([]float32, len(f.hist)+len(in))
	copy(ext, f.hist)
	copy(ext[len(f.hist):], in)

	center := len(f.Taps) / 2
	for i := 0; i < n; i++ {
		base := i + center
		var acc float32
		acc += f.Taps[center] * ext[base]
		for k := 1; k <= center; k++ {
			acc += f.Taps[center-k] * (valueAt(ext, base-k) + valueAt(ext, base+k))
		}
		out[i] = acc
	}
	copy(f.hist, ext[len(ext)-len(f.hist):])
	return out[:n]
}

func valueAt(buf []float32, idx int) float32 {
	if idx < 0 || idx >= len(buf) {
		return 0
	}
	return buf[idx]
}

// NewRRCFilter designs a root-raised-cosine filter with the given rolloff
// (0,1], samples-per-symbol sps, and span (symbols on each side of center).
func NewRRCFilter(rolloff float64, sps, span int) *SymmetricFIR {
	n := span*sps*2 + 1
	taps := make([]float32, n)
	center := float64(n-1) / 2
	ts := float64(sps)
	for i := 0; i < n; i++ {
		t := float64(i) - center
		taps[i] = float32(rrcSample(t/ts, rolloff))
	}
	return NewSymmetricFIR(taps)
}

func rrcSample(t, beta float64) float64 {
	if t == 0 {
		return 1 - beta + 4*beta/math.Pi
	}
	if beta > 0 && math.Abs(math.Abs(4*beta*t)-1) < 1e-8 {
		return (beta / math.Sqrt2) * ((1+2/math.Pi)*math.Sin(math.Pi/(4*beta)) + (1-2/math.Pi)*math.Cos(math.Pi/(4*beta)))
	}
	num := math.Sin(math.Pi*t*(1-beta)) + 4*beta*t*math.Cos(math.Pi*t*(1+beta))
	den := math.Pi * t * (1 - math.Pow(4*beta*t, 2))
	return num / den
}

// FLLBandEdge holds the pair of complex band-edge filters used by the FLL:
// the lower filter is the conjugate of the upper by construction, per
// spec.md §4.2.
type FLLBandEdge struct {
	Upper, Lower []Complex64F
}

// NewFLLBandEdge designs band-edge filters with n_taps = 2*sps+1. The taps
// are a windowed real low-pass sinc with cutoff (1+rolloff)/(2*sps) and a
// zero imaginary part, so Upper and Lower hold identical real taps; no
// shift to the band edges is applied.
func NewFLLBandEdge(sps int, rolloff float64) *FLLBandEdge {
	n := 2*sps + 1
	upper := make([]Complex64F, n)
	lower := make([]Complex64F, n)
	center := float64(n-1) / 2
	bw := (1 + rolloff) / float64(sps) / 2
	for i := 0; i < n; i++ {
		t := float64(i) - center
		win := 0.54 + 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		var re, im float64
		if t == 0 {
			re = 2 * math.Pi * bw
		} else {
			re = math.Sin(2*math.Pi*bw*t) / t
		}
		re *= win
		im = 0
		upper[i] = Complex64F{I: float32(re), Q: float32(im)}
		lower[i] = upper[i].Conj()
	}
	return &FLLBandEdge{Upper: upper, Lower: lower}
}
