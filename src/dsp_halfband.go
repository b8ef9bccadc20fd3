package dsdneo

import "math"

// Half-band decimate-by-2 filters, real and complex. Taps are odd length
// (15/23/31), symmetric, with zero odd taps except the center (which is
// 0.5). History carries taps_len-1 samples between blocks so DC and other
// low-frequency content survive block boundaries (spec.md §4.2/§8 S1).

// HalfbandDesign returns a symmetric half-band prototype of the given odd
// length. Odd-indexed taps (other than the center) are forced to zero,
// which is the half-band filter's defining property and lets callers skip
// roughly half the multiplies.
func HalfbandDesign(length int) []float32 {
	if length%2 == 0 {
		length++
	}
	taps := make([]float32, length)
	center := length / 2
	taps[center] = 0.5
	// Windowed-sinc odd taps only; even (non-center) taps are zero by design.
	for k := 1; k <= center; k++ {
		if k%2 == 0 {
			continue
		}
		x := float64(k) * math.Pi / 2
		sinc := math.Sin(x) / x
		win := 0.54 + 0.46*math.Cos(math.Pi*float64(k)/float64(center))
		v := float32(0.5 * sinc * win)
		taps[center-k] = v
		taps[center+k] = v
	}
	return taps
}

// HalfbandReal decimates a real signal by 2 using a symmetric half-band
// filter, maintaining history across calls.
type HalfbandReal struct {
	Taps []float32
	hist []float32
}

func NewHalfbandReal(taps []float32) *HalfbandReal {
	return &HalfbandReal{Taps: taps, hist: make([]float32, len(taps)-1)}
}

// Process decimates in (even length) into out (len(in)/2), returning the
// slice actually written.
func (h *HalfbandReal) Process(in []float32, out []float32) []float32 {
	n := len(in) / 2
	if len(out) < n {
		n = len(out)
	}
	ext := make([]float32, len(h.hist)+len(in))
	copy(ext, h.hist)
	copy(ext[len(h.hist):], in)

	taps := h.Taps
	center := len(taps) / 2
	for i := 0; i < n; i++ {
		base := i*2 + center
		var acc float32
		acc += taps[center] * ext[base]
		for k := 1; k <= center; k += 2 { // zero-tap skip: only odd k nonzero
			acc += taps[center-k] * (ext[base-k] + ext[base+k])
		}
		out[i] = acc
	}
	// Save trailing history for next block.
	tail := ext[len(ext)-len(h.hist):]
	copy(h.hist, tail)
	return out[:n]
}

// HalfbandComplex is the complex analogue, decimating I and Q independently
// with shared taps but separate per-rail history.
type HalfbandComplex struct {
	Taps   []float32
	histI  []float32
	histQ  []float32
}

func NewHalfbandComplex(taps []float32) *HalfbandComplex {
	return &HalfbandComplex{
		Taps:  taps,
		histI: make([]float32, len(taps)-1),
		histQ: make([]float32, len(taps)-1),
	}
}

func (h *HalfbandComplex) Process(in []Complex64F, out []Complex64F) []Complex64F {
	n := len(in) / 2
	if len(out) < n {
		n = len(out)
	}
	extI := make([]float32, len(h.histI)+len(in))
	extQ := make([]float32, len(h.histQ)+len(in))
	copy(extI, h.histI)
	copy(extQ, h.histQ)
	for i, s := range in {
		extI[len(h.histI)+i] = s.I
		extQ[len(h.histQ)+i] = s.Q
	}

	taps := h.Taps
	center := len(taps) / 2
	for i := 0; i < n; i++ {
		base := i*2 + center
		var accI, accQ float32
		accI += taps[center] * extI[base]
		accQ += taps[center] * extQ[base]
		for k := 1; k <= center; k += 2 {
			accI += taps[center-k] * (extI[base-k] + extI[base+k])
			accQ += taps[center-k] * (extQ[base-k] + extQ[base+k])
		}
		out[i] = Complex64F{accI, accQ}
	}
	copy(h.histI, extI[len(extI)-len(h.histI):])
	copy(h.histQ, extQ[len(extQ)-len(h.histQ):])
	return out[:n]
}
