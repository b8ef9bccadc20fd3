// Package dsdneo implements the real-time core of a digital voice and
// trunking radio decoder: DSP front-end, frame sync, protocol decoders,
// FEC/crypto primitives, and a P25/DMR trunking follower state machine.
package dsdneo

import "golang.org/x/exp/constraints"

// clamp restricts v to [lo, hi].
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func minInt[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxInt[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Complex64F is a float32 complex sample, used throughout the DSP path
// in preference to complex64 so real/imag fields are addressable.
type Complex64F struct {
	I, Q float32
}

func (c Complex64F) Add(o Complex64F) Complex64F { return Complex64F{c.I + o.I, c.Q + o.Q} }
func (c Complex64F) Sub(o Complex64F) Complex64F { return Complex64F{c.I - o.I, c.Q - o.Q} }

func (c Complex64F) Mul(o Complex64F) Complex64F {
	return Complex64F{c.I*o.I - c.Q*o.Q, c.I*o.Q + c.Q*o.I}
}

func (c Complex64F) Scale(s float32) Complex64F { return Complex64F{c.I * s, c.Q * s} }

func (c Complex64F) Conj() Complex64F { return Complex64F{c.I, -c.Q} }

func (c Complex64F) Abs2() float32 { return c.I*c.I + c.Q*c.Q }
