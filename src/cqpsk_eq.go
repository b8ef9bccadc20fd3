package dsdneo

import "math"

// CqpskEqSymMax bounds the chronological symbol ring retained by the
// equalizer (spec.md §3/§8 property 6).
const CqpskEqSymMax = 64

// CqpskAdaptMode selects which tap set the NLMS update targets.
type CqpskAdaptMode int

const (
	AdaptFFE CqpskAdaptMode = iota
	AdaptWL
)

// CqpskEqConfig bundles the tunable knobs of the equalizer described in
// spec.md §4.3.
type CqpskEqConfig struct {
	NumFFE         int
	NumDFE         int
	SymStride      int // samples per symbol decision
	UpdateStride   int
	Mu             float32
	MaxAbs         float32 // clamp for FFE/WL taps
	CMAWarmupSamples int
	CMAModulusR2   float32
	WLLeakShift    uint
	WLGateThrQ15   int32
	WLThrOffQ15    int32
	AdaptMinHold   int
	DFEEnabled     bool
	DQPSK          bool // decision mode flag; both values use the same axis slicer, no rotate-back is applied
}

// DefaultCqpskEqConfig returns sane defaults matching the documented
// invariants (identity response when taps are at reset).
func DefaultCqpskEqConfig() CqpskEqConfig {
	return CqpskEqConfig{
		NumFFE:           7,
		NumDFE:           3,
		SymStride:        2,
		UpdateStride:     1,
		Mu:               0.01,
		MaxAbs:           4.0,
		CMAWarmupSamples: 512,
		CMAModulusR2:     2.0,
		WLLeakShift:      4,
		WLGateThrQ15:     int32(0.35 * (1 << 15)),
		WLThrOffQ15:      int32(0.15 * (1 << 15)),
		AdaptMinHold:     256,
		DFEEnabled:       true,
	}
}

// CqpskEqState is the full equalizer sub-state of spec.md §3: FFE/WL/DFE
// taps, decision history, symbol ring, counters, and the widely-linear
// impropriety gate.
type CqpskEqState struct {
	cfg CqpskEqConfig

	c  []Complex64F // FFE taps
	cw []Complex64F // WL taps
	b  []Complex64F // DFE taps
	xHist []Complex64F // FFE input history, length NumFFE
	dHist []Complex64F // DFE decision history, length NumDFE

	symRing []Complex64F // chronological, bounded to CqpskEqSymMax

	updateCount int64
	symCount    int64
	cmaRemaining int

	emaImproperNum float32
	emaImproperDen float32
	wlEngaged      bool
	wlHoldRemaining int
	adaptMode      CqpskAdaptMode

	LMSEnable bool
}

// NewCqpskEqState builds a reset equalizer: center FFE tap = 1 (identity),
// everything else zero.
func NewCqpskEqState(cfg CqpskEqConfig) *CqpskEqState {
	s := &CqpskEqState{cfg: cfg, LMSEnable: true}
	s.ResetAll()
	return s
}

// ResetAll restores identity response and clears WL/DFE/counters (spec.md §4.3).
func (s *CqpskEqState) ResetAll() {
	s.c = make([]Complex64F, s.cfg.NumFFE)
	s.c[s.cfg.NumFFE/2] = Complex64F{I: 1, Q: 0}
	s.cw = make([]Complex64F, s.cfg.NumFFE)
	s.b = make([]Complex64F, s.cfg.NumDFE)
	s.xHist = make([]Complex64F, s.cfg.NumFFE)
	s.dHist = make([]Complex64F, s.cfg.NumDFE)
	s.symRing = s.symRing[:0]
	s.ResetRuntime()
	s.ResetWL()
}

// ResetRuntime clears counters/histories only, keeping tap values.
func (s *CqpskEqState) ResetRuntime() {
	s.updateCount = 0
	s.symCount = 0
	s.cmaRemaining = s.cfg.CMAWarmupSamples
	for i := range s.xHist {
		s.xHist[i] = Complex64F{}
	}
	for i := range s.dHist {
		s.dHist[i] = Complex64F{}
	}
	s.symRing = s.symRing[:0]
}

// ResetWL clears only the WL taps and gate state.
func (s *CqpskEqState) ResetWL() {
	for i := range s.cw {
		s.cw[i] = Complex64F{}
	}
	s.emaImproperNum = 0
	s.emaImproperDen = 0
	s.wlEngaged = false
	s.wlHoldRemaining = 0
	s.adaptMode = AdaptFFE
}

// WLEngaged reports whether the widely-linear branch is currently active.
func (s *CqpskEqState) WLEngaged() bool { return s.wlEngaged }

// SymbolRing returns the last up-to-CqpskEqSymMax decided symbols in
// chronological order.
func (s *CqpskEqState) SymbolRing() []Complex64F { return s.symRing }

func (s *CqpskEqState) pushHist(hist []Complex64F, x Complex64F) {
	copy(hist[1:], hist[:len(hist)-1])
	hist[0] = x
}

func (s *CqpskEqState) pushSymRing(d Complex64F) {
	s.symRing = append(s.symRing, d)
	if len(s.symRing) > CqpskEqSymMax {
		s.symRing = s.symRing[len(s.symRing)-CqpskEqSymMax:]
	}
}

func clampMag(c Complex64F, maxAbs float32) Complex64F {
	if c.I > maxAbs {
		c.I = maxAbs
	} else if c.I < -maxAbs {
		c.I = -maxAbs
	}
	if c.Q > maxAbs {
		c.Q = maxAbs
	} else if c.Q < -maxAbs {
		c.Q = -maxAbs
	}
	return c
}

// sliceQPSK slices y to the nearest QPSK constellation point (+-1,+-1)/sqrt2.
func sliceQPSK(y Complex64F) Complex64F {
	const lvl = float32(0.7071068)
	d := Complex64F{I: lvl, Q: lvl}
	if y.I < 0 {
		d.I = -lvl
	}
	if y.Q < 0 {
		d.Q = -lvl
	}
	return d
}

// Process runs one input complex sample through the equalizer, returning
// the FFE(+WL)(-DFE) output y. Symbol-rate bookkeeping (decision, ring,
// DFE history, NLMS update, CMA warm-up, WL gate) happens on symbol ticks.
func (s *CqpskEqState) Process(x Complex64F) Complex64F {
	s.pushHist(s.xHist, x)

	if !s.LMSEnable {
		return x
	}

	var y Complex64F
	for k, ck := range s.c {
		y = y.Add(ck.Mul(s.xHist[k]))
	}
	if s.wlEngaged {
		for k, cwk := range s.cw {
			y = y.Add(cwk.Mul(s.xHist[k].Conj()))
		}
	}
	if s.cfg.DFEEnabled {
		for k, bk := range s.b {
			y = y.Sub(bk.Mul(s.dHist[k]))
		}
	}

	s.symCount++
	if s.symCount%int64(s.cfg.SymStride) != 0 {
		return y
	}

	var e Complex64F
	inWarmup := s.cmaRemaining > 0
	if inWarmup {
		s.cmaRemaining--
		mag2 := y.Abs2()
		modErr := s.cfg.CMAModulusR2 - mag2
		e = y.Scale(modErr)
		for i := range s.cw {
			s.cw[i] = s.cw[i].Scale(1.0 / float32(int(1)<<s.cfg.WLLeakShift))
		}
	} else {
		var d Complex64F
		if s.cfg.DQPSK {
			d = sliceQPSK(y) // same axis slicer as the non-DQPSK branch
		} else {
			d = sliceQPSK(y)
		}
		s.pushSymRing(d)
		s.pushHist(s.dHist, d)
		e = d.Sub(y)
	}

	s.updateImproprietyGate(y)

	s.updateCount++
	if s.updateCount%int64(s.cfg.UpdateStride) == 0 {
		s.nlmsUpdate(e)
	}
	return y
}

func (s *CqpskEqState) nlmsUpdate(e Complex64F) {
	var norm float32 = 1e-6
	for _, x := range s.xHist {
		norm += x.Abs2()
	}
	mu := s.cfg.Mu / norm
	for k := range s.c {
		upd := e.Mul(s.xHist[k].Conj()).Scale(mu)
		s.c[k] = clampMag(s.c[k].Add(upd), s.cfg.MaxAbs)
	}
	if s.wlEngaged {
		wlCap := s.cfg.MaxAbs / 8
		for k := range s.cw {
			upd := e.Mul(s.xHist[k]).Scale(mu) // widely-linear: conj of conj == x
			s.cw[k] = clampMag(s.cw[k].Add(upd), wlCap)
		}
	}
	if s.cfg.DFEEnabled {
		for k := range s.b {
			upd := e.Scale(-mu).Mul(s.dHist[k].Conj())
			s.b[k] = clampMag(s.b[k].Sub(upd), s.cfg.MaxAbs)
		}
	}
}

// updateImproprietyGate tracks EMA(|E[z^2]|)/EMA(E[|z|^2]) and engages or
// disengages the widely-linear branch with hysteresis and a minimum hold
// time, per spec.md §4.3 step 7.
func (s *CqpskEqState) updateImproprietyGate(z Complex64F) {
	const alpha = 0.02
	z2 := z.Mul(z)
	magZ2 := float32(math.Sqrt(float64(z2.I*z2.I + z2.Q*z2.Q)))
	pow := z.Abs2()
	s.emaImproperNum += alpha * (magZ2 - s.emaImproperNum)
	s.emaImproperDen += alpha * (pow - s.emaImproperDen)

	if s.wlHoldRemaining > 0 {
		s.wlHoldRemaining--
	}

	var ratioQ15 int32
	if s.emaImproperDen > 1e-9 {
		ratioQ15 = int32((s.emaImproperNum / s.emaImproperDen) * (1 << 15))
	}

	if !s.wlEngaged && ratioQ15 > s.cfg.WLGateThrQ15 {
		s.wlEngaged = true
		s.adaptMode = AdaptWL
		s.wlHoldRemaining = s.cfg.AdaptMinHold
	} else if s.wlEngaged && ratioQ15 < s.cfg.WLThrOffQ15 && s.wlHoldRemaining == 0 {
		s.wlEngaged = false
		s.adaptMode = AdaptFFE
		// Faster leakage once disengaged.
		for i := range s.cw {
			s.cw[i] = s.cw[i].Scale(0.5)
		}
	}
}
