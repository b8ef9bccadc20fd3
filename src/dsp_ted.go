package dsdneo

// GardnerTED implements the Gardner timing error detector on complex
// baseband after the FLL: it interpolates at the current fractional timing
// offset mu and updates mu <- (mu + mu_nom) mod 1 per produced symbol
// (spec.md §4.2). Only the very first sample it ever receives is consumed
// to prime the history, so it emits one sample fewer than its input on
// its first block and one output per input sample on every later block.
type GardnerTED struct {
	MuNom float32 // nominal fractional advance per symbol (1/sps)
	mu    float32
	emaErr float32
	emaAlpha float32

	prev, mid Complex64F
	havePrev  bool
}

func NewGardnerTED(muNom float32) *GardnerTED {
	return &GardnerTED{MuNom: muNom, emaAlpha: 0.01}
}

// Mu returns the current fractional timing offset in [0,1).
func (g *GardnerTED) Mu() float32 { return g.mu }

// EMAError returns the exponential moving average of the timing error,
// exposed for diagnostics per spec.md §4.2.
func (g *GardnerTED) EMAError() float32 { return g.emaErr }

// Process consumes complex samples and produces one linearly interpolated
// sample per input sample (after the priming sample), tracking mu across
// calls.
func (g *GardnerTED) Process(in []Complex64F, out []Complex64F) []Complex64F {
	produced := 0
	for _, s := range in {
		if produced >= len(out) {
			break
		}
		if !g.havePrev {
			g.prev = s
			g.havePrev = true
			continue
		}
		// Linear interpolation at offset mu between prev and s.
		interp := Complex64F{
			I: g.prev.I + (s.I-g.prev.I)*g.mu,
			Q: g.prev.Q + (s.Q-g.prev.Q)*g.mu,
		}
		// Gardner error: (late - early) . mid, using the midpoint sample.
		errI := (s.I - g.prev.I) * g.mid.I
		errQ := (s.Q - g.prev.Q) * g.mid.Q
		e := errI + errQ
		g.emaErr = g.emaErr + g.emaAlpha*(e-g.emaErr)

		out[produced] = interp
		produced++

		g.mid = s
		g.prev = s
		g.mu += g.MuNom
		for g.mu >= 1 {
			g.mu -= 1
		}
	}
	return out[:produced]
}
