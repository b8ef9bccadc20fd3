package dsdneo

// DemodMode selects the discriminator/output shape used by DemodState,
// modeled as a tagged variant dispatched once per block per spec.md §9
// ("model discriminators as a tagged variant, not function-pointer
// polymorphism").
type DemodMode int

const (
	ModeFM DemodMode = iota
	ModeQPSKDifferential
	ModeRaw
)

// InputFormat describes the sample source's native representation.
type InputFormat int

const (
	InputU8IQ InputFormat = iota // SDR-native interleaved u8, biased 127.5
	InputS16IQ
	InputPCM16Mono
)

// DemodConfig is the subset of engine configuration a DemodState needs,
// decomposed out of the monolithic teacher config per spec.md §9.
type DemodConfig struct {
	Mode           DemodMode
	Input          InputFormat
	RotateOnLoad   bool
	HalfbandStages int
	ResampleL, ResampleM int
	ResampleTapsPerPhase int
	UseFLL         bool
	UseTED         bool
	TEDMuNom       float32
	UseMatched     bool
	UseRRC         bool
	UseIQBalance   bool
	UseDCBlock     bool
	UseAGC         bool
	UseCQPSK       bool
	SquelchThreshold float32
}

// DemodState is the per-channel DSP pipeline state: scratch, resampler
// history, FLL/TED state, half-band histories, AGC/DC-block state, and the
// CQPSK equalizer sub-state. Decomposed by subsystem per spec.md §9 rather
// than the teacher's single nested C struct.
type DemodState struct {
	cfg DemodConfig

	halfbands []*HalfbandComplex
	resampler *PolyphaseResampler
	bandEdge  *FLLBandEdge
	fllPhase  float32
	ted       *GardnerTED
	matchedI  *SymmetricFIR
	matchedQ  *SymmetricFIR
	iqBalance *IQBalance
	dcBlockIQ *DCBlockComplex
	agc       *FMAGC
	eq        *CqpskEqState

	disc       PolarDiscriminator
	prevSample Complex64F
	havePrev   bool

	deemph  DeemphasisIIR
	dcAudio DCBlockReal
	lpf     AudioLPF
	squelch PowerSquelch

	rotatePhase int
}

// NewDemodState builds a DemodState from configuration, wiring up only the
// stages the config enables.
func NewDemodState(cfg DemodConfig) *DemodState {
	d := &DemodState{cfg: cfg}
	hbTaps := HalfbandDesign(23)
	for i := 0; i < cfg.HalfbandStages; i++ {
		d.halfbands = append(d.halfbands, NewHalfbandComplex(hbTaps))
	}
	if cfg.ResampleL > 0 && cfg.ResampleM > 0 {
		d.resampler = NewPolyphaseResampler(cfg.ResampleL, cfg.ResampleM, cfg.ResampleTapsPerPhase)
	}
	if cfg.UseFLL {
		d.bandEdge = NewFLLBandEdge(4, 0.2)
	}
	if cfg.UseTED {
		d.ted = NewGardnerTED(cfg.TEDMuNom)
	}
	if cfg.UseMatched {
		d.matchedI = NewSymmetricFIR(matchedLikeTaps())
		d.matchedQ = NewSymmetricFIR(matchedLikeTaps())
	} else if cfg.UseRRC {
		d.matchedI = NewRRCFilter(0.2, 2, 4)
		d.matchedQ = NewRRCFilter(0.2, 2, 4)
	}
	if cfg.UseIQBalance {
		d.iqBalance = NewIQBalance(0.3)
	}
	if cfg.UseDCBlock {
		d.dcBlockIQ = NewDCBlockComplex(0.0005)
	}
	if cfg.UseAGC {
		d.agc = NewFMAGC(1 << 14)
	}
	if cfg.UseCQPSK {
		d.eq = NewCqpskEqState(DefaultCqpskEqConfig())
	}
	d.deemph = DeemphasisIIR{Alpha: 0.9}
	d.dcAudio = DCBlockReal{Alpha: 0.001}
	d.lpf = AudioLPF{Alpha: 0.5}
	d.squelch = PowerSquelch{Threshold: cfg.SquelchThreshold}
	return d
}

// CqpskState exposes the equalizer sub-state for diagnostics/tests.
func (d *DemodState) CqpskState() *CqpskEqState { return d.eq }

func matchedLikeTaps() []float32 {
	return []float32{0.1, 0.2, 0.4, 0.2, 0.1}
}

// ProcessBlockFM runs one block of complex baseband through the FM demod
// chain (steps 2,3,6,7,8,9-fm,10,11 of spec.md §4.4), writing audio samples
// into out and returning the slice produced and whether the squelch is
// open.
func (d *DemodState) ProcessBlockFM(in []Complex64F, out []float32) (produced []float32, squelchOpen bool) {
	cur := in
	scratch := make([]Complex64F, len(cur))
	for _, hb := range d.halfbands {
		n := len(cur) / 2
		if n == 0 {
			break
		}
		cur = hb.Process(cur, scratch[:n])
	}
	if d.resampler != nil {
		rsOut := make([]Complex64F, len(cur))
		cur = d.resampler.Process(cur, rsOut)
	}
	if d.iqBalance != nil {
		balanced := make([]Complex64F, len(cur))
		d.iqBalance.Process(cur, balanced)
		cur = balanced
	}
	if d.dcBlockIQ != nil {
		blocked := make([]Complex64F, len(cur))
		d.dcBlockIQ.Process(cur, blocked)
		cur = blocked
	}

	n := minInt(len(cur), len(out))
	disc := make([]float32, n)
	for i := 0; i < n; i++ {
		s := cur[i]
		if !d.havePrev {
			d.prevSample = s
			d.havePrev = true
		}
		ph := d.disc.Discriminate(s, d.prevSample)
		d.prevSample = s
		disc[i] = float32(ph) / Q14
	}

	if d.agc != nil {
		q15 := make([]int32, n)
		for i, v := range disc {
			q15[i] = int32(v * (1 << 14))
		}
		agcOut := make([]int32, n)
		d.agc.Process(q15, agcOut)
		for i, v := range agcOut {
			disc[i] = float32(v) / (1 << 14)
		}
	}

	post := make([]float32, n)
	d.deemph.Process(disc, post)
	d.dcAudio.Process(post, post)
	d.lpf.Process(post, post)

	squelchOpen = d.squelch.Process(post, out[:n])
	return out[:n], squelchOpen
}

// ProcessBlockPSK runs complex baseband through the PSK chain (half-band
// decimation, resampling, TED, matched/RRC filtering, then the CQPSK
// equalizer), emitting symbol baseband for the frame synchronizer. No FLL
// stage is applied: the band-edge filters are not used here, so no
// frequency correction is mixed in.
func (d *DemodState) ProcessBlockPSK(in []Complex64F, out []Complex64F) []Complex64F {
	cur := in
	scratch := make([]Complex64F, len(cur))
	for _, hb := range d.halfbands {
		n := len(cur) / 2
		if n == 0 {
			break
		}
		cur = hb.Process(cur, scratch[:n])
	}
	if d.resampler != nil {
		rsOut := make([]Complex64F, len(cur))
		cur = d.resampler.Process(cur, rsOut)
	}
	if d.ted != nil {
		tedOut := make([]Complex64F, len(cur))
		cur = d.ted.Process(cur, tedOut)
	}
	if d.matchedI != nil {
		// Apply the symmetric filter independently (separate history) on I and Q.
		inI := make([]float32, len(cur))
		inQ := make([]float32, len(cur))
		for i, s := range cur {
			inI[i] = s.I
			inQ[i] = s.Q
		}
		outI := make([]float32, len(cur))
		outQ := make([]float32, len(cur))
		d.matchedI.Process(inI, outI)
		d.matchedQ.Process(inQ, outQ)
		for i := range cur {
			cur[i] = Complex64F{I: outI[i], Q: outQ[i]}
		}
	}
	n := minInt(len(cur), len(out))
	if d.eq != nil {
		for i := 0; i < n; i++ {
			out[i] = d.eq.Process(cur[i])
		}
	} else {
		copy(out[:n], cur[:n])
	}
	return out[:n]
}
