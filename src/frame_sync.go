package dsdneo

// SyncType tags a detected (protocol, polarity) pair, per spec.md §3.
type SyncType int

const (
	SyncNone SyncType = iota
	SyncP25P1Plus
	SyncP25P1Minus
	SyncDMRBSVoicePlus
	SyncDMRBSVoiceMinus
	SyncDMRBSDataPlus
	SyncDMRBSDataMinus
	SyncM17LSFPlus
	SyncM17LSFMinus
	SyncM17STRPlus
	SyncM17STRMinus
	SyncM17PKTPlus
	SyncM17PKTMinus
	SyncM17BRTPlus
	SyncM17BRTMinus
	SyncM17PREPlus
	SyncM17PREMinus
	SyncNXDNPlus
	SyncNXDNMinus
	SyncYSFPlus
	SyncYSFMinus
	SyncDPMRFS1Plus
	SyncDPMRFS1Minus
	SyncDPMRFS2Plus
	SyncDPMRFS2Minus
	SyncDPMRFS3Plus
	SyncDPMRFS3Minus
	SyncDPMRFS4Plus
	SyncDPMRFS4Minus
	SyncP25P2Plus
	SyncP25P2Minus
	SyncProVoiceEDACSPlus
	SyncProVoiceEDACSMinus
	SyncAnalog
	SyncDigital
)

// SyncTypeName maps a sync type to a human-readable name.
func SyncTypeName(s SyncType) string {
	switch s {
	case SyncP25P1Plus:
		return "P25p1+"
	case SyncP25P1Minus:
		return "P25p1-"
	case SyncDMRBSVoicePlus:
		return "DMR BS Voice+"
	case SyncDMRBSVoiceMinus:
		return "DMR BS Voice-"
	case SyncDMRBSDataPlus:
		return "DMR BS Data+"
	case SyncDMRBSDataMinus:
		return "DMR BS Data-"
	case SyncM17LSFPlus:
		return "M17 LSF+"
	case SyncM17LSFMinus:
		return "M17 LSF-"
	case SyncM17STRPlus:
		return "M17 STR+"
	case SyncM17STRMinus:
		return "M17 STR-"
	case SyncM17PKTPlus:
		return "M17 PKT+"
	case SyncM17PKTMinus:
		return "M17 PKT-"
	case SyncM17BRTPlus:
		return "M17 BRT+"
	case SyncM17BRTMinus:
		return "M17 BRT-"
	case SyncM17PREPlus:
		return "M17 PRE+"
	case SyncM17PREMinus:
		return "M17 PRE-"
	case SyncNXDNPlus:
		return "NXDN+"
	case SyncNXDNMinus:
		return "NXDN-"
	case SyncYSFPlus:
		return "YSF+"
	case SyncYSFMinus:
		return "YSF-"
	case SyncDPMRFS1Plus, SyncDPMRFS1Minus, SyncDPMRFS2Plus, SyncDPMRFS2Minus,
		SyncDPMRFS3Plus, SyncDPMRFS3Minus, SyncDPMRFS4Plus, SyncDPMRFS4Minus:
		return "dPMR FS"
	case SyncP25P2Plus:
		return "P25p2+"
	case SyncP25P2Minus:
		return "P25p2-"
	case SyncProVoiceEDACSPlus:
		return "ProVoice/EDACS+"
	case SyncProVoiceEDACSMinus:
		return "ProVoice/EDACS-"
	case SyncAnalog:
		return "ANALOG"
	case SyncDigital:
		return "DIGITAL"
	default:
		return "NONE"
	}
}

// SyncTemplate is one protocol sync pattern: ASCII dibits '0'..'3', a
// detection threshold, and the type to report for the normal and inverted
// polarity match.
type SyncTemplate struct {
	PatternNorm string
	PatternInv  string
	Threshold   int
	TypeNorm    SyncType
	TypeInv     SyncType
}

// dsdSyncHammingDistance is the plain identity-remap Hamming distance
// against an ASCII dibit pattern, ported directly from
// original_source/src/dsp/sync_hamming.c.
func dsdSyncHammingDistance(buf []byte, pat string) int {
	ham := 0
	for i := 0; i < len(pat) && i < len(buf); i++ {
		d := buf[i]
		if d >= '0' && d <= '3' {
			d -= '0'
		}
		expect := pat[i] - '0'
		if d != expect {
			ham++
		}
	}
	return ham
}

// qpskSyncHammingWithRemaps evaluates the best-case Hamming distance under
// the five documented remaps (identity, 2-bit invert, swap, bitwise-not,
// 90-degree rotation), each against both the normal and inverted pattern,
// ported directly from original_source/src/dsp/sync_hamming.c.
func qpskSyncHammingWithRemaps(buf []byte, patNorm, patInv string) int {
	n := minInt(len(patNorm), len(buf))
	best := -1
	consider := func(remap func(byte) byte) {
		var hamN, hamI int
		for k := 0; k < n; k++ {
			d := buf[k]
			if d >= '0' && d <= '3' {
				d -= '0'
			}
			rd := remap(d)
			if rd != patNorm[k]-'0' {
				hamN++
			}
			if rd != patInv[k]-'0' {
				hamI++
			}
		}
		if best == -1 || hamN < best {
			best = hamN
		}
		if hamI < best {
			best = hamI
		}
	}
	consider(func(d byte) byte { return d }) // identity
	consider(func(d byte) byte { // 2-bit invert
		switch d {
		case 0:
			return 2
		case 1:
			return 3
		case 2:
			return 0
		default:
			return 1
		}
	})
	consider(func(d byte) byte { return ((d & 1) << 1) | ((d & 2) >> 1) }) // swap
	consider(func(d byte) byte { return d ^ 0x3 })                        // bitwise-not
	consider(func(d byte) byte { // 90-degree rotation 0->1->3->2->0
		switch d & 0x3 {
		case 0:
			return 1
		case 1:
			return 3
		case 2:
			return 0
		default:
			return 2
		}
	})
	return best
}

// FrameSyncResult is the outcome of a successful sync search.
type FrameSyncResult struct {
	Type     SyncType
	Offset   int
	Distance int
}

// FrameSyncSearcher holds the rolling dibit buffer and template set used to
// detect synchronization, per spec.md §4.5.
type FrameSyncSearcher struct {
	Templates []SyncTemplate
	window    []byte
	modHyst   map[string]int
}

func NewFrameSyncSearcher(templates []SyncTemplate) *FrameSyncSearcher {
	return &FrameSyncSearcher{Templates: templates, modHyst: make(map[string]int)}
}

// Feed appends dibits to the rolling window and searches all templates,
// returning the best match at or below its threshold, if any. The match
// reports TypeInv when the window is closer (identity remap) to the
// inverted pattern than to the normal one, else TypeNorm.
func (f *FrameSyncSearcher) Feed(dibits []byte) (FrameSyncResult, bool) {
	f.window = append(f.window, dibits...)
	maxLen := 64
	if len(f.window) > maxLen {
		f.window = f.window[len(f.window)-maxLen:]
	}

	var best FrameSyncResult
	found := false
	for _, t := range f.Templates {
		for off := 0; off <= len(f.window)-len(t.PatternNorm); off++ {
			sub := f.window[off : off+len(t.PatternNorm)]
			d := qpskSyncHammingWithRemaps(sub, t.PatternNorm, t.PatternInv)
			if d <= t.Threshold && (!found || d < best.Distance) {
				typ := t.TypeNorm
				if dsdSyncHammingDistance(sub, t.PatternInv) < dsdSyncHammingDistance(sub, t.PatternNorm) {
					typ = t.TypeInv
				}
				best = FrameSyncResult{Type: typ, Offset: off, Distance: d}
				found = true
			}
		}
	}
	return best, found
}

// ModDetect tracks hysteresis-counted modulation candidates (C4FM vs QPSK
// vs GFSK) per spec.md §4.5.
type ModDetect struct {
	counts map[string]int
	best   string
}

func NewModDetect() *ModDetect { return &ModDetect{counts: make(map[string]int)} }

// Observe increments the hysteresis counter for a candidate modulation and
// updates the leading candidate once it exceeds threshold.
func (m *ModDetect) Observe(candidate string, threshold int) string {
	m.counts[candidate]++
	for k := range m.counts {
		if k != candidate && m.counts[k] > 0 {
			m.counts[k]--
		}
	}
	if m.counts[candidate] >= threshold {
		m.best = candidate
	}
	return m.best
}

// Reset clears all hysteresis counters.
func (m *ModDetect) Reset() {
	m.counts = make(map[string]int)
	m.best = ""
}

// repeatPattern tiles a 4-symbol motif out to length n, used to build the
// placeholder sync templates below: none of the retrieved reference
// source carries literal sync-word bit patterns (the pack's
// original_source/ only has display-name strings), so each protocol gets
// a distinct non-constant motif rather than a fabricated "real" ETSI/TIA
// sync word. A constant-symbol pattern (e.g. all-3s) would also collide
// under qpskSyncHammingWithRemaps's bitwise-not/rotate remaps with every
// other constant pattern, which is why a single repeated digit isn't used
// per protocol.
func repeatPattern(motif string, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = motif[i%len(motif)]
	}
	return string(out)
}

// polarityInvert derives a pattern's opposite-polarity counterpart by
// toggling each dibit's high bit (3<->1, 2<->0), matching the relationship
// between the P25P1 placeholder pair used in frame_sync_test.go
// ("333...3" / "111...1").
func polarityInvert(pat string) string {
	out := make([]byte, len(pat))
	for i := 0; i < len(pat); i++ {
		d := pat[i] - '0'
		out[i] = (d ^ 2) + '0'
	}
	return string(out)
}

// DefaultSyncTemplates returns the built-in sync template set covering
// every protocol family spec.md §3 names. Patterns are placeholders (see
// repeatPattern); the detection machinery (Hamming distance under the
// five documented remaps, per-template threshold) is real and exercised
// the same way real sync words would be.
func DefaultSyncTemplates() []SyncTemplate {
	type proto struct {
		motif    string
		typeNorm SyncType
		typeInv  SyncType
	}
	protos := []proto{
		{"3333", SyncP25P1Plus, SyncP25P1Minus},
		{"3011", SyncP25P2Plus, SyncP25P2Minus},
		{DMRBSSourcedVoiceSync[:4], SyncDMRBSVoicePlus, SyncDMRBSVoiceMinus},
		{DMRBSSourcedDataSync[:4], SyncDMRBSDataPlus, SyncDMRBSDataMinus},
		{"3300", SyncM17LSFPlus, SyncM17LSFMinus},
		{"3033", SyncM17STRPlus, SyncM17STRMinus},
		{"3330", SyncM17PKTPlus, SyncM17PKTMinus},
		{"3303", SyncM17BRTPlus, SyncM17BRTMinus},
		{"0333", SyncM17PREPlus, SyncM17PREMinus},
		{"3230", SyncNXDNPlus, SyncNXDNMinus},
		{"3212", SyncYSFPlus, SyncYSFMinus},
		{"3012", SyncDPMRFS1Plus, SyncDPMRFS1Minus},
		{"3021", SyncDPMRFS2Plus, SyncDPMRFS2Minus},
		{"3102", SyncDPMRFS3Plus, SyncDPMRFS3Minus},
		{"3120", SyncDPMRFS4Plus, SyncDPMRFS4Minus},
		{"3210", SyncProVoiceEDACSPlus, SyncProVoiceEDACSMinus},
	}

	templates := make([]SyncTemplate, 0, len(protos))
	for _, p := range protos {
		norm := repeatPattern(p.motif, 24)
		templates = append(templates, SyncTemplate{
			PatternNorm: norm,
			PatternInv:  polarityInvert(norm),
			Threshold:   2,
			TypeNorm:    p.typeNorm,
			TypeInv:     p.typeInv,
		})
	}
	return templates
}
