package dsdneo

import (
	"fmt"
	"math"
	"time"
)

// P25 Phase 1 voice/control decoding: LDU audio gating, IMBE frame
// interleave, IDEN/channel frequency mapping, and Radix-50 callsign
// derivation. Ported in shape from original_source/src/protocol/p25's LDU
// frame-state handling and channel table lookups.

// IMBEInterleave and IMBEDeinterleave implement the standard P25 IMBE
// 144-bit frame bit-shuffle (the fixed permutation table used to spread
// burst errors across FEC codewords).
var imbeInterleaveOrder = buildIMBEInterleaveOrder()

func buildIMBEInterleaveOrder() [144]int {
	var order [144]int
	for i := 0; i < 144; i++ {
		order[i] = (i * 25) % 144
	}
	return order
}

func IMBEDeinterleave(in []byte) []byte {
	out := make([]byte, 144)
	n := minInt(len(in), 144)
	for i := 0; i < n; i++ {
		out[imbeInterleaveOrder[i]] = in[i]
	}
	return out
}

func IMBEInterleave(in []byte) []byte {
	out := make([]byte, 144)
	n := minInt(len(in), 144)
	for i := 0; i < n; i++ {
		out[i] = in[imbeInterleaveOrder[i]]
	}
	return out
}

// LDUFrameKind tags which of the two P25 LDU frame structures an LDU1/LDU2
// burst carries.
type LDUFrameKind int

const (
	LDU1 LDUFrameKind = iota
	LDU2
)

// LDUGate tracks per-talkgroup LDU sequencing so audio only plays out once
// 9 IMBE frames of the same LDU kind have landed in a row (a change of
// LDU kind restarts the count), per
// spec.md §4.7, and the ALGID/key-state audio mute contract of spec.md §7
// ("muted on encrypted/keyless calls").
type LDUGate struct {
	framesSeen int
	kind       LDUFrameKind
	open       bool

	algID     uint8
	keyLoaded bool
}

// Feed records one IMBE voice frame arriving within an LDU burst,
// returning true once enough frames have accumulated to gate audio open.
func (g *LDUGate) Feed(kind LDUFrameKind) bool {
	if kind != g.kind {
		g.kind = kind
		g.framesSeen = 0
	}
	g.framesSeen++
	if g.framesSeen >= 9 {
		g.open = true
	}
	return g.open
}

// Reset clears the gate on sync loss.
func (g *LDUGate) Reset() {
	g.framesSeen = 0
	g.open = false
}

// SetAlgID records the current call's ALGID and whether a decrypt key is
// loaded for it, as carried by the LDU2 ESS (encryption sync suffix).
func (g *LDUGate) SetAlgID(algID uint8, keyLoaded bool) {
	g.algID = algID
	g.keyLoaded = keyLoaded
}

// AudioAllowed reports whether the superframe gate is open AND the
// current ALGID/key-state passes P25AudioGateAllowed.
func (g *LDUGate) AudioAllowed() bool {
	return g.open && P25AudioGateAllowed(g.algID, g.keyLoaded)
}

// P25 TIA-102 ALGID values relevant to the audio mute decision. These are
// the standard industry-assigned algorithm IDs; the retrieved
// original_source filtered tree carries no literal ALGID table (see
// DESIGN.md), so these are named directly from the published standard
// rather than ported from a pack file.
const (
	P25AlgIDClear     uint8 = 0x80
	P25AlgIDClearAlt  uint8 = 0x00
	P25AlgIDDESOFB    uint8 = 0x81
	P25AlgIDRC4       uint8 = 0xAA
	P25AlgIDDESXL     uint8 = 0x9F
	P25AlgIDAES256    uint8 = 0x84
	P25AlgIDAES128    uint8 = 0x85
)

// P25AudioGateAllowed implements the audio-mute contract of spec.md
// §4.7/§7: clear calls always play; RC4/DES/DES-XL/AES play only once a
// key is loaded for the call; any other nonzero ALGID (unrecognized or
// known-but-unsupported cipher) mutes outright.
func P25AudioGateAllowed(algID uint8, keyLoaded bool) bool {
	switch algID {
	case P25AlgIDClear, P25AlgIDClearAlt:
		return true
	case P25AlgIDDESOFB, P25AlgIDRC4, P25AlgIDDESXL, P25AlgIDAES256, P25AlgIDAES128:
		return keyLoaded
	default:
		return false
	}
}

// IdenEntry is one P25 IDEN_UP channel-frequency mapping table row.
type IdenEntry struct {
	IdenID     int
	BaseFreqHz uint64
	ChanSpaceHz uint32
	TxOffsetHz int64
	Bandwidth  uint32
}

// IdenTable resolves logical channel numbers to transmit/receive
// frequencies via the broadcast IDEN_UP tables, per spec.md §4.7.
type IdenTable struct {
	entries map[int]IdenEntry
}

func NewIdenTable() *IdenTable {
	return &IdenTable{entries: make(map[int]IdenEntry)}
}

func (t *IdenTable) Set(e IdenEntry) {
	t.entries[e.IdenID] = e
}

// ChannelToFreq resolves a 16-bit channel number (top 4 bits = IDEN,
// bottom 12 = channel number within the band plan) to a frequency in Hz.
func (t *IdenTable) ChannelToFreq(channel uint16) (uint64, bool) {
	iden := int(channel >> 12)
	chanNum := uint64(channel & 0x0fff)
	e, ok := t.entries[iden]
	if !ok {
		return 0, false
	}
	return e.BaseFreqHz + chanNum*uint64(e.ChanSpaceHz), true
}

// radix50Alphabet is the standard DEC Radix-50 alphabet P25 uses to pack
// unit callsigns/aliases into 16-bit words.
const radix50Alphabet = " ABCDEFGHIJKLMNOPQRSTUVWXYZ$.%0123456789"

// Radix50Decode unpacks three characters from one 16-bit Radix-50 word.
func Radix50Decode(word uint16) string {
	v := int(word)
	c3 := v % 40
	v /= 40
	c2 := v % 40
	v /= 40
	c1 := v % 40
	chars := []byte{radix50Alphabet[c1], radix50Alphabet[c2], radix50Alphabet[c3]}
	return string(chars)
}

// SNR bias constants: empirical offsets applied to the raw discriminator
// variance estimate before mapping to a displayed SNR figure. These are
// carried over from the retrieved original_source constants without
// independent recalibration against this port's resampler/AGC chain —
// flagged in DESIGN.md as an Open Question decision (display-only, no
// correctness impact).
const (
	p25SNRBiasC4FM = 3.2
	p25SNRBiasQPSK = 1.8
)

// EstimateSNR maps a raw error-vector-magnitude estimate to a displayed
// SNR figure in dB, applying the modulation-specific bias.
func EstimateSNR(evm float64, qpsk bool) float64 {
	bias := p25SNRBiasC4FM
	if qpsk {
		bias = p25SNRBiasQPSK
	}
	if evm <= 0 {
		return 0
	}
	return 20*math.Log10(1/evm) - bias
}

// p25DUID values tag the NID's frame type. Standard TIA-102 assignments;
// like the ALGID constants above, not present in the retrieved
// original_source filtered tree.
const (
	p25DUIDHDU   uint8 = 0x0
	p25DUIDTDU   uint8 = 0x3
	p25DUIDLDU1  uint8 = 0x5
	p25DUIDTSBK  uint8 = 0x7
	p25DUIDLDU2  uint8 = 0xA
	p25DUIDPDU   uint8 = 0xC
	p25DUIDTDULC uint8 = 0xF
)

func dibitsToBits(dibits []byte, n int) []byte {
	if n > len(dibits) {
		n = len(dibits)
	}
	bits := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		d := dibits[i] & 0x3
		bits = append(bits, (d>>1)&1, d&1)
	}
	return bits
}

// decodeP25NID recovers the 12-bit NAC and 4-bit DUID from the leading
// NID field of an LDU/TSBK/PDU/TDU frame. The NAC half is corrected via
// the extended Golay(24,12) code already used elsewhere in this package;
// the DUID nibble immediately follows unprotected in this port (the
// production NID multiplexes both fields under one shortened
// Golay(63,16) codeword, which is out of scope here).
func decodeP25NID(dibits []byte) (nac uint16, duid uint8, ok bool) {
	if len(dibits) < 14 {
		return 0, 0, false
	}
	bits := dibitsToBits(dibits, 14) // 28 bits: 12 NAC data + 12 Golay parity + 4 DUID
	corrected, okGolay := Golay2412(bits[0:24])
	if !okGolay {
		return 0, 0, false
	}
	v := 0
	for _, b := range corrected {
		v = (v << 1) | int(b)
	}
	dv := 0
	for _, b := range bits[24:28] {
		dv = (dv << 1) | int(b)
	}
	return uint16(v), uint8(dv), true
}

// extractESS pulls the fields the audio gate needs from LDU2's trailing
// embedded ESS (encryption sync sequence): the algorithm ID byte and
// whether a nonzero key ID accompanies it.
func extractESS(dibits []byte) (algID uint8, keyLoaded bool) {
	if len(dibits) < 20 {
		return P25AlgIDClearAlt, false
	}
	bits := dibitsToBits(dibits[len(dibits)-20:], 20)
	a := 0
	for _, b := range bits[0:8] {
		a = (a << 1) | int(b)
	}
	kid := 0
	for _, b := range bits[8:24] {
		kid = (kid << 1) | int(b)
	}
	return uint8(a), kid != 0
}

// synthesizeIMBEFrame expands a deframed voice codeword's deinterleaved
// bits into a fixed-size PCM16 frame. This demonstrates the
// deframe/FEC/audio wiring path through the existing IMBE interleave
// table; it is not an IMBE vocoder (full speech reconstruction is out of
// scope, see DESIGN.md).
func synthesizeIMBEFrame(dibits []byte) []int16 {
	raw := dibitsToBits(dibits, minInt(len(dibits), 72))
	if len(raw) == 0 {
		return make([]int16, audioFrameSamples)
	}
	deint := IMBEDeinterleave(raw)
	frame := make([]int16, audioFrameSamples)
	for i := range frame {
		frame[i] = int16(deint[i%len(deint)]) << 7
	}
	return frame
}

// P25P1Decoder implements DecoderHandle for P25 Phase 1: NID deframe via
// Golay(24,12), LDU1/LDU2 superframe gating, ALGID/key-state audio
// muting (spec.md §4.7/§7), and terminator-driven release into the
// trunking state machine.
type P25P1Decoder struct {
	gate   LDUGate
	iden   *IdenTable
	ring   *AudioSlotRing
	events *EventRing
	trunk  *TrunkSM

	nac uint16
}

// NewP25P1Decoder builds a Phase 1 decoder writing audio into ring and
// releases/events into trunk/events. Either may be nil in isolated tests.
func NewP25P1Decoder(ring *AudioSlotRing, trunk *TrunkSM, events *EventRing) *P25P1Decoder {
	return &P25P1Decoder{iden: NewIdenTable(), ring: ring, trunk: trunk, events: events}
}

func (d *P25P1Decoder) Name() string { return "P25 Phase 1" }

func (d *P25P1Decoder) Matches(t SyncType) bool {
	return t == SyncP25P1Plus || t == SyncP25P1Minus
}

func (d *P25P1Decoder) Handle(dibits []byte, soft []byte) error {
	nac, duid, ok := decodeP25NID(dibits)
	if !ok {
		return fmt.Errorf("p25p1: NID decode failed (%d dibits)", len(dibits))
	}
	d.nac = nac

	switch duid {
	case p25DUIDTDU, p25DUIDTDULC:
		d.gate.Reset()
		if d.ring != nil {
			d.ring.SetAudioAllowed(false)
			d.ring.Flush()
		}
		if d.trunk != nil {
			d.trunk.OnRelease(0, false)
		}
		d.pushEvent(fmt.Sprintf("NAC %03X terminator", d.nac))
		return nil
	case p25DUIDLDU1:
		d.gate.Feed(LDU1)
	case p25DUIDLDU2:
		d.gate.Feed(LDU2)
		algID, keyLoaded := extractESS(dibits)
		wasAllowed := d.gate.AudioAllowed()
		d.gate.SetAlgID(algID, keyLoaded)
		nowAllowed := d.gate.AudioAllowed()
		if d.ring != nil {
			d.ring.SetAudioAllowed(nowAllowed)
			if wasAllowed && !nowAllowed {
				d.ring.Flush()
			}
		}
	default:
		d.pushEvent(fmt.Sprintf("NAC %03X duid %d", d.nac, duid))
		return nil
	}

	if d.ring != nil && d.gate.AudioAllowed() {
		d.ring.Push(synthesizeIMBEFrame(dibits))
	}
	if d.trunk != nil {
		d.trunk.OnVoiceActivity(0)
	}
	return nil
}

func (d *P25P1Decoder) pushEvent(text string) {
	if d.events == nil {
		return
	}
	d.events.Push(EventRecord{Time: time.Now(), Source: "P25P1", Text: text})
}

func (d *P25P1Decoder) OnReset() {
	d.gate.Reset()
}
