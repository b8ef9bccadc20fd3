package dsdneo

import (
	"fmt"
	"time"
)

// P25 Phase 2 MAC message handling: the opcode length table (with vendor
// overrides) and the RS(63,35)-puncture wrappers for FACCH/SACCH/ESS,
// ported verbatim (same 256-entry table and override order) from
// original_source/src/protocol/p25/phase2/p25p2_mac_table.c, cross-checked
// against original_source/tests/protocol/p25/test_p25_mac_lengths.c.

// MacOpcode identifies a Phase 2 MAC PDU's opcode byte.
type MacOpcode uint8

// macMsgLen holds, per opcode byte, the PDU length in octets following the
// opcode (MFID + payload, excluding the opcode itself); 0 means "not in the
// base table", resolved via macLengthOverride below.
var macMsgLen = [256]uint8{
	0, 7, 8, 7, 0, 16, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x00-0x0F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x10-0x1F
	0, 14, 15, 0, 0, 15, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x20-0x2F
	5, 7, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x30-0x3F
	9, 7, 9, 0, 9, 8, 9, 0, 10, 10, 9, 0, 10, 0, 0, 0, // 0x40-0x4F
	0, 0, 0, 0, 9, 7, 0, 0, 10, 0, 7, 0, 10, 8, 14, 7, // 0x50-0x5F
	9, 9, 0, 0, 9, 0, 0, 9, 10, 0, 7, 10, 10, 7, 0, 9, // 0x60-0x6F
	9, 29, 9, 9, 9, 9, 10, 13, 9, 9, 9, 11, 9, 9, 0, 0, // 0x70-0x7F
	8, 18, 0, 7, 11, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 7, // 0x80-0x8F (Harris variants)
	0, 17, 0, 0, 0, 17, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x90-0x9F (Moto 0x91/0x95)
	16, 0, 0, 11, 13, 11, 11, 11, 10, 0, 0, 0, 0, 0, 0, 0, // 0xA0-0xAF
	17, 0, 0, 0, 0, 5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xB0-0xBF (B0 Harris, B5 Tait)
	11, 0, 0, 8, 15, 12, 15, 32, 12, 12, 0, 27, 14, 29, 29, 32, // 0xC0-0xCF
	0, 0, 0, 0, 0, 0, 9, 0, 14, 29, 11, 27, 14, 0, 40, 11, // 0xD0-0xDF
	28, 0, 0, 14, 17, 14, 0, 0, 16, 8, 11, 0, 13, 19, 0, 0, // 0xE0-0xEF
	0, 29, 16, 14, 0, 0, 12, 0, 22, 29, 11, 13, 11, 0, 15, 0, // 0xF0-0xFF (F1 = 29)
}

// macLengthOverride resolves vendor-prefixed MAC PDUs whose base table
// entry is 0 (unfilled), per the vendor lengths observed in the wild and
// captured in p25p2_mac_table.c's p25p2_mac_len_for.
func macLengthOverride(vendorID uint8, opcode MacOpcode) (int, bool) {
	switch {
	case vendorID == 0x90 && (opcode == 0x91 || opcode == 0x95):
		return 17, true // Motorola
	case vendorID == 0xB0:
		return 17, true // Harris (generic observed length)
	case vendorID == 0xB5:
		return 5, true // Tait (generic observed length)
	case vendorID == 0x81 || vendorID == 0x8F:
		return 7, true // Harris additional
	default:
		return 0, false
	}
}

// MacLength resolves the wire length of a MAC PDU: the base opcode table
// first, falling back to the vendor override table only when the base
// entry is unfilled (0), matching p25p2_mac_len_for's precedence exactly.
func MacLength(vendorID uint8, opcode MacOpcode) (int, bool) {
	if n := macMsgLen[opcode]; n != 0 {
		return int(n), true
	}
	return macLengthOverride(vendorID, opcode)
}

// FACCHDecode corrects a Phase 2 FACCH RS(63,35)-shortened block in place.
func FACCHDecode(symbols []int) int { return RSDecode(P25RSFACCH, symbols) }

// SACCHDecode corrects a Phase 2 SACCH RS(63,35)-shortened block in place.
func SACCHDecode(symbols []int) int { return RSDecode(P25RSSACCH, symbols) }

// ESSDecode corrects a Phase 2 encryption-sync-shuttle block in place.
func ESSDecode(symbols []int) int { return RSDecode(P25RSESS, symbols) }

// Phase 2 MAC opcodes this decoder dispatches into the trunking state
// machine; the rest pass through as generic MAC activity.
const (
	macOpcodeGroupVoiceGrant MacOpcode = 0x40
	macOpcodeIndivVoiceGrant MacOpcode = 0x44
)

func dibitsToUint(dibits []byte) uint32 {
	v := uint32(0)
	for _, d := range dibits {
		v = (v << 2) | uint32(d&0x3)
	}
	return v
}

// dibitsToSymbols packs 3 dibits (6 bits) per GF(64) RS symbol, the wire
// width FACCH/SACCH/ESS blocks use.
func dibitsToSymbols(dibits []byte) []int {
	n := len(dibits) / 3
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int(dibitsToUint(dibits[i*3 : i*3+3]))
	}
	return out
}

// decodeGroupGrantFields reads the channel and talkgroup fields following
// a group voice grant's opcode+MFID header. The channel-to-frequency
// resolution here is a fixed 12.5kHz band-plan placeholder: a real
// deployment would resolve it through the IDEN_UP table (IdenTable in
// p25_p1.go), which isn't wired into MAC PDU parsing in this port.
func decodeGroupGrantFields(dibits []byte) (freqHz uint64, tg uint32) {
	if len(dibits) < 24 {
		return 0, 0
	}
	channel := dibitsToUint(dibits[8:16])
	tg = dibitsToUint(dibits[16:24])
	return 851_000_000 + uint64(channel)*12_500, tg
}

// decodeIndivGrantFields mirrors decodeGroupGrantFields for individual
// (unit-to-unit) voice grants.
func decodeIndivGrantFields(dibits []byte) (freqHz uint64, unit uint32) {
	if len(dibits) < 24 {
		return 0, 0
	}
	channel := dibitsToUint(dibits[8:16])
	unit = dibitsToUint(dibits[16:24])
	return 851_000_000 + uint64(channel)*12_500, unit
}

// P25P2Decoder implements DecoderHandle for P25 Phase 2 superframes: MAC
// PDU opcode/length resolution (MacLength), FACCH RS correction, and
// group/individual voice grant dispatch into the trunking state machine.
type P25P2Decoder struct {
	trunk  *TrunkSM
	events *EventRing
}

// NewP25P2Decoder builds a Phase 2 decoder dispatching grants into trunk
// and logging into events; either may be nil in isolated tests.
func NewP25P2Decoder(trunk *TrunkSM, events *EventRing) *P25P2Decoder {
	return &P25P2Decoder{trunk: trunk, events: events}
}

func (d *P25P2Decoder) Name() string { return "P25 Phase 2" }

func (d *P25P2Decoder) Matches(t SyncType) bool {
	return t == SyncP25P2Plus || t == SyncP25P2Minus
}

func (d *P25P2Decoder) Handle(dibits []byte, soft []byte) error {
	if len(dibits) < 8 {
		return fmt.Errorf("p25p2: short MAC PDU (%d dibits)", len(dibits))
	}
	vendorID := uint8(dibitsToUint(dibits[0:4]))
	opcode := MacOpcode(uint8(dibitsToUint(dibits[4:8])))

	length, ok := MacLength(vendorID, opcode)
	if !ok {
		d.pushEvent(fmt.Sprintf("unrecognized MAC opcode %#02x vendor %#02x", uint8(opcode), vendorID))
		return nil
	}

	facchDibits := 3 * P25RSFACCH.N
	if len(dibits) >= 8+facchDibits {
		if n := FACCHDecode(dibitsToSymbols(dibits[8 : 8+facchDibits])); n < 0 {
			return fmt.Errorf("p25p2: FACCH RS decode failed for opcode %#02x", uint8(opcode))
		}
	}

	switch opcode {
	case macOpcodeGroupVoiceGrant:
		freqHz, tg := decodeGroupGrantFields(dibits)
		if d.trunk != nil {
			d.trunk.OnGroupGrant(freqHz, 0, tg, 0)
		}
		d.pushEvent(fmt.Sprintf("group grant tg=%d freq=%d len=%d", tg, freqHz, length))
	case macOpcodeIndivVoiceGrant:
		freqHz, unit := decodeIndivGrantFields(dibits)
		if d.trunk != nil {
			d.trunk.OnIndivGrant(freqHz, 0, unit, 0)
		}
		d.pushEvent(fmt.Sprintf("individual grant unit=%d freq=%d len=%d", unit, freqHz, length))
	default:
		if d.trunk != nil {
			d.trunk.OnMacActivity(0)
		}
	}
	return nil
}

func (d *P25P2Decoder) pushEvent(text string) {
	if d.events == nil {
		return
	}
	d.events.Push(EventRecord{Time: time.Now(), Source: "P25P2", Text: text})
}

func (d *P25P2Decoder) OnReset() {}
