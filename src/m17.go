package dsdneo

// M17 link setup frame parsing and callsign decode, ported from the exact
// bit offsets in original_source's m17_parse.c and the public M17
// base-40 callsign alphabet (m17_tables.h's b40 table body was not in the
// retrieved excerpt, so the publicly documented M17 alphabet is used
// verbatim instead; see DESIGN.md).

const m17Base40Alphabet = " ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-/."

// M17LSF is a parsed M17 Link Setup Frame.
type M17LSF struct {
	Dst  string
	Src  string
	Type uint16
	Meta [14]byte
	CRC  uint16
}

// ParseM17LSF decodes a 240-bit LSF (30 bytes) using the exact field
// offsets from m17_parse.c: DST[0:6] SRC[6:12] TYPE[12:14] META[14:28]
// CRC[28:30], big-endian 48-bit addresses base-40 decoded.
func ParseM17LSF(raw []byte) (M17LSF, bool) {
	if len(raw) < 30 {
		return M17LSF{}, false
	}
	var lsf M17LSF
	dst := beUint48(raw[0:6])
	src := beUint48(raw[6:12])
	lsf.Dst = base40Decode(dst)
	lsf.Src = base40Decode(src)
	lsf.Type = uint16(raw[12])<<8 | uint16(raw[13])
	copy(lsf.Meta[:], raw[14:28])
	lsf.CRC = uint16(raw[28])<<8 | uint16(raw[29])
	return lsf, true
}

func beUint48(b []byte) uint64 {
	var v uint64
	for i := 0; i < 6; i++ {
		v = (v << 8) | uint64(b[i])
	}
	return v
}

// base40Decode unpacks a 48-bit M17 address into its base-40 callsign
// string, extracting up to nine characters least-significant-first then
// reversing, per the M17 addressing convention.
func base40Decode(addr uint64) string {
	if addr == 0 {
		return ""
	}
	var chars [9]byte
	n := 0
	v := addr
	for v > 0 && n < 9 {
		idx := v % 40
		chars[n] = m17Base40Alphabet[idx]
		v /= 40
		n++
	}
	// Reverse in place.
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = chars[n-1-i]
	}
	return string(out)
}

// m17PacketProtocolNames maps the M17 packet-mode protocol number (the
// first payload byte of a PKT superframe) to a display name.
var m17PacketProtocolNames = map[byte]string{
	0x01: "SMS",
	0x02: "WinLink",
	0x03: "AX.25",
	0x04: "APRS",
	0x05: "6LoWPAN",
	0x06: "IPv4",
	0x07: "SIP",
	0xff: "Raw",
}

// M17PacketProtocolName resolves a packet-mode protocol byte to a name,
// or "Unknown" if unrecognized.
func M17PacketProtocolName(proto byte) string {
	if name, ok := m17PacketProtocolNames[proto]; ok {
		return name
	}
	return "Unknown"
}
