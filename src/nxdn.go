package dsdneo

import (
	"fmt"
	"time"
)

// NXDN decoder handle: LICH-style type field, AMBE voice subframe
// recovery (reusing dmr.go's AMBEDeinterleave, the vocoder NXDN shares
// with DMR), and Hamming(15,11) correction on the SACCH control field,
// the same uniform Deframe/FEC/Parse/Audio/Events shape the P25/DMR
// decoders follow per spec.md §4.6.
type NXDNDecoder struct {
	ring   *AudioSlotRing
	events *EventRing
	frames int
}

// NewNXDNDecoder builds an NXDN decoder; ring/events may be nil in
// isolated tests.
func NewNXDNDecoder(ring *AudioSlotRing, events *EventRing) *NXDNDecoder {
	return &NXDNDecoder{ring: ring, events: events}
}

func (d *NXDNDecoder) Name() string { return "NXDN" }

func (d *NXDNDecoder) Matches(t SyncType) bool {
	return t == SyncNXDNPlus || t == SyncNXDNMinus
}

func (d *NXDNDecoder) Handle(dibits []byte, soft []byte) error {
	if len(dibits) < 2 {
		return fmt.Errorf("nxdn: short burst (%d dibits)", len(dibits))
	}
	lich := dibitsToUint(dibits[0:2])
	isVoice := lich&0x2 != 0

	const voiceSubDibits = 24 // one AMBE subframe (72 bits / 3)
	if isVoice && len(dibits) >= 2+voiceSubDibits {
		sub := dibits[2 : 2+voiceSubDibits]
		deint := AMBEDeinterleave(sub, 0)
		pcm := make([]int16, audioFrameSamples)
		for i := range pcm {
			pcm[i] = int16(deint[i%len(deint)]) << 7
		}
		if d.ring != nil {
			d.ring.Push(pcm)
		}
		d.frames++
		d.pushEvent(fmt.Sprintf("voice frame lich=%#x", lich))
		return nil
	}

	const sacchDibits = 8 // 16 bits, enough to cover the 15-bit codeword
	if len(dibits) >= 2+sacchDibits {
		bits := dibitsToBits(dibits[2:2+sacchDibits], sacchDibits)
		if _, ok := Hamming1511(bits[:15]); !ok {
			d.pushEvent(fmt.Sprintf("SACCH Hamming correction failed lich=%#x", lich))
			return nil
		}
		d.frames++
		d.pushEvent(fmt.Sprintf("signalling frame lich=%#x", lich))
		return nil
	}

	d.frames++
	return nil
}

func (d *NXDNDecoder) pushEvent(text string) {
	if d.events == nil {
		return
	}
	d.events.Push(EventRecord{Time: time.Now(), Source: "NXDN", Text: text})
}

func (d *NXDNDecoder) OnReset() { d.frames = 0 }
