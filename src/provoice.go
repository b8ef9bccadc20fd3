package dsdneo

import (
	"fmt"
	"time"
)

// ProVoice/EDACS decoder handle: a header field selects an IMBE voice
// subframe (reusing p25_p1.go's IMBEDeinterleave, the vocoder ProVoice
// shares with P25 Phase 1) or a Golay(24,12)-protected control field,
// following nxdn.go/ysf.go/dpmr.go's shape.
type ProVoiceDecoder struct {
	ring   *AudioSlotRing
	events *EventRing
	frames int
}

// NewProVoiceDecoder builds a ProVoice/EDACS decoder; ring/events may be
// nil in isolated tests.
func NewProVoiceDecoder(ring *AudioSlotRing, events *EventRing) *ProVoiceDecoder {
	return &ProVoiceDecoder{ring: ring, events: events}
}

func (d *ProVoiceDecoder) Name() string { return "ProVoice/EDACS" }

func (d *ProVoiceDecoder) Matches(t SyncType) bool {
	return t == SyncProVoiceEDACSPlus || t == SyncProVoiceEDACSMinus
}

func (d *ProVoiceDecoder) Handle(dibits []byte, soft []byte) error {
	if len(dibits) < 2 {
		return fmt.Errorf("provoice: short burst (%d dibits)", len(dibits))
	}
	header := dibitsToUint(dibits[0:2])
	isVoice := header&0x2 != 0

	const voiceSubDibits = 24
	if isVoice && len(dibits) >= 2+voiceSubDibits {
		sub := dibits[2 : 2+voiceSubDibits]
		deint := IMBEDeinterleave(sub)
		pcm := make([]int16, audioFrameSamples)
		for i := range pcm {
			pcm[i] = int16(deint[i%len(deint)]) << 7
		}
		if d.ring != nil {
			d.ring.Push(pcm)
		}
		d.frames++
		d.pushEvent(fmt.Sprintf("voice subframe header=%#x", header))
		return nil
	}

	const controlDibits = 12 // 24 bits, a full Golay(24,12) codeword
	if len(dibits) >= 2+controlDibits {
		bits := dibitsToBits(dibits[2:2+controlDibits], controlDibits)
		if _, ok := Golay2412(bits); !ok {
			d.pushEvent(fmt.Sprintf("control field Golay correction failed header=%#x", header))
			return nil
		}
		d.frames++
		d.pushEvent(fmt.Sprintf("control field header=%#x", header))
		return nil
	}

	d.frames++
	return nil
}

func (d *ProVoiceDecoder) pushEvent(text string) {
	if d.events == nil {
		return
	}
	d.events.Push(EventRecord{Time: time.Now(), Source: "ProVoice", Text: text})
}

func (d *ProVoiceDecoder) OnReset() { d.frames = 0 }
