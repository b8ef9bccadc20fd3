package dsdneo

import (
	"fmt"
	"time"
)

// Yaesu System Fusion decoder handle: a simplified FICH frame-type field
// selects between a voice subframe (AMBE, reusing dmr.go's
// AMBEDeinterleave with a distinct slot ordering from NXDN/DMR) and a
// data subframe whose CRC8 over the first 8 bits is computed and reported
// in the event text (it is not compared against a received value),
// following nxdn.go/dmr.go's shape.
type YSFDecoder struct {
	ring   *AudioSlotRing
	events *EventRing
	frames int
}

// NewYSFDecoder builds a YSF decoder; ring/events may be nil in isolated
// tests.
func NewYSFDecoder(ring *AudioSlotRing, events *EventRing) *YSFDecoder {
	return &YSFDecoder{ring: ring, events: events}
}

func (d *YSFDecoder) Name() string { return "YSF" }

func (d *YSFDecoder) Matches(t SyncType) bool {
	return t == SyncYSFPlus || t == SyncYSFMinus
}

func (d *YSFDecoder) Handle(dibits []byte, soft []byte) error {
	if len(dibits) < 2 {
		return fmt.Errorf("ysf: short burst (%d dibits)", len(dibits))
	}
	fich := dibitsToUint(dibits[0:2])
	isVoice := fich&0x1 == 0

	const voiceSubDibits = 24
	if isVoice && len(dibits) >= 2+voiceSubDibits {
		sub := dibits[2 : 2+voiceSubDibits]
		deint := AMBEDeinterleave(sub, 1)
		pcm := make([]int16, audioFrameSamples)
		for i := range pcm {
			pcm[i] = int16(deint[i%len(deint)]) << 7
		}
		if d.ring != nil {
			d.ring.Push(pcm)
		}
		d.frames++
		d.pushEvent(fmt.Sprintf("V/D voice subframe fich=%#x", fich))
		return nil
	}

	const dataDibits = 8 // 16 bits
	if len(dibits) >= 2+dataDibits {
		bits := dibitsToBits(dibits[2:2+dataDibits], dataDibits)
		crc := CRC8(bits[:8])
		d.frames++
		d.pushEvent(fmt.Sprintf("data subframe fich=%#x crc=%#02x", fich, crc))
		return nil
	}

	d.frames++
	return nil
}

func (d *YSFDecoder) pushEvent(text string) {
	if d.events == nil {
		return
	}
	d.events.Push(EventRecord{Time: time.Now(), Source: "YSF", Text: text})
}

func (d *YSFDecoder) OnReset() { d.frames = 0 }
