package dsdneo

import (
	"fmt"
	"time"
)

// dPMR decoder handle, matching all four FS1-4 sync burst variants. A
// slot-type field selects an AMBE voice subframe or a short-link-control
// field protected by DMR's Hamming(17,12,3) (dPMR's SLC uses the same
// code family), following ysf.go/nxdn.go's shape.
type DPMRDecoder struct {
	ring   *AudioSlotRing
	events *EventRing
	frames int
}

// NewDPMRDecoder builds a dPMR decoder; ring/events may be nil in
// isolated tests.
func NewDPMRDecoder(ring *AudioSlotRing, events *EventRing) *DPMRDecoder {
	return &DPMRDecoder{ring: ring, events: events}
}

func (d *DPMRDecoder) Name() string { return "dPMR" }

func (d *DPMRDecoder) Matches(t SyncType) bool {
	switch t {
	case SyncDPMRFS1Plus, SyncDPMRFS1Minus, SyncDPMRFS2Plus, SyncDPMRFS2Minus,
		SyncDPMRFS3Plus, SyncDPMRFS3Minus, SyncDPMRFS4Plus, SyncDPMRFS4Minus:
		return true
	default:
		return false
	}
}

func (d *DPMRDecoder) Handle(dibits []byte, soft []byte) error {
	if len(dibits) < 2 {
		return fmt.Errorf("dpmr: short burst (%d dibits)", len(dibits))
	}
	slotType := dibitsToUint(dibits[0:2])
	isVoice := slotType&0x1 == 0

	const voiceSubDibits = 24
	if isVoice && len(dibits) >= 2+voiceSubDibits {
		sub := dibits[2 : 2+voiceSubDibits]
		deint := AMBEDeinterleave(sub, 2)
		pcm := make([]int16, audioFrameSamples)
		for i := range pcm {
			pcm[i] = int16(deint[i%len(deint)]) << 7
		}
		if d.ring != nil {
			d.ring.Push(pcm)
		}
		d.frames++
		d.pushEvent(fmt.Sprintf("voice subframe slot_type=%#x", slotType))
		return nil
	}

	const slcDibits = 9 // 18 bits, enough to cover the 17-bit codeword
	if len(dibits) >= 2+slcDibits {
		bits := dibitsToBits(dibits[2:2+slcDibits], slcDibits)
		if _, ok := DMRHamming17123(bits[:17]); !ok {
			d.pushEvent(fmt.Sprintf("SLC Hamming correction failed slot_type=%#x", slotType))
			return nil
		}
		d.frames++
		d.pushEvent(fmt.Sprintf("link control subframe slot_type=%#x", slotType))
		return nil
	}

	d.frames++
	return nil
}

func (d *DPMRDecoder) pushEvent(text string) {
	if d.events == nil {
		return
	}
	d.events.Push(EventRecord{Time: time.Now(), Source: "dPMR", Text: text})
}

func (d *DPMRDecoder) OnReset() { d.frames = 0 }
