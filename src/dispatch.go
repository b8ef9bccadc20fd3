package dsdneo

// DecoderHandle is the interface every protocol decoder implements; per
// spec.md §9 each decoder holds its own explicit state rather than
// reaching into a shared global.
type DecoderHandle interface {
	// Name identifies the handler for logging/diagnostics.
	Name() string
	// Matches reports whether this handler owns the given sync type.
	Matches(t SyncType) bool
	// Handle consumes dibits starting at the sync offset and publishes
	// events via the decoder's own event sink.
	Handle(dibits []byte, soft []byte) error
	// OnReset is called when the synchronizer loses lock.
	OnReset()
}

// Dispatcher holds the static handler table of spec.md §4.6: the first
// handler whose Matches returns true for a detected sync is invoked. Sync
// types with no matching handler are ignored.
type Dispatcher struct {
	handlers []DecoderHandle
}

func NewDispatcher(handlers ...DecoderHandle) *Dispatcher {
	return &Dispatcher{handlers: handlers}
}

// Dispatch invokes the first matching handler for a sync result, returning
// false if no handler claims the sync type.
func (d *Dispatcher) Dispatch(result FrameSyncResult, dibits []byte, soft []byte) (bool, error) {
	for _, h := range d.handlers {
		if h.Matches(result.Type) {
			return true, h.Handle(dibits, soft)
		}
	}
	return false, nil
}

// ResetAll calls OnReset on every registered handler, used when the
// synchronizer loses lock.
func (d *Dispatcher) ResetAll() {
	for _, h := range d.handlers {
		h.OnReset()
	}
}

// DefaultDecoderHandles builds the full protocol handler table, each
// sharing the engine's single trunking state machine, stereo audio
// mixer, and event log (spec.md §4.6's static handler table). dmrColorCode
// pins the DMR Tier-III color code this deployment expects; trunk/mixer/
// events may be nil in isolated construction, in which case the returned
// handlers fall back to their own per-call nil checks.
func DefaultDecoderHandles(trunk *TrunkSM, mixer *StereoMixer, events *EventRing, dmrColorCode int) []DecoderHandle {
	var left, right *AudioSlotRing
	if mixer != nil {
		left = mixer.Left
		right = mixer.Right
	}
	var dmrTrunk *DMRTrunkState
	if trunk != nil {
		dmrTrunk = &DMRTrunkState{TrunkSM: trunk, ColorCode: dmrColorCode}
	}

	return []DecoderHandle{
		NewP25P1Decoder(left, trunk, events),
		NewP25P2Decoder(trunk, events),
		NewDMRDecoder(dmrTrunk, left, events),
		NewNXDNDecoder(right, events),
		NewYSFDecoder(right, events),
		NewDPMRDecoder(right, events),
		NewProVoiceDecoder(right, events),
		NewDStarDecoder(),
	}
}
