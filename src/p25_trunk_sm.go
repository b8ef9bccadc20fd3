package dsdneo

// P25 trunking state machine: control-channel/voice-channel tuning
// decisions driven by grant/release events and a watchdog tick, ported in
// shape from original_source/src/protocol/p25/p25_trunk_sm_wrap.c and
// p25_trunk_sm_api.c's event-driven API surface, generalized to the
// per-slot grant-gating model of spec.md §4.10/§4.11.

// TrunkState is the coarse tuning state.
type TrunkState int

const (
	TrunkOnCC TrunkState = iota
	TrunkTuned
	TrunkHang
)

// TrunkSubState tracks the finer-grained progress of a tuned call, per
// spec.md §4.10.
type TrunkSubState int

const (
	SubNone TrunkSubState = iota
	SubArmed
	SubFollowing
	SubHang
)

// ccCandidateCacheMax is the bounded FIFO depth of spec.md §3/§6:
// "Bounded FIFO of up to 16 entries ... dedupe is by frequency."
const ccCandidateCacheMax = 16

// p25SvcBitEnc is the TIA-102 service options ENC (emergency/encrypted
// call) bit: bit 6 of the one-byte service options field carried in
// group/individual voice channel grants.
const p25SvcBitEnc uint8 = 0x40

// CCCandidate is one control-channel candidate frequency with a cooldown
// after a failed tune attempt.
type CCCandidate struct {
	FreqHz        uint64
	cooldownTicks int
}

// SlotState is the per-slot activity bookkeeping scenario S3/S8 and
// testable property 11 require: whether the slot currently carries
// voice/MAC activity, so releasing one slot doesn't thrash the SM back
// to the control channel while the other slot is still live.
type SlotState struct {
	Active        bool
	LastVoiceTick int
	LastMacTick   int
}

// TrunkSM is the event-driven trunking state machine. Hold durations are
// expressed in ticks (spec.md leaves the tick period to the engine; tests
// exercise it as an abstract counter).
type TrunkSM struct {
	State       TrunkState
	Sub         TrunkSubState
	CurrentFreq uint64
	CCFreq      uint64

	HangTicksRemaining int
	HangTicksTotal     int

	Slots [2]SlotState

	candidates []*CCCandidate
	candIdx    int
	candAdded  int
	candUsed   int

	talkgroup uint32
	unit      uint32

	// Tune is invoked for both VC grants and CC returns; spec.md §5's
	// ordering guarantee ("grant events precede any tune call they
	// induce") holds because a grant mutates State/Sub only after
	// Tune.TuneTo has been called and has not errored. A CC return
	// (returnToCC) ignores a TuneTo error and resets the state regardless.
	Tune TuneHook

	// Policy gates evaluated in the order spec.md §4.10 step 1 lists.
	TrunkTuneEncCalls bool            // allow tuning to ENC-flagged calls outright
	TGHold            uint32          // 0 = no hold; nonzero = tune only this TG
	GroupArrayLockout map[uint32]bool // DE/B lockout by talkgroup
	RegroupKeyZero    map[uint32]bool // patched talkgroups with KEY=0 (ENC override)
	IdenTrustLevel    func(idenID int) (level int, known bool)

	ProvisionalAllow     bool
	ReleaseCount         int
	DeferredReleaseCount int
	PolicyDenyCount      int
}

// NewTrunkSM builds a trunk state machine starting on the control channel
// with the given hang-time budget (in ticks) for released calls.
func NewTrunkSM(hangTicks int) *TrunkSM {
	return &TrunkSM{
		State:             TrunkOnCC,
		Sub:               SubNone,
		HangTicksTotal:    hangTicks,
		Tune:              NewNoopTuneHook(),
		GroupArrayLockout: make(map[uint32]bool),
		RegroupKeyZero:    make(map[uint32]bool),
	}
}

// AddCandidate registers a control-channel candidate frequency: a no-op
// if the frequency is already present (dedupe by frequency), otherwise
// appended, evicting the oldest non-current entry first if the FIFO is
// already at capacity (spec.md §3, testable property 12, scenario S4).
func (t *TrunkSM) AddCandidate(freqHz uint64) {
	for _, c := range t.candidates {
		if c.FreqHz == freqHz {
			return
		}
	}
	t.candAdded++
	if len(t.candidates) >= ccCandidateCacheMax {
		evict := -1
		for i, c := range t.candidates {
			if c.FreqHz != t.CurrentFreq {
				evict = i
				break
			}
		}
		if evict == -1 {
			return // every candidate is the current one; nothing evictable
		}
		t.candidates = append(t.candidates[:evict], t.candidates[evict+1:]...)
	}
	t.candidates = append(t.candidates, &CCCandidate{FreqHz: freqHz})
}

// CandidateCount reports the number of distinct candidates currently held.
func (t *TrunkSM) CandidateCount() int { return len(t.candidates) }

// CandidateStats reports the added/used counters spec.md §3 calls for.
func (t *TrunkSM) CandidateStats() (added, used int) { return t.candAdded, t.candUsed }

// grantGate evaluates the policy gates of spec.md §4.10 step 1, in
// order, for a grant with the given service bits and (zero-value if not
// applicable) talkgroup. It reports whether the grant is allowed and
// whether allowance is only "provisional" (IDEN has no trust provenance
// yet, permitted because we are currently on the CC).
func (t *TrunkSM) grantGate(svcBits uint8, tg uint32, idenID int) (allow bool, provisional bool) {
	enc := svcBits&p25SvcBitEnc != 0
	if enc && !t.TrunkTuneEncCalls && !t.RegroupKeyZero[tg] {
		return false, false
	}
	if tg != 0 && t.TGHold != 0 && tg != t.TGHold {
		return false, false
	}
	if t.GroupArrayLockout[tg] {
		return false, false
	}
	if t.IdenTrustLevel != nil {
		if level, known := t.IdenTrustLevel(idenID); known && level == 0 {
			return true, true
		}
	}
	return true, false
}

// tuneTo resolves a grant gate pass into an actual tune call and state
// transition, returning whether the tune was attempted and succeeded.
func (t *TrunkSM) tuneTo(freqHz uint64, tg, unit uint32, provisional bool) bool {
	if t.Tune.TuneTo != nil {
		if err := t.Tune.TuneTo(freqHz); err != nil {
			return false
		}
	}
	t.ProvisionalAllow = provisional
	t.CurrentFreq = freqHz
	t.talkgroup = tg
	t.unit = unit
	t.State = TrunkTuned
	t.Sub = SubArmed
	t.HangTicksRemaining = 0
	t.Slots[0] = SlotState{}
	t.Slots[1] = SlotState{}
	return true
}

// OnGroupGrant handles a group voice channel grant while on the control
// channel: it runs the policy gates, then tunes only if every gate
// passes (spec.md §4.10 step 1, scenario S5). Returns whether the grant
// resulted in a tune.
func (t *TrunkSM) OnGroupGrant(freqHz uint64, svcBits uint8, tg uint32, idenID int) bool {
	if t.State != TrunkOnCC {
		return false
	}
	allow, provisional := t.grantGate(svcBits, tg, idenID)
	if !allow {
		t.PolicyDenyCount++
		return false
	}
	return t.tuneTo(freqHz, tg, 0, provisional)
}

// OnIndivGrant handles an individual (unit-to-unit) voice channel grant;
// TG-hold and group-array lockout do not apply to unit calls.
func (t *TrunkSM) OnIndivGrant(freqHz uint64, svcBits uint8, unit uint32, idenID int) bool {
	if t.State != TrunkOnCC {
		return false
	}
	enc := svcBits&p25SvcBitEnc != 0
	if enc && !t.TrunkTuneEncCalls {
		t.PolicyDenyCount++
		return false
	}
	provisional := false
	if t.IdenTrustLevel != nil {
		if level, known := t.IdenTrustLevel(idenID); known && level == 0 {
			provisional = true
		}
	}
	return t.tuneTo(freqHz, 0, unit, provisional)
}

// OnVoiceActivity transitions an armed call to following once voice
// frames are actually observed on the tuned channel's slot.
func (t *TrunkSM) OnVoiceActivity(slot int) {
	slot = slot & 1
	t.Slots[slot].Active = true
	t.Slots[slot].LastVoiceTick++
	if t.State == TrunkTuned && t.Sub == SubArmed {
		t.Sub = SubFollowing
	}
}

// OnMacActivity records P25 Phase 2 MAC-layer activity on a slot without
// necessarily carrying voice (e.g. an idle-update MAC PDU), keeping the
// slot "active" for release-gating purposes.
func (t *TrunkSM) OnMacActivity(slot int) {
	slot = slot & 1
	t.Slots[slot].Active = true
	t.Slots[slot].LastMacTick++
}

// OnIdle marks a slot quiet.
func (t *TrunkSM) OnIdle(slot int) {
	t.Slots[slot&1].Active = false
}

// OnRelease handles an explicit channel release (or grant timeout) on
// the given slot. Per spec.md §4.10 transition 6: `force_release` always
// returns to the control channel; otherwise, if the opposite slot is
// still active, the release is deferred (scenario S3, testable property
// 11) — only once both slots are quiet does the SM enter the hang-time
// window (transition 4/5) before returning to CC.
func (t *TrunkSM) OnRelease(slot int, forceRelease bool) {
	if t.State != TrunkTuned && t.State != TrunkHang {
		return
	}
	slot = slot & 1
	t.Slots[slot].Active = false
	other := 1 - slot
	t.ReleaseCount++
	if forceRelease {
		t.returnToCC()
		return
	}
	if t.Slots[other].Active {
		t.DeferredReleaseCount++
		return
	}
	if t.State == TrunkTuned {
		t.State = TrunkHang
		t.Sub = SubHang
		t.HangTicksRemaining = t.HangTicksTotal
	}
}

func (t *TrunkSM) returnToCC() {
	if t.CCFreq != 0 && t.Tune.TuneTo != nil {
		_ = t.Tune.TuneTo(t.CCFreq)
	}
	t.State = TrunkOnCC
	t.Sub = SubNone
	t.CurrentFreq = 0
	t.Slots[0] = SlotState{}
	t.Slots[1] = SlotState{}
}

// Tick advances the hang-time countdown by one tick, returning to the
// control channel once it reaches zero (unless a slot regained activity
// during the hang window, in which case following resumes). Also decays
// candidate cooldowns.
func (t *TrunkSM) Tick() {
	for _, c := range t.candidates {
		if c.cooldownTicks > 0 {
			c.cooldownTicks--
		}
	}
	if t.State != TrunkHang {
		return
	}
	if t.Slots[0].Active || t.Slots[1].Active {
		t.State = TrunkTuned
		t.Sub = SubFollowing
		return
	}
	if t.HangTicksRemaining > 0 {
		t.HangTicksRemaining--
	}
	if t.HangTicksRemaining > 0 {
		return
	}
	t.returnToCC()
}

// NextCCCandidate returns the next control-channel candidate not
// currently in cooldown, round-robin, or false if all candidates are
// cooling down.
func (t *TrunkSM) NextCCCandidate() (uint64, bool) {
	if len(t.candidates) == 0 {
		return 0, false
	}
	for i := 0; i < len(t.candidates); i++ {
		idx := (t.candIdx + i) % len(t.candidates)
		if t.candidates[idx].cooldownTicks == 0 {
			t.candIdx = (idx + 1) % len(t.candidates)
			t.candUsed++
			return t.candidates[idx].FreqHz, true
		}
	}
	return 0, false
}

// MarkCandidateFailed puts the given candidate frequency into cooldown
// after a failed control-channel tune attempt.
func (t *TrunkSM) MarkCandidateFailed(freqHz uint64, cooldownTicks int) {
	for _, c := range t.candidates {
		if c.FreqHz == freqHz {
			c.cooldownTicks = cooldownTicks
			return
		}
	}
}
