package dsdneo

import (
	"sync"
	"sync/atomic"
	"time"
)

// Engine wires the demod, audio sink, UI, and watchdog threads, each with
// its own suspension point and a shared shutdown signal. It starts no
// source thread and never writes the input ring itself. Mirrors the teacher's cmd/direwolf channel-owner
// thread layout, generalized from APRS TNC framing to this decoder's
// demod/trunking pipeline.
type Engine struct {
	cfg Config

	ring   *InputRing
	demod  *DemodState
	sync   *FrameSyncSearcher
	disp   *Dispatcher
	trunk  *TrunkSM
	mixer  *StereoMixer
	events *EventRing

	Tune      TuneHook
	Telemetry TelemetryHook
	CCLog     P25EventLogHook
	ControlPump ControlPumpHook

	shutdown atomic.Bool
	wg       sync.WaitGroup

	watchdogBusy atomic.Bool
}

// NewEngine constructs an engine with no-op hooks; callers wire in real
// hooks (rigctl, portaudio, websocket telemetry) before calling Run. A nil
// searcher/disp is filled in with DefaultSyncTemplates/DefaultDecoderHandles
// wired to this engine's own trunk/mixer/events, rather than left nil (a
// nil searcher or dispatcher silently starves demodLoop of any decoding).
func NewEngine(cfg Config, ring *InputRing, demod *DemodState, searcher *FrameSyncSearcher, disp *Dispatcher) *Engine {
	trunk := NewTrunkSM(cfg.Trunking.HangTimeTicks)
	mixer := NewStereoMixer()
	events := NewEventRing(256)

	if searcher == nil {
		searcher = NewFrameSyncSearcher(DefaultSyncTemplates())
	}
	if disp == nil {
		disp = NewDispatcher(DefaultDecoderHandles(trunk, mixer, events, cfg.Trunking.DMRColorCode)...)
	}

	return &Engine{
		cfg:         cfg,
		ring:        ring,
		demod:       demod,
		sync:        searcher,
		disp:        disp,
		trunk:       trunk,
		mixer:       mixer,
		events:      events,
		Tune:        NewNoopTuneHook(),
		Telemetry:   NewNoopTelemetryHook(),
		CCLog:       NewNoopP25EventLogHook(),
		ControlPump: NewNoopControlPumpHook(),
	}
}

// Shutdown signals all threads to exit and unblocks any pending ring
// reads, then waits for them to finish.
func (e *Engine) Shutdown() {
	if e.shutdown.CompareAndSwap(false, true) {
		e.ring.Shutdown()
	}
	e.wg.Wait()
}

// Run starts the demod, audio, UI, and watchdog loops as goroutines and
// returns immediately; call Shutdown to stop them. No source loop is
// started.
func (e *Engine) Run() {
	e.wg.Add(4)
	go e.demodLoop()
	go e.audioLoop()
	go e.uiLoop()
	go e.watchdogLoop()
}

// demodLoop is the consumer of the input ring: it pulls raw samples,
// widens/demodulates them, and feeds the frame synchronizer.
func (e *Engine) demodLoop() {
	defer e.wg.Done()
	raw := make([]int16, 4096)
	for {
		n := e.ring.ReadBlock(raw)
		if n < 0 {
			return
		}
		iq := make([]Complex64F, n/2)
		for i := range iq {
			iq[i] = Complex64F{I: float32(raw[2*i]) / 32768, Q: float32(raw[2*i+1]) / 32768}
		}
		out := make([]Complex64F, len(iq))
		sym := e.demod.ProcessBlockPSK(iq, out)
		if e.sync == nil || e.disp == nil {
			continue
		}
		dibits := symbolsToDibits(sym)
		if result, ok := e.sync.Feed(dibits); ok {
			_, _ = e.disp.Dispatch(result, dibits, nil)
		}
	}
}

func symbolsToDibits(sym []Complex64F) []byte {
	out := make([]byte, len(sym))
	for i, s := range sym {
		switch {
		case s.I >= 0 && s.Q >= 0:
			out[i] = 0
		case s.I < 0 && s.Q >= 0:
			out[i] = 1
		case s.I < 0 && s.Q < 0:
			out[i] = 2
		default:
			out[i] = 3
		}
	}
	return out
}

// audioLoop drains the stereo mixer on a fixed cadence, matching the
// teacher's audio-callback thread shape adapted from push to pull.
func (e *Engine) audioLoop() {
	defer e.wg.Done()
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	buf := make([]int16, 1920)
	for {
		if e.shutdown.Load() {
			return
		}
		<-ticker.C
		e.mixer.MixOne(buf)
	}
}

// uiLoop periodically drains the event ring for display; a real UI
// backend would replace the no-op drain below.
func (e *Engine) uiLoop() {
	defer e.wg.Done()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		if e.shutdown.Load() {
			return
		}
		<-ticker.C
		_ = e.events.Recent()
	}
}

// watchdogLoop ticks the trunking state machine and drives the control
// pump hook on a fixed cadence, guarding against re-entrant ticks if a
// prior tick is still running.
func (e *Engine) watchdogLoop() {
	defer e.wg.Done()
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		if e.shutdown.Load() {
			return
		}
		<-ticker.C
		if !e.watchdogBusy.CompareAndSwap(false, true) {
			continue
		}
		e.trunk.Tick()
		e.ControlPump.Pump()
		e.watchdogBusy.Store(false)
	}
}
