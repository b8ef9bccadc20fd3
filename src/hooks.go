package dsdneo

// Runtime hook tables: typed function-pointer structs with safe no-op
// defaults, the same shape the teacher uses for its ptt/sound-card
// callback tables, generalized per spec.md §9 ("hooks are structs of
// function fields, never a single god-interface").

// TuneHook lets the engine request a frequency change without depending
// directly on a radio-control backend.
type TuneHook struct {
	TuneTo func(freqHz uint64) error
}

func NewNoopTuneHook() TuneHook {
	return TuneHook{TuneTo: func(uint64) error { return nil }}
}

// TelemetryHook publishes structured engine events to an optional
// external sink (e.g. the websocket broadcaster in telemetry_ws.go).
type TelemetryHook struct {
	Publish func(event string, fields map[string]any)
}

func NewNoopTelemetryHook() TelemetryHook {
	return TelemetryHook{Publish: func(string, map[string]any) {}}
}

// M17UDPHook forwards decoded M17 payload frames to an external UDP
// consumer (the common M17 reflector/bridge pattern).
type M17UDPHook struct {
	Send func(payload []byte) error
}

func NewNoopM17UDPHook() M17UDPHook {
	return M17UDPHook{Send: func([]byte) error { return nil }}
}

// P25EventLogHook is called for each decoded P25 trunking event, letting
// the engine optionally persist a CSV/JSON trail without coupling the
// trunking state machine to a concrete writer.
type P25EventLogHook struct {
	Record func(event string, fields map[string]any)
}

func NewNoopP25EventLogHook() P25EventLogHook {
	return P25EventLogHook{Record: func(string, map[string]any) {}}
}

// RTLStreamIOHook abstracts the raw sample source, letting tests and
// alternate backends (file replay, network IQ) substitute for a live
// RTL-SDR device.
type RTLStreamIOHook struct {
	Read  func(buf []byte) (int, error)
	Close func() error
}

// RTLStreamMetricsHook receives periodic device health counters (drops,
// buffer overruns) for display/telemetry.
type RTLStreamMetricsHook struct {
	Report func(drops, waitouts uint64)
}

func NewNoopRTLStreamMetricsHook() RTLStreamMetricsHook {
	return RTLStreamMetricsHook{Report: func(uint64, uint64) {}}
}

// RigctlQueryHook lets the engine poll the currently tuned frequency from
// an external radio-control backend, independent of the tune direction.
type RigctlQueryHook struct {
	QueryFreq func() (uint64, error)
}

// NetAudioInputHook supplies PCM audio from a network source instead of a
// local sound device (spec.md's headless/remote operating mode).
type NetAudioInputHook struct {
	Read func(buf []int16) (int, error)
}

// FrameSyncSideEffectHook lets external code observe sync acquisitions
// and losses without being wired into the searcher itself.
type FrameSyncSideEffectHook struct {
	OnAcquire func(result FrameSyncResult)
	OnLoss    func()
}

func NewNoopFrameSyncSideEffectHook() FrameSyncSideEffectHook {
	return FrameSyncSideEffectHook{
		OnAcquire: func(FrameSyncResult) {},
		OnLoss:    func() {},
	}
}

// UDPAudioHook forwards mixed stereo PCM audio to a UDP sink (alternative
// to the local portaudio sink).
type UDPAudioHook struct {
	Send func(pcm []int16) error
}

// ControlPumpHook lets the engine's watchdog thread drive an external
// control-channel scan/retune loop on a fixed cadence.
type ControlPumpHook struct {
	Pump func()
}

func NewNoopControlPumpHook() ControlPumpHook {
	return ControlPumpHook{Pump: func() {}}
}
