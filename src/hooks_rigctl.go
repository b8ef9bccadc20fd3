package dsdneo

import "github.com/xylo04/goHamlib"

// RigctlTuneHook adapts goHamlib to the TuneHook shape, letting the
// trunking state machine retune an external radio via Hamlib's rigctld
// protocol instead of the teacher's direct PTT-over-serial path (this
// decoder is receive-only; there is no PTT to key).
type RigctlTuneHook struct {
	rig *goHamlib.Rig
}

// NewRigctlTuneHook opens a Hamlib rig session against the given model
// and device path.
func NewRigctlTuneHook(model int, devicePath string) (*RigctlTuneHook, error) {
	rig := goHamlib.NewRig(model)
	if err := rig.SetConf("rig_pathname", devicePath); err != nil {
		return nil, err
	}
	if err := rig.Open(); err != nil {
		return nil, err
	}
	return &RigctlTuneHook{rig: rig}, nil
}

// Hook returns a TuneHook bound to this rig session.
func (h *RigctlTuneHook) Hook() TuneHook {
	return TuneHook{
		TuneTo: func(freqHz uint64) error {
			return h.rig.SetFreq(goHamlib.VFOCurrent, float64(freqHz))
		},
	}
}

// Query returns the rig's currently tuned frequency, for RigctlQueryHook.
func (h *RigctlTuneHook) Query() (uint64, error) {
	f, err := h.rig.GetFreq(goHamlib.VFOCurrent)
	if err != nil {
		return 0, err
	}
	return uint64(f), nil
}

// Close releases the Hamlib session.
func (h *RigctlTuneHook) Close() error {
	return h.rig.Close()
}
