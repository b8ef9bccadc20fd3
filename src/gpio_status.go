package dsdneo

import "github.com/warthog618/go-gpiocdev"

// GPIOStatusIndicator drives a GPIO line high while the trunking state
// machine is tuned away from the control channel. The teacher uses
// go-gpiocdev to key a transmit PTT line; this decoder is receive-only,
// so the same line-request API is repurposed as a receive-side "tuned"
// indicator instead (see DESIGN.md).
type GPIOStatusIndicator struct {
	line *gpiocdev.Line
}

// NewGPIOStatusIndicator requests the given chip/line as output, starting
// low.
func NewGPIOStatusIndicator(chip string, offset int) (*GPIOStatusIndicator, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	return &GPIOStatusIndicator{line: line}, nil
}

// SetTuned drives the indicator line to reflect the trunk state.
func (g *GPIOStatusIndicator) SetTuned(tuned bool) error {
	v := 0
	if tuned {
		v = 1
	}
	return g.line.SetValue(v)
}

// Close releases the GPIO line request.
func (g *GPIOStatusIndicator) Close() error {
	return g.line.Close()
}
