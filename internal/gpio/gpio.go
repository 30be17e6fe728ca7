// Package gpio provides button input and bell output with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/kitchen-timer/internal/logic"

// Reader reads the button levels.
type Reader interface {
	// Read returns the logical levels of the four buttons (true = held).
	// The buttons are wired active-low: raw 0 = pressed.
	Read() (logic.Buttons, error)

	// Close releases GPIO resources.
	Close() error
}

// BellOutput drives the alarm bell. It satisfies logic.Bell, which is only
// called while the alarm is active, so Quiet is needed to switch it off.
type BellOutput interface {
	logic.Bell

	// Quiet switches the bell off. It is a no-op if the bell is already off.
	Quiet() error

	// Close switches the bell off and releases GPIO resources.
	Close() error
}

// Pins holds BCM pin numbers for the device.
type Pins struct {
	Seconds   int
	Minutes   int
	StartStop int
	Reset     int
	Bell      int
}

// Default pin definitions (BCM numbering)
const (
	DefaultPinSeconds   = 5
	DefaultPinMinutes   = 6
	DefaultPinStartStop = 13
	DefaultPinReset     = 19
	DefaultPinBell      = 26
)

// DefaultPins returns the default wiring.
func DefaultPins() Pins {
	return Pins{
		Seconds:   DefaultPinSeconds,
		Minutes:   DefaultPinMinutes,
		StartStop: DefaultPinStartStop,
		Reset:     DefaultPinReset,
		Bell:      DefaultPinBell,
	}
}

// buttonOffsets returns the input pins in logic.AllButtons order.
func (p Pins) buttonOffsets() []int {
	return []int{p.Seconds, p.Minutes, p.StartStop, p.Reset}
}
