// Package logic contains the pure timer state machine.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time only advances when the caller invokes Tick.
package logic

import (
	"fmt"
	"strings"
	"time"
)

// Mode is one of the operating states of the timer.
type Mode int

const (
	ModeDefault Mode = iota
	ModeCountUp
	ModeCountDown
	ModeSetMinutes
	ModeSetSeconds
	ModeCountUpPaused
	ModeCountDownPaused
	ModeAlarm
	ModeSavedTime
)

// Modes lists every mode in declaration order.
var Modes = []Mode{
	ModeDefault,
	ModeCountUp,
	ModeCountDown,
	ModeSetMinutes,
	ModeSetSeconds,
	ModeCountUpPaused,
	ModeCountDownPaused,
	ModeAlarm,
	ModeSavedTime,
}

var modeNames = [...]string{
	ModeDefault:         "DEFAULT",
	ModeCountUp:         "COUNT_UP",
	ModeCountDown:       "COUNT_DOWN",
	ModeSetMinutes:      "SET_MINUTES",
	ModeSetSeconds:      "SET_SECONDS",
	ModeCountUpPaused:   "COUNT_UP_PAUSED",
	ModeCountDownPaused: "COUNT_DOWN_PAUSED",
	ModeAlarm:           "ALARM",
	ModeSavedTime:       "SAVED_TIME",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= ModeDefault && m <= ModeSavedTime
}

// Button identifies one of the four momentary inputs.
type Button int

const (
	ButtonSeconds Button = iota
	ButtonMinutes
	ButtonStartStop
	ButtonReset
)

// AllButtons lists every button in declaration order.
var AllButtons = []Button{ButtonSeconds, ButtonMinutes, ButtonStartStop, ButtonReset}

var buttonNames = [...]string{
	ButtonSeconds:   "SECONDS",
	ButtonMinutes:   "MINUTES",
	ButtonStartStop: "START_STOP",
	ButtonReset:     "RESET",
}

func (b Button) String() string {
	if b < 0 || int(b) >= len(buttonNames) {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return buttonNames[b]
}

// ParseButton converts an external name (case-insensitive, "-" or "_"
// separated) into a Button. "s" and "m" are accepted as short forms.
func ParseButton(name string) (Button, error) {
	n := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	switch n {
	case "SECONDS", "S":
		return ButtonSeconds, nil
	case "MINUTES", "M":
		return ButtonMinutes, nil
	case "START_STOP", "STARTSTOP", "START":
		return ButtonStartStop, nil
	case "RESET":
		return ButtonReset, nil
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// Buttons is a snapshot of the four button levels.
// true = held.
type Buttons struct {
	Seconds   bool
	Minutes   bool
	StartStop bool
	Reset     bool
}

// Held reports the level of a single button.
func (b Buttons) Held(btn Button) bool {
	switch btn {
	case ButtonSeconds:
		return b.Seconds
	case ButtonMinutes:
		return b.Minutes
	case ButtonStartStop:
		return b.StartStop
	case ButtonReset:
		return b.Reset
	}
	panic(fmt.Sprintf("logic: unknown button %d", int(btn)))
}

// With returns a copy of b with btn set to held.
func (b Buttons) With(btn Button, held bool) Buttons {
	switch btn {
	case ButtonSeconds:
		b.Seconds = held
	case ButtonMinutes:
		b.Minutes = held
	case ButtonStartStop:
		b.StartStop = held
	case ButtonReset:
		b.Reset = held
	default:
		panic(fmt.Sprintf("logic: unknown button %d", int(btn)))
	}
	return b
}

// Or merges two level snapshots; a button is held if it is held in either.
func (b Buttons) Or(o Buttons) Buttons {
	return Buttons{
		Seconds:   b.Seconds || o.Seconds,
		Minutes:   b.Minutes || o.Minutes,
		StartStop: b.StartStop || o.StartStop,
		Reset:     b.Reset || o.Reset,
	}
}

// cancel is the universal "back to DEFAULT" gesture.
func (b Buttons) cancel() bool {
	return b.Reset || (b.Minutes && b.Seconds)
}

// Intensity is the loudness requested from the bell.
type Intensity int

const (
	IntensityOff Intensity = iota
	Intensity33
	Intensity67
	Intensity100
)

var intensityNames = [...]string{
	IntensityOff: "OFF",
	Intensity33:  "ON_33_PERCENT",
	Intensity67:  "ON_67_PERCENT",
	Intensity100: "ON_100_PERCENT",
}

func (i Intensity) String() string {
	if i < 0 || int(i) >= len(intensityNames) {
		return fmt.Sprintf("Intensity(%d)", int(i))
	}
	return intensityNames[i]
}

// ParseIntensity accepts the canonical names as well as "0", "33", "67", "100".
func ParseIntensity(s string) (Intensity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OFF", "0":
		return IntensityOff, nil
	case "ON_33_PERCENT", "33":
		return Intensity33, nil
	case "ON_67_PERCENT", "67":
		return Intensity67, nil
	case "ON_100_PERCENT", "100":
		return Intensity100, nil
	}
	return 0, fmt.Errorf("unknown bell intensity %q", s)
}

// DefaultIntensity is rung while the alarm is active unless configured otherwise.
const DefaultIntensity = Intensity33

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_sinks.go -package=mocks . Display,Bell

// Display receives the counter value (seconds) once per tick.
type Display interface {
	DisplayTime(seconds int)
}

// Bell receives the alarm intensity on every tick the alarm is active.
type Bell interface {
	Ring(intensity Intensity)
}

// Command is a remote request to change one button level.
type Command struct {
	Button  Button
	Pressed bool
}

// EventType represents a published timer event.
type EventType string

const (
	EventModeChanged EventType = "MODE_CHANGED"
	EventAlarm       EventType = "ALARM"
)

// Event represents a mode transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	From      Mode
	To        Mode
	Counter   int
}

// EventCounts tracks activity since startup.
type EventCounts struct {
	Ticks       int
	Transitions int
	Alarms      int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
