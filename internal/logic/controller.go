package logic

import "fmt"

// Result is the outcome of one transition.
type Result struct {
	Mode    Mode
	Counter int
	Saved   int
}

// Step evaluates the transition rule for mode against the held button levels.
// Guards are checked in priority order and the first match wins. Step is
// total: every mode handles every combination of levels.
func Step(mode Mode, in Buttons, counter, saved int) Result {
	r := Result{Mode: mode, Counter: counter, Saved: saved}

	switch mode {
	case ModeDefault:
		r.Counter = 0
		switch {
		case in.StartStop:
			r.Mode = ModeCountUp
		case in.Minutes:
			r.Counter += 60
			r.Mode = ModeSetMinutes
		case in.Seconds:
			r.Counter++
			r.Mode = ModeSetSeconds
		}

	case ModeCountUp:
		switch {
		case in.cancel():
			r.Mode = ModeDefault
		case in.StartStop || in.Minutes || in.Seconds:
			r.Mode = ModeCountUpPaused
		default:
			r.Counter++
		}

	case ModeCountDown:
		switch {
		case in.cancel():
			r.Mode = ModeDefault
		case in.StartStop || in.Minutes || in.Seconds:
			r.Mode = ModeCountDownPaused
		case r.Counter == 0:
			r.Mode = ModeAlarm
		default:
			r.Counter--
		}

	case ModeSetMinutes:
		if !in.Minutes {
			r.Saved = r.Counter
			r.Mode = ModeCountDownPaused
		} else {
			r.Counter += 60
		}

	case ModeSetSeconds:
		if !in.Seconds {
			r.Saved = r.Counter
			r.Mode = ModeCountDownPaused
		} else {
			r.Counter++
		}

	case ModeCountUpPaused:
		switch {
		case in.cancel():
			r.Mode = ModeDefault
		case in.StartStop:
			r.Counter++
			r.Mode = ModeCountUp
		case in.Seconds:
			r.Mode = ModeSetSeconds
		case in.Minutes:
			r.Mode = ModeSetMinutes
		}

	case ModeCountDownPaused:
		switch {
		case in.cancel():
			r.Mode = ModeDefault
		case in.StartStop && r.Counter == 0:
			// Resuming an empty countdown would go below zero.
			r.Mode = ModeAlarm
		case in.StartStop:
			r.Counter--
			r.Mode = ModeCountDown
		case in.Minutes:
			r.Mode = ModeSetMinutes
		case in.Seconds:
			r.Mode = ModeSetSeconds
		}

	case ModeAlarm:
		switch {
		case in.cancel():
			r.Mode = ModeDefault
		case in.StartStop:
			r.Counter = r.Saved
			r.Mode = ModeCountDownPaused
		case in.Minutes || in.Seconds:
			r.Mode = ModeSavedTime
		}

	case ModeSavedTime:
		switch {
		case in.StartStop:
			r.Counter = r.Saved
			r.Mode = ModeCountDownPaused
		case in.Minutes:
			r.Counter += 60
			r.Mode = ModeSetMinutes
		case in.Seconds:
			r.Counter++
			r.Mode = ModeSetSeconds
		}

	default:
		panic(fmt.Sprintf("logic: unknown mode %d", int(mode)))
	}

	return r
}

// Controller is the timer state machine. It is not safe for concurrent use;
// the caller serialises Press, Release and Tick.
type Controller struct {
	mode      Mode
	counter   int
	saved     int
	buttons   Buttons
	intensity Intensity
	display   Display
	bell      Bell
}

// NewController creates a controller in DEFAULT with a zero counter and no
// buttons held. display and bell may be nil.
func NewController(display Display, bell Bell) *Controller {
	return &Controller{
		mode:      ModeDefault,
		intensity: DefaultIntensity,
		display:   display,
		bell:      bell,
	}
}

// SetBellIntensity changes the intensity rung while the alarm is active.
func (c *Controller) SetBellIntensity(i Intensity) {
	c.intensity = i
}

// Press marks a button as held. Pressing an already held button has no
// further effect.
func (c *Controller) Press(b Button) {
	c.buttons = c.buttons.With(b, true)
}

// Release marks a button as no longer held.
func (c *Controller) Release(b Button) {
	c.buttons = c.buttons.With(b, false)
}

// SetButtons replaces all four levels at once.
func (c *Controller) SetButtons(b Buttons) {
	c.buttons = b
}

// Tick advances time by one second: it applies the transition rule to the
// levels held right now, then reports the counter to the display and, while
// the alarm is active, rings the bell.
func (c *Controller) Tick() {
	r := Step(c.mode, c.buttons, c.counter, c.saved)
	c.mode = r.Mode
	c.counter = r.Counter
	c.saved = r.Saved

	if c.display != nil {
		c.display.DisplayTime(c.counter)
	}
	if c.AlarmActive() && c.bell != nil {
		c.bell.Ring(c.intensity)
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Counter returns the counter in seconds.
func (c *Controller) Counter() int {
	return c.counter
}

// SavedCounter returns the value preserved by the last SET_* release.
func (c *Controller) SavedCounter() int {
	return c.saved
}

// Buttons returns the currently held levels.
func (c *Controller) Buttons() Buttons {
	return c.buttons
}

// AlarmActive reports whether the bell should currently sound.
func (c *Controller) AlarmActive() bool {
	return c.mode == ModeAlarm
}
