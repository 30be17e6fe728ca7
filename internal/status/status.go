// Package status provides a thread-safe status tracker for the kitchen-timer daemon.
// It is read by HTTP handlers and lifecycle events while the run loop writes it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

// NetworkInfo contains network state. This is a local copy to avoid
// importing internal/mqtt from status.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	PollMs      int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	Bell        string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	Mode          logic.Mode
	Counter       int
	Alarm         bool
	Buttons       logic.Buttons
	Counts        logic.EventCounts
	Instance      string
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time, instance id and config.
func NewTracker(startTime time.Time, instance string, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Mode:      logic.ModeDefault,
			Instance:  instance,
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// DisplayTime records the counter shown on the display, making the tracker
// usable as a logic.Display.
func (t *Tracker) DisplayTime(seconds int) {
	t.mu.Lock()
	t.snap.Counter = seconds
	t.mu.Unlock()
}

// Update sets the controller state and activity counts.
// Called from the run loop after every tick.
func (t *Tracker) Update(mode logic.Mode, counter int, alarm bool, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Mode = mode
	t.snap.Counter = counter
	t.snap.Alarm = alarm
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetButtons records the effective button levels.
func (t *Tracker) SetButtons(b logic.Buttons) {
	t.mu.Lock()
	t.snap.Buttons = b
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
