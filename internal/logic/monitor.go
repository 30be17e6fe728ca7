package logic

import "time"

// Monitor watches the controller after each tick and turns mode changes
// into events. It also keeps activity counts for heartbeats.
type Monitor struct {
	startTime     time.Time
	last          Mode
	counts        EventCounts
	lastHeartbeat time.Time
}

// NewMonitor creates a monitor for a controller that starts in DEFAULT.
// The startTime is used for calculating uptime in heartbeat events.
func NewMonitor(startTime time.Time) *Monitor {
	return &Monitor{
		startTime:     startTime,
		last:          ModeDefault,
		lastHeartbeat: startTime,
	}
}

// Observe records the state reached by one tick and returns the events to
// publish. At most one event is returned per tick: ALARM when the alarm mode
// is entered, MODE_CHANGED for every other transition.
func (m *Monitor) Observe(mode Mode, counter int, now time.Time) []Event {
	m.counts.Ticks++

	if mode == m.last {
		return nil
	}

	from := m.last
	m.last = mode
	m.counts.Transitions++

	eventType := EventModeChanged
	if mode == ModeAlarm {
		eventType = EventAlarm
		m.counts.Alarms++
	}

	return []Event{{
		Timestamp: now,
		Type:      eventType,
		From:      from,
		To:        mode,
		Counter:   counter,
	}}
}

// LastMode returns the mode seen by the most recent Observe.
func (m *Monitor) LastMode() Mode {
	return m.last
}

// Counts returns a copy of the activity counts.
func (m *Monitor) Counts() EventCounts {
	return m.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (m *Monitor) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(m.lastHeartbeat) < interval {
		return nil
	}

	m.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(m.startTime),
		Counts:    m.counts,
	}
}
