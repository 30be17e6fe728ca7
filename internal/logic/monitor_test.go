package logic

import (
	"testing"
	"time"
)

func TestNewMonitor(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(startTime)
	if m == nil {
		t.Fatal("NewMonitor returned nil")
	}
	if m.LastMode() != ModeDefault {
		t.Errorf("expected last mode DEFAULT, got %s", m.LastMode())
	}
	if !m.lastHeartbeat.Equal(startTime) {
		t.Errorf("expected lastHeartbeat %v, got %v", startTime, m.lastHeartbeat)
	}
	if m.Counts() != (EventCounts{}) {
		t.Errorf("expected zero counts, got %+v", m.Counts())
	}
}

func TestObserveNoEventsWhileModeStable(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(now)

	for i := 0; i < 5; i++ {
		events := m.Observe(ModeDefault, 0, now.Add(time.Duration(i)*time.Second))
		if len(events) != 0 {
			t.Errorf("tick %d: expected no events, got %d", i, len(events))
		}
	}

	if m.Counts().Ticks != 5 {
		t.Errorf("expected 5 ticks, got %d", m.Counts().Ticks)
	}
	if m.Counts().Transitions != 0 {
		t.Errorf("expected 0 transitions, got %d", m.Counts().Transitions)
	}
}

func TestObserveModeChange(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(now)

	events := m.Observe(ModeCountUp, 0, now)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	e := events[0]
	if e.Type != EventModeChanged {
		t.Errorf("expected MODE_CHANGED, got %s", e.Type)
	}
	if e.From != ModeDefault || e.To != ModeCountUp {
		t.Errorf("expected DEFAULT -> COUNT_UP, got %s -> %s", e.From, e.To)
	}
	if !e.Timestamp.Equal(now) {
		t.Errorf("unexpected timestamp: %v", e.Timestamp)
	}

	// Staying in COUNT_UP produces nothing further
	if events := m.Observe(ModeCountUp, 1, now.Add(time.Second)); len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestObserveAlarm(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(now)

	m.Observe(ModeCountDownPaused, 3, now)
	m.Observe(ModeCountDown, 2, now.Add(time.Second))
	events := m.Observe(ModeAlarm, 0, now.Add(2*time.Second))

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventAlarm {
		t.Errorf("expected ALARM event, got %s", events[0].Type)
	}
	if events[0].From != ModeCountDown {
		t.Errorf("expected from COUNT_DOWN, got %s", events[0].From)
	}
	if events[0].Counter != 0 {
		t.Errorf("expected counter 0, got %d", events[0].Counter)
	}

	c := m.Counts()
	if c.Alarms != 1 {
		t.Errorf("expected 1 alarm, got %d", c.Alarms)
	}
	if c.Transitions != 3 {
		t.Errorf("expected 3 transitions, got %d", c.Transitions)
	}
}

func TestObserveLeavingAlarmIsModeChange(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(now)

	m.Observe(ModeAlarm, 0, now)
	events := m.Observe(ModeSavedTime, 0, now.Add(time.Second))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventModeChanged {
		t.Errorf("expected MODE_CHANGED, got %s", events[0].Type)
	}
	if m.Counts().Alarms != 1 {
		t.Errorf("expected 1 alarm, got %d", m.Counts().Alarms)
	}
}

func TestCheckHeartbeatDisabled(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(startTime)

	if hb := m.CheckHeartbeat(startTime.Add(time.Hour), 0); hb != nil {
		t.Error("should not return heartbeat when interval is 0")
	}
	if hb := m.CheckHeartbeat(startTime.Add(time.Hour), -time.Minute); hb != nil {
		t.Error("should not return heartbeat when interval is negative")
	}
}

func TestCheckHeartbeatBeforeInterval(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(startTime)

	hb := m.CheckHeartbeat(startTime.Add(14*time.Minute), 15*time.Minute)
	if hb != nil {
		t.Error("should not return heartbeat before interval")
	}
}

func TestCheckHeartbeatAtInterval(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(startTime)

	checkTime := startTime.Add(15 * time.Minute)
	hb := m.CheckHeartbeat(checkTime, 15*time.Minute)
	if hb == nil {
		t.Fatal("should return heartbeat at interval")
	}
	if !hb.Timestamp.Equal(checkTime) {
		t.Errorf("expected timestamp %v, got %v", checkTime, hb.Timestamp)
	}
	if hb.Uptime != 15*time.Minute {
		t.Errorf("expected uptime 15m, got %v", hb.Uptime)
	}
}

func TestCheckHeartbeatUpdatesLastTime(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(startTime)

	t1 := startTime.Add(15 * time.Minute)
	if hb := m.CheckHeartbeat(t1, 15*time.Minute); hb == nil {
		t.Fatal("should return first heartbeat")
	}

	if hb := m.CheckHeartbeat(t1.Add(time.Second), 15*time.Minute); hb != nil {
		t.Error("should not return heartbeat immediately after previous")
	}

	if hb := m.CheckHeartbeat(t1.Add(15*time.Minute), 15*time.Minute); hb == nil {
		t.Fatal("should return second heartbeat")
	}
}

func TestHeartbeatContainsCounts(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(startTime)

	m.Observe(ModeCountUp, 0, startTime)
	m.Observe(ModeCountUp, 1, startTime.Add(time.Second))
	m.Observe(ModeCountUpPaused, 1, startTime.Add(2*time.Second))

	hb := m.CheckHeartbeat(startTime.Add(15*time.Minute), 15*time.Minute)
	if hb == nil {
		t.Fatal("should return heartbeat")
	}
	if hb.Counts.Ticks != 3 {
		t.Errorf("expected Ticks=3, got %d", hb.Counts.Ticks)
	}
	if hb.Counts.Transitions != 2 {
		t.Errorf("expected Transitions=2, got %d", hb.Counts.Transitions)
	}
	if hb.Counts.Alarms != 0 {
		t.Errorf("expected Alarms=0, got %d", hb.Counts.Alarms)
	}
}
