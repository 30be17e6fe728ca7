package internal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/kitchen-timer/internal/display"
	"github.com/sweeney/kitchen-timer/internal/gpio"
	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/mqtt"
	"github.com/sweeney/kitchen-timer/internal/status"
)

// rig wires the pure controller to fakes the way the daemon does, one tick
// per GPIO sample.
type rig struct {
	reader    *gpio.FakeReader
	bell      *gpio.FakeBell
	screen    *display.Recorder
	publisher *mqtt.FakePublisher
	ctrl      *logic.Controller
	monitor   *logic.Monitor
	now       time.Time
}

func newRig(samples []logic.Buttons) *rig {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := &rig{
		reader:    gpio.NewFakeReader(samples),
		bell:      gpio.NewFakeBell(),
		screen:    &display.Recorder{},
		publisher: mqtt.NewFakePublisher(),
		monitor:   logic.NewMonitor(start),
		now:       start,
	}
	r.ctrl = logic.NewController(r.screen, r.bell)
	return r
}

func (r *rig) tick(t *testing.T) {
	t.Helper()
	levels, err := r.reader.Read()
	if err != nil {
		t.Fatalf("gpio read error: %v", err)
	}
	r.ctrl.SetButtons(levels)
	r.ctrl.Tick()
	r.now = r.now.Add(time.Second)

	for _, event := range r.monitor.Observe(r.ctrl.Mode(), r.ctrl.Counter(), r.now) {
		r.publisher.Publish(event)
	}
	if !r.ctrl.AlarmActive() {
		r.bell.Quiet()
	}
}

func (r *rig) run(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		r.tick(t)
	}
}

func held(b logic.Buttons, n int) []logic.Buttons {
	out := make([]logic.Buttons, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func concat(parts ...[]logic.Buttons) []logic.Buttons {
	var out []logic.Buttons
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// TestIntegrationKitchenTimerFlow sets 1:02 with both set buttons, counts it
// down to the alarm, silences it and restores the saved time.
func TestIntegrationKitchenTimerFlow(t *testing.T) {
	samples := concat(
		held(logic.Buttons{Minutes: true}, 1),   // DEFAULT -> SET_MINUTES, 60
		held(logic.Buttons{}, 1),                // -> COUNT_DOWN_PAUSED
		held(logic.Buttons{Seconds: true}, 1),   // -> SET_SECONDS, 60
		held(logic.Buttons{Seconds: true}, 2),   // 61, 62
		held(logic.Buttons{}, 1),                // -> COUNT_DOWN_PAUSED, saved 62
		held(logic.Buttons{StartStop: true}, 1), // -> COUNT_DOWN, 61
		held(logic.Buttons{}, 61),               // 60 .. 0
		held(logic.Buttons{}, 1),                // -> ALARM
		held(logic.Buttons{}, 2),                // ringing
		held(logic.Buttons{Seconds: true}, 1),   // -> SAVED_TIME
		held(logic.Buttons{}, 1),
		held(logic.Buttons{StartStop: true}, 1), // -> COUNT_DOWN_PAUSED with 62
	)
	r := newRig(samples)
	r.run(t, len(samples))

	wantTo := []logic.Mode{
		logic.ModeSetMinutes,
		logic.ModeCountDownPaused,
		logic.ModeSetSeconds,
		logic.ModeCountDownPaused,
		logic.ModeCountDown,
		logic.ModeAlarm,
		logic.ModeSavedTime,
		logic.ModeCountDownPaused,
	}
	if len(r.publisher.Events) != len(wantTo) {
		t.Fatalf("expected %d events, got %d", len(wantTo), len(r.publisher.Events))
	}
	for i, want := range wantTo {
		if got := r.publisher.Events[i].To; got != want {
			t.Errorf("event %d: got %s, want %s", i, got, want)
		}
	}

	if r.publisher.Events[5].Type != logic.EventAlarm {
		t.Errorf("event 5: expected ALARM, got %s", r.publisher.Events[5].Type)
	}

	if r.ctrl.Counter() != 62 || r.ctrl.SavedCounter() != 62 {
		t.Errorf("expected restored 62/62, got %d/%d", r.ctrl.Counter(), r.ctrl.SavedCounter())
	}
	if r.screen.String() != "01:02" {
		t.Errorf("display: got %q, want 01:02", r.screen.String())
	}
	if r.screen.Updates != len(samples) {
		t.Errorf("display updates: got %d, want %d", r.screen.Updates, len(samples))
	}

	if len(r.bell.Rings) != 3 {
		t.Errorf("expected 3 rings, got %d", len(r.bell.Rings))
	}
	if r.bell.On || r.bell.Quiets != 1 {
		t.Errorf("expected bell quieted once and off, got on=%v quiets=%d", r.bell.On, r.bell.Quiets)
	}
}

func TestIntegrationNoEventsWhenIdle(t *testing.T) {
	r := newRig(held(logic.Buttons{}, 1))
	r.run(t, 30)

	if len(r.publisher.Events) != 0 {
		t.Errorf("expected 0 events, got %d", len(r.publisher.Events))
	}
	if r.screen.String() != "00:00" {
		t.Errorf("display: got %q, want 00:00", r.screen.String())
	}
	if r.monitor.Counts().Ticks != 30 {
		t.Errorf("Ticks: got %d, want 30", r.monitor.Counts().Ticks)
	}
}

func TestIntegrationStopwatchPauseResume(t *testing.T) {
	samples := concat(
		held(logic.Buttons{StartStop: true}, 1), // -> COUNT_UP
		held(logic.Buttons{}, 5),                // 1..5
		held(logic.Buttons{StartStop: true}, 1), // -> COUNT_UP_PAUSED
		held(logic.Buttons{}, 3),                // frozen
		held(logic.Buttons{StartStop: true}, 1), // -> COUNT_UP, 6
		held(logic.Buttons{}, 2),                // 7, 8
	)
	r := newRig(samples)
	r.run(t, len(samples))

	if r.ctrl.Mode() != logic.ModeCountUp || r.ctrl.Counter() != 8 {
		t.Errorf("expected COUNT_UP at 8, got %s at %d", r.ctrl.Mode(), r.ctrl.Counter())
	}
	if len(r.publisher.Events) != 3 {
		t.Errorf("expected 3 events, got %d", len(r.publisher.Events))
	}
}

func TestIntegrationPublishFailureDoesNotCrash(t *testing.T) {
	r := newRig(concat(held(logic.Buttons{StartStop: true}, 1), held(logic.Buttons{}, 1)))
	r.publisher.PublishError = errors.New("mqtt connection lost")

	r.run(t, 5)

	if r.ctrl.Counter() != 4 {
		t.Errorf("Counter: got %d, want 4", r.ctrl.Counter())
	}
	if len(r.publisher.Events) != 0 {
		t.Errorf("expected 0 recorded events, got %d", len(r.publisher.Events))
	}
}

func TestIntegrationEventPayloadFormat(t *testing.T) {
	r := newRig(concat(held(logic.Buttons{Minutes: true}, 2), held(logic.Buttons{}, 1)))
	r.run(t, 3)

	if len(r.publisher.Payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(r.publisher.Payloads))
	}

	var p mqtt.Payload
	if err := json.Unmarshal(r.publisher.Payloads[1], &p); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if p.Timer.Event != "MODE_CHANGED" {
		t.Errorf("event: got %q, want MODE_CHANGED", p.Timer.Event)
	}
	if p.Timer.From != "SET_MINUTES" || p.Timer.Mode != "COUNT_DOWN_PAUSED" {
		t.Errorf("from/mode: got %s/%s", p.Timer.From, p.Timer.Mode)
	}
	if p.Timer.Counter != 120 || p.Timer.Display != "02:00" {
		t.Errorf("counter/display: got %d/%q", p.Timer.Counter, p.Timer.Display)
	}
}

func TestIntegrationRemoteCommandOverMQTT(t *testing.T) {
	r := newRig(held(logic.Buttons{}, 1))
	if err := r.publisher.SubscribeButtons(func(cmd logic.Command) {
		if cmd.Pressed {
			r.ctrl.Press(cmd.Button)
		} else {
			r.ctrl.Release(cmd.Button)
		}
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	r.publisher.Deliver([]byte(`{"button":"minutes","action":"press"}`))
	r.ctrl.Tick()
	r.publisher.Deliver([]byte(`{"button":"minutes","action":"release"}`))
	r.ctrl.Tick()

	if r.ctrl.Mode() != logic.ModeCountDownPaused || r.ctrl.Counter() != 60 {
		t.Errorf("expected COUNT_DOWN_PAUSED at 60, got %s at %d", r.ctrl.Mode(), r.ctrl.Counter())
	}
}

func TestIntegrationLifecyclePayloads(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := status.NewTracker(start, "inst-1", status.Config{Broker: "tcp://localhost:1883", Bell: "ON_33_PERCENT"})
	tracker.Update(logic.ModeAlarm, 0, true, logic.EventCounts{Ticks: 90, Transitions: 6, Alarms: 1})
	pub := mqtt.NewFakePublisher()

	for _, ev := range []struct{ name, reason string }{{"STARTUP", ""}, {"HEARTBEAT", ""}, {"SHUTDOWN", "SIGTERM"}} {
		snap := tracker.Snapshot()
		err := pub.PublishSystem(mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      ev.name,
			Reason:     ev.reason,
			Retained:   ev.name != "HEARTBEAT",
			RawPayload: status.FormatStatusEvent(snap, ev.name, ev.reason),
		})
		if err != nil {
			t.Fatalf("%s: %v", ev.name, err)
		}
	}

	if len(pub.SystemPayloads) != 3 {
		t.Fatalf("expected 3 payloads, got %d", len(pub.SystemPayloads))
	}
	for i, payload := range pub.SystemPayloads {
		var sj status.StatusJSON
		if err := json.Unmarshal(payload, &sj); err != nil {
			t.Fatalf("payload %d not valid JSON: %v", i, err)
		}
		if sj.Status.Mode != "ALARM" || !sj.Status.Alarm {
			t.Errorf("payload %d: expected alarm state, got %+v", i, sj.Status)
		}
		if sj.Status.Instance != "inst-1" {
			t.Errorf("payload %d: instance got %q", i, sj.Status.Instance)
		}
		if sj.Status.Counts.Alarms != 1 {
			t.Errorf("payload %d: alarms got %d", i, sj.Status.Counts.Alarms)
		}
	}

	var last status.StatusJSON
	json.Unmarshal(pub.SystemPayloads[2], &last)
	if last.Status.Event != "SHUTDOWN" || last.Status.Reason != "SIGTERM" {
		t.Errorf("shutdown: got event=%q reason=%q", last.Status.Event, last.Status.Reason)
	}
	if !pub.SystemEvents[0].Retained || pub.SystemEvents[1].Retained {
		t.Error("expected STARTUP retained and HEARTBEAT not retained")
	}
}
