// Package mqtt provides MQTT publishing and remote button commands with
// abstraction for testing.
package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sweeney/kitchen-timer/internal/display"
	"github.com/sweeney/kitchen-timer/internal/logic"
)

// Topic is the MQTT topic for timer events.
const Topic = "kitchen/timer/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "kitchen/timer/system"

// TopicButtons is the MQTT topic remote button commands are read from.
const TopicButtons = "kitchen/timer/buttons"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a timer event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// CommandSource delivers remote button commands.
type CommandSource interface {
	// SubscribeButtons registers handler for commands arriving on
	// TopicButtons. The handler may be called from another goroutine.
	SubscribeButtons(handler func(logic.Command)) error
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Timer TimerPayload `json:"timer"`
}

// TimerPayload contains the timer event details.
type TimerPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	From      string `json:"from"`
	Mode      string `json:"mode"`
	Counter   int    `json:"counter"`
	Display   string `json:"display"`
}

// FormatPayload creates the JSON payload for a timer event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Timer: TimerPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			From:      event.From.String(),
			Mode:      event.To.String(),
			Counter:   event.Counter,
			Display:   display.Format(event.Counter),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// ButtonPayload is the JSON body of a remote button command.
type ButtonPayload struct {
	Button string `json:"button"`
	Action string `json:"action"`
}

// ParseCommand decodes a remote button command such as
// {"button":"START_STOP","action":"press"}.
func ParseCommand(data []byte) (logic.Command, error) {
	var p ButtonPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return logic.Command{}, fmt.Errorf("decode button command: %w", err)
	}
	return NewCommand(p.Button, p.Action)
}

// NewCommand builds a command from a button name and an action
// ("press" or "release").
func NewCommand(button, action string) (logic.Command, error) {
	b, err := logic.ParseButton(button)
	if err != nil {
		return logic.Command{}, err
	}

	switch strings.ToLower(strings.TrimSpace(action)) {
	case "press", "down":
		return logic.Command{Button: b, Pressed: true}, nil
	case "release", "up":
		return logic.Command{Button: b, Pressed: false}, nil
	}
	return logic.Command{}, fmt.Errorf("unknown button action %q", action)
}
