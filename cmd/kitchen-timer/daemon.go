package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/xid"

	"github.com/sweeney/kitchen-timer/internal/config"
	"github.com/sweeney/kitchen-timer/internal/gpio"
	"github.com/sweeney/kitchen-timer/internal/logging"
	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/metrics"
	"github.com/sweeney/kitchen-timer/internal/mqtt"
	"github.com/sweeney/kitchen-timer/internal/status"
	"github.com/sweeney/kitchen-timer/internal/web"
)

const shutdownTimeout = 5 * time.Second

func run(cfg config.Config, envFile string) error {
	level, _ := cfg.Level()
	logger := logging.New(level)
	intensity, _ := cfg.Intensity()

	if err := config.LoadEnvFile(envFile); err != nil {
		logger.Warn("env file not loaded", "path", envFile, "error", err)
	}

	// Initialize GPIO
	reader, err := gpio.NewRealReader(cfg.GPIOPins())
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	bell, err := gpio.NewRealBell(cfg.Pins.Bell, logger)
	if err != nil {
		return fmt.Errorf("init bell: %w", err)
	}
	defer bell.Close()

	// Initialize MQTT
	instance := xid.New().String()
	publisher := mqtt.NewRealPublisher(mqtt.Options{
		Broker:   cfg.Broker,
		ClientID: "kitchen-timer-" + instance,
		Logger:   logger,
	})
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), instance, status.Config{
		TickMs:      cfg.Tick.Milliseconds(),
		PollMs:      cfg.Poll.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		Broker:      cfg.Broker,
		HTTPAddr:    cfg.HTTPAddr,
		Bell:        intensity.String(),
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}
	m := metrics.New()

	// Remote buttons from MQTT and HTTP both feed the run loop.
	commands := make(chan logic.Command, 16)
	done := make(chan struct{})
	defer close(done)
	if err := publisher.SubscribeButtons(forwardCommands(commands, done, m, logger)); err != nil {
		logger.Warn("mqtt button subscription failed", "error", err)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		logger.Warn("failed to publish startup event", "error", err)
	} else {
		logger.Info("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTPAddr != "" {
		srv := web.New(web.Options{
			Addr:     cfg.HTTPAddr,
			Tracker:  tracker,
			Metrics:  m.Handler(),
			Commands: commands,
			Observer: m,
			Logger:   logger,
		})
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		logger.Info("http status server listening", "addr", cfg.HTTPAddr)
	}

	logger.Info("started",
		"tick", cfg.Tick, "poll", cfg.Poll, "broker", cfg.Broker,
		"heartbeat", cfg.Heartbeat, "bell", intensity, "instance", instance)

	pollTicker := time.NewTicker(cfg.Poll)
	defer pollTicker.Stop()
	clockTicker := time.NewTicker(cfg.Tick)
	defer clockTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(loopDeps{
		reader:     reader,
		bell:       bell,
		publisher:  publisher,
		mqttStatus: publisher,
		tracker:    tracker,
		metrics:    m,
		logger:     logger,
		intensity:  intensity,
		heartbeat:  cfg.Heartbeat,
		now:        time.Now,
		poll:       pollTicker.C,
		tick:       clockTicker.C,
		commands:   commands,
		sig:        sigCh,
	})
}

// forwardCommands returns an MQTT handler that hands commands to the run
// loop. It gives up once done is closed so the MQTT client never blocks on
// a loop that has exited.
func forwardCommands(commands chan<- logic.Command, done <-chan struct{}, m *metrics.Metrics, logger *slog.Logger) func(logic.Command) {
	return func(cmd logic.Command) {
		select {
		case commands <- cmd:
			m.ObserveCommand("mqtt", cmd)
			logger.Info("remote button", "source", "mqtt", "button", cmd.Button, "pressed", cmd.Pressed)
		case <-done:
		}
	}
}

// loopDeps carries everything runLoop touches. bell and mqttStatus may be nil.
type loopDeps struct {
	reader     gpio.Reader
	bell       gpio.BellOutput
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	metrics    *metrics.Metrics
	logger     *slog.Logger
	intensity  logic.Intensity
	heartbeat  time.Duration
	now        func() time.Time
	poll       <-chan time.Time
	tick       <-chan time.Time
	commands   <-chan logic.Command
	sig        <-chan os.Signal
}

// runLoop owns the controller. Every input reaches it through a channel so
// Press, Release and Tick are never concurrent.
func runLoop(d loopDeps) error {
	startTime := d.now()
	monitor := logic.NewMonitor(startTime)

	var bell logic.Bell
	if d.bell != nil {
		bell = d.bell
	}
	controller := logic.NewController(d.tracker, bell)
	controller.SetBellIntensity(d.intensity)

	var gpioLevels, remoteLevels logic.Buttons
	apply := func() {
		levels := gpioLevels.Or(remoteLevels)
		if levels == controller.Buttons() {
			return
		}
		controller.SetButtons(levels)
		d.tracker.SetButtons(levels)
		d.metrics.ObserveButtons(levels)
		d.logger.Debug("buttons", "seconds", levels.Seconds, "minutes", levels.Minutes,
			"start_stop", levels.StartStop, "reset", levels.Reset)
	}
	sample := func() {
		levels, err := d.reader.Read()
		if err != nil {
			d.logger.Warn("gpio read error", "error", err)
			return
		}
		gpioLevels = levels
		apply()
	}
	refreshMQTT := func() {
		if d.mqttStatus != nil {
			d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
		}
	}

	for {
		select {
		case s := <-d.sig:
			d.logger.Info("shutting down", "signal", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			refreshMQTT()
			snap := d.tracker.Snapshot()
			event := mqtt.SystemEvent{
				Timestamp:  d.now(),
				Event:      "SHUTDOWN",
				Reason:     signalName,
				Retained:   true,
				RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", signalName),
			}
			if err := d.publisher.PublishSystem(event); err != nil {
				d.logger.Warn("failed to publish shutdown event", "error", err)
			} else {
				d.logger.Info("published shutdown event")
			}
			if d.bell != nil {
				if err := d.bell.Quiet(); err != nil {
					d.logger.Warn("bell quiet failed", "error", err)
				}
			}
			return nil

		case cmd := <-d.commands:
			remoteLevels = remoteLevels.With(cmd.Button, cmd.Pressed)
			apply()

		case <-d.poll:
			sample()

		case <-d.tick:
			sample()
			t := d.now()
			controller.Tick()

			mode, counter := controller.Mode(), controller.Counter()
			for _, event := range monitor.Observe(mode, counter, t) {
				d.logger.Info("event", "type", event.Type, "from", event.From, "to", event.To, "counter", event.Counter)
				d.metrics.ObserveEvent(event)
				if err := d.publisher.Publish(event); err != nil {
					d.logger.Warn("publish error", "error", err)
					// Don't crash on publish failure
				}
			}

			if !controller.AlarmActive() && d.bell != nil {
				if err := d.bell.Quiet(); err != nil {
					d.logger.Warn("bell quiet failed", "error", err)
				}
			}

			d.metrics.ObserveTick(mode, counter)
			d.tracker.Update(mode, counter, controller.AlarmActive(), monitor.Counts())
			refreshMQTT()

			if hbData := monitor.CheckHeartbeat(t, d.heartbeat); hbData != nil {
				d.logger.Info("heartbeat", "uptime", hbData.Uptime, "ticks", hbData.Counts.Ticks,
					"transitions", hbData.Counts.Transitions, "alarms", hbData.Counts.Alarms)

				// Refresh network info for heartbeat
				if net := readNetworkInfo(); net != nil {
					d.tracker.SetNetwork(net)
				}
				snap := d.tracker.Snapshot()
				hbEvent := mqtt.SystemEvent{
					Timestamp:  hbData.Timestamp,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := d.publisher.PublishSystem(hbEvent); err != nil {
					d.logger.Warn("heartbeat publish error", "error", err)
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
