// Command kitchen-timer drives a four-button kitchen timer from GPIO and
// publishes its state changes to MQTT.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeney/kitchen-timer/internal/config"
)

func main() {
	if err := newRootCmd(&cliFlags{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds the raw flag values. Only flags the user actually set
// override the config file.
type cliFlags struct {
	configPath string
	envFile    string

	tick      time.Duration
	poll      time.Duration
	heartbeat time.Duration
	broker    string
	httpAddr  string
	bell      string
	logLevel  string

	pinSeconds   int
	pinMinutes   int
	pinStartStop int
	pinReset     int
	pinBell      int
}

func newRootCmd(f *cliFlags) *cobra.Command {
	def := config.Default()

	root := &cobra.Command{
		Use:           "kitchen-timer",
		Short:         "Four-button kitchen timer daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return run(cfg, f.envFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", config.DefaultPath, "YAML config file (missing file uses defaults)")
	pf.StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "pi-helper env file with network info")
	pf.DurationVar(&f.tick, "tick", def.Tick, "Timer tick interval")
	pf.DurationVar(&f.poll, "poll", def.Poll, "GPIO polling interval")
	pf.DurationVar(&f.heartbeat, "heartbeat", def.Heartbeat, "Heartbeat interval (0 to disable)")
	pf.StringVar(&f.broker, "broker", def.Broker, "MQTT broker address")
	pf.StringVar(&f.httpAddr, "http", def.HTTPAddr, "HTTP status address (empty to disable)")
	pf.StringVar(&f.bell, "bell", def.Bell, "Bell intensity while the alarm sounds")
	pf.StringVar(&f.logLevel, "log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	pf.IntVar(&f.pinSeconds, "pin-seconds", def.Pins.Seconds, "BCM pin number for the SECONDS button")
	pf.IntVar(&f.pinMinutes, "pin-minutes", def.Pins.Minutes, "BCM pin number for the MINUTES button")
	pf.IntVar(&f.pinStartStop, "pin-start-stop", def.Pins.StartStop, "BCM pin number for the START_STOP button")
	pf.IntVar(&f.pinReset, "pin-reset", def.Pins.Reset, "BCM pin number for the RESET button")
	pf.IntVar(&f.pinBell, "pin-bell", def.Pins.Bell, "BCM pin number for the bell output")

	root.AddCommand(newButtonsCmd(f))
	return root
}

// resolve loads the config file and applies explicitly set flags over it.
func (f *cliFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}

	fl := cmd.Flags()
	if fl.Changed("tick") {
		cfg.Tick = f.tick
	}
	if fl.Changed("poll") {
		cfg.Poll = f.poll
	}
	if fl.Changed("heartbeat") {
		cfg.Heartbeat = f.heartbeat
	}
	if fl.Changed("broker") {
		cfg.Broker = f.broker
	}
	if fl.Changed("http") {
		cfg.HTTPAddr = f.httpAddr
	}
	if fl.Changed("bell") {
		cfg.Bell = f.bell
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("pin-seconds") {
		cfg.Pins.Seconds = f.pinSeconds
	}
	if fl.Changed("pin-minutes") {
		cfg.Pins.Minutes = f.pinMinutes
	}
	if fl.Changed("pin-start-stop") {
		cfg.Pins.StartStop = f.pinStartStop
	}
	if fl.Changed("pin-reset") {
		cfg.Pins.Reset = f.pinReset
	}
	if fl.Changed("pin-bell") {
		cfg.Pins.Bell = f.pinBell
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
