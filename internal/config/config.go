// Package config loads daemon settings from YAML and the pi-helper env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sweeney/kitchen-timer/internal/gpio"
	"github.com/sweeney/kitchen-timer/internal/logging"
	"github.com/sweeney/kitchen-timer/internal/logic"
)

// DefaultPath is where the daemon looks for its config file.
const DefaultPath = "/etc/kitchen-timer/config.yaml"

// DefaultEnvFile is written by pi-helper with the current network state.
const DefaultEnvFile = "/run/pi-helper.env"

// Pins is the YAML form of gpio.Pins.
type Pins struct {
	Seconds   int `yaml:"seconds"`
	Minutes   int `yaml:"minutes"`
	StartStop int `yaml:"start_stop"`
	Reset     int `yaml:"reset"`
	Bell      int `yaml:"bell"`
}

// Config holds every tunable of the daemon.
type Config struct {
	Tick      time.Duration `yaml:"tick"`
	Poll      time.Duration `yaml:"poll"`
	Heartbeat time.Duration `yaml:"heartbeat"`
	Broker    string        `yaml:"broker"`
	HTTPAddr  string        `yaml:"http"`
	Bell      string        `yaml:"bell"`
	LogLevel  string        `yaml:"log_level"`
	Pins      Pins          `yaml:"pins"`
}

// Default returns the built-in settings.
func Default() Config {
	p := gpio.DefaultPins()
	return Config{
		Tick:      time.Second,
		Poll:      50 * time.Millisecond,
		Heartbeat: 15 * time.Minute,
		Broker:    "tcp://192.168.1.200:1883",
		HTTPAddr:  ":80",
		Bell:      logic.DefaultIntensity.String(),
		LogLevel:  "info",
		Pins: Pins{
			Seconds:   p.Seconds,
			Minutes:   p.Minutes,
			StartStop: p.StartStop,
			Reset:     p.Reset,
			Bell:      p.Bell,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config yaml: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Validate checks the settings that would otherwise fail deep in startup.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %v", c.Tick)
	}
	if c.Poll <= 0 {
		return fmt.Errorf("poll must be positive, got %v", c.Poll)
	}
	if c.Poll > c.Tick {
		return fmt.Errorf("poll %v must not exceed tick %v", c.Poll, c.Tick)
	}
	if c.Heartbeat < 0 {
		return fmt.Errorf("heartbeat must not be negative, got %v", c.Heartbeat)
	}
	if _, err := c.Intensity(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	seen := make(map[int]string)
	for _, p := range []struct {
		name string
		pin  int
	}{
		{"seconds", c.Pins.Seconds},
		{"minutes", c.Pins.Minutes},
		{"start_stop", c.Pins.StartStop},
		{"reset", c.Pins.Reset},
		{"bell", c.Pins.Bell},
	} {
		if p.pin < 0 {
			return fmt.Errorf("pin %s must not be negative, got %d", p.name, p.pin)
		}
		if other, ok := seen[p.pin]; ok {
			return fmt.Errorf("pin %d used by both %s and %s", p.pin, other, p.name)
		}
		seen[p.pin] = p.name
	}
	return nil
}

// Intensity parses the configured bell intensity.
func (c Config) Intensity() (logic.Intensity, error) {
	return logic.ParseIntensity(c.Bell)
}

// Level parses the configured log level.
func (c Config) Level() (slog.Level, error) {
	return logging.ParseLevel(c.LogLevel)
}

// GPIOPins converts the pin settings for the gpio package.
func (c Config) GPIOPins() gpio.Pins {
	return gpio.Pins{
		Seconds:   c.Pins.Seconds,
		Minutes:   c.Pins.Minutes,
		StartStop: c.Pins.StartStop,
		Reset:     c.Pins.Reset,
		Bell:      c.Pins.Bell,
	}
}
