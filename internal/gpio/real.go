//go:build linux

package gpio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

const (
	chipName = "gpiochip0"
	consumer = "kitchen-timer"
)

// RealReader reads buttons from actual hardware using Linux GPIO character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines *gpiocdev.Lines
}

// NewRealReader creates a button reader for actual Raspberry Pi hardware.
func NewRealReader(pins Pins) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// Buttons short the pin to ground; the pull-up keeps released buttons high
	// and AsActiveLow makes a pressed button read as 1.
	lines, err := chip.RequestLines(pins.buttonOffsets(),
		gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pins %v: %w", pins.buttonOffsets(), err)
	}

	return &RealReader{chip: chip, lines: lines}, nil
}

// Read returns the logical levels of the buttons.
func (r *RealReader) Read() (logic.Buttons, error) {
	values := make([]int, len(logic.AllButtons))
	if err := r.lines.Values(values); err != nil {
		return logic.Buttons{}, fmt.Errorf("read button pins: %w", err)
	}

	var b logic.Buttons
	for i, btn := range logic.AllButtons {
		b = b.With(btn, values[i] == 1)
	}
	return b, nil
}

// Close releases GPIO resources.
// Reconfigures the pins to input with pull-down (matching Pi boot defaults)
// before closing.
func (r *RealReader) Close() error {
	var errs []error

	if r.lines != nil {
		if err := r.lines.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure button pins: %w", err))
		}
		if err := r.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pins: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealBell drives a bell (buzzer relay) on a single output line.
// The line is digital, so every intensity other than OFF switches it on.
type RealBell struct {
	mu     sync.Mutex
	chip   *gpiocdev.Chip
	line   *gpiocdev.Line
	on     bool
	logger *slog.Logger
}

// NewRealBell requests the bell pin as an output, initially off.
func NewRealBell(pin int, logger *slog.Logger) (*RealBell, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request bell pin %d: %w", pin, err)
	}

	return &RealBell{chip: chip, line: line, logger: logger}, nil
}

// Ring switches the bell on, or off for IntensityOff.
// Errors are logged; the bell sink has no way to report them.
func (b *RealBell) Ring(intensity logic.Intensity) {
	if err := b.set(intensity != logic.IntensityOff); err != nil && b.logger != nil {
		b.logger.Error("bell write failed", "intensity", intensity, "error", err)
	}
}

// Quiet switches the bell off.
func (b *RealBell) Quiet() error {
	return b.set(false)
}

func (b *RealBell) set(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.on == on {
		return nil
	}
	v := 0
	if on {
		v = 1
	}
	if err := b.line.SetValue(v); err != nil {
		return fmt.Errorf("set bell pin: %w", err)
	}
	b.on = on
	return nil
}

// Close switches the bell off and releases the line.
func (b *RealBell) Close() error {
	var errs []error

	if b.line != nil {
		if err := b.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear bell pin: %w", err))
		}
		if err := b.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure bell pin: %w", err))
		}
		if err := b.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close bell pin: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
