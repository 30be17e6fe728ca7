//go:build !linux

package gpio

import (
	"errors"
	"log/slog"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealReader is not available on non-Linux platforms.
type RealReader struct{}

// NewRealReader returns an error on non-Linux platforms.
func NewRealReader(pins Pins) (*RealReader, error) {
	return nil, errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (r *RealReader) Read() (logic.Buttons, error) {
	return logic.Buttons{}, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (r *RealReader) Close() error {
	return nil
}

// RealBell is not available on non-Linux platforms.
type RealBell struct{}

// NewRealBell returns an error on non-Linux platforms.
func NewRealBell(pin int, logger *slog.Logger) (*RealBell, error) {
	return nil, errUnsupported
}

// Ring does nothing on non-Linux platforms.
func (b *RealBell) Ring(intensity logic.Intensity) {}

// Quiet does nothing on non-Linux platforms.
func (b *RealBell) Quiet() error { return nil }

// Close does nothing on non-Linux platforms.
func (b *RealBell) Close() error { return nil }
