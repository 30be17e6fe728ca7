package gpio

import (
	"errors"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

// FakeReader is a test double that returns scripted button levels.
type FakeReader struct {
	// Samples contains scripted levels to return.
	// Each call to Read() consumes the next sample.
	Samples []logic.Buttons

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []logic.Buttons) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (logic.Buttons, error) {
	if f.ReadError != nil {
		return logic.Buttons{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return logic.Buttons{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeBell records bell activity.
type FakeBell struct {
	// Rings contains every intensity passed to Ring.
	Rings []logic.Intensity

	// On reports whether the bell is currently sounding.
	On bool

	// Quiets counts Quiet calls that switched the bell off.
	Quiets int

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeBell creates a silent FakeBell.
func NewFakeBell() *FakeBell {
	return &FakeBell{}
}

// Ring records the intensity.
func (b *FakeBell) Ring(intensity logic.Intensity) {
	b.Rings = append(b.Rings, intensity)
	b.On = intensity != logic.IntensityOff
}

// Quiet switches the bell off.
func (b *FakeBell) Quiet() error {
	if b.On {
		b.On = false
		b.Quiets++
	}
	return nil
}

// Close switches the bell off and marks it closed.
func (b *FakeBell) Close() error {
	b.On = false
	b.Closed = true
	return nil
}
