// Package display renders counter values as minutes:seconds text.
package display

import "fmt"

// Minutes returns the zero-padded minutes part of a seconds value.
func Minutes(seconds int) string {
	return fmt.Sprintf("%02d", seconds/60)
}

// Seconds returns the zero-padded seconds part of a seconds value.
func Seconds(seconds int) string {
	return fmt.Sprintf("%02d", seconds%60)
}

// Format returns "MM:SS". Minutes are not wrapped at 60, so 3600 renders
// as "60:00".
func Format(seconds int) string {
	return Minutes(seconds) + ":" + Seconds(seconds)
}

// Recorder is a display sink that keeps the last value shown.
// Not safe for concurrent use.
type Recorder struct {
	// Value is the last counter value received.
	Value int

	// Updates counts how many times DisplayTime was called.
	Updates int
}

// DisplayTime records the value.
func (r *Recorder) DisplayTime(seconds int) {
	r.Value = seconds
	r.Updates++
}

// Minutes returns the recorded minutes text.
func (r *Recorder) Minutes() string {
	return Minutes(r.Value)
}

// Seconds returns the recorded seconds text.
func (r *Recorder) Seconds() string {
	return Seconds(r.Value)
}

// String returns the recorded value as "MM:SS".
func (r *Recorder) String() string {
	return Format(r.Value)
}
