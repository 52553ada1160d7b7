// Package clock provides the single source of "now" for date computations.
// Production code uses System; tests inject Fixed.
package clock

import "time"

// Clock returns the current moment.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock and converts it to Location.
// A nil Location means UTC.
type System struct {
	Location *time.Location
}

// Now returns the wall-clock time in the configured location.
func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(s.Location)
}

// Fixed always returns the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Func adapts a function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}
