// Package timeofday works with wall-clock times expressed as minutes since midnight.
package timeofday

import (
	"errors"
	"fmt"
)

// MinutesPerDay is the length of one calendar day in minutes.
const MinutesPerDay = 24 * 60

var (
	ErrInvalidFormat       = errors.New("time must be in HH:MM 24-hour format")
	ErrNonPositiveDuration = errors.New("duration must be greater than zero")
	ErrExcessiveDuration   = errors.New("duration must not exceed 24 hours")
)

// Parse converts a strict 24-hour "HH:MM" string into minutes since midnight.
// Empty input is not a valid time; callers treat absent values before calling Parse.
func Parse(text string) (int, error) {
	if len(text) != 5 || text[2] != ':' {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
	}

	hours, ok := twoDigits(text[0], text[1])
	if !ok || hours > 23 {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
	}

	minutes, ok := twoDigits(text[3], text[4])
	if !ok || minutes > 59 {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
	}

	return hours*60 + minutes, nil
}

// Duration returns the minutes between in and out. When crossesMidnight is set the
// out time is taken to be on the following day.
func Duration(in, out int, crossesMidnight bool) (int, error) {
	d := out - in
	if crossesMidnight {
		d = (MinutesPerDay - in) + out
	}

	if d <= 0 {
		return 0, ErrNonPositiveDuration
	}
	if d > MinutesPerDay {
		return 0, ErrExcessiveDuration
	}
	return d, nil
}

// Format renders minutes since midnight as "HH:MM".
func Format(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Valid reports whether text parses as a time of day.
func Valid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
