package zulu

import (
	"fmt"
	"strings"
	"time"

	"github.com/theory/zulutime/zulu/parser"
)

// Delta is an immutable signed elapsed time at microsecond resolution. Its
// canonical form is a total microsecond count; the day/hour/minute
// breakdown exists only for display.
type Delta struct {
	d time.Duration
}

// DeltaOf returns the Delta summing the given unit counts.
func DeltaOf(weeks, days, hours, minutes, seconds, microseconds int) Delta {
	return Delta{
		time.Duration(weeks*7+days)*24*time.Hour +
			time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second +
			time.Duration(microseconds)*time.Microsecond,
	}
}

// FromDuration converts a time.Duration to a Delta, truncating to
// microsecond resolution.
func FromDuration(d time.Duration) Delta {
	return Delta{d.Truncate(time.Microsecond)}
}

// DeltaFromSeconds returns the Delta for fractional seconds, rounded to the
// nearest microsecond.
func DeltaFromSeconds(seconds float64) Delta {
	return FromDuration(time.Duration(seconds * float64(time.Second)))
}

// ParseDelta parses a free-form duration string: either the clock grammar
// ("2:04:13:02.266", "2 days, 5:34:56") or unit tokens ("1w 3d 2h 32m").
// See [parser.ParseDelta] for the grammar.
func ParseDelta(text string) (Delta, error) {
	d, err := parser.ParseDelta(text)
	if err != nil {
		return Delta{}, err
	}
	return Delta{d}, nil
}

// Duration returns the Delta as a time.Duration.
func (d Delta) Duration() time.Duration { return d.d }

// Seconds returns the Delta as fractional seconds.
func (d Delta) Seconds() float64 { return d.d.Seconds() }

// Microseconds returns the Delta as a total microsecond count.
func (d Delta) Microseconds() int64 { return d.d.Microseconds() }

// IsZero reports whether the Delta is zero.
func (d Delta) IsZero() bool { return d.d == 0 }

// Add returns the sum of d and other.
func (d Delta) Add(other Delta) Delta { return Delta{d.d + other.d} }

// Sub returns d minus other.
func (d Delta) Sub(other Delta) Delta { return Delta{d.d - other.d} }

// Neg returns d negated.
func (d Delta) Neg() Delta { return Delta{-d.d} }

// Abs returns the absolute value of d.
func (d Delta) Abs() Delta { return Delta{d.d.Abs()} }

// Mul returns d scaled by n.
func (d Delta) Mul(n int) Delta { return Delta{d.d * time.Duration(n)} }

// Compare returns -1 when d is less than other, +1 when greater, and 0
// when equal.
func (d Delta) Compare(other Delta) int {
	switch {
	case d.d < other.d:
		return -1
	case d.d > other.d:
		return 1
	}
	return 0
}

// Split breaks the Delta into day, hour, minute, second, and microsecond
// components. Days carry the sign; the finer components are always
// non-negative, so -1 second splits as -1 day, 23:59:59.
func (d Delta) Split() (days, hours, minutes, seconds, microseconds int) {
	const usPerDay = 24 * 60 * 60 * 1e6
	us := d.Microseconds()

	day64 := us / usPerDay
	rem := us - day64*usPerDay
	if rem < 0 {
		day64--
		rem += usPerDay
	}

	days = int(day64)
	hours = int(rem / (3600 * 1e6))
	rem %= 3600 * 1e6
	minutes = int(rem / (60 * 1e6))
	rem %= 60 * 1e6
	seconds = int(rem / 1e6)
	microseconds = int(rem % 1e6)
	return days, hours, minutes, seconds, microseconds
}

// String renders the Delta in clock-grammar form,
// "[-][N day(s), ]H:MM:SS[.ffffff]", sign-magnitude so the output parses
// back to the same value.
func (d Delta) String() string {
	us := d.Microseconds()
	b := new(strings.Builder)
	if us < 0 {
		b.WriteByte('-')
		us = -us
	}

	const usPerDay = 24 * 60 * 60 * 1e6
	if days := us / usPerDay; days > 0 {
		if days == 1 {
			b.WriteString("1 day, ")
		} else {
			fmt.Fprintf(b, "%d days, ", days)
		}
		us %= usPerDay
	}

	fmt.Fprintf(b, "%d:%02d:%02d",
		us/(3600*1e6), us%(3600*1e6)/(60*1e6), us%(60*1e6)/1e6)
	if frac := us % 1e6; frac > 0 {
		fmt.Fprintf(b, ".%06d", frac)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the clock-grammar
// form.
func (d Delta) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting any form
// [ParseDelta] accepts.
func (d *Delta) UnmarshalText(data []byte) error {
	parsed, err := ParseDelta(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
