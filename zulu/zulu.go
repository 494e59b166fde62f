// Package zulu provides an immutable UTC date-time value with microsecond
// resolution, calendrical span and range computation over it, and humanized
// duration rendering.
//
// A [Time] is always UTC. Any zone information supplied during parsing or
// construction converts the value to UTC immediately; other zones appear
// only at the formatting boundary. Every operation returns a new value.
package zulu

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/theory/zulutime/zulu/locale"
	"github.com/theory/zulutime/zulu/parser"
	"github.com/theory/zulutime/zulu/tz"
)

var (
	// ErrInvalidUnit reports an unrecognized calendrical unit.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrRangeOverflow reports a result outside the representable calendar
	// range, years 1 through 9999.
	ErrRangeOverflow = errors.New("range overflow")
)

// Time is an immutable UTC instant with microsecond resolution. The zero
// value is the zero time.Time; use New, Parse, or FromUnix to construct
// meaningful values.
type Time struct {
	time.Time
}

// Calendar bounds. Values outside them overflow.
var (
	// Min is the minimum representable Time, 0001-01-01T00:00:00Z.
	Min = New(1, time.January, 1, 0, 0, 0, 0)

	// Max is the maximum representable Time,
	// 9999-12-31T23:59:59.999999Z.
	Max = New(9999, time.December, 31, 23, 59, 59, 999999)

	// Epoch is the POSIX epoch, 1970-01-01T00:00:00Z.
	Epoch = New(1970, time.January, 1, 0, 0, 0, 0)
)

// New returns the UTC Time for the given civil date and time fields.
// Out-of-range fields normalize the way [time.Date] normalizes them.
func New(year int, month time.Month, day, hour, minute, second, microsecond int) Time {
	return Time{time.Date(
		year, month, day, hour, minute, second,
		microsecond*int(time.Microsecond), time.UTC,
	)}
}

// FromTime converts a time.Time to a Time, shifting it to UTC and
// truncating to microsecond resolution.
func FromTime(t time.Time) Time {
	return Time{t.Truncate(time.Microsecond).UTC()}
}

// FromUnix returns the Time for fractional POSIX seconds, rounded to the
// nearest microsecond.
func FromUnix(seconds float64) Time {
	return FromTime(time.UnixMicro(int64(math.Round(seconds * 1e6))))
}

// Now returns the current UTC Time.
func Now() Time {
	return FromTime(time.Now())
}

// Parse parses in using the candidate formats in order and returns the
// matching UTC Time. A nil or empty formats list defaults to
// [parser.DefaultFormats]. When the matched text has no offset, defaultTZ
// names the zone to interpret it in: an IANA name, "local", or empty for
// UTC. On failure the error is a [parser.ParseError] listing every
// attempted format.
func Parse(in parser.Input, formats []string, defaultTZ string) (Time, error) {
	res, err := parser.ParseTime(in, formats, defaultTZ)
	if err != nil {
		return Time{}, err
	}
	return FromTime(res.Time), nil
}

// MustParse is like Parse with default formats and UTC, but panics on
// failure.
func MustParse(text string) Time {
	t, err := Parse(parser.Text(text), nil, "")
	if err != nil {
		panic(err)
	}
	return t
}

// Timestamp returns the fractional POSIX seconds for t.
func (t Time) Timestamp() float64 {
	return float64(t.UnixMicro()) / 1e6
}

// Microsecond returns t's microsecond within the second.
func (t Time) Microsecond() int {
	return t.Nanosecond() / int(time.Microsecond)
}

// DaysInMonth returns the number of days in t's month.
func (t Time) DaysInMonth() int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// IsLeapYear reports whether t's year is a leap year.
func (t Time) IsLeapYear() bool {
	y := t.Year()
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// Add returns t shifted forward by d.
func (t Time) Add(d Delta) Time {
	return Time{t.Time.Add(d.Duration())}
}

// Sub returns the elapsed time from other to t.
func (t Time) Sub(other Time) Delta {
	return Delta{t.Time.Sub(other.Time)}
}

// Since returns the elapsed time from t to now.
func Since(t Time) Delta {
	return Now().Sub(t)
}

// Until returns the elapsed time from now to t.
func Until(t Time) Delta {
	return t.Sub(Now())
}

// Shift carries the calendar units for [Time.Shift]. Months and years use
// calendar-correct arithmetic; a shift landing on a nonexistent day
// normalizes the way [time.Time.AddDate] normalizes it.
type Shift struct {
	Years        int
	Months       int
	Weeks        int
	Days         int
	Hours        int
	Minutes      int
	Seconds      int
	Microseconds int
}

// Shift returns t moved by the given calendar units. It fails with
// ErrRangeOverflow when the result falls outside years 1 through 9999.
func (t Time) Shift(s Shift) (Time, error) {
	shifted := t.Time.AddDate(s.Years, s.Months, s.Weeks*7+s.Days).Add(
		time.Duration(s.Hours)*time.Hour +
			time.Duration(s.Minutes)*time.Minute +
			time.Duration(s.Seconds)*time.Second +
			time.Duration(s.Microseconds)*time.Microsecond,
	)
	if shifted.Year() < 1 || shifted.Year() > 9999 {
		return Time{}, fmt.Errorf(
			"%w: shifted value %v outside years 1-9999", ErrRangeOverflow, shifted,
		)
	}
	return Time{shifted}, nil
}

// Replace returns t with the given fields replaced. A negative value keeps
// the corresponding field.
func (t Time) Replace(year, month, day, hour, minute, second, microsecond int) Time {
	pick := func(v, current int) int {
		if v < 0 {
			return current
		}
		return v
	}
	return New(
		pick(year, t.Year()),
		time.Month(pick(month, int(t.Month()))),
		pick(day, t.Day()),
		pick(hour, t.Hour()),
		pick(minute, t.Minute()),
		pick(second, t.Second()),
		pick(microsecond, t.Microsecond()),
	)
}

// Before reports whether t is before other.
func (t Time) Before(other Time) bool { return t.Time.Before(other.Time) }

// After reports whether t is after other.
func (t Time) After(other Time) bool { return t.Time.After(other.Time) }

// Equal reports whether t and other denote the same instant.
func (t Time) Equal(other Time) bool { return t.Time.Equal(other.Time) }

// Compare returns -1 when t is before other, +1 when after, and 0 when
// equal.
func (t Time) Compare(other Time) int { return t.Time.Compare(other.Time) }

// Between reports whether t lies in [start, end], inclusive on both ends.
func (t Time) Between(start, end Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ISO8601 returns t in ISO 8601 form with a "+00:00" offset, including
// microseconds only when the value has them.
func (t Time) ISO8601() string {
	return parser.ISOString(t.Time)
}

// String returns the ISO 8601 form of t.
func (t Time) String() string { return t.ISO8601() }

// Format renders t with the given pattern string; an empty pattern renders
// ISO 8601. See [Time.FormatIn] to render in another zone or locale.
func (t Time) Format(pattern string) (string, error) {
	return t.FormatIn(pattern, "", nil)
}

// FormatIn renders t with the given pattern string after shifting it to
// the named zone (resolved by [tz.Zone]), localizing names through loc. A
// nil loc uses the built-in English provider.
func (t Time) FormatIn(pattern, tzName string, loc locale.Provider) (string, error) {
	return parser.FormatTime(t.Time, pattern, tzName, loc)
}

// In returns t's civil fields in the named zone. The zone applies only to
// this conversion; t itself stays UTC.
func (t Time) In(tzName string) (time.Time, error) {
	zone, err := tz.Zone(tzName)
	if err != nil {
		return time.Time{}, err
	}
	return t.Time.In(zone), nil
}

// MarshalJSON implements json.Marshaler using the ISO 8601 form.
func (t Time) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(`"2006-01-02T15:04:05.000000+00:00"`))
	b = append(b, '"')
	b = append(b, t.ISO8601()...)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting the ISO 8601 family.
func (t *Time) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s is not a JSON string", parser.ErrParse, data)
	}
	return t.UnmarshalText(data[1 : len(data)-1])
}

// MarshalText implements encoding.TextMarshaler using the ISO 8601 form.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.ISO8601()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the ISO
// 8601 family.
func (t *Time) UnmarshalText(data []byte) error {
	parsed, err := Parse(parser.Text(string(data)), []string{parser.ISO8601}, "")
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
