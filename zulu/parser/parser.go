// Package parser converts text and numbers into UTC instants by trying an
// ordered list of candidate formats, and parses free-form duration strings.
//
// Candidates are either literal pattern strings, compiled by
// [pattern.Compile], or keyword aliases. The ISO8601 keyword expands to a
// fixed list of concrete ISO 8601 patterns tried most specific first, and
// the timestamp keyword interprets the value directly as POSIX seconds.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theory/zulutime/zulu/locale"
	"github.com/theory/zulutime/zulu/pattern"
	"github.com/theory/zulutime/zulu/tz"
)

// Keyword aliases recognized in a format list.
const (
	// ISO8601 expands to the ISO 8601 family of concrete patterns.
	ISO8601 = "ISO8601"

	// Timestamp interprets the input as POSIX seconds since the epoch,
	// integer or fractional.
	Timestamp = "timestamp"
)

// DefaultFormats is the format list used when the caller supplies none.
var DefaultFormats = []string{ISO8601, Timestamp}

// isoFormats is the expansion of the ISO8601 keyword, ordered most specific
// first: full date-times with offsets, then without, down to year-month. In
// parse mode ZZ accepts offsets with or without a colon as well as "Z".
var isoFormats = []string{
	"YYYY-MM-ddTHH:mm:ss.SSSSSSZZ",
	"YYYY-MM-dd HH:mm:ss.SSSSSSZZ",
	"YYYY-MM-ddTHH:mm:ssZZ",
	"YYYY-MM-dd HH:mm:ssZZ",
	"YYYY-MM-ddTHH:mm:ss.SSSSSS",
	"YYYY-MM-dd HH:mm:ss.SSSSSS",
	"YYYY-MM-ddTHH:mm:ss",
	"YYYY-MM-dd HH:mm:ss",
	"YYYY-MM-ddTHH:mmZZ",
	"YYYY-MM-ddTHH:mm",
	"YYYY-MM-dd",
	"YYYY-MM",
}

// ErrParse wraps errors returned by the parser package.
var ErrParse = errors.New("parser")

// Attempt records one failed candidate and the reason it failed.
type Attempt struct {
	Format string
	Reason string
}

// ParseError reports that no candidate format matched a value. Attempts
// lists every concrete candidate tried, in order, with its failure reason.
type ParseError struct {
	Value    string
	Attempts []Attempt
}

// Error returns a message containing the offending value and every
// attempted format with its reason.
func (e *ParseError) Error() string {
	attempts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		attempts[i] = fmt.Sprintf("%q (%s)", a.Format, a.Reason)
	}
	return fmt.Sprintf(
		"%v: value %q does not match any format in [%s]",
		ErrParse, e.Value, strings.Join(attempts, ", "),
	)
}

// Unwrap returns ErrParse so errors.Is matches.
func (e *ParseError) Unwrap() error { return ErrParse }

// Input is a value to parse: either text or a number. Numeric input can
// only be interpreted as a POSIX timestamp, regardless of the format list,
// unless the list carries other timestamp-capable entries.
type Input struct {
	text    string
	num     float64
	numeric bool
}

// Text returns an Input wrapping a string.
func Text(s string) Input { return Input{text: s} }

// Number returns an Input wrapping a number.
func Number(f float64) Input { return Input{num: f, numeric: true} }

// IsNumber reports whether the input is numeric.
func (in Input) IsNumber() bool { return in.numeric }

// String returns the input value as text.
func (in Input) String() string {
	if in.numeric {
		return strconv.FormatFloat(in.num, 'f', -1, 64)
	}
	return in.text
}

// Result is a successful parse: the UTC instant and the format list entry
// that matched.
type Result struct {
	Time   time.Time
	Format string
}

// ParseTime parses in using the candidate formats in order. The first
// successful match wins. When the matched text carries no offset of its
// own, defaultTZ names the zone its fields are interpreted in: an IANA zone
// name, "local", or empty for UTC. The returned time is always UTC at
// microsecond resolution. When every candidate fails the error is a
// *ParseError carrying each candidate and its reason.
func ParseTime(in Input, formats []string, defaultTZ string) (Result, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	// Resolve the default zone up front; an unknown zone is a caller
	// error, not a parse failure.
	loc, err := tz.Zone(defaultTZ)
	if err != nil {
		return Result{}, err
	}

	var attempts []Attempt
	for _, format := range formats {
		for _, candidate := range expand(format) {
			t, reason := tryCandidate(candidate, in, loc)
			if reason == "" {
				return Result{Time: t, Format: format}, nil
			}
			attempts = append(attempts, Attempt{Format: candidate, Reason: reason})
		}
	}

	return Result{}, &ParseError{Value: in.String(), Attempts: attempts}
}

// expand resolves a format list entry to its concrete candidates.
func expand(format string) []string {
	if strings.EqualFold(format, ISO8601) {
		return isoFormats
	}
	return []string{format}
}

// tryCandidate attempts one concrete candidate. An empty reason means
// success.
func tryCandidate(candidate string, in Input, loc *time.Location) (time.Time, string) {
	if strings.EqualFold(candidate, Timestamp) {
		if in.numeric {
			return fromUnix(in.num), ""
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(in.text), 64)
		if err != nil {
			return time.Time{}, "not a numeric timestamp"
		}
		return fromUnix(v), ""
	}

	plan, err := pattern.Compile(candidate, pattern.Parse)
	if err != nil {
		return time.Time{}, err.Error()
	}

	if in.numeric {
		if !plan.TimestampOnly() {
			return time.Time{}, "not applicable to numeric input"
		}
		return fromUnix(in.num), ""
	}

	fields, err := plan.Match(in.text)
	if err != nil {
		return time.Time{}, err.Error()
	}

	t, err := fieldsToTime(fields, loc)
	if err != nil {
		return time.Time{}, err.Error()
	}
	return t, ""
}

// fromUnix converts fractional POSIX seconds to a UTC time at microsecond
// resolution.
func fromUnix(seconds float64) time.Time {
	us := int64(math.Round(seconds * 1e6))
	return time.UnixMicro(us).UTC()
}

// fieldsToTime assembles matched fields into a UTC time. Missing date
// fields default to the epoch date, missing time fields to midnight. An
// explicit offset in the input wins over loc.
func fieldsToTime(f *pattern.Fields, loc *time.Location) (time.Time, error) {
	if f.HasTimestamp {
		return fromUnix(f.Timestamp), nil
	}

	year, month, day := 1970, 1, 1
	if f.HasYear {
		year = f.Year
	}
	if f.HasMonth {
		month = f.Month
	}
	if f.HasDay {
		day = f.Day
	}

	if f.HasDayOfYear && !f.HasMonth && !f.HasDay {
		d := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, f.DayOfYear-1)
		if d.Year() != year {
			return time.Time{}, fmt.Errorf(
				"%w: day of year %d out of range for %d",
				ErrParse, f.DayOfYear, year,
			)
		}
		month, day = int(d.Month()), d.Day()
	}

	hour := f.Hour
	if f.Hour12 {
		hour = f.Hour % 12
		if f.PM {
			hour += 12
		}
	}

	if f.HasOffset {
		loc = time.FixedZone("", f.Offset)
	}

	t := time.Date(year, time.Month(month), day, hour, f.Minute, f.Second,
		f.Microsecond*int(time.Microsecond), loc)

	// time.Date normalizes out-of-range days (Feb 30 becomes Mar 2);
	// reject any value that did not survive round-trip.
	if t.In(loc).Day() != day || int(t.In(loc).Month()) != month {
		return time.Time{}, fmt.Errorf(
			"%w: day %d out of range for %04d-%02d", ErrParse, day, year, month,
		)
	}

	return t.UTC().Truncate(time.Microsecond), nil
}

// FormatTime renders t with the given pattern after shifting it to the zone
// named by tzName ("" or "UTC" for UTC, "local" for the system zone). An
// empty pattern or the ISO8601 keyword renders the canonical ISO 8601 form.
// Localized names resolve through loc; nil uses the built-in English
// provider.
func FormatTime(t time.Time, format, tzName string, loc locale.Provider) (string, error) {
	zone, err := tz.Zone(tzName)
	if err != nil {
		return "", err
	}
	t = t.In(zone)

	if format == "" || strings.EqualFold(format, ISO8601) {
		return ISOString(t), nil
	}

	plan, err := pattern.Compile(format, pattern.Format)
	if err != nil {
		return "", err
	}
	return plan.Render(t, loc)
}

// ISOString renders t in ISO 8601 form with a colon-separated offset,
// including microseconds only when the value has them.
func ISOString(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05-07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000-07:00")
}
