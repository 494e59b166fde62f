package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Microseconds per unit, as floats so fractional quantities keep full
// precision until the final rounding.
const (
	usPerSecond = 1e6
	usPerMinute = 60 * usPerSecond
	usPerHour   = 60 * usPerMinute
	usPerDay    = 24 * usPerHour
	usPerWeek   = 7 * usPerDay
)

// durationUnits maps every recognized unit spelling to its length in
// microseconds. Spellings are matched case-insensitively, with an optional
// trailing period after abbreviations.
var durationUnits = map[string]float64{
	"w": usPerWeek, "wk": usPerWeek, "wks": usPerWeek,
	"week": usPerWeek, "weeks": usPerWeek,

	"d": usPerDay, "dy": usPerDay, "dys": usPerDay,
	"day": usPerDay, "days": usPerDay,

	"h": usPerHour, "hr": usPerHour, "hrs": usPerHour,
	"hour": usPerHour, "hours": usPerHour,

	"m": usPerMinute, "min": usPerMinute, "mins": usPerMinute,
	"minute": usPerMinute, "minutes": usPerMinute,

	"s": usPerSecond, "sec": usPerSecond, "secs": usPerSecond,
	"second": usPerSecond, "seconds": usPerSecond,
}

var (
	// clockDays matches D:HH:MM:SS[.ffffff].
	clockDays = regexp.MustCompile(
		`\A(\d+):(\d{1,2}):(\d{1,2}):(\d{1,2})(?:[.,](\d{1,6}))?\z`,
	)

	// clock matches HH:MM:SS[.ffffff] with an optional verbose
	// "N days," prefix.
	clock = regexp.MustCompile(
		`\A(?:(\d+)\s*(?i:d|dys?|days?)\s*,\s*)?(\d{1,2}):(\d{1,2}):(\d{1,2})(?:[.,](\d{1,6}))?\z`,
	)

	// unitToken matches one sign/quantity/unit triple at the start of the
	// remaining text.
	unitToken = regexp.MustCompile(
		`\A([-+]?)(\d+(?:[.,]\d+)?|[.,]\d+)\s*([A-Za-z]+)`,
	)

	// unitSep matches the ignorable separators between unit tokens.
	unitSep = regexp.MustCompile(`\A(?:[\s,]|(?i:and)\s)+`)
)

// ParseDelta parses a free-form duration string. Text containing a colon
// uses the clock grammar, [D:]HH:MM:SS[.ffffff] or "N days, HH:MM:SS";
// anything else uses the unit-token grammar, e.g. "1w 3d 2h 32m" or
// "2 days, 5 hours and 34.5 minutes". A leading minus sign negates the
// whole value. The result is rounded to microsecond resolution.
func ParseDelta(text string) (time.Duration, error) {
	s := strings.TrimSpace(text)

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, "+"):
		s = strings.TrimSpace(s[1:])
	}

	if s == "" {
		return 0, &ParseError{Value: text, Attempts: []Attempt{
			{Format: "duration", Reason: "empty value"},
		}}
	}

	var (
		us      float64
		grammar string
		reason  string
	)
	if strings.Contains(s, ":") {
		grammar = "clock"
		us, reason = parseClock(s)
	} else {
		grammar = "units"
		us, reason = parseUnits(s)
	}

	if reason != "" {
		return 0, &ParseError{Value: text, Attempts: []Attempt{
			{Format: grammar, Reason: reason},
		}}
	}

	d := time.Duration(int64(math.Round(us))) * time.Microsecond
	if negative {
		d = -d
	}
	return d, nil
}

// parseClock parses [D:]HH:MM:SS[.ffffff] or "N days, HH:MM:SS[.ffffff]".
func parseClock(s string) (float64, string) {
	m := clockDays.FindStringSubmatch(s)
	if m == nil {
		m = clock.FindStringSubmatch(s)
	}
	if m == nil {
		return 0, "does not match the [D:]HH:MM:SS[.ffffff] clock grammar"
	}

	var us float64
	if m[1] != "" {
		days, _ := strconv.ParseFloat(m[1], 64)
		us += days * usPerDay
	}
	hours, _ := strconv.ParseFloat(m[2], 64)
	minutes, _ := strconv.ParseFloat(m[3], 64)
	seconds, _ := strconv.ParseFloat(m[4], 64)
	if minutes > 59 || seconds > 59 {
		return 0, fmt.Sprintf("clock value %s:%s out of range", m[3], m[4])
	}
	us += hours*usPerHour + minutes*usPerMinute + seconds*usPerSecond

	if m[5] != "" {
		// Right-pad the fraction to microseconds.
		frac, _ := strconv.Atoi(m[5] + strings.Repeat("0", 6-len(m[5])))
		us += float64(frac)
	}
	return us, ""
}

// parseUnits parses a sequence of quantity/unit tokens, summing each
// quantity times its unit length. Commas, "and", and whitespace separate
// tokens; leftover text is a failure.
func parseUnits(s string) (float64, string) {
	var us float64
	matched := false

	for s != "" {
		m := unitToken.FindStringSubmatch(s)
		if m == nil {
			return 0, fmt.Sprintf("unrecognized text %q", s)
		}

		quantity, err := strconv.ParseFloat(
			strings.Replace(m[2], ",", ".", 1), 64,
		)
		if err != nil {
			return 0, fmt.Sprintf("invalid quantity %q", m[2])
		}

		unit := strings.ToLower(m[3])
		length, ok := durationUnits[unit]
		if !ok {
			return 0, fmt.Sprintf("unrecognized unit %q", m[3])
		}

		if m[1] == "-" {
			quantity = -quantity
		}
		us += quantity * length
		matched = true

		s = s[len(m[0]):]
		// Abbreviations may carry a trailing period.
		if strings.HasPrefix(s, ".") && (len(s) == 1 || s[1] < '0' || s[1] > '9') {
			s = s[1:]
		}
		if sep := unitSep.FindString(s); sep != "" {
			s = s[len(sep):]
		}
	}

	if !matched {
		return 0, "no duration tokens found"
	}
	return us, ""
}
