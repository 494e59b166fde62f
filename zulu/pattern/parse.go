package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/theory/zulutime/zulu/locale"
)

// Fields holds the values extracted from one matched input string. Fields
// without a Has flag default to zero and are meaningful only when their
// corresponding token appeared in the pattern.
type Fields struct {
	Year        int
	Month       int
	Day         int
	DayOfYear   int
	Hour        int
	Minute      int
	Second      int
	Microsecond int

	HasYear      bool
	HasMonth     bool
	HasDay       bool
	HasDayOfYear bool

	// Hour12 marks Hour as holding a 1-12 clock value to be combined with
	// the day period.
	Hour12 bool
	PM     bool

	// Offset is the UTC offset in seconds east, valid when HasOffset is set.
	HasOffset bool
	Offset    int

	// Timestamp is raw POSIX seconds, valid when HasTimestamp is set. It
	// overrides every other field.
	HasTimestamp bool
	Timestamp    float64
}

// Match matches input against the plan and extracts its fields. The whole
// input must match; leading or trailing text is a failure.
func (p *Plan) Match(input string) (*Fields, error) {
	if p.mode != Parse {
		return nil, fmt.Errorf(
			"%w: plan for %q compiled in %v mode cannot match",
			ErrPattern, p.pattern, p.mode,
		)
	}

	m := p.re.FindStringSubmatch(input)
	if m == nil {
		return nil, fmt.Errorf(
			"%w: %q does not match format %q", ErrPattern, input, p.pattern,
		)
	}

	fields := new(Fields)
	for i, tok := range p.groups {
		if err := fields.set(tok, m[i+1]); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// compileMatcher builds the anchored regexp and capture group table for a
// parse-mode plan.
func (p *Plan) compileMatcher() error {
	expr := new(strings.Builder)
	expr.WriteString(`\A`)

	for _, tok := range p.tokens {
		if tok.field == fLiteral {
			expr.WriteString(regexp.QuoteMeta(tok.lit))
			continue
		}
		expr.WriteByte('(')
		expr.WriteString(subexpr(tok))
		expr.WriteByte(')')
		p.groups = append(p.groups, tok)
	}
	expr.WriteString(`\z`)

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return fmt.Errorf(
			"%w: cannot compile matcher for %q: %v", ErrPattern, p.pattern, err,
		)
	}
	p.re = re
	return nil
}

// subexpr returns the regexp subexpression matching one token. Numeric
// tokens accept unpadded values so that, e.g., "3/2/1992" matches
// "MM/dd/YYYY".
func subexpr(tok token) string {
	switch tok.field {
	case fYear:
		if tok.width == 2 {
			return `\d{2}`
		}
		return `\d{1,4}`
	case fMonth, fDay, fHour24, fHour12, fMinute, fSecond:
		return `\d{1,2}`
	case fDayOfYear:
		return `\d{1,3}`
	case fWeekdayNum:
		return `[1-7]`
	case fFraction:
		return `\d{1,6}`
	case fMonthName:
		return nameAlternation(12, func(i int) string {
			return locale.English().MonthName(i, nameForm(tok.width))
		})
	case fWeekdayName:
		return nameAlternation(7, func(i int) string {
			return locale.English().WeekdayName(i, nameForm(tok.width))
		})
	case fDayPeriod:
		return `(?i:AM|PM)`
	case fOffset:
		return `Z|[+-]\d{2}:?\d{2}`
	case fTimestamp:
		return `-?\d+(?:\.\d+)?`
	}
	return ""
}

func nameForm(width int) locale.Form {
	if width == 4 {
		return locale.Wide
	}
	return locale.Abbreviated
}

func nameAlternation(n int, name func(int) string) string {
	alts := make([]string, n)
	for i := 1; i <= n; i++ {
		alts[i-1] = regexp.QuoteMeta(name(i))
	}
	return `(?i:` + strings.Join(alts, "|") + `)`
}

// set records the text matched for tok into the fields, validating numeric
// ranges.
func (f *Fields) set(tok token, text string) error {
	switch tok.field {
	case fYear:
		v, _ := strconv.Atoi(text)
		if tok.width == 2 {
			// Two-digit years pivot at 69, the strptime convention.
			if v <= 68 {
				v += 2000
			} else {
				v += 1900
			}
		}
		f.Year, f.HasYear = v, true

	case fMonth:
		v, _ := strconv.Atoi(text)
		if v < 1 || v > 12 {
			return rangeErr("month", v, 1, 12)
		}
		f.Month, f.HasMonth = v, true

	case fMonthName:
		for i := 1; i <= 12; i++ {
			if strings.EqualFold(text, locale.English().MonthName(i, nameForm(tok.width))) {
				f.Month, f.HasMonth = i, true
				break
			}
		}

	case fDay:
		v, _ := strconv.Atoi(text)
		if v < 1 || v > 31 {
			return rangeErr("day", v, 1, 31)
		}
		f.Day, f.HasDay = v, true

	case fDayOfYear:
		v, _ := strconv.Atoi(text)
		if v < 1 || v > 366 {
			return rangeErr("day of year", v, 1, 366)
		}
		f.DayOfYear, f.HasDayOfYear = v, true

	case fWeekdayName, fWeekdayNum:
		// Matched and validated by the regexp, but non-binding: a weekday
		// alone cannot determine a date.

	case fHour24:
		v, _ := strconv.Atoi(text)
		if v > 23 {
			return rangeErr("hour", v, 0, 23)
		}
		f.Hour = v

	case fHour12:
		v, _ := strconv.Atoi(text)
		if v < 1 || v > 12 {
			return rangeErr("hour", v, 1, 12)
		}
		f.Hour, f.Hour12 = v, true

	case fDayPeriod:
		f.PM = strings.EqualFold(text, "PM")

	case fMinute:
		v, _ := strconv.Atoi(text)
		if v > 59 {
			return rangeErr("minute", v, 0, 59)
		}
		f.Minute = v

	case fSecond:
		v, _ := strconv.Atoi(text)
		if v > 59 {
			return rangeErr("second", v, 0, 59)
		}
		f.Second = v

	case fFraction:
		// Right-pad to microseconds: ".266" is 266000µs.
		v, _ := strconv.Atoi(text + strings.Repeat("0", 6-len(text)))
		f.Microsecond = v

	case fOffset:
		offset, err := parseOffset(text)
		if err != nil {
			return err
		}
		f.Offset, f.HasOffset = offset, true

	case fTimestamp:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid timestamp %q", ErrPattern, text)
		}
		f.Timestamp, f.HasTimestamp = v, true
	}

	return nil
}

// parseOffset converts "Z", "±HHMM", or "±HH:MM" to seconds east of UTC.
func parseOffset(text string) (int, error) {
	if text == "Z" {
		return 0, nil
	}

	sign := 1
	if text[0] == '-' {
		sign = -1
	}
	digits := strings.Replace(text[1:], ":", "", 1)
	hours, _ := strconv.Atoi(digits[:2])
	minutes, _ := strconv.Atoi(digits[2:])
	if hours >= 24 || minutes > 59 {
		return 0, fmt.Errorf(
			"%w: UTC offset %q out of range", ErrPattern, text,
		)
	}
	return sign * (hours*3600 + minutes*60), nil
}

func rangeErr(name string, v, lo, hi int) error {
	return fmt.Errorf(
		"%w: %s %d out of range %d-%d", ErrPattern, name, v, lo, hi,
	)
}
