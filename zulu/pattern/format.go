package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theory/zulutime/zulu/locale"
)

// Render renders t according to the plan, resolving localized names through
// loc. A nil loc uses the built-in English provider. The offset and
// timestamp tokens render from t's location, so shift t before calling to
// format in another zone.
func (p *Plan) Render(t time.Time, loc locale.Provider) (string, error) {
	if p.mode != Format {
		return "", fmt.Errorf(
			"%w: plan for %q compiled in %v mode cannot render",
			ErrPattern, p.pattern, p.mode,
		)
	}
	if loc == nil {
		loc = locale.English()
	}

	out := new(strings.Builder)
	for _, tok := range p.tokens {
		out.WriteString(renderToken(tok, t, loc))
	}
	return out.String(), nil
}

func renderToken(tok token, t time.Time, loc locale.Provider) string {
	switch tok.field {
	case fLiteral:
		return tok.lit

	case fYear:
		if tok.width == 2 {
			return fmt.Sprintf("%02d", t.Year()%100)
		}
		return fmt.Sprintf("%04d", t.Year())

	case fMonth:
		return pad(int(t.Month()), tok.width)

	case fMonthName:
		return loc.MonthName(int(t.Month()), nameForm(tok.width))

	case fDayOfYear:
		return pad(t.YearDay(), tok.width)

	case fDay:
		return pad(t.Day(), tok.width)

	case fWeekdayName:
		return loc.WeekdayName(isoWeekday(t), nameForm(tok.width))

	case fWeekdayNum:
		return pad(isoWeekday(t), tok.width)

	case fHour24:
		return pad(t.Hour(), tok.width)

	case fHour12:
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, tok.width)

	case fDayPeriod:
		return loc.DayPeriod(t.Hour() >= 12)

	case fMinute:
		return pad(t.Minute(), tok.width)

	case fSecond:
		return pad(t.Second(), tok.width)

	case fFraction:
		// Truncate, never round: a narrower width drops digits.
		usec := t.Nanosecond() / int(time.Microsecond)
		return fmt.Sprintf("%06d", usec)[:tok.width]

	case fOffset:
		return renderOffset(t, tok.width == 2)

	case fTimestamp:
		return renderTimestamp(t)
	}
	return ""
}

func pad(v, width int) string {
	if width > 1 {
		return fmt.Sprintf("%0*d", width, v)
	}
	return strconv.Itoa(v)
}

// isoWeekday returns the ISO weekday number, 1 = Monday through 7 = Sunday.
func isoWeekday(t time.Time) int {
	if d := int(t.Weekday()); d > 0 {
		return d
	}
	return 7
}

func renderOffset(t time.Time, colon bool) string {
	_, seconds := t.Zone()
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	sep := ""
	if colon {
		sep = ":"
	}
	return fmt.Sprintf("%s%02d%s%02d", sign, seconds/3600, sep, seconds%3600/60)
}

func renderTimestamp(t time.Time) string {
	const usPerSec = int64(time.Second / time.Microsecond)
	us := t.UnixMicro()
	if us%usPerSec == 0 {
		return strconv.FormatInt(us/usPerSec, 10)
	}

	sign := ""
	if us < 0 {
		sign, us = "-", -us
	}
	s := fmt.Sprintf("%d.%06d", us/usPerSec, us%usPerSec)
	return sign + strings.TrimRight(s, "0")
}
