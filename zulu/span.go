package zulu

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// Unit is a calendrical unit of time.
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
	Decade
	Century
)

var unitNames = [...]string{
	"second", "minute", "hour", "day", "week",
	"month", "year", "decade", "century",
}

// String returns the unit name.
func (u Unit) String() string {
	if u < Second || u > Century {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit returns the Unit named by name, case-insensitively.
func ParseUnit(name string) (Unit, error) {
	for u, n := range unitNames {
		if strings.EqualFold(name, n) {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown time unit %q", ErrInvalidUnit, name)
}

func (u Unit) valid() bool { return u >= Second && u <= Century }

// isoWeekday returns the ISO weekday number of t, 1 = Monday through
// 7 = Sunday.
func isoWeekday(t time.Time) int {
	if d := int(t.Weekday()); d > 0 {
		return d
	}
	return 7
}

// Span is the boundary pair of a calendrical unit: Start is the first
// microsecond and End the last, so End is one microsecond before the next
// unit begins.
type Span struct {
	Start Time
	End   Time
}

// StartOf truncates t to the lower boundary of unit. Centuries and decades
// floor the year to the nearest lower multiple of 100 and 10, and weeks
// start on Monday per ISO 8601.
func (t Time) StartOf(unit Unit) (Time, error) {
	switch unit {
	case Century:
		return New(t.Year()-t.Year()%100, time.January, 1, 0, 0, 0, 0), nil
	case Decade:
		return New(t.Year()-t.Year()%10, time.January, 1, 0, 0, 0, 0), nil
	case Year:
		return New(t.Year(), time.January, 1, 0, 0, 0, 0), nil
	case Month:
		return New(t.Year(), t.Month(), 1, 0, 0, 0, 0), nil
	case Week:
		day := t.Time.AddDate(0, 0, 1-isoWeekday(t.Time))
		return New(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0), nil
	case Day:
		return New(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0), nil
	case Hour:
		return New(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0), nil
	case Minute:
		return New(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0), nil
	case Second:
		return New(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0), nil
	}
	return Time{}, fmt.Errorf("%w: unknown time unit %v", ErrInvalidUnit, int(unit))
}

// EndOf returns the last microsecond of the span of count units that
// begins at t's unit boundary: the start advanced by count unit lengths
// using calendar-correct arithmetic, minus one microsecond.
func (t Time) EndOf(unit Unit, count int) (Time, error) {
	start, err := t.StartOf(unit)
	if err != nil {
		return Time{}, err
	}
	next, err := start.step(unit, count)
	if err != nil {
		return Time{}, err
	}
	return next.Shift(Shift{Microseconds: -1})
}

// Span returns the boundary pair [StartOf, EndOf] of count units at t.
func (t Time) Span(unit Unit, count int) (Span, error) {
	start, err := t.StartOf(unit)
	if err != nil {
		return Span{}, err
	}
	end, err := t.EndOf(unit, count)
	if err != nil {
		return Span{}, err
	}
	return Span{Start: start, End: end}, nil
}

// step advances t by count unit lengths. Months and years use
// calendar-correct arithmetic, so month lengths and leap years are
// honored.
func (t Time) step(unit Unit, count int) (Time, error) {
	switch unit {
	case Century:
		return t.Shift(Shift{Years: 100 * count})
	case Decade:
		return t.Shift(Shift{Years: 10 * count})
	case Year:
		return t.Shift(Shift{Years: count})
	case Month:
		return t.Shift(Shift{Months: count})
	case Week:
		return t.Shift(Shift{Weeks: count})
	case Day:
		return t.Shift(Shift{Days: count})
	case Hour:
		return t.Shift(Shift{Hours: count})
	case Minute:
		return t.Shift(Shift{Minutes: count})
	case Second:
		return t.Shift(Shift{Seconds: count})
	}
	return Time{}, fmt.Errorf("%w: unknown time unit %v", ErrInvalidUnit, int(unit))
}

// SpanRange returns the sequence of successive spans of count units,
// beginning at start's unit boundary and stepping forward count units each
// time. The sequence stops before a span whose start would be on or after
// end, and is empty when start is after end. It is lazy and can be ranged
// over more than once.
func SpanRange(unit Unit, start, end Time, count int) (iter.Seq[Span], error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: span count %d below 1", ErrInvalidUnit, count)
	}
	first, err := start.StartOf(unit)
	if err != nil {
		return nil, err
	}

	return func(yield func(Span) bool) {
		for cur := first; cur.Before(end); {
			next, err := cur.step(unit, count)
			if err != nil {
				return
			}
			last, err := next.Shift(Shift{Microseconds: -1})
			if err != nil {
				return
			}
			if !yield(Span{Start: cur, End: last}) {
				return
			}
			cur = next
		}
	}, nil
}

// Range returns the sequence of instants beginning at start itself, not
// its unit boundary, stepping forward count units each time. The sequence
// stops before a value on or after end, and is empty when start is after
// end. It is lazy and can be ranged over more than once.
func Range(unit Unit, start, end Time, count int) (iter.Seq[Time], error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: range count %d below 1", ErrInvalidUnit, count)
	}
	// Validate the unit up front so the error surfaces before iteration.
	if !unit.valid() {
		return nil, fmt.Errorf("%w: unknown time unit %v", ErrInvalidUnit, int(unit))
	}

	return func(yield func(Time) bool) {
		for cur := start; cur.Before(end); {
			if !yield(cur) {
				return
			}
			next, err := cur.step(unit, count)
			if err != nil {
				return
			}
			cur = next
		}
	}, nil
}
