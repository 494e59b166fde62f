package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(year int, month time.Month, day, hour, minute, second, usec int) time.Time {
	return time.Date(year, month, day, hour, minute, second, usec*1000, time.UTC)
}

func TestParseTimeISO(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "full_with_offset",
			input: "2011-02-03T10:11:12.123456+03:00",
			want:  utc(2011, time.February, 3, 7, 11, 12, 123456),
		},
		{
			name:  "full_zulu",
			input: "2011-02-03T10:11:12.123456Z",
			want:  utc(2011, time.February, 3, 10, 11, 12, 123456),
		},
		{
			name:  "seconds_offset_no_colon",
			input: "2011-02-03T10:11:12-0800",
			want:  utc(2011, time.February, 3, 18, 11, 12, 0),
		},
		{
			name:  "seconds_no_offset",
			input: "2011-02-03T10:11:12",
			want:  utc(2011, time.February, 3, 10, 11, 12, 0),
		},
		{
			name:  "space_separator",
			input: "2011-02-03 10:11:12",
			want:  utc(2011, time.February, 3, 10, 11, 12, 0),
		},
		{
			name:  "to_minute",
			input: "2011-02-03T10:11",
			want:  utc(2011, time.February, 3, 10, 11, 0, 0),
		},
		{
			name:  "date_only",
			input: "2011-02-03",
			want:  utc(2011, time.February, 3, 0, 0, 0, 0),
		},
		{
			name:  "year_month",
			input: "2011-02",
			want:  utc(2011, time.February, 1, 0, 0, 0, 0),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			res, err := ParseTime(Text(tc.input), nil, "")
			r.NoError(err)
			a.Equal(tc.want, res.Time)
			a.Equal(ISO8601, res.Format)
			a.Equal(time.UTC, res.Time.Location())
		})
	}
}

func TestParseTimeFallback(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	// ISO alone does not match a US-style date and reports every
	// candidate it tried.
	_, err := ParseTime(Text("3/2/1992"), []string{ISO8601}, "")
	r.Error(err)

	var perr *ParseError
	r.ErrorAs(err, &perr)
	a.ErrorIs(err, ErrParse)
	a.Equal("3/2/1992", perr.Value)
	a.Len(perr.Attempts, len(isoFormats))
	for i, attempt := range perr.Attempts {
		a.Equal(isoFormats[i], attempt.Format)
		a.NotEmpty(attempt.Reason)
	}
	a.Contains(err.Error(), `"3/2/1992"`)
	a.Contains(err.Error(), isoFormats[0])

	// Adding a matching pattern after the keyword succeeds.
	res, err := ParseTime(Text("3/2/1992"), []string{ISO8601, "MM/dd/YYYY"}, "")
	r.NoError(err)
	a.Equal(utc(1992, time.March, 2, 0, 0, 0, 0), res.Time)
	a.Equal("MM/dd/YYYY", res.Format)
}

func TestParseTimeTimestamp(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	want := utc(2016, time.July, 25, 19, 33, 18, 0)

	res, err := ParseTime(Number(1469475198.0), []string{Timestamp}, "")
	r.NoError(err)
	a.Equal(want, res.Time)

	// Numeric input falls through to the timestamp entry of the default
	// formats.
	res, err = ParseTime(Number(1469475198.0), nil, "")
	r.NoError(err)
	a.Equal(want, res.Time)
	a.Equal(Timestamp, res.Format)

	// Text parses as a timestamp too, including fractional seconds.
	res, err = ParseTime(Text("1469475198.25"), []string{Timestamp}, "")
	r.NoError(err)
	a.Equal(want.Add(250*time.Millisecond), res.Time)

	// The X pattern token is timestamp-capable for numeric input.
	res, err = ParseTime(Number(1469475198.0), []string{"X"}, "")
	r.NoError(err)
	a.Equal(want, res.Time)
}

func TestParseTimeNumericWithPatternFormats(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	// A numeric value cannot match a text-only pattern; the attempt is
	// recorded rather than tried.
	_, err := ParseTime(Number(1469475198.0), []string{"YYYY-MM-dd"}, "")
	r.Error(err)

	var perr *ParseError
	r.ErrorAs(err, &perr)
	r.Len(perr.Attempts, 1)
	a.Equal("YYYY-MM-dd", perr.Attempts[0].Format)
	a.Equal("not applicable to numeric input", perr.Attempts[0].Reason)
}

func TestParseTimeDefaultTZ(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	// Without an offset in the text, the default zone applies before
	// conversion to UTC. New York was UTC-5 in February.
	res, err := ParseTime(Text("2011-02-03T10:11:12"), nil, "America/New_York")
	r.NoError(err)
	a.Equal(utc(2011, time.February, 3, 15, 11, 12, 0), res.Time)

	// An explicit offset in the text wins over the default zone.
	res, err = ParseTime(Text("2011-02-03T10:11:12Z"), nil, "America/New_York")
	r.NoError(err)
	a.Equal(utc(2011, time.February, 3, 10, 11, 12, 0), res.Time)

	// An unknown default zone is an error before any candidate is tried.
	_, err = ParseTime(Text("2011-02-03"), nil, "Nowhere/Special")
	r.Error(err)
	a.NotErrorIs(err, ErrParse)
}

func TestParseTimeInvalidDates(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "feb_30", input: "2011-02-30"},
		{name: "feb_29_non_leap", input: "2015-02-29"},
		{name: "month_13", input: "2011-13-01"},
		{name: "empty", input: ""},
		{name: "junk", input: "not a date"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			_, err := ParseTime(Text(tc.input), nil, "")
			a.ErrorIs(err, ErrParse)
		})
	}
}

func TestParseTimeDayOfYear(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	res, err := ParseTime(Text("2015-094"), []string{"YYYY-DDD"}, "")
	r.NoError(err)
	a.Equal(utc(2015, time.April, 4, 0, 0, 0, 0), res.Time)

	// Day 366 exists only in leap years.
	res, err = ParseTime(Text("2016-366"), []string{"YYYY-DDD"}, "")
	r.NoError(err)
	a.Equal(utc(2016, time.December, 31, 0, 0, 0, 0), res.Time)

	_, err = ParseTime(Text("2015-366"), []string{"YYYY-DDD"}, "")
	a.ErrorIs(err, ErrParse)
}

func TestFormatTime(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	when := utc(2011, time.February, 3, 10, 11, 12, 123456)

	out, err := FormatTime(when, "", "", nil)
	r.NoError(err)
	a.Equal("2011-02-03T10:11:12.123456+00:00", out)

	out, err = FormatTime(when, ISO8601, "", nil)
	r.NoError(err)
	a.Equal("2011-02-03T10:11:12.123456+00:00", out)

	out, err = FormatTime(utc(2011, time.February, 3, 10, 11, 12, 0), "", "", nil)
	r.NoError(err)
	a.Equal("2011-02-03T10:11:12+00:00", out)

	out, err = FormatTime(when, "MMMM d, YYYY", "", nil)
	r.NoError(err)
	a.Equal("February 3, 2011", out)

	// Formatting in another zone shifts the rendered fields but not the
	// value.
	out, err = FormatTime(when, "YYYY-MM-dd HH:mm ZZ", "America/New_York", nil)
	r.NoError(err)
	a.Equal("2011-02-03 05:11 -05:00", out)

	_, err = FormatTime(when, "yyy", "", nil)
	a.Error(err)

	_, err = FormatTime(when, "", "Nowhere/Special", nil)
	a.Error(err)
}
