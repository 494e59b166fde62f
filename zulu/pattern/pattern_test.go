package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theory/zulutime/zulu/locale"
)

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		pattern string
		token   string
	}{
		{name: "bad_run_length", pattern: "yyy-MM-dd", token: "yyy"},
		{name: "seven_s", pattern: "HH:mm:ss.SSSSSSS", token: "SSSSSSS"},
		{name: "unknown_directive", pattern: "%Y-%q", token: "%q"},
		{name: "trailing_percent", pattern: "%Y-%m-%d%", token: "%"},
		{name: "doubled_period_marker", pattern: "hh:mm aa", token: "aa"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			for _, mode := range []Mode{Parse, Format} {
				plan, err := Compile(tc.pattern, mode)
				a.Nil(plan)
				a.ErrorIs(err, ErrPattern)

				var utErr *UnsupportedTokenError
				if a.ErrorAs(err, &utErr) {
					a.Equal(tc.token, utErr.Token)
					a.Equal(mode, utErr.Mode)
				}
			}
		})
	}
}

func TestCompileModeMismatch(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	parsePlan, err := Compile("YYYY", Parse)
	r.NoError(err)
	_, err = parsePlan.Render(time.Now(), nil)
	a.ErrorIs(err, ErrPattern)

	formatPlan, err := Compile("YYYY", Format)
	r.NoError(err)
	_, err = formatPlan.Match("2024")
	a.ErrorIs(err, ErrPattern)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		pattern string
		input   string
		want    Fields
	}{
		{
			name:    "date",
			pattern: "YYYY-MM-dd",
			input:   "1992-03-02",
			want: Fields{
				Year: 1992, Month: 3, Day: 2,
				HasYear: true, HasMonth: true, HasDay: true,
			},
		},
		{
			name:    "unpadded_date",
			pattern: "MM/dd/YYYY",
			input:   "3/2/1992",
			want: Fields{
				Year: 1992, Month: 3, Day: 2,
				HasYear: true, HasMonth: true, HasDay: true,
			},
		},
		{
			name:    "directive_date",
			pattern: "%Y-%m-%d",
			input:   "2024-02-29",
			want: Fields{
				Year: 2024, Month: 2, Day: 29,
				HasYear: true, HasMonth: true, HasDay: true,
			},
		},
		{
			name:    "two_digit_year_past_pivot",
			pattern: "YY",
			input:   "69",
			want:    Fields{Year: 1969, HasYear: true},
		},
		{
			name:    "two_digit_year_before_pivot",
			pattern: "YY",
			input:   "68",
			want:    Fields{Year: 2068, HasYear: true},
		},
		{
			name:    "month_name",
			pattern: "MMMM d, YYYY",
			input:   "March 2, 1992",
			want: Fields{
				Year: 1992, Month: 3, Day: 2,
				HasYear: true, HasMonth: true, HasDay: true,
			},
		},
		{
			name:    "abbreviated_month_case_insensitive",
			pattern: "dd MMM YYYY",
			input:   "02 mar 1992",
			want: Fields{
				Year: 1992, Month: 3, Day: 2,
				HasYear: true, HasMonth: true, HasDay: true,
			},
		},
		{
			name:    "time_with_fraction",
			pattern: "HH:mm:ss.SSSSSS",
			input:   "12:30:37.651839",
			want:    Fields{Hour: 12, Minute: 30, Second: 37, Microsecond: 651839},
		},
		{
			name:    "short_fraction_right_pads",
			pattern: "HH:mm:ss.SSSSSS",
			input:   "04:13:02.266",
			want:    Fields{Hour: 4, Minute: 13, Second: 2, Microsecond: 266000},
		},
		{
			name:    "twelve_hour_pm",
			pattern: "h:mm a",
			input:   "7:05 PM",
			want:    Fields{Hour: 7, Minute: 5, Hour12: true, PM: true},
		},
		{
			name:    "offset_with_colon",
			pattern: "HH:mmZZ",
			input:   "10:00+05:30",
			want:    Fields{Hour: 10, HasOffset: true, Offset: 5*3600 + 30*60},
		},
		{
			name:    "offset_without_colon",
			pattern: "HH:mmZ",
			input:   "10:00-0800",
			want:    Fields{Hour: 10, HasOffset: true, Offset: -8 * 3600},
		},
		{
			name:    "offset_zulu",
			pattern: "HH:mmZZ",
			input:   "10:00Z",
			want:    Fields{Hour: 10, HasOffset: true},
		},
		{
			name:    "day_of_year",
			pattern: "YYYY-DDD",
			input:   "2015-094",
			want:    Fields{Year: 2015, DayOfYear: 94, HasYear: true, HasDayOfYear: true},
		},
		{
			name:    "timestamp_token",
			pattern: "X",
			input:   "1469475198.5",
			want:    Fields{HasTimestamp: true, Timestamp: 1469475198.5},
		},
		{
			name:    "quoted_apostrophe",
			pattern: "''YYYY",
			input:   "'1990",
			want:    Fields{Year: 1990, HasYear: true},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			plan, err := Compile(tc.pattern, Parse)
			r.NoError(err)

			fields, err := plan.Match(tc.input)
			r.NoError(err)
			a.Equal(&tc.want, fields)
		})
	}
}

func TestMatchFailures(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		pattern string
		input   string
	}{
		{name: "trailing_text", pattern: "YYYY-MM-dd", input: "1992-03-02x"},
		{name: "leading_text", pattern: "YYYY-MM-dd", input: "x1992-03-02"},
		{name: "wrong_shape", pattern: "YYYY-MM-dd", input: "3/2/1992"},
		{name: "month_out_of_range", pattern: "YYYY-MM-dd", input: "1992-13-02"},
		{name: "month_zero", pattern: "YYYY-MM-dd", input: "1992-00-02"},
		{name: "hour_out_of_range", pattern: "HH:mm", input: "24:00"},
		{name: "minute_out_of_range", pattern: "HH:mm", input: "10:61"},
		{name: "twelve_hour_zero", pattern: "hh:mm", input: "00:30"},
		{name: "offset_out_of_range", pattern: "HH:mmZZ", input: "10:00+25:00"},
		{name: "day_of_year_zero", pattern: "YYYY-DDD", input: "2015-000"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			plan, err := Compile(tc.pattern, Parse)
			r.NoError(err)

			fields, err := plan.Match(tc.input)
			a.Nil(fields)
			a.ErrorIs(err, ErrPattern)
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	// 2015-04-04 was a Saturday.
	when := time.Date(2015, time.April, 4, 19, 5, 37, 651839*1000, time.UTC)

	for _, tc := range []struct {
		name    string
		pattern string
		time    time.Time
		want    string
	}{
		{name: "date", pattern: "YYYY-MM-dd", time: when, want: "2015-04-04"},
		{name: "directives", pattern: "%Y-%m-%d %H:%M:%S", time: when, want: "2015-04-04 19:05:37"},
		{name: "two_digit_year", pattern: "YY", time: when, want: "15"},
		{name: "month_names", pattern: "MMMM MMM M", time: when, want: "April Apr 4"},
		{name: "weekday", pattern: "EEEE EEE e", time: when, want: "Saturday Sat 6"},
		{name: "day_of_year", pattern: "DDD D", time: when, want: "094 94"},
		{name: "twelve_hour", pattern: "h:mm a", time: when, want: "7:05 PM"},
		{
			name:    "twelve_hour_midnight",
			pattern: "hh a",
			time:    time.Date(2015, time.April, 4, 0, 0, 0, 0, time.UTC),
			want:    "12 AM",
		},
		{name: "fraction_full", pattern: "ss.SSSSSS", time: when, want: "37.651839"},
		{name: "fraction_truncates", pattern: "ss.SSS", time: when, want: "37.651"},
		{name: "directive_fraction", pattern: "%S.%f", time: when, want: "37.651839"},
		{name: "offset_utc", pattern: "Z", time: when, want: "+0000"},
		{name: "offset_colon", pattern: "ZZ", time: when, want: "+00:00"},
		{
			name:    "offset_east",
			pattern: "ZZ",
			time:    when.In(time.FixedZone("IST", 5*3600+30*60)),
			want:    "+05:30",
		},
		{
			name:    "offset_west",
			pattern: "Z",
			time:    when.In(time.FixedZone("PST", -8*3600)),
			want:    "-0800",
		},
		{
			name:    "timestamp_integer",
			pattern: "X",
			time:    time.Date(2016, time.July, 25, 19, 33, 18, 0, time.UTC),
			want:    "1469475198",
		},
		{
			name:    "timestamp_fractional",
			pattern: "X",
			time:    time.Date(2016, time.July, 25, 19, 33, 18, 250000*1000, time.UTC),
			want:    "1469475198.25",
		},
		{name: "literals", pattern: "'YYYY:' YYYY", time: when, want: "'2015:' 2015"},
		{name: "escaped_quote", pattern: "YYYY''", time: when, want: "2015'"},
		{name: "percent_literal", pattern: "%d%%", time: when, want: "04%"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			plan, err := Compile(tc.pattern, Format)
			r.NoError(err)

			out, err := plan.Render(tc.time, locale.English())
			r.NoError(err)
			a.Equal(tc.want, out)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	when := time.Date(2015, time.April, 4, 19, 5, 37, 651839*1000, time.UTC)

	for _, pat := range []string{
		"YYYY-MM-ddTHH:mm:ss.SSSSSSZZ",
		"YYYY-MM-dd HH:mm:ss",
		"%Y-%m-%dT%H:%M:%S.%f%z",
		"MMMM d, YYYY h:mm:ss a",
	} {
		t.Run(pat, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			format, err := Compile(pat, Format)
			r.NoError(err)
			out, err := format.Render(when, nil)
			r.NoError(err)

			parse, err := Compile(pat, Parse)
			r.NoError(err)
			fields, err := parse.Match(out)
			r.NoError(err)

			a.Equal(2015, fields.Year)
			a.Equal(4, fields.Month)
			a.Equal(4, fields.Day)
			hour := fields.Hour
			if fields.Hour12 && fields.PM {
				hour = fields.Hour%12 + 12
			}
			a.Equal(19, hour)
			a.Equal(5, fields.Minute)
			a.Equal(37, fields.Second)
		})
	}
}

func TestSupportedTokens(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	patterns := SupportedPatterns()
	a.Contains(patterns, "YYYY")
	a.Contains(patterns, "SSSSSS")
	a.IsNonDecreasing(patterns)

	directives := SupportedDirectives()
	a.Contains(directives, "%Y")
	a.Contains(directives, "%f")
	a.IsNonDecreasing(directives)
}
