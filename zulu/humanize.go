package zulu

import (
	"fmt"
	"math"

	"github.com/theory/zulutime/zulu/locale"
)

// HumanizeConfig controls humanized duration rendering. The zero value is
// meaningful — a zero Threshold always selects the coarsest unit — so use
// [DefaultHumanize] for the conventional defaults.
type HumanizeConfig struct {
	// Style selects the phrase register: long ("3 hours"), short
	// ("3 hrs"), or narrow ("3h").
	Style locale.Style

	// Granularity is the smallest unit rendered. Automatic selection
	// stops there even when the threshold never triggers. Only Second
	// through Year are valid.
	Granularity Unit

	// Threshold scales how quickly selection steps down to a finer unit.
	// A unit is chosen once the duration measured in it reaches the
	// threshold; zero therefore pins the coarsest unit ("0 years"), and
	// large values push selection toward seconds.
	Threshold float64

	// AddDirection wraps the phrase with directional text, "in 3 hours"
	// or "3 hours ago", chosen by the sign of the duration.
	AddDirection bool

	// Locale is a BCP 47 identifier resolved against the registered
	// locale providers; empty means English.
	Locale string
}

// DefaultHumanize returns the conventional humanize configuration: long
// style, second granularity, threshold 0.85.
func DefaultHumanize() HumanizeConfig {
	return HumanizeConfig{
		Style:       locale.Long,
		Granularity: Second,
		Threshold:   0.85,
	}
}

// humanizeLadder lists the selection buckets from coarsest to finest with
// their nominal lengths in seconds: a 365-day year, a 30-day month.
var humanizeLadder = []struct {
	unit    Unit
	seconds float64
}{
	{Year, 365 * 24 * 3600},
	{Month, 30 * 24 * 3600},
	{Week, 7 * 24 * 3600},
	{Day, 24 * 3600},
	{Hour, 3600},
	{Minute, 60},
	{Second, 1},
}

// localeUnits maps ladder units to their locale counterparts.
var localeUnits = map[Unit]locale.Unit{
	Year:   locale.Year,
	Month:  locale.Month,
	Week:   locale.Week,
	Day:    locale.Day,
	Hour:   locale.Hour,
	Minute: locale.Minute,
	Second: locale.Second,
}

// Humanize renders the Delta as a localized phrase. Walking the unit
// ladder from years down to seconds, it selects the first unit in which
// the duration's magnitude reaches cfg.Threshold, or cfg.Granularity when
// no coarser unit qualifies, and renders the rounded count in that unit.
func (d Delta) Humanize(cfg HumanizeConfig) (string, error) {
	if cfg.Granularity < Second || cfg.Granularity > Year {
		return "", fmt.Errorf(
			"%w: humanize granularity must be between second and year, not %v",
			ErrInvalidUnit, cfg.Granularity,
		)
	}
	if cfg.Style < locale.Long || cfg.Style > locale.Narrow {
		return "", fmt.Errorf(
			"%w: unknown humanize style %v", ErrInvalidUnit, int(cfg.Style),
		)
	}

	provider := locale.Get(cfg.Locale)
	seconds := math.Abs(d.Seconds())

	for _, bucket := range humanizeLadder {
		value := seconds / bucket.seconds
		if value >= cfg.Threshold || bucket.unit == cfg.Granularity {
			if bucket.unit == cfg.Granularity && value > 0 {
				value = math.Max(value, 1)
			}
			count := int64(math.Round(value))
			phrase := provider.FormatUnit(count, localeUnits[bucket.unit], cfg.Style)
			if cfg.AddDirection {
				phrase = provider.FormatDirection(phrase, d.Microseconds() < 0)
			}
			return phrase, nil
		}
	}

	// Unreachable: the ladder always bottoms out at the granularity.
	return "", nil
}

// TimeFrom returns the humanized elapsed time from other to t with
// directional text, e.g. "1 hour ago" when t is an hour before other.
func (t Time) TimeFrom(other Time) string {
	return directional(t.Sub(other))
}

// TimeTo returns the humanized elapsed time from t to other with
// directional text, e.g. "in 1 hour" when other is an hour after t.
func (t Time) TimeTo(other Time) string {
	return directional(other.Sub(t))
}

// TimeFromNow returns the humanized elapsed time from now to t.
func (t Time) TimeFromNow() string {
	return t.TimeFrom(Now())
}

// TimeToNow returns the humanized elapsed time from t to now.
func (t Time) TimeToNow() string {
	return t.TimeTo(Now())
}

func directional(d Delta) string {
	cfg := DefaultHumanize()
	cfg.AddDirection = true
	// The default configuration cannot fail validation.
	phrase, _ := d.Humanize(cfg)
	return phrase
}
