// Package locale supplies calendar names and duration phrase templates to
// the formatting and humanizing code.
//
// The core library never hard-codes localized strings. Everything
// locale-sensitive goes through the Provider interface, so callers can
// register providers for additional locales or inject fakes in tests. A
// built-in English provider backs the default behavior.
package locale

import (
	"sort"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/text/language"
)

// Form selects between the full and abbreviated variants of a calendar name.
type Form int

const (
	// Wide selects the full name, e.g. "January", "Monday".
	Wide Form = iota

	// Abbreviated selects the short name, e.g. "Jan", "Mon".
	Abbreviated
)

// Style selects the register of a humanized duration phrase.
type Style int

const (
	// Long spells the unit out, e.g. "3 hours".
	Long Style = iota

	// Short abbreviates the unit, e.g. "3 hrs".
	Short

	// Narrow uses the most compact form, e.g. "3h".
	Narrow
)

// Unit identifies a duration bucket for humanized rendering, ordered from
// coarsest to finest.
type Unit int

const (
	Year Unit = iota
	Month
	Week
	Day
	Hour
	Minute
	Second
)

// Provider returns locale data for a single locale. Implementations must be
// safe for concurrent use; the built-in providers are immutable.
type Provider interface {
	// Tag returns the BCP 47 tag the provider serves.
	Tag() language.Tag

	// MonthName returns the name of month (1-12) in the requested form.
	MonthName(month int, form Form) string

	// WeekdayName returns the name of the ISO weekday (1 = Monday through
	// 7 = Sunday) in the requested form.
	WeekdayName(day int, form Form) string

	// DayPeriod returns the AM or PM marker.
	DayPeriod(pm bool) string

	// FormatUnit renders count in unit using the pluralization rule for
	// style, e.g. FormatUnit(3, Hour, Long) == "3 hours".
	FormatUnit(count int64, unit Unit, style Style) string

	// FormatDirection wraps a humanized phrase with directional text,
	// e.g. "3 hours" becomes "3 hours ago" when past is true.
	FormatDirection(phrase string, past bool) string
}

// registry holds the registered providers. Read-mostly: the matcher is
// rebuilt only when Register invalidates it.
var registry = struct {
	sync.RWMutex
	providers map[language.Tag]Provider
	ordered   []language.Tag
	matcher   language.Matcher
}{
	providers: map[language.Tag]Provider{language.English: english},
}

// Register adds or replaces the provider for its tag.
func Register(p Provider) {
	registry.Lock()
	defer registry.Unlock()
	registry.providers[p.Tag()] = p
	// Invalidate the matcher; Get rebuilds it on demand.
	registry.matcher = nil
	registry.ordered = nil
}

// Get returns the provider best matching the BCP 47 locale identifier id.
// Unknown or unparsable identifiers fall back to English.
func Get(id string) Provider {
	if id == "" {
		return English()
	}

	tag, err := language.Parse(id)
	if err != nil {
		return English()
	}

	registry.Lock()
	defer registry.Unlock()
	if registry.matcher == nil {
		registry.ordered = orderTags(registry.providers)
		registry.matcher = language.NewMatcher(registry.ordered)
	}

	_, index, conf := registry.matcher.Match(tag)
	if conf == language.No {
		return English()
	}
	return registry.providers[registry.ordered[index]]
}

// Tags returns the registered locale tags. English is always present and
// always first; the rest sort by tag string.
func Tags() []language.Tag {
	registry.RLock()
	defer registry.RUnlock()
	return orderTags(registry.providers)
}

// orderTags puts English first, as the first tag a Matcher receives is its
// fallback, and sorts the rest by tag string for deterministic matching.
func orderTags(providers map[language.Tag]Provider) []language.Tag {
	tags := maps.Keys(providers)
	sort.Slice(tags, func(i, j int) bool {
		if tags[i] == language.English {
			return tags[j] != language.English
		}
		if tags[j] == language.English {
			return false
		}
		return tags[i].String() < tags[j].String()
	})
	return tags
}
