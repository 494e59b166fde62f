package locale

import (
	"strconv"

	"golang.org/x/text/language"
)

// english is the built-in English provider. Its tables hold the CLDR "en"
// names and unit patterns used by default everywhere a Provider is required.
var english Provider = &englishProvider{}

// English returns the built-in English provider.
func English() Provider { return english }

type englishProvider struct{}

var enMonths = [12][2]string{
	{"January", "Jan"},
	{"February", "Feb"},
	{"March", "Mar"},
	{"April", "Apr"},
	{"May", "May"},
	{"June", "Jun"},
	{"July", "Jul"},
	{"August", "Aug"},
	{"September", "Sep"},
	{"October", "Oct"},
	{"November", "Nov"},
	{"December", "Dec"},
}

var enWeekdays = [7][2]string{
	{"Monday", "Mon"},
	{"Tuesday", "Tue"},
	{"Wednesday", "Wed"},
	{"Thursday", "Thu"},
	{"Friday", "Fri"},
	{"Saturday", "Sat"},
	{"Sunday", "Sun"},
}

// enUnits maps Unit to its singular, plural, short, and narrow spellings.
var enUnits = [7][4]string{
	Year:   {"year", "years", "yr", "y"},
	Month:  {"month", "months", "mth", "mo"},
	Week:   {"week", "weeks", "wk", "w"},
	Day:    {"day", "days", "day", "d"},
	Hour:   {"hour", "hours", "hr", "h"},
	Minute: {"minute", "minutes", "min", "m"},
	Second: {"second", "seconds", "sec", "s"},
}

func (*englishProvider) Tag() language.Tag { return language.English }

func (*englishProvider) MonthName(month int, form Form) string {
	if month < 1 || month > 12 {
		return ""
	}
	if form == Wide {
		return enMonths[month-1][0]
	}
	return enMonths[month-1][1]
}

func (*englishProvider) WeekdayName(day int, form Form) string {
	if day < 1 || day > 7 {
		return ""
	}
	if form == Wide {
		return enWeekdays[day-1][0]
	}
	return enWeekdays[day-1][1]
}

func (*englishProvider) DayPeriod(pm bool) string {
	if pm {
		return "PM"
	}
	return "AM"
}

func (*englishProvider) FormatUnit(count int64, unit Unit, style Style) string {
	if unit < Year || unit > Second {
		return ""
	}
	names := enUnits[unit]
	n := strconv.FormatInt(count, 10)

	switch style {
	case Narrow:
		return n + names[3]
	case Short:
		name := names[2]
		if count != 1 {
			name += "s"
		}
		return n + " " + name
	default:
		name := names[0]
		if count != 1 {
			name = names[1]
		}
		return n + " " + name
	}
}

func (*englishProvider) FormatDirection(phrase string, past bool) string {
	if past {
		return phrase + " ago"
	}
	return "in " + phrase
}
