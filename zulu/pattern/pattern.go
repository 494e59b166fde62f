// Package pattern compiles date-time format strings into plans that either
// match input text or render an instant.
//
// Two token grammars share one pattern string. A percent sign introduces a
// POSIX-style one-character directive ("%Y", "%d"). A run of a repeated
// letter from the recognized set is a Unicode-style pattern token whose
// length selects the variant ("YYYY" is the four-digit year, "MMM" the
// abbreviated month name). A doubled single quote escapes a literal
// apostrophe; every other character stands for itself.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Mode selects the direction a plan is compiled for.
type Mode int

const (
	// Parse compiles a plan that matches input text.
	Parse Mode = iota

	// Format compiles a plan that renders an instant.
	Format
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Parse {
		return "parse"
	}
	return "format"
}

// ErrPattern wraps errors returned by the pattern package.
var ErrPattern = errors.New("pattern")

// UnsupportedTokenError reports a pattern token or directive with no mapping
// in the requested mode.
type UnsupportedTokenError struct {
	Token string
	Mode  Mode
}

// Error returns the error message.
func (e *UnsupportedTokenError) Error() string {
	return fmt.Sprintf(
		"%v: unsupported token %q in %v mode", ErrPattern, e.Token, e.Mode,
	)
}

// Unwrap returns ErrPattern so errors.Is matches.
func (e *UnsupportedTokenError) Unwrap() error { return ErrPattern }

// field identifies the date-time field a token binds.
type field int

const (
	fLiteral field = iota
	fYear          // width 4 or 2
	fMonth         // width 2 padded, 1 bare
	fMonthName     // width 4 wide, 3 abbreviated
	fDayOfYear     // width 3 or 1
	fDay           // width 2 padded, 1 bare
	fWeekdayName   // width 4 wide, 3 abbreviated
	fWeekdayNum    // ISO weekday 1-7; width 2 padded, 1 bare
	fHour24        // width 2 padded, 1 bare
	fHour12        // width 2 padded, 1 bare
	fDayPeriod     // AM/PM marker
	fMinute        // width 2 padded, 1 bare
	fSecond        // width 2 padded, 1 bare
	fFraction      // width 1-6; formatting truncates, never rounds
	fOffset        // width 2 renders a colon separator
	fTimestamp     // POSIX seconds, integer or fractional
)

// token is one compiled pattern element.
type token struct {
	field field
	width int
	lit   string // fLiteral only
}

// patternTokens maps Unicode-style letter runs to tokens.
var patternTokens = map[string]token{
	"YYYY": {field: fYear, width: 4},
	"yyyy": {field: fYear, width: 4},
	"YY":   {field: fYear, width: 2},
	"yy":   {field: fYear, width: 2},
	"MMMM": {field: fMonthName, width: 4},
	"MMM":  {field: fMonthName, width: 3},
	"MM":   {field: fMonth, width: 2},
	"M":    {field: fMonth, width: 1},
	"DDD":  {field: fDayOfYear, width: 3},
	"DD":   {field: fDayOfYear, width: 3},
	"D":    {field: fDayOfYear, width: 1},
	"dd":   {field: fDay, width: 2},
	"d":    {field: fDay, width: 1},
	"EEEE": {field: fWeekdayName, width: 4},
	"EEE":  {field: fWeekdayName, width: 3},
	"EE":   {field: fWeekdayName, width: 3},
	"E":    {field: fWeekdayName, width: 3},
	"eee":  {field: fWeekdayName, width: 3},
	"ee":   {field: fWeekdayNum, width: 2},
	"e":    {field: fWeekdayNum, width: 1},
	"HH":   {field: fHour24, width: 2},
	"H":    {field: fHour24, width: 1},
	"hh":   {field: fHour12, width: 2},
	"h":    {field: fHour12, width: 1},
	"mm":   {field: fMinute, width: 2},
	"m":    {field: fMinute, width: 1},
	"ss":   {field: fSecond, width: 2},
	"s":    {field: fSecond, width: 1},
	"a":    {field: fDayPeriod, width: 1},
	"ZZ":   {field: fOffset, width: 2},
	"Z":    {field: fOffset, width: 1},
	"z":    {field: fOffset, width: 1},
	"X":    {field: fTimestamp, width: 1},
}

// directiveTokens maps POSIX-style directive characters to tokens.
var directiveTokens = map[byte]token{
	'Y': {field: fYear, width: 4},
	'y': {field: fYear, width: 2},
	'B': {field: fMonthName, width: 4},
	'b': {field: fMonthName, width: 3},
	'm': {field: fMonth, width: 2},
	'j': {field: fDayOfYear, width: 3},
	'd': {field: fDay, width: 2},
	'A': {field: fWeekdayName, width: 4},
	'a': {field: fWeekdayName, width: 3},
	'w': {field: fWeekdayNum, width: 1},
	'H': {field: fHour24, width: 2},
	'I': {field: fHour12, width: 2},
	'p': {field: fDayPeriod, width: 1},
	'M': {field: fMinute, width: 2},
	'S': {field: fSecond, width: 2},
	'f': {field: fFraction, width: 6},
	'z': {field: fOffset, width: 1},
	's': {field: fTimestamp, width: 1},
	'%': {field: fLiteral, lit: "%"},
}

// patternLetters is the set of letters that begin a pattern token. Any
// other letter reads as a literal.
const patternLetters = "YyMDdEeHhmsSaZzX"

// Plan is a compiled pattern, ready to match text or render an instant.
type Plan struct {
	pattern string
	mode    Mode
	tokens  []token
	re      *regexp.Regexp // parse mode only
	groups  []token        // capture group order, parse mode only
}

// Compile compiles pattern for mode. It returns an UnsupportedTokenError
// when the pattern contains a directive or letter run with no mapping.
func Compile(pattern string, mode Mode) (*Plan, error) {
	tokens, err := scan(pattern, mode)
	if err != nil {
		return nil, err
	}

	plan := &Plan{pattern: pattern, mode: mode, tokens: tokens}
	if mode == Parse {
		if err := plan.compileMatcher(); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// MustCompile is like Compile but panics on error. It simplifies package
// variables holding known-good plans.
func MustCompile(pattern string, mode Mode) *Plan {
	plan, err := Compile(pattern, mode)
	if err != nil {
		panic(err)
	}
	return plan
}

// Pattern returns the source pattern string.
func (p *Plan) Pattern() string { return p.pattern }

// Mode returns the mode the plan was compiled for.
func (p *Plan) Mode() Mode { return p.mode }

// TimestampOnly reports whether the plan consists of a single raw-timestamp
// token, making it applicable to numeric input.
func (p *Plan) TimestampOnly() bool {
	return len(p.tokens) == 1 && p.tokens[0].field == fTimestamp
}

// scan tokenizes pattern left to right.
func scan(pattern string, mode Mode) ([]token, error) {
	var tokens []token
	lit := new(strings.Builder)

	flushLit := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{field: fLiteral, lit: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '%':
			if i+1 >= len(pattern) {
				return nil, &UnsupportedTokenError{Token: "%", Mode: mode}
			}
			tok, ok := directiveTokens[pattern[i+1]]
			if !ok {
				return nil, &UnsupportedTokenError{
					Token: pattern[i : i+2], Mode: mode,
				}
			}
			if tok.field == fLiteral {
				lit.WriteString(tok.lit)
			} else {
				flushLit()
				tokens = append(tokens, tok)
			}
			i += 2
		case c == '\'':
			// A doubled quote escapes an apostrophe; a lone quote is an
			// apostrophe too.
			lit.WriteByte('\'')
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				i += 2
			} else {
				i++
			}
		case strings.IndexByte(patternLetters, c) >= 0:
			run := 1
			for i+run < len(pattern) && pattern[i+run] == c {
				run++
			}
			tok, ok := patternTokens[pattern[i:i+run]]
			if !ok && c == 'S' && run >= 1 && run <= 6 {
				tok, ok = token{field: fFraction, width: run}, true
			}
			if !ok {
				return nil, &UnsupportedTokenError{
					Token: pattern[i : i+run], Mode: mode,
				}
			}
			flushLit()
			tokens = append(tokens, tok)
			i += run
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flushLit()

	return tokens, nil
}

// SupportedPatterns returns the recognized Unicode-style tokens in sorted
// order.
func SupportedPatterns() []string {
	tokens := maps.Keys(patternTokens)
	tokens = append(tokens, "S", "SS", "SSS", "SSSS", "SSSSS", "SSSSSS")
	sort.Strings(tokens)
	return tokens
}

// SupportedDirectives returns the recognized POSIX-style directives in
// sorted order.
func SupportedDirectives() []string {
	chars := maps.Keys(directiveTokens)
	directives := make([]string, 0, len(chars))
	for _, c := range chars {
		directives = append(directives, "%"+string(c))
	}
	sort.Strings(directives)
	return directives
}
