package mask

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"unicode/utf8"
)

// Translation maps a pattern symbol to the characters it accepts.
type Translation struct {
	Pattern   *regexp.Regexp
	Optional  bool
	Recursive bool
	// Fallback is emitted when the input does not match and the slot is
	// neither optional nor recursive. Zero disables it.
	Fallback rune
}

// Matches reports whether r is accepted by the translation.
func (t Translation) Matches(r rune) bool {
	if t.Pattern == nil {
		return false
	}
	return t.Pattern.MatchString(string(r))
}

type translationJSON struct {
	Pattern   string `json:"pattern"`
	Optional  bool   `json:"optional,omitempty"`
	Recursive bool   `json:"recursive,omitempty"`
	Fallback  string `json:"fallback,omitempty"`
}

// MarshalJSON encodes the translation the way the browser runtime expects it.
func (t Translation) MarshalJSON() ([]byte, error) {
	out := translationJSON{
		Optional:  t.Optional,
		Recursive: t.Recursive,
	}
	if t.Pattern != nil {
		out.Pattern = t.Pattern.String()
	}
	if t.Fallback != 0 {
		out.Fallback = string(t.Fallback)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes {pattern, optional, recursive, fallback}.
func (t *Translation) UnmarshalJSON(data []byte) error {
	var in translationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	parsed, err := NewTranslation(in.Pattern, in.Optional)
	if err != nil {
		return err
	}
	parsed.Recursive = in.Recursive
	if in.Fallback != "" {
		r, _ := utf8.DecodeRuneInString(in.Fallback)
		parsed.Fallback = r
	}
	*t = parsed
	return nil
}

// NewTranslation compiles expr into a translation.
func NewTranslation(expr string, optional bool) (Translation, error) {
	if expr == "" {
		return Translation{}, fmt.Errorf("mask: translation pattern is required")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Translation{}, fmt.Errorf("mask: compile translation %q: %w", expr, err)
	}
	return Translation{Pattern: re, Optional: optional}, nil
}

// MustTranslation panics when expr does not compile. Intended for package
// level tables.
func MustTranslation(expr string, optional bool) Translation {
	t, err := NewTranslation(expr, optional)
	if err != nil {
		panic(err)
	}
	return t
}

// Table maps pattern symbols to translations.
type Table map[rune]Translation

var (
	digit        = regexp.MustCompile(`\d`)
	alphanumeric = regexp.MustCompile(`[a-zA-Z0-9]`)
	letter       = regexp.MustCompile(`[a-zA-Z]`)
)

// DefaultTable returns a fresh copy of the built-in symbol set.
func DefaultTable() Table {
	return Table{
		'0': {Pattern: digit},
		'9': {Pattern: digit, Optional: true},
		'#': {Pattern: digit, Recursive: true},
		'A': {Pattern: alphanumeric},
		'S': {Pattern: letter},
	}
}

// Merge returns a copy of t with overrides applied. Overrides win per symbol.
func (t Table) Merge(overrides Table) Table {
	out := make(Table, len(t)+len(overrides))
	for symbol, tr := range t {
		out[symbol] = tr
	}
	for symbol, tr := range overrides {
		out[symbol] = tr
	}
	return out
}

// Symbols returns the table keys in ascending order.
func (t Table) Symbols() []rune {
	symbols := make([]rune, 0, len(t))
	for symbol := range t {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// MarshalJSON encodes the table keyed by symbol strings.
func (t Table) MarshalJSON() ([]byte, error) {
	out := make(map[string]Translation, len(t))
	for symbol, tr := range t {
		out[string(symbol)] = tr
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a table keyed by single character strings.
func (t *Table) UnmarshalJSON(data []byte) error {
	var in map[string]Translation
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(Table, len(in))
	for key, tr := range in {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("mask: translation key %q must be a single character", key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		out[r] = tr
	}
	*t = out
	return nil
}
