package mask

import (
	"strings"
	"unicode/utf8"
)

// Config is the declarative description of a mask: the pattern plus the
// translations layered over DefaultTable.
type Config struct {
	Pattern      string `json:"pattern" yaml:"pattern"`
	Translations Table  `json:"translation,omitempty" yaml:"-"`
}

type slot struct {
	literal     rune
	translation *Translation
}

func (s slot) translated() bool { return s.translation != nil }

func (s slot) skippable() bool {
	return s.translation != nil && (s.translation.Optional || s.translation.Recursive)
}

// Mask is a compiled pattern. It is immutable and safe for concurrent use.
type Mask struct {
	pattern   string
	overrides Table
	slots     []slot
}

// Rejection records an input character that no slot accepted.
type Rejection struct {
	Position int  `json:"position"`
	Char     rune `json:"char"`
}

// Result is the outcome of formatting a value.
type Result struct {
	// Value is the formatted text shown to the user.
	Value string
	// Raw holds only the characters accepted into translated slots.
	Raw      string
	Rejected []Rejection
	// Complete is true when every remaining slot after the input is optional.
	Complete bool

	// typed is the rune length of Value up to the last accepted character.
	typed int
}

// Compile builds a mask from cfg. Symbols absent from the merged table are
// literals.
func Compile(cfg Config) (*Mask, error) {
	return New(cfg.Pattern, cfg.Translations)
}

// MustCompile panics when cfg is invalid.
func MustCompile(cfg Config) *Mask {
	m, err := Compile(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// New compiles pattern with the default table extended by translations.
func New(pattern string, translations Table) (*Mask, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, &PatternError{Pattern: pattern, Message: "pattern is empty"}
	}
	if !utf8.ValidString(pattern) {
		return nil, &PatternError{Pattern: pattern, Message: "pattern is not valid UTF-8"}
	}
	for symbol, tr := range translations {
		if tr.Pattern == nil {
			return nil, &PatternError{Pattern: pattern, Symbol: symbol, Message: "translation has no matcher"}
		}
	}

	table := DefaultTable().Merge(translations)
	m := &Mask{pattern: pattern, overrides: Table{}.Merge(translations)}
	for _, r := range pattern {
		if tr, ok := table[r]; ok {
			tr := tr
			m.slots = append(m.slots, slot{translation: &tr})
			continue
		}
		m.slots = append(m.slots, slot{literal: r})
	}
	return m, nil
}

// Pattern returns the source pattern.
func (m *Mask) Pattern() string { return m.pattern }

// Len returns the maximum formatted length in characters.
func (m *Mask) Len() int { return len(m.slots) }

// Config returns the configuration the mask was compiled from.
func (m *Mask) Config() Config {
	return Config{Pattern: m.pattern, Translations: Table{}.Merge(m.overrides)}
}

type step uint8

const (
	stepEnd step = iota
	stepTake
	stepRepeat
	stepLiteralMatch
	stepLiteralInsert
	stepSkip
	stepFallback
	stepReject
)

type cell struct {
	cost int
	step step
}

// Apply formats input against the mask. Among all alignments of input to the
// pattern it picks the one rejecting the fewest characters; ties favour
// filling translated slots over skipping them. Literals are only emitted while
// more input follows them.
func (m *Mask) Apply(input string) Result {
	in := []rune(input)
	n := len(in)
	ms := len(m.slots)

	table := make([][]cell, ms+1)
	for i := range table {
		table[i] = make([]cell, n+1)
	}

	for v := n; v >= 0; v-- {
		for pos := ms; pos >= 0; pos-- {
			table[pos][v] = m.best(table, in, pos, v)
		}
	}

	return m.walk(table, in)
}

func (m *Mask) best(table [][]cell, in []rune, pos, v int) cell {
	n := len(in)
	if v == n {
		return cell{step: stepEnd}
	}
	if pos == len(m.slots) {
		return cell{cost: table[pos][v+1].cost + 1, step: stepReject}
	}

	s := m.slots[pos]
	ch := in[v]
	choice := cell{cost: -1}
	consider := func(cost int, st step) {
		if choice.cost < 0 || cost < choice.cost {
			choice = cell{cost: cost, step: st}
		}
	}

	if !s.translated() {
		if ch == s.literal {
			consider(table[pos+1][v+1].cost, stepLiteralMatch)
		}
		consider(table[pos+1][v].cost, stepLiteralInsert)
		return choice
	}

	tr := s.translation
	if tr.Matches(ch) {
		if tr.Recursive && pos == 0 {
			consider(table[pos][v+1].cost, stepRepeat)
		}
		consider(table[pos+1][v+1].cost, stepTake)
	}
	if s.skippable() {
		consider(table[pos+1][v].cost, stepSkip)
	} else if tr.Fallback != 0 {
		consider(table[pos+1][v].cost, stepFallback)
	}
	consider(table[pos][v+1].cost+1, stepReject)
	return choice
}

func (m *Mask) walk(table [][]cell, in []rune) Result {
	var (
		out strings.Builder
		raw strings.Builder
		res Result
	)
	// consumed is the rune length of the output up to the last character
	// that came from the input; literals inserted after it are dropped.
	pos, v, emitted, consumed := 0, 0, 0, 0
	for {
		c := table[pos][v]
		switch c.step {
		case stepEnd:
			res.Value = string([]rune(out.String())[:consumed])
			res.Raw = raw.String()
			res.Complete = m.completeFrom(pos)
			return res
		case stepTake:
			out.WriteRune(in[v])
			raw.WriteRune(in[v])
			emitted++
			res.typed = emitted
			consumed = emitted
			pos++
			v++
		case stepRepeat:
			out.WriteRune(in[v])
			raw.WriteRune(in[v])
			emitted++
			res.typed = emitted
			consumed = emitted
			v++
		case stepLiteralMatch:
			out.WriteRune(m.slots[pos].literal)
			emitted++
			consumed = emitted
			pos++
			v++
		case stepLiteralInsert:
			out.WriteRune(m.slots[pos].literal)
			emitted++
			pos++
		case stepSkip:
			pos++
		case stepFallback:
			out.WriteRune(m.slots[pos].translation.Fallback)
			emitted++
			res.typed = emitted
			pos++
		case stepReject:
			res.Rejected = append(res.Rejected, Rejection{Position: v, Char: in[v]})
			v++
		}
	}
}

func (m *Mask) completeFrom(pos int) bool {
	for _, s := range m.slots[pos:] {
		if s.translated() && !s.skippable() {
			return false
		}
	}
	return true
}

// Format returns only the formatted value of input.
func (m *Mask) Format(input string) string {
	return m.Apply(input).Value
}

// Clean strips literals and rejected characters from value.
func (m *Mask) Clean(value string) string {
	return m.Apply(value).Raw
}

// Complete reports whether value fills every required slot, ignoring
// rejected characters.
func (m *Mask) Complete(value string) bool {
	return m.Apply(value).Complete
}

// Valid reports whether value formats without rejections and fills every
// required slot.
func (m *Mask) Valid(value string) bool {
	res := m.Apply(value)
	return len(res.Rejected) == 0 && res.Complete
}

// Type simulates a keystroke on a field currently showing current. The typed
// characters are reformatted with key appended; when key cannot be placed the
// current value is returned unchanged with accepted=false.
func (m *Mask) Type(current string, key rune) (string, bool) {
	raw := m.Clean(current)
	res := m.Apply(raw + string(key))
	if len(res.Rejected) > 0 {
		return current, false
	}
	return res.Value, true
}

// TypeString feeds keys one at a time through Type and returns the final
// value together with the number of rejected keystrokes.
func (m *Mask) TypeString(current, keys string) (string, int) {
	rejected := 0
	value := current
	for _, key := range keys {
		next, ok := m.Type(value, key)
		if !ok {
			rejected++
			continue
		}
		value = next
	}
	return value, rejected
}

// Backspace removes the last character of current and any literals left
// dangling at the end. The remaining text keeps its alignment, so deleting the
// meridiem of "1:30 P" yields "1:30" rather than a re-flowed "13:0".
func (m *Mask) Backspace(current string) string {
	runes := []rune(current)
	if len(runes) == 0 {
		return ""
	}
	res := m.Apply(string(runes[:len(runes)-1]))
	return string([]rune(res.Value)[:res.typed])
}
