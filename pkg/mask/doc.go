// Package mask implements positional input masks: a pattern made of literal
// characters and translated symbols, where each symbol maps to a single
// character matcher plus optional/recursive/fallback flags.
//
// The symbol set mirrors the jQuery Mask Plugin defaults so configurations can
// be shared verbatim with the browser runtime:
//
//	0  required digit
//	9  optional digit
//	#  recursive digit (repeats when it leads the pattern, optional otherwise)
//	A  letter or digit
//	S  letter
//
// Callers extend or override symbols through a Table. Formatting is total: the
// engine never fails on user input, it reports rejected characters instead.
package mask
