package mask

import "fmt"

// PatternError reports a malformed pattern or translation table.
type PatternError struct {
	Pattern string
	Symbol  rune
	Message string
}

func (e *PatternError) Error() string {
	if e == nil {
		return "mask: invalid pattern"
	}
	if e.Symbol != 0 {
		return fmt.Sprintf("mask: pattern %q symbol %q: %s", e.Pattern, e.Symbol, e.Message)
	}
	return fmt.Sprintf("mask: pattern %q: %s", e.Pattern, e.Message)
}
