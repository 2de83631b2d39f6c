package binder

import (
	"github.com/goliatone/go-formmask/pkg/document"
	"github.com/goliatone/go-formmask/pkg/mask"
)

// Binding ties a bound element to its compiled mask. Typing through a Binding
// updates the element's value attribute the way the browser runtime would.
type Binding struct {
	ID      string
	Preset  string
	Element document.Element
	Mask    *mask.Mask
}

// Value returns the element's current value.
func (b *Binding) Value() string {
	value, _ := b.Element.Attr(AttrValue)
	return value
}

// Press applies one keystroke and reports whether it was accepted.
func (b *Binding) Press(key rune) bool {
	next, ok := b.Mask.Type(b.Value(), key)
	if ok {
		b.Element.SetAttr(AttrValue, next)
	}
	return ok
}

// Type presses each key in keys and returns the number of rejected keys.
func (b *Binding) Type(keys string) int {
	rejected := 0
	for _, key := range keys {
		if !b.Press(key) {
			rejected++
		}
	}
	return rejected
}

// Backspace deletes the last typed character.
func (b *Binding) Backspace() {
	b.Element.SetAttr(AttrValue, b.Mask.Backspace(b.Value()))
}

// Valid reports whether the current value fills every required slot.
func (b *Binding) Valid() bool {
	return b.Mask.Valid(b.Value())
}
