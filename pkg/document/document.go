// Package document models the small slice of a DOM the binder needs: query
// elements by class in document order and read or write their attributes.
package document

// Element is a node that can carry attributes.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	HasClass(class string) bool
}

// Document is a parsed, ready tree.
type Document interface {
	// QueryClass returns the elements carrying class, in document order.
	QueryClass(class string) []Element
}
