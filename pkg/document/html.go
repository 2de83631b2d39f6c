package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML is a Document backed by golang.org/x/net/html. It wraps either a full
// page or a fragment parsed in a <body> context.
type HTML struct {
	nodes    []*html.Node
	fragment bool
}

var _ Document = (*HTML)(nil)

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*HTML, error) {
	if r == nil {
		return nil, fmt.Errorf("document: missing reader")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	return &HTML{nodes: []*html.Node{root}}, nil
}

// ParseFragment reads markup that is not a full page, such as a rendered form.
func ParseFragment(r io.Reader) (*HTML, error) {
	if r == nil {
		return nil, fmt.Errorf("document: missing reader")
	}
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("document: parse fragment: %w", err)
	}
	return &HTML{nodes: nodes, fragment: true}, nil
}

// ParseString is a convenience wrapper choosing Parse or ParseFragment based
// on whether markup looks like a full page.
func ParseString(markup string) (*HTML, error) {
	lower := strings.ToLower(strings.TrimSpace(markup))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return Parse(strings.NewReader(markup))
	}
	return ParseFragment(strings.NewReader(markup))
}

// Fragment reports whether the document was parsed as a fragment.
func (d *HTML) Fragment() bool { return d != nil && d.fragment }

// QueryClass walks the tree depth first.
func (d *HTML) QueryClass(class string) []Element {
	class = strings.TrimSpace(class)
	if d == nil || class == "" {
		return nil
	}
	var out []Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			el := &htmlElement{node: n}
			if el.HasClass(class) {
				out = append(out, el)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range d.nodes {
		walk(n)
	}
	return out
}

// Render writes the tree back out as HTML.
func (d *HTML) Render(w io.Writer) error {
	if d == nil {
		return fmt.Errorf("document: nil document")
	}
	for _, n := range d.nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("document: render: %w", err)
		}
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *HTML) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

type htmlElement struct {
	node *html.Node
}

func (e *htmlElement) Tag() string { return e.node.Data }

func (e *htmlElement) Attr(name string) (string, bool) {
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}

func (e *htmlElement) SetAttr(name, value string) {
	for idx, attr := range e.node.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			e.node.Attr[idx].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: strings.ToLower(name), Val: value})
}

func (e *htmlElement) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			continue
		}
		attrs = append(attrs, attr)
	}
	e.node.Attr = attrs
}

func (e *htmlElement) HasClass(class string) bool {
	value, ok := e.Attr("class")
	if !ok {
		return false
	}
	for _, candidate := range strings.Fields(value) {
		if candidate == class {
			return true
		}
	}
	return false
}
