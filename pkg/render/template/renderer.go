package template

import (
	"io"
)

// TemplateRenderer is the seam form renderers rely on. The pongo2 adapter in
// the gotemplate package satisfies it; tests may substitute their own.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}
