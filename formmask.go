// Package formmask binds input masks to HTML forms. The root package offers
// one-call helpers over the pkg/ building blocks: binding markup, rendering a
// form for an OpenAPI operation, and serving the browser runtime.
package formmask

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formmask/pkg/binder"
	"github.com/goliatone/go-formmask/pkg/document"
	"github.com/goliatone/go-formmask/pkg/forms"
	"github.com/goliatone/go-formmask/pkg/openapi"
)

// Report aliases binder.Report for callers of BindHTML.
type Report = binder.Report

// BindHTML parses markup, binds every element matching a registered preset,
// and returns the rewritten markup. Full documents stay documents; fragments
// stay fragments.
func BindHTML(markup string, options ...binder.Option) (string, Report, error) {
	doc, err := document.ParseString(markup)
	if err != nil {
		return "", Report{}, fmt.Errorf("formmask: parse markup: %w", err)
	}
	report, err := binder.New(options...).Ready(doc)
	if err != nil {
		return "", Report{}, fmt.Errorf("formmask: bind: %w", err)
	}
	return doc.String(), report, nil
}

// GenerateForm discovers the masked properties of operationID in an OpenAPI
// document and renders them as a form.
func GenerateForm(ctx context.Context, raw []byte, operationID string, state forms.State, options ...forms.RenderOption) ([]byte, error) {
	fields, err := openapi.NewDiscoverer(openapi.Options{}).Operation(ctx, raw, operationID)
	if err != nil {
		return nil, fmt.Errorf("formmask: %w", err)
	}
	renderer, err := forms.NewRenderer(options...)
	if err != nil {
		return nil, fmt.Errorf("formmask: %w", err)
	}
	return renderer.Render(ctx, forms.FromFieldMasks(fields), state)
}

// EmbeddedTemplates exposes the built-in form templates so callers can reuse
// or extend them without importing the forms package directly.
func EmbeddedTemplates() fs.FS {
	return forms.TemplatesFS()
}
