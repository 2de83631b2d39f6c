package forms

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formmask/pkg/binder"
	"github.com/goliatone/go-formmask/pkg/datetime"
	"github.com/goliatone/go-formmask/pkg/document"
	rendertemplate "github.com/goliatone/go-formmask/pkg/render/template"
	gotemplate "github.com/goliatone/go-formmask/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the built-in form templates.
func TemplatesFS() fs.FS {
	return templatesFS
}

const (
	templateForm  = "templates/form"
	templateInput = "templates/input"

	// PartialInput is the theme partial key overriding the input template.
	// A preset specific key, "forms.<preset>", takes precedence.
	PartialInput = "forms.input"
	// AssetRuntime is the key resolved through the theme AssetURL for the
	// browser runtime script.
	AssetRuntime = "formmask.runtime"
)

// RenderOption configures a Renderer.
type RenderOption func(*renderConfig)

type renderConfig struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	binder           *binder.Binder
	scriptURL        string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) RenderOption {
	return func(cfg *renderConfig) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) RenderOption {
	return func(cfg *renderConfig) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) RenderOption {
	return func(cfg *renderConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies theme partials, CSS variables and asset URLs.
func WithTheme(cfg *theme.RendererConfig) RenderOption {
	return func(rc *renderConfig) {
		rc.theme = cfg
	}
}

// WithBinder installs mask attributes on the rendered markup.
func WithBinder(b *binder.Binder) RenderOption {
	return func(cfg *renderConfig) {
		cfg.binder = b
	}
}

// WithScriptURL sets the runtime script URL when no theme resolves it.
func WithScriptURL(url string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.scriptURL = strings.TrimSpace(url)
	}
}

// Renderer produces HTML for a Form.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	binder    *binder.Binder
	scriptURL string
}

// State carries per-request data: submitted values and errors.
type State struct {
	Action      string
	Method      string
	SubmitLabel string
	Values      map[string]string
	Errors      ErrorMapping
}

// NewRenderer constructs a renderer backed by the embedded templates unless
// overridden.
func NewRenderer(options ...RenderOption) (*Renderer, error) {
	cfg := renderConfig{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithFS(TemplatesFS()),
		)
		if err != nil {
			return nil, fmt.Errorf("forms renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     cfg.theme,
		binder:    cfg.binder,
		scriptURL: cfg.scriptURL,
	}, nil
}

// ContentType returns the MIME type of rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes form with the submitted values and errors in state.
func (r *Renderer) Render(_ context.Context, form *Form, state State) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("forms renderer: template renderer is nil")
	}
	if form == nil {
		return nil, fmt.Errorf("forms renderer: form is nil")
	}

	fields := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		out, err := r.templates.RenderTemplate(r.partialFor(field), map[string]any{
			"name":        field.Name,
			"label":       field.Label,
			"help_text":   field.HelpText,
			"placeholder": field.Placeholder,
			"classes":     field.ClassAttr(),
			"preset":      field.Preset,
			"required":    field.Required,
			"value":       displayValue(form, field, state.Values[field.Name]),
			"errors":      state.Errors.Field(field.Name),
		})
		if err != nil {
			return nil, fmt.Errorf("forms renderer: render field %q: %w", field.Name, err)
		}
		fields = append(fields, out)
	}

	method := strings.ToLower(strings.TrimSpace(state.Method))
	if method == "" {
		method = "post"
	}
	submit := state.SubmitLabel
	if submit == "" {
		submit = "Save"
	}

	data := map[string]any{
		"action":       state.Action,
		"method":       method,
		"submit_label": submit,
		"fields":       fields,
		"form_errors":  state.Errors.Form,
		"script_url":   r.runtimeURL(),
	}
	if r.theme != nil {
		data["theme_name"] = r.theme.Theme
		data["theme_variant"] = r.theme.Variant
		data["css_vars"] = cssVarsStyle(r.theme.CSSVars)
	}

	result, err := r.templates.RenderTemplate(templateForm, data)
	if err != nil {
		return nil, fmt.Errorf("forms renderer: render template: %w", err)
	}
	if r.binder == nil {
		return []byte(result), nil
	}

	doc, err := document.ParseString(result)
	if err != nil {
		return nil, fmt.Errorf("forms renderer: parse output: %w", err)
	}
	r.binder.Bind(doc)
	return []byte(doc.String()), nil
}

func (r *Renderer) partialFor(field Field) string {
	if r.theme != nil && len(r.theme.Partials) > 0 {
		if field.Preset != "" {
			if name := strings.TrimSpace(r.theme.Partials["forms."+field.Preset]); name != "" {
				return name
			}
		}
		if name := strings.TrimSpace(r.theme.Partials[PartialInput]); name != "" {
			return name
		}
	}
	return templateInput
}

func (r *Renderer) runtimeURL() string {
	if r.theme != nil && r.theme.AssetURL != nil {
		if url := r.theme.AssetURL(AssetRuntime); url != "" {
			return url
		}
	}
	return r.scriptURL
}

// displayValue re-applies the field mask so a resubmitted raw value renders
// in its masked form.
func displayValue(form *Form, field Field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" || field.Preset == "" {
		return value
	}
	if field.Preset == datetime.PresetName {
		value = strings.ToUpper(value)
	}
	if _, compiled, ok := form.registry.Lookup(field.Preset); ok {
		return compiled.Format(value)
	}
	return value
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}
