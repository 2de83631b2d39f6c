// Package forms renders and cleans forms whose inputs carry input masks. The
// event schedule form pairs a start and an end datetime field, mirroring the
// scheduling form the mask was written for.
package forms

import (
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formmask/pkg/binder"
	"github.com/goliatone/go-formmask/pkg/datetime"
	"github.com/goliatone/go-formmask/pkg/openapi"
)

// Field names used by the event schedule form.
const (
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
)

// DefaultHelpText is shown under datetime inputs.
const DefaultHelpText = "Eg: 10/10/2020 01:30 PM"

// Field describes one masked input.
type Field struct {
	Name           string
	Label          string
	HelpText       string
	Placeholder    string
	Classes        []string
	Preset         string
	Required       bool
	InvalidMessage string
}

// ClassAttr joins the field classes for the class attribute.
func (f Field) ClassAttr() string {
	return strings.Join(f.Classes, " ")
}

// Form is an ordered set of masked fields.
type Form struct {
	Fields   []Field
	parse    []datetime.Option
	registry *binder.Registry

	validateOnce sync.Once
	validate     *validator.Validate
}

// Option configures a Form.
type Option func(*Form)

// WithMonthFirst parses datetime fields as MM/DD/YYYY.
func WithMonthFirst() Option {
	return func(f *Form) {
		f.parse = append(f.parse, datetime.WithMonthFirst())
	}
}

// WithLocation parses datetime fields in loc.
func WithLocation(loc *time.Location) Option {
	return func(f *Form) {
		f.parse = append(f.parse, datetime.WithLocation(loc))
	}
}

// WithRegistry supplies presets for fields that are not datetime fields.
func WithRegistry(reg *binder.Registry) Option {
	return func(f *Form) {
		if reg != nil {
			f.registry = reg
		}
	}
}

// New builds a form from fields.
func New(fields []Field, opts ...Option) *Form {
	form := &Form{Fields: append([]Field(nil), fields...)}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(form)
	}
	if form.registry == nil {
		form.registry = binder.NewRegistry()
	}
	return form
}

// DatetimeField returns a datetime input carrying the marker class.
func DatetimeField(name, label string, required bool) Field {
	return Field{
		Name:           name,
		Label:          label,
		HelpText:       DefaultHelpText,
		Classes:        []string{"col-md-6", "col-sm-12", datetime.MarkerClass},
		Preset:         datetime.PresetName,
		Required:       required,
		InvalidMessage: "Please enter a valid " + strings.ToLower(strings.TrimSuffix(label, " Date/Time")) + " time",
	}
}

// NewEventForm builds the start/end schedule form.
func NewEventForm(opts ...Option) *Form {
	return New([]Field{
		DatetimeField(FieldStartTime, "Start Date/Time", true),
		DatetimeField(FieldEndTime, "End Date/Time", true),
	}, opts...)
}

// FromFieldMasks builds a form from properties discovered in an OpenAPI
// request schema.
func FromFieldMasks(masks []openapi.FieldMask, opts ...Option) *Form {
	fields := make([]Field, 0, len(masks))
	for _, fm := range masks {
		label := fm.Title
		if label == "" {
			label = humanize(fm.Path)
		}
		if fm.Preset == datetime.PresetName {
			field := DatetimeField(fm.Path, label, fm.Required)
			if fm.Description != "" {
				field.HelpText = fm.Description
			}
			fields = append(fields, field)
			continue
		}
		fields = append(fields, Field{
			Name:     fm.Path,
			Label:    label,
			HelpText: fm.Description,
			Preset:   fm.Preset,
			Required: fm.Required,
		})
	}
	return New(fields, opts...)
}

// Field returns the field with name.
func (f *Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func humanize(path string) string {
	last := path
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		last = path[idx+1:]
	}
	words := strings.FieldsFunc(last, func(r rune) bool { return r == '_' || r == '-' })
	for i, word := range words {
		if i == 0 {
			r, size := utf8.DecodeRuneInString(word)
			words[i] = string(unicode.ToUpper(r)) + word[size:]
		}
	}
	return strings.Join(words, " ")
}
