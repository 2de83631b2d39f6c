// Package openapi discovers request-body properties that should be rendered
// as masked inputs. Properties opt in through their format (date-time by
// default) or an explicit x-formmask extension naming a preset.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formmask/pkg/datetime"
)

// ExtensionKey names the preset for a property, or disables masking when set
// to false.
const ExtensionKey = "x-formmask"

// FieldMask is a request-body property bound to a mask preset.
type FieldMask struct {
	// Path is the dotted property path, e.g. "schedule.start_time".
	Path        string `json:"path"`
	Preset      string `json:"preset"`
	Required    bool   `json:"required,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Options configures discovery.
type Options struct {
	// FormatPresets maps schema formats to preset names. Nil uses
	// DefaultFormatPresets.
	FormatPresets map[string]string
	// AllowExternalRefs lets the loader follow $ref values outside the document.
	AllowExternalRefs bool
}

// DefaultFormatPresets maps date-time properties to the datetime preset.
func DefaultFormatPresets() map[string]string {
	return map[string]string{
		"date-time": datetime.PresetName,
	}
}

// Discoverer walks OpenAPI request schemas using kin-openapi.
type Discoverer struct {
	options Options
}

// NewDiscoverer constructs a Discoverer with the given options.
func NewDiscoverer(options Options) *Discoverer {
	if options.FormatPresets == nil {
		options.FormatPresets = DefaultFormatPresets()
	}
	return &Discoverer{options: options}
}

// Operation returns the masked fields of one operation, sorted by path.
func (d *Discoverer) Operation(ctx context.Context, raw []byte, operationID string) ([]FieldMask, error) {
	all, err := d.Operations(ctx, raw)
	if err != nil {
		return nil, err
	}
	fields, ok := all[operationID]
	if !ok {
		return nil, fmt.Errorf("openapi discover: operation %q not found", operationID)
	}
	return fields, nil
}

// Operations returns masked fields for every operation keyed by operationId.
// Operations without an id are keyed "method:path".
func (d *Discoverer) Operations(ctx context.Context, raw []byte) (map[string][]FieldMask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi discover: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: d.options.AllowExternalRefs,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi discover: load document: %w", err)
	}

	out := make(map[string][]FieldMask)
	if doc.Paths == nil {
		return out, nil
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			schema := requestSchema(operation.RequestBody)
			if schema == nil {
				out[id] = nil
				continue
			}
			var fields []FieldMask
			d.walk(schema, "", nil, &fields)
			sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })
			out[id] = fields
		}
	}
	return out, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (d *Discoverer) walk(schema *openapi3.Schema, prefix string, required map[string]bool, out *[]FieldMask) {
	if schema == nil {
		return
	}
	requiredHere := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		requiredHere[name] = true
	}
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		property := ref.Value
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		if property.Type != nil && property.Type.Is(openapi3.TypeObject) {
			d.walk(property, path, requiredHere, out)
			continue
		}

		preset, ok := d.presetFor(property)
		if !ok {
			continue
		}
		*out = append(*out, FieldMask{
			Path:        path,
			Preset:      preset,
			Required:    requiredHere[name],
			Title:       property.Title,
			Description: property.Description,
		})
	}
}

func (d *Discoverer) presetFor(schema *openapi3.Schema) (string, bool) {
	if raw, ok := schema.Extensions[ExtensionKey]; ok {
		switch value := raw.(type) {
		case string:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed, true
			}
		case bool:
			if !value {
				return "", false
			}
		}
	}
	if schema.Type != nil && !schema.Type.Is(openapi3.TypeString) {
		return "", false
	}
	preset, ok := d.options.FormatPresets[strings.TrimSpace(schema.Format)]
	return preset, ok && preset != ""
}
