package forms

import (
	"strconv"
	"strings"
)

// ErrorMapping holds messages per field name plus messages that belong to the
// form as a whole.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// Field returns the messages recorded for name.
func (m ErrorMapping) Field(name string) []string {
	if m.Fields == nil {
		return nil
	}
	return m.Fields[name]
}

func (m *ErrorMapping) add(field, message string) {
	if m.Fields == nil {
		m.Fields = make(map[string][]string)
	}
	m.Fields[field] = normalizeMessages(append(m.Fields[field], message))
}

// MergeFormErrors concatenates form level messages, trimming whitespace and
// dropping duplicates while keeping order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload attaches a server error payload to the fields of form.
// Keys may be dotted paths, JSON pointers or bracketed indexes and may be
// wrapped in request envelopes such as "body". Keys that match no field become
// form level messages.
func MapErrorPayload(form *Form, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			names[name] = struct{}{}
		}
	}

	for key, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		field, ok := matchField(key, names)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[field] = normalizeMessages(append(mapping.Fields[field], messages...))
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func matchField(key string, names map[string]struct{}) (string, bool) {
	if isFormLevelKey(key) {
		return "", false
	}
	segments := splitPath(key)
	if len(segments) == 0 {
		return "", false
	}

	best := ""
	for _, candidate := range [][]string{
		segments,
		stripEnvelope(segments),
		stripIndexes(segments),
		stripIndexes(stripEnvelope(segments)),
	} {
		for end := len(candidate); end > 0; end-- {
			path := strings.Join(candidate[:end], ".")
			if _, ok := names[path]; ok {
				if strings.Count(path, ".") > strings.Count(best, ".") || best == "" {
					best = path
				}
				break
			}
		}
	}
	return best, best != ""
}

func splitPath(key string) []string {
	clean := strings.TrimSpace(key)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == '.' || r == '/' })
	out := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		out = append(out, part)
	}
	return out
}

var envelopes = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func stripEnvelope(segments []string) []string {
	for len(segments) > 0 {
		if _, ok := envelopes[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return segments
}

func stripIndexes(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
