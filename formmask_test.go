package formmask

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formmask/pkg/binder"
	"github.com/goliatone/go-formmask/pkg/forms"
)

func TestBindHTML_Fragment(t *testing.T) {
	markup := `<input name="start_time" class="datetime_picker" value="101020201330"><input name="title" class="form-control">`

	out, report, err := BindHTML(markup, binder.WithIDFunc(func() string { return "id-1" }))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if len(report.Bound) != 1 {
		t.Fatalf("expected one bound element, got %d", len(report.Bound))
	}
	for _, fragment := range []string{
		`data-mask="00/00/0000 #0:00 ZM"`,
		`value="10/10/2020 13:30"`,
		`data-mask-id="id-1"`,
		`<input name="title" class="form-control"/>`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, out)
		}
	}
	if strings.Contains(out, "<html") {
		t.Fatalf("fragment output should not be wrapped in a document:\n%s", out)
	}
}

func TestBindHTML_NoMarkers(t *testing.T) {
	markup := `<!DOCTYPE html><html><head></head><body><p>nothing</p></body></html>`
	out, report, err := BindHTML(markup)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if len(report.Bound) != 0 {
		t.Fatalf("expected no bindings, got %d", len(report.Bound))
	}
	if out != markup {
		t.Fatalf("expected markup unchanged, got %s", out)
	}
}

const scheduleSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "Events", "version": "1.0"},
  "paths": {
    "/events": {
      "post": {
        "operationId": "createEvent",
        "requestBody": {"content": {"application/json": {"schema": {
          "type": "object",
          "required": ["start_time"],
          "properties": {
            "start_time": {"type": "string", "format": "date-time", "title": "Start Date/Time"},
            "notes": {"type": "string"}
          }
        }}}},
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestGenerateForm(t *testing.T) {
	out, err := GenerateForm(context.Background(), []byte(scheduleSpec), "createEvent", forms.State{Action: "/events"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{
		`action="/events"`,
		`name="start_time"`,
		`datetime_picker`,
		`>Start Date/Time</label>`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, html)
		}
	}
	if strings.Contains(html, `name="notes"`) {
		t.Fatalf("unmasked properties should not be rendered")
	}

	if _, err := GenerateForm(context.Background(), []byte(scheduleSpec), "missing", forms.State{}); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}
