package gotemplate

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":   {Data: []byte("Hello {{ name }}")},
		"escape.tpl":  {Data: []byte("<b>{{ value }}</b>")},
		"globals.tpl": {Data: []byte("{{ env }}")},
		"filter.tpl":  {Data: []byte("{{ name|shout_test }}")},
	}
	engine, err := New(append([]Option{WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesOutput(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada" || buf.String() != got {
		t.Fatalf("unexpected output %q (writer %q)", got, buf.String())
	}
}

func TestEngine_AutoEscapes(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape.tpl", map[string]any{"value": `<script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_GlobalData(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{"env": "staging"}))
	got, err := engine.RenderTemplate("globals", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "staging" {
		t.Fatalf("expected global value, got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_test", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout_test", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderTemplate("filter", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString("{{ a }}-{{ b }}", struct {
		A string `json:"a"`
		B string `json:"b"`
	}{A: "x", B: "2"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "x-2" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
