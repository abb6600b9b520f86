package gotemplate

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-regform/pkg/render/template"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":  {Data: []byte("Hello {{ name }}!")},
		"global.tpl": {Data: []byte("env={{ env }}")},
		"struct.tpl": {Data: []byte("{{ label }}:{{ value }}")},
		"shout.tpl":  {Data: []byte("{{ name|regform_shout }}")},
	}
	engine, err := New(append([]Option{WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)
	var buf bytes.Buffer

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" || buf.String() != got {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
}

func TestEngine_GlobalData(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{"env": "staging"}))
	got, err := engine.RenderTemplate("global.tpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalContextMergesAndDataWins(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{"env": "staging"}))
	if err := engine.GlobalContext(map[string]any{"name": "Ada"}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("hello", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" {
		t.Fatalf("unexpected output %q", got)
	}
	got, err = engine.RenderTemplate("hello", map[string]any{"name": "Grace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Grace!" {
		t.Fatalf("render data must override globals, got %q", got)
	}
}

func TestEngine_StructUsesJSONTags(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Label string `json:"label"`
		Value int    `json:"value"`
	}{Label: "age", Value: 25}

	got, err := engine.RenderTemplate("struct", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "age:25" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("regform_shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s), nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	err = engine.RegisterFilter("regform_shout", func(any, any) (any, error) { return nil, nil })
	if !errors.Is(err, template.ErrFilterExists) {
		t.Fatalf("expected ErrFilterExists, got %v", err)
	}

	got, err := engine.RenderTemplate("shout", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresFS(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without template fs")
	}
}
