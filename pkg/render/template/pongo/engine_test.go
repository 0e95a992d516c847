package pongo

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

type greeting struct {
	Name string `json:"name"`
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl": &fstest.MapFile{Data: []byte("Hello {{ who.name }}!")},
		"hello.html": &fstest.MapFile{Data: []byte("<p>{{ who.name }}</p>")},
	}
}

func TestRender_Basic(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render("hello", map[string]any{"who": greeting{Name: "Ada"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Ada!" {
		t.Fatalf("output: %q", out)
	}
}

func TestRender_StructFieldsResolveByJSONTag(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	// The lowercase template key must resolve even though the Go field is
	// exported as Name.
	out, err := engine.Render("hello", map[string]any{"who": greeting{Name: "Grace"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Grace") {
		t.Fatalf("output: %q", out)
	}
}

func TestRender_ExtensionOverride(t *testing.T) {
	engine, err := New(WithFS(testFS()), WithExtension("html"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.Render("hello", map[string]any{"who": greeting{Name: "Ada"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<p>Ada</p>" {
		t.Fatalf("output: %q", out)
	}
}

func TestRender_MissingTemplate(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render("nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestRender_TeeWriter(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	out, err := engine.Render("hello", map[string]any{"who": greeting{Name: "Ada"}}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != out {
		t.Fatalf("writer saw %q, return value %q", buf.String(), out)
	}
}

func TestNew_RequiresFS(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without template fs")
	}
}
