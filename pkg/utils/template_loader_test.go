package utils

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplatesParsesBaseFirst(t *testing.T) {
	fsys := fstest.MapFS{
		"a_page.html": {Data: []byte(`{{define "page_a"}}A{{end}}`)},
		"base.html":   {Data: []byte(`<main>{{.}}</main>`)},
	}

	tmpl, err := LoadTemplates(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.Name() != "base.html" {
		t.Fatalf("expected base.html as root, got %s", tmpl.Name())
	}
	if tmpl.Lookup("page_a") == nil {
		t.Fatalf("expected page_a to be defined")
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, "x"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if sb.String() != "<main>x</main>" {
		t.Fatalf("unexpected output %q", sb.String())
	}
}

func TestLoadTemplatesRequiresFiles(t *testing.T) {
	if _, err := LoadTemplates(fstest.MapFS{}); err == nil {
		t.Fatalf("expected error for empty template set")
	}
}
