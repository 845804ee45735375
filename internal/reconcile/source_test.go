package reconcile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"spec.json", "spec.yaml", "other.oasproj", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		identifier string
		kind       SourceKind
		wantErr    bool
	}{
		{"spec.json", SourceLocal, false},
		{"spec.yaml", SourceLocal, false},
		{"other.oasproj", SourceProjectLink, false},
		{"https://example.com/swagger.json", SourceURL, false},
		{"http://example.com/v1/swagger", SourceURL, false},
		// An existing file wins over URL parsing, but only with a known extension.
		{"notes.txt", 0, true},
		{"missing.json", 0, true},
		{"ftp://example.com/spec.json", 0, true},
		{"/no/such/absolute/path.yaml", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			src, err := Classify(dir, tt.identifier)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSource) {
					t.Errorf("expected ErrInvalidSource, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if src.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, src.Kind)
			}
			if src.Raw != tt.identifier {
				t.Errorf("Raw must keep the identifier verbatim, got %q", src.Raw)
			}
		})
	}
}

func TestClassifyAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "spec.yml")
	if err := os.WriteFile(abs, []byte("openapi: 3.0.1"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := Classify(t.TempDir(), abs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Kind != SourceLocal || src.Raw != abs {
		t.Errorf("unexpected source: %+v", src)
	}
}

func TestClassifyLocalFileBeatsURLShape(t *testing.T) {
	// An identifier that parses as a URL but names an existing local file is
	// classified by the filesystem probe first.
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "https:"), 0755); err != nil {
		t.Skip("platform does not allow the fixture path")
	}
	sub := filepath.Join(dir, "https:", "x.json")
	if err := os.WriteFile(sub, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := Classify(dir, filepath.Join("https:", "x.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Kind != SourceLocal {
		t.Errorf("expected SourceLocal, got %v", src.Kind)
	}
}
