package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("<Project/>"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverSingleProject(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "app.oasproj")
	touch(t, dir, "readme.md")

	path, err := Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "app.oasproj" {
		t.Errorf("unexpected project path %q", path)
	}
}

func TestDiscoverAmbiguous(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		_, err := Discover(t.TempDir())
		if !errors.Is(err, ErrAmbiguousProject) {
			t.Errorf("expected ErrAmbiguousProject, got %v", err)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "a.oasproj")
		touch(t, dir, "b.oasproj")
		_, err := Discover(dir)
		if !errors.Is(err, ErrAmbiguousProject) {
			t.Errorf("expected ErrAmbiguousProject, got %v", err)
		}
	})
}

func TestDiscoverIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub.oasproj"), 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, dir, "app.oasproj")

	path, err := Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "app.oasproj" {
		t.Errorf("unexpected project path %q", path)
	}
}
