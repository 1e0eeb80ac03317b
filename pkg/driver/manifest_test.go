package driver_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"garter/interpreter-go/pkg/driver"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, driver.ManifestFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo-script
version: 1.2.0
authors:
  - Ada
  - Grace
main: scripts/main.js
globals:
  debug: true
  retries: 3
  greeting: hello
`)

	m, err := driver.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Name != "demo-script" || m.Version != "1.2.0" {
		t.Fatalf("unexpected name/version: %q %q", m.Name, m.Version)
	}
	if len(m.Authors) != 2 || m.Authors[0] != "Ada" {
		t.Fatalf("unexpected authors: %v", m.Authors)
	}
	if got, want := m.MainPath(), filepath.Join(dir, "scripts", "main.js"); got != want {
		t.Fatalf("MainPath = %q, want %q", got, want)
	}
	if len(m.Globals) != 3 {
		t.Fatalf("expected 3 globals, got %d", len(m.Globals))
	}
	if m.Globals[0].Name != "debug" || m.Globals[1].Name != "retries" || m.Globals[2].Name != "greeting" {
		t.Fatalf("globals out of declaration order: %v", m.Globals)
	}
	if m.Globals[0].Value != true {
		t.Fatalf("debug = %v", m.Globals[0].Value)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
version: 0.1.0
globals:
  x: 1
`)

	_, err := driver.LoadManifest(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *driver.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected name and main issues, got %v", verr.Issues)
	}
}

func TestLoadManifestRejectsStructuredGlobals(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
main: main.js
globals:
  nested:
    a: 1
`)
	if _, err := driver.LoadManifest(path); err == nil {
		t.Fatalf("expected error for non-scalar global")
	}
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := writeManifest(t, root, "name: demo\nmain: main.js\n")

	found, err := driver.FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != path {
		t.Fatalf("FindManifest = %q, want %q", found, path)
	}

	if _, err := driver.FindManifest(filepath.Join(t.TempDir())); !errors.Is(err, driver.ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
}
