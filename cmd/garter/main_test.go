package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunScriptFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.js", `
function add(a, b) { return a + b; }
console.log(add(2, 3));
`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code != 0 {
		t.Fatalf("run returned %d, stderr: %s", code, stderr.String())
	}
	if got := stdout.String(); !strings.Contains(got, "5") {
		t.Fatalf("stdout = %q, want it to contain 5", got)
	}
}

func TestRunPrintsFinalResult(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.js", `1 + 2;`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("run returned %d, stderr: %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "3" {
		t.Fatalf("stdout = %q, want 3", got)
	}
}

func TestRunUncaughtThrow(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.js", `throw "boom";`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code == 0 {
		t.Fatalf("expected nonzero exit")
	}
	if got := stderr.String(); !strings.Contains(got, "uncaught: boom") {
		t.Fatalf("stderr = %q, want uncaught: boom", got)
	}
}

func TestRunManifestGlobals(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "script.yml", `
name: demo
main: main.js
globals:
  retries: 3
  label: worker
`)
	path := writeScript(t, dir, "main.js", `console.log(label, retries + 1);`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code != 0 {
		t.Fatalf("run returned %d, stderr: %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "worker 4" {
		t.Fatalf("stdout = %q, want %q", got, "worker 4")
	}
}

func TestRunEmitsWarnings(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.js", `
var o = {a: 1, a: 2};
console.log(o.a);
`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code != 0 {
		t.Fatalf("run returned %d, stderr: %s", code, stderr.String())
	}
	if got := stderr.String(); !strings.Contains(got, `warning:`) || !strings.Contains(got, `duplicate object key "a"`) {
		t.Fatalf("stderr = %q, want a duplicate-key warning", got)
	}
	if got := strings.TrimSpace(stdout.String()); got != "2" {
		t.Fatalf("stdout = %q, want 2", got)
	}
}

func TestRunSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.js", `let = ;`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code == 0 {
		t.Fatalf("expected nonzero exit for syntax error")
	}
	if got := stderr.String(); !strings.Contains(got, "parser:") {
		t.Fatalf("stderr = %q, want a parser error", got)
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("version returned %d", code)
	}
	if !strings.Contains(stdout.String(), "garter") {
		t.Fatalf("version output = %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"--help"}, &stdout, &stderr); code != 0 {
		t.Fatalf("help returned %d", code)
	}
	if !strings.Contains(stdout.String(), "usage:") {
		t.Fatalf("help output = %q", stdout.String())
	}
}

func TestManifestValueKinds(t *testing.T) {
	if v := manifestValue(3); v.Kind().String() != "integer" {
		t.Fatalf("int global = %v", v.Kind())
	}
	if v := manifestValue(2.5); v.Kind().String() != "number" {
		t.Fatalf("float global = %v", v.Kind())
	}
	if v := manifestValue(nil); v.Kind().String() != "null" {
		t.Fatalf("nil global = %v", v.Kind())
	}
}
