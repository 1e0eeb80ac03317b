package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"garter/interpreter-go/pkg/builtins"
	"garter/interpreter-go/pkg/checker"
	"garter/interpreter-go/pkg/driver"
	"garter/interpreter-go/pkg/interpreter"
	"garter/interpreter-go/pkg/parser"
	"garter/interpreter-go/pkg/runtime"
)

const cliToolVersion = "garter 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runManifestEntry(".", stdout, stderr)
	}

	switch args[0] {
	case "--help", "-h":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:], stdout, stderr)
	default:
		return runEntry(args, stdout, stderr)
	}
}

func runEntry(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runManifestEntry(".", stdout, stderr)
	}
	if len(args) > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}
	return runScriptFile(args[0], stdout, stderr)
}

// runManifestEntry resolves script.yml near startDir and runs its main entry.
func runManifestEntry(startDir string, stdout, stderr io.Writer) int {
	manifestPath, err := driver.FindManifest(startDir)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			fmt.Fprintln(stderr, "garter run requires a source file or a script.yml manifest")
			return 1
		}
		fmt.Fprintf(stderr, "failed to locate manifest: %v\n", err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	return executeScript(manifest.MainPath(), manifest, stdout, stderr)
}

// runScriptFile runs a script directly, picking up a sibling manifest when
// one exists so its globals still apply.
func runScriptFile(path string, stdout, stderr io.Writer) int {
	var manifest *driver.Manifest
	if abs, err := filepath.Abs(path); err == nil {
		if manifestPath, findErr := driver.FindManifest(filepath.Dir(abs)); findErr == nil {
			m, loadErr := driver.LoadManifest(manifestPath)
			if loadErr != nil {
				fmt.Fprintf(stderr, "warning: ignoring manifest %s: %v\n", manifestPath, loadErr)
			} else {
				manifest = m
			}
		}
	}
	return executeScript(path, manifest, stdout, stderr)
}

func executeScript(path string, manifest *driver.Manifest, stdout, stderr io.Writer) int {
	path = strings.TrimSpace(path)
	if path == "" {
		fmt.Fprintln(stderr, "garter run requires a source file")
		return 1
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", path, err)
		return 1
	}

	sp, err := parser.NewScriptParser()
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize parser: %v\n", err)
		return 1
	}
	defer sp.Close()

	program, err := sp.ParseScript(source)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	for _, diagnostic := range checker.New().Check(program) {
		fmt.Fprintf(stderr, "warning: %s: %s\n", path, diagnostic.Message)
	}

	interp := interpreter.New()
	builtins.Init(interp.GlobalObject(), builtins.Options{Stdout: stdout, Stderr: stderr})
	if manifest != nil {
		injectGlobals(interp.GlobalObject(), manifest.Globals)
	}

	result, err := interp.Evaluate(program)
	if err != nil {
		var thrown runtime.Thrown
		if errors.As(err, &thrown) {
			fmt.Fprintf(stderr, "uncaught: %s\n", runtime.Display(thrown.Value))
		} else {
			fmt.Fprintf(stderr, "runtime error: %v\n", err)
		}
		return 1
	}

	if result != nil && result.Kind() != runtime.KindUndefined {
		fmt.Fprintln(stdout, runtime.Display(result))
	}
	return 0
}

func injectGlobals(global *runtime.ObjectValue, globals []driver.Global) {
	for _, g := range globals {
		global.SetField(g.Name, manifestValue(g.Value))
	}
}

func manifestValue(v any) runtime.Value {
	switch val := v.(type) {
	case nil:
		return runtime.NullValue{}
	case bool:
		return runtime.BooleanValue{Val: val}
	case int:
		return manifestNumber(float64(val))
	case int64:
		return manifestNumber(float64(val))
	case float64:
		return manifestNumber(val)
	case string:
		return runtime.StringValue{Val: val}
	default:
		return runtime.UndefinedValue{}
	}
}

func manifestNumber(f float64) runtime.Value {
	if i := int32(f); float64(i) == f {
		return runtime.IntegerValue{Val: i}
	}
	return runtime.NumberValue{Val: f}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: garter [run] <script.js>")
	fmt.Fprintln(w, "       garter run            (uses script.yml in the current directory or above)")
	fmt.Fprintln(w, "       garter --version")
	fmt.Fprintln(w, "       garter --help")
}
