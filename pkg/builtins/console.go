package builtins

import (
	"fmt"
	"io"
	"strings"

	"garter/interpreter-go/pkg/runtime"
)

func initConsole(global *runtime.ObjectValue, opts Options) {
	console := runtime.NewObject()
	console.SetField("log", runtime.NewNativeFunction("log", consolePrint(opts.Stdout)))
	console.SetField("error", runtime.NewNativeFunction("error", consolePrint(opts.Stderr)))
	global.SetField("console", console)
}

func consolePrint(w io.Writer) runtime.NativeFunc {
	return func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = runtime.Display(arg)
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
		return runtime.UndefinedValue{}, nil
	}
}
