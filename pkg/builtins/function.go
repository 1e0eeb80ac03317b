package builtins

import "garter/interpreter-go/pkg/runtime"

func initFunction(global *runtime.ObjectValue) {
	// Building functions from source text needs the parser; the constructor
	// only anchors the Function/Function.prototype convention.
	registerConstructor(global, "Function", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return nil, runtime.Throwf("Function constructor is not supported")
	})
}
