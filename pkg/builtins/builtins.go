// Package builtins registers the global objects and wrapper constructors the
// evaluator core relies on. Initialization runs once, before user code; the
// evaluator itself only depends on the conventions established here (global
// Boolean/Number/String constructors, Array.prototype).
package builtins

import (
	"io"
	"math/rand"
	"os"

	"garter/interpreter-go/pkg/runtime"
)

// Options configures host-owned side effects.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Random func() float64
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Random == nil {
		o.Random = rand.Float64
	}
	return o
}

// Init populates the global object. Registration order mirrors engine
// startup: base object machinery first, wrapper constructors last.
func Init(global *runtime.ObjectValue, opts Options) {
	opts = opts.withDefaults()
	initObject(global)
	initConsole(global, opts)
	initMath(global, opts)
	initArray(global)
	initFunction(global)
	initJSON(global)
	initString(global)
	initNumber(global)
	initBoolean(global)
}

// registerConstructor wires the constructor/prototype pair convention:
// ctor.prototype = proto, proto.constructor = ctor, global.name = ctor.
func registerConstructor(global *runtime.ObjectValue, name string, impl runtime.NativeFunc) (*runtime.FunctionValue, *runtime.ObjectValue) {
	ctor := runtime.NewNativeFunction(name, impl)
	proto := runtime.NewObject()
	ctor.SetField("prototype", proto)
	proto.SetField("constructor", ctor)
	global.SetField(name, ctor)
	return ctor, proto
}

func method(proto *runtime.ObjectValue, name string, impl runtime.NativeFunc) {
	proto.SetField(name, runtime.NewNativeFunction(name, impl))
}

// constructedWith reports whether this is an instance produced by the
// construction protocol for the given prototype, as opposed to the receiver
// of a plain call.
func constructedWith(this runtime.Value, proto *runtime.ObjectValue) (*runtime.ObjectValue, bool) {
	obj, ok := this.(*runtime.ObjectValue)
	if !ok {
		return nil, false
	}
	if obj.Prototype() != runtime.Value(proto) {
		return nil, false
	}
	return obj, true
}

func argOrUndefined(args []runtime.Value, idx int) runtime.Value {
	if idx < len(args) {
		return args[idx]
	}
	return runtime.UndefinedValue{}
}
