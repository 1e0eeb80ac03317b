package builtins

import (
	"math"

	"garter/interpreter-go/pkg/runtime"
)

func initMath(global *runtime.ObjectValue, opts Options) {
	m := runtime.NewObject()
	m.SetField("PI", runtime.NumberValue{Val: math.Pi})
	m.SetField("E", runtime.NumberValue{Val: math.E})

	unary := func(name string, fn func(float64) float64) {
		m.SetField(name, runtime.NewNativeFunction(name, func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: fn(runtime.ToNumber(argOrUndefined(args, 0)))}, nil
		}))
	}
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("abs", math.Abs)
	unary("sqrt", math.Sqrt)

	m.SetField("pow", runtime.NewNativeFunction("pow", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		base := runtime.ToNumber(argOrUndefined(args, 0))
		exp := runtime.ToNumber(argOrUndefined(args, 1))
		return runtime.NumberValue{Val: math.Pow(base, exp)}, nil
	}))
	m.SetField("max", runtime.NewNativeFunction("max", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		result := math.Inf(-1)
		for _, arg := range args {
			result = math.Max(result, runtime.ToNumber(arg))
		}
		return runtime.NumberValue{Val: result}, nil
	}))
	m.SetField("min", runtime.NewNativeFunction("min", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		result := math.Inf(1)
		for _, arg := range args {
			result = math.Min(result, runtime.ToNumber(arg))
		}
		return runtime.NumberValue{Val: result}, nil
	}))
	m.SetField("random", runtime.NewNativeFunction("random", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.NumberValue{Val: opts.Random()}, nil
	}))

	global.SetField("Math", m)
}
