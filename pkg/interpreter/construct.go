package interpreter

import (
	"garter/interpreter-go/pkg/runtime"
)

// Construct implements new-expression semantics: a fresh object whose
// prototype slot is taken from the constructor's "prototype" property, then
// kind-specific dispatch. Native constructors' return values pass through
// verbatim (wrapper constructors return this; Number-style callables may
// return primitives). Regular constructors return the body's result, which
// is the constructed object only when the body returns this.
func (i *Interpreter) Construct(funcVal runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fn, ok := funcVal.(*runtime.FunctionValue)
	if !ok {
		return nil, runtime.Throwf("%s is not a constructor", runtime.TypeOf(funcVal))
	}

	this := runtime.NewObject()
	this.SetPrototype(runtime.GetField(fn, "prototype"))

	switch callable := fn.Callable.(type) {
	case runtime.NativeCallable:
		return callable.Impl(this, runtime.UndefinedValue{}, args)
	case runtime.RegularCallable:
		return i.invokeRegular(callable, this, args)
	default:
		return nil, runtime.Throwf("constructor has no callable implementation")
	}
}

// Box promotes a primitive into its wrapper object by running the matching
// global wrapper constructor with the primitive as sole argument. Values
// without a wrapper box to undefined. Boxing exists solely so method
// dispatch on primitive receivers can proceed.
func (i *Interpreter) Box(v runtime.Value) (runtime.Value, error) {
	var ctorName string
	switch v.Kind() {
	case runtime.KindBoolean:
		ctorName = "Boolean"
	case runtime.KindNumber, runtime.KindInteger:
		ctorName = "Number"
	case runtime.KindString:
		ctorName = "String"
	default:
		return runtime.UndefinedValue{}, nil
	}

	ctor, ok := i.env.GlobalObject().GetOwnField(ctorName)
	if !ok {
		return nil, runtime.Throwf("global %s constructor is not available", ctorName)
	}
	return i.Construct(ctor, []runtime.Value{v})
}
