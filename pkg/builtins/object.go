package builtins

import "garter/interpreter-go/pkg/runtime"

func initObject(global *runtime.ObjectValue) {
	_, proto := registerConstructor(global, "Object", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if obj, ok := this.(*runtime.ObjectValue); ok {
			return obj, nil
		}
		return runtime.NewObject(), nil
	})

	method(proto, "hasOwnProperty", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		holder, ok := this.(runtime.PropertyHolder)
		if !ok {
			return runtime.BooleanValue{Val: false}, nil
		}
		name := runtime.ToString(argOrUndefined(args, 0))
		_, has := holder.GetOwnField(name)
		return runtime.BooleanValue{Val: has}, nil
	})

	method(proto, "toString", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: runtime.ToString(this)}, nil
	})

	method(proto, "keys", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		holder, ok := this.(runtime.PropertyHolder)
		if !ok {
			return runtime.UndefinedValue{}, nil
		}
		return makeArray(global, stringValues(holder.FieldNames())), nil
	})
}

func stringValues(names []string) []runtime.Value {
	out := make([]runtime.Value, len(names))
	for i, name := range names {
		out[i] = runtime.StringValue{Val: name}
	}
	return out
}
