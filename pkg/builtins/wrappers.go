package builtins

import (
	"strings"

	"garter/interpreter-go/pkg/runtime"
)

// The three wrapper constructors share a shape: constructed instances store
// their primitive in an internal slot so prototype methods can recover it;
// plain calls coerce and return the bare primitive.

func initString(global *runtime.ObjectValue) {
	var proto *runtime.ObjectValue
	_, proto = registerConstructor(global, "String", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		primitive := runtime.StringValue{Val: runtime.ToString(argOrUndefined(args, 0))}
		if len(args) == 0 {
			primitive = runtime.StringValue{Val: ""}
		}
		obj, constructed := constructedWith(this, proto)
		if !constructed {
			return primitive, nil
		}
		obj.SetSlot(runtime.SlotPrimitive, primitive)
		obj.SetField("length", runtime.IntegerValue{Val: int32(len(primitive.Val))})
		return obj, nil
	})

	method(proto, "valueOf", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: stringReceiver(this)}, nil
	})
	method(proto, "toString", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: stringReceiver(this)}, nil
	})
	method(proto, "charAt", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		s := stringReceiver(this)
		idx := int(runtime.ToNumber(argOrUndefined(args, 0)))
		if idx < 0 || idx >= len(s) {
			return runtime.StringValue{Val: ""}, nil
		}
		return runtime.StringValue{Val: string(s[idx])}, nil
	})
	method(proto, "toUpperCase", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: strings.ToUpper(stringReceiver(this))}, nil
	})
	method(proto, "toLowerCase", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: strings.ToLower(stringReceiver(this))}, nil
	})
	method(proto, "indexOf", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		s := stringReceiver(this)
		sub := runtime.ToString(argOrUndefined(args, 0))
		return runtime.IntegerValue{Val: int32(strings.Index(s, sub))}, nil
	})
	method(proto, "slice", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		s := stringReceiver(this)
		start := sliceIndex(int(runtime.ToNumber(argOrUndefined(args, 0))), len(s))
		end := len(s)
		if len(args) > 1 {
			end = sliceIndex(int(runtime.ToNumber(args[1])), len(s))
		}
		if start >= end {
			return runtime.StringValue{Val: ""}, nil
		}
		return runtime.StringValue{Val: s[start:end]}, nil
	})
}

func initNumber(global *runtime.ObjectValue) {
	var proto *runtime.ObjectValue
	_, proto = registerConstructor(global, "Number", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		primitive := argOrUndefined(args, 0)
		obj, constructed := constructedWith(this, proto)
		if !constructed {
			return runtime.NumberValue{Val: runtime.ToNumber(primitive)}, nil
		}
		// Keep the original numeric variant so typeof and arithmetic on the
		// unboxed value survive a round-trip through valueOf.
		if !runtime.IsNumeric(primitive) {
			primitive = runtime.NumberValue{Val: runtime.ToNumber(primitive)}
		}
		obj.SetSlot(runtime.SlotPrimitive, primitive)
		return obj, nil
	})

	method(proto, "valueOf", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return primitiveReceiver(this, runtime.NumberValue{Val: 0}), nil
	})
	method(proto, "toString", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: runtime.ToString(primitiveReceiver(this, runtime.NumberValue{Val: 0}))}, nil
	})
}

func initBoolean(global *runtime.ObjectValue) {
	var proto *runtime.ObjectValue
	_, proto = registerConstructor(global, "Boolean", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		primitive := runtime.BooleanValue{Val: runtime.ToBoolean(argOrUndefined(args, 0))}
		obj, constructed := constructedWith(this, proto)
		if !constructed {
			return primitive, nil
		}
		obj.SetSlot(runtime.SlotPrimitive, primitive)
		return obj, nil
	})

	method(proto, "valueOf", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return primitiveReceiver(this, runtime.BooleanValue{Val: false}), nil
	})
	method(proto, "toString", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: runtime.ToString(primitiveReceiver(this, runtime.BooleanValue{Val: false}))}, nil
	})
}

// primitiveReceiver unwraps a boxed receiver's primitive slot, passing bare
// primitives through.
func primitiveReceiver(this runtime.Value, fallback runtime.Value) runtime.Value {
	if holder, ok := this.(runtime.PropertyHolder); ok {
		if v, ok := holder.GetSlot(runtime.SlotPrimitive); ok {
			return v
		}
		return fallback
	}
	if runtime.IsPrimitive(this) {
		return this
	}
	return fallback
}

func stringReceiver(this runtime.Value) string {
	return runtime.ToString(primitiveReceiver(this, runtime.StringValue{Val: ""}))
}

func sliceIndex(idx, length int) int {
	if idx < 0 {
		idx += length
	}
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}
