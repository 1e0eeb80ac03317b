package builtins

import (
	"strconv"
	"strings"

	"garter/interpreter-go/pkg/runtime"
)

func initArray(global *runtime.ObjectValue) {
	_, proto := registerConstructor(global, "Array", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj, ok := this.(*runtime.ObjectValue)
		if !ok {
			obj = runtime.NewObject()
		}
		for i, arg := range args {
			obj.SetField(strconv.Itoa(i), arg)
		}
		obj.SetField("length", runtime.IntegerValue{Val: int32(len(args))})
		return obj, nil
	})

	method(proto, "push", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		holder, ok := this.(runtime.PropertyHolder)
		if !ok {
			return nil, runtime.Throwf("push called on non-object")
		}
		length := arrayLength(holder)
		for _, arg := range args {
			holder.SetField(strconv.Itoa(length), arg)
			length++
		}
		holder.SetField("length", runtime.IntegerValue{Val: int32(length)})
		return runtime.IntegerValue{Val: int32(length)}, nil
	})

	method(proto, "pop", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		holder, ok := this.(runtime.PropertyHolder)
		if !ok {
			return nil, runtime.Throwf("pop called on non-object")
		}
		length := arrayLength(holder)
		if length == 0 {
			return runtime.UndefinedValue{}, nil
		}
		key := strconv.Itoa(length - 1)
		last, _ := holder.GetOwnField(key)
		if last == nil {
			last = runtime.UndefinedValue{}
		}
		holder.DeleteField(key)
		holder.SetField("length", runtime.IntegerValue{Val: int32(length - 1)})
		return last, nil
	})

	method(proto, "join", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		holder, ok := this.(runtime.PropertyHolder)
		if !ok {
			return nil, runtime.Throwf("join called on non-object")
		}
		sep := ","
		if len(args) > 0 {
			sep = runtime.ToString(args[0])
		}
		length := arrayLength(holder)
		parts := make([]string, 0, length)
		for i := 0; i < length; i++ {
			el, ok := holder.GetOwnField(strconv.Itoa(i))
			if !ok || runtime.IsNullOrUndefined(el) {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, runtime.ToString(el))
		}
		return runtime.StringValue{Val: strings.Join(parts, sep)}, nil
	})

	method(proto, "indexOf", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		holder, ok := this.(runtime.PropertyHolder)
		if !ok {
			return nil, runtime.Throwf("indexOf called on non-object")
		}
		target := argOrUndefined(args, 0)
		length := arrayLength(holder)
		for i := 0; i < length; i++ {
			el, ok := holder.GetOwnField(strconv.Itoa(i))
			if ok && runtime.Equals(el, target) {
				return runtime.IntegerValue{Val: int32(i)}, nil
			}
		}
		return runtime.IntegerValue{Val: -1}, nil
	})
}

func arrayLength(holder runtime.PropertyHolder) int {
	v, ok := holder.GetOwnField("length")
	if !ok {
		return 0
	}
	n := runtime.ToNumber(v)
	if n < 0 {
		return 0
	}
	return int(n)
}

// makeArray builds an object following the array convention: indexed
// properties, a length field, and the Array prototype.
func makeArray(global *runtime.ObjectValue, elements []runtime.Value) *runtime.ObjectValue {
	arr := runtime.NewObject()
	for i, el := range elements {
		arr.SetField(strconv.Itoa(i), el)
	}
	if ctor, ok := global.GetOwnField("Array"); ok {
		if holder, isHolder := ctor.(runtime.PropertyHolder); isHolder {
			arr.SetPrototype(runtime.GetField(holder, "prototype"))
		}
	}
	arr.SetField("length", runtime.IntegerValue{Val: int32(len(elements))})
	return arr
}
