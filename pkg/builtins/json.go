package builtins

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"garter/interpreter-go/pkg/runtime"
)

func initJSON(global *runtime.ObjectValue) {
	jsonObj := runtime.NewObject()

	jsonObj.SetField("stringify", runtime.NewNativeFunction("stringify", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		var b strings.Builder
		seen := make(map[runtime.PropertyHolder]bool)
		ok, err := writeJSON(&b, argOrUndefined(args, 0), seen)
		if err != nil {
			return nil, err
		}
		if !ok {
			return runtime.UndefinedValue{}, nil
		}
		return runtime.StringValue{Val: b.String()}, nil
	}))

	jsonObj.SetField("parse", runtime.NewNativeFunction("parse", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		text := runtime.ToString(argOrUndefined(args, 0))
		dec := json.NewDecoder(bytes.NewReader([]byte(text)))
		dec.UseNumber()
		val, err := decodeJSONValue(dec, global)
		if err != nil {
			return nil, runtime.Throwf("JSON.parse: %v", err)
		}
		if dec.More() {
			return nil, runtime.Throwf("JSON.parse: trailing content")
		}
		return val, nil
	}))

	global.SetField("JSON", jsonObj)
}

// writeJSON serializes a value, returning false for values JSON omits
// (undefined, functions). Circular graphs are a failure.
func writeJSON(b *strings.Builder, v runtime.Value, seen map[runtime.PropertyHolder]bool) (bool, error) {
	switch val := v.(type) {
	case runtime.UndefinedValue, *runtime.FunctionValue:
		return false, nil
	case runtime.NullValue:
		b.WriteString("null")
		return true, nil
	case runtime.BooleanValue:
		b.WriteString(runtime.ToString(val))
		return true, nil
	case runtime.IntegerValue:
		b.WriteString(runtime.ToString(val))
		return true, nil
	case runtime.NumberValue:
		// JSON has no encoding for the non-finite numbers.
		if val.Val != val.Val {
			b.WriteString("null")
			return true, nil
		}
		b.WriteString(runtime.FormatNumber(val.Val))
		return true, nil
	case runtime.StringValue:
		encoded, err := json.Marshal(val.Val)
		if err != nil {
			return false, runtime.Throwf("JSON.stringify: %v", err)
		}
		b.Write(encoded)
		return true, nil
	case *runtime.ObjectValue:
		if seen[val] {
			return false, runtime.Throwf("JSON.stringify: converting circular structure")
		}
		seen[val] = true
		defer delete(seen, val)
		if isArrayLike(val) {
			return true, writeJSONArray(b, val, seen)
		}
		return true, writeJSONObject(b, val, seen)
	default:
		return false, nil
	}
}

func writeJSONArray(b *strings.Builder, arr *runtime.ObjectValue, seen map[runtime.PropertyHolder]bool) error {
	b.WriteByte('[')
	length := arrayLength(arr)
	for i := 0; i < length; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		el, ok := arr.GetOwnField(strconv.Itoa(i))
		if !ok {
			b.WriteString("null")
			continue
		}
		written, err := writeJSON(b, el, seen)
		if err != nil {
			return err
		}
		if !written {
			b.WriteString("null")
		}
	}
	b.WriteByte(']')
	return nil
}

func writeJSONObject(b *strings.Builder, obj *runtime.ObjectValue, seen map[runtime.PropertyHolder]bool) error {
	b.WriteByte('{')
	first := true
	for _, key := range obj.FieldNames() {
		val, _ := obj.GetOwnField(key)
		var member strings.Builder
		written, err := writeJSON(&member, val, seen)
		if err != nil {
			return err
		}
		if !written {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return runtime.Throwf("JSON.stringify: %v", err)
		}
		b.Write(encodedKey)
		b.WriteByte(':')
		b.WriteString(member.String())
	}
	b.WriteByte('}')
	return nil
}

func isArrayLike(obj *runtime.ObjectValue) bool {
	if _, ok := obj.GetOwnField("length"); !ok {
		return false
	}
	_, hasFirst := obj.GetOwnField("0")
	return hasFirst || arrayLength(obj) == 0
}

// decodeJSONValue consumes one JSON value from the decoder token stream,
// preserving object key order.
func decodeJSONValue(dec *json.Decoder, global *runtime.ObjectValue) (runtime.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, global, tok)
}

func decodeJSONToken(dec *json.Decoder, global *runtime.ObjectValue, tok json.Token) (runtime.Value, error) {
	switch t := tok.(type) {
	case nil:
		return runtime.NullValue{}, nil
	case bool:
		return runtime.BooleanValue{Val: t}, nil
	case string:
		return runtime.StringValue{Val: t}, nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 32); err == nil {
			return runtime.IntegerValue{Val: int32(i)}, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: f}, nil
	case json.Delim:
		switch t {
		case '{':
			obj := runtime.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string")
				}
				val, err := decodeJSONValue(dec, global)
				if err != nil {
					return nil, err
				}
				obj.SetField(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return obj, nil
		case '[':
			var elements []runtime.Value
			for dec.More() {
				val, err := decodeJSONValue(dec, global)
				if err != nil {
					return nil, err
				}
				elements = append(elements, val)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return makeArray(global, elements), nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
