package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ToBoolean applies truthiness coercion.
func ToBoolean(v Value) bool {
	switch val := v.(type) {
	case UndefinedValue, NullValue:
		return false
	case BooleanValue:
		return val.Val
	case NumberValue:
		return val.Val != 0 && !math.IsNaN(val.Val)
	case IntegerValue:
		return val.Val != 0
	case StringValue:
		return len(val.Val) > 0
	default:
		return true
	}
}

// ToNumber applies numeric coercion; objects and functions have no numeric
// interpretation and coerce to NaN.
func ToNumber(v Value) float64 {
	switch val := v.(type) {
	case UndefinedValue:
		return math.NaN()
	case NullValue:
		return 0
	case BooleanValue:
		if val.Val {
			return 1
		}
		return 0
	case NumberValue:
		return val.Val
	case IntegerValue:
		return float64(val.Val)
	case StringValue:
		trimmed := strings.TrimSpace(val.Val)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// ToInt32 coerces for the bitwise operators: truncate, then wrap modulo 2^32.
func ToInt32(v Value) int32 {
	if iv, ok := v.(IntegerValue); ok {
		return iv.Val
	}
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Trunc(f)
	m := math.Mod(t, 4294967296)
	return int32(uint32(int64(m)))
}

// ToString applies string coercion.
func ToString(v Value) string {
	switch val := v.(type) {
	case UndefinedValue:
		return "undefined"
	case NullValue:
		return "null"
	case BooleanValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NumberValue:
		return FormatNumber(val.Val)
	case IntegerValue:
		return strconv.FormatInt(int64(val.Val), 10)
	case StringValue:
		return val.Val
	case *FunctionValue:
		return "function"
	default:
		return "[object Object]"
	}
}

// FormatNumber renders a float the way scripts expect: no trailing ".0",
// NaN and infinities spelled out.
func FormatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Display renders a value for console output and CLI results. Strings print
// bare; everything else matches ToString.
func Display(v Value) string {
	return ToString(v)
}

// IsNumeric reports whether the value is one of the two numeric variants.
func IsNumeric(v Value) bool {
	k := v.Kind()
	return k == KindNumber || k == KindInteger
}

// Equals implements the engine's single equality rule: identity when either
// side is an object or function, structural value comparison otherwise.
// Numeric variants compare by numeric value across Number and Integer.
func Equals(left, right Value) bool {
	if !IsPrimitive(left) || !IsPrimitive(right) {
		return left == right
	}
	if IsNumeric(left) && IsNumeric(right) {
		return ToNumber(left) == ToNumber(right)
	}
	switch lv := left.(type) {
	case UndefinedValue:
		_, ok := right.(UndefinedValue)
		return ok
	case NullValue:
		_, ok := right.(NullValue)
		return ok
	case BooleanValue:
		rv, ok := right.(BooleanValue)
		return ok && lv.Val == rv.Val
	case StringValue:
		rv, ok := right.(StringValue)
		return ok && lv.Val == rv.Val
	default:
		return false
	}
}

// TypeOf implements the typeof operator's tag set: null and objects share
// "object", both numeric variants share "number".
func TypeOf(v Value) string {
	switch v.Kind() {
	case KindUndefined:
		return "undefined"
	case KindNull, KindObject:
		return "object"
	case KindBoolean:
		return "boolean"
	case KindNumber, KindInteger:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	default:
		return "undefined"
	}
}
