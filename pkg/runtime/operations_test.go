package runtime

import (
	"math"
	"testing"
)

func TestToBoolean(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{UndefinedValue{}, false},
		{NullValue{}, false},
		{BooleanValue{Val: true}, true},
		{BooleanValue{Val: false}, false},
		{NumberValue{Val: 0}, false},
		{NumberValue{Val: math.NaN()}, false},
		{NumberValue{Val: 0.5}, true},
		{IntegerValue{Val: 0}, false},
		{IntegerValue{Val: -3}, true},
		{StringValue{Val: ""}, false},
		{StringValue{Val: "x"}, true},
		{NewObject(), true},
	}
	for _, tc := range cases {
		if got := ToBoolean(tc.value); got != tc.want {
			t.Errorf("ToBoolean(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	if got := ToNumber(NullValue{}); got != 0 {
		t.Errorf("null = %v", got)
	}
	if got := ToNumber(UndefinedValue{}); !math.IsNaN(got) {
		t.Errorf("undefined = %v", got)
	}
	if got := ToNumber(BooleanValue{Val: true}); got != 1 {
		t.Errorf("true = %v", got)
	}
	if got := ToNumber(StringValue{Val: "  3.5 "}); got != 3.5 {
		t.Errorf("padded string = %v", got)
	}
	if got := ToNumber(StringValue{Val: ""}); got != 0 {
		t.Errorf("empty string = %v", got)
	}
	if got := ToNumber(StringValue{Val: "abc"}); !math.IsNaN(got) {
		t.Errorf("junk string = %v", got)
	}
	if got := ToNumber(NewObject()); !math.IsNaN(got) {
		t.Errorf("object = %v", got)
	}
}

func TestToInt32Wrapping(t *testing.T) {
	cases := []struct {
		value Value
		want  int32
	}{
		{IntegerValue{Val: 7}, 7},
		{NumberValue{Val: 7.9}, 7},
		{NumberValue{Val: -7.9}, -7},
		{NumberValue{Val: math.NaN()}, 0},
		{NumberValue{Val: math.Inf(1)}, 0},
		{NumberValue{Val: 4294967296}, 0},
		{NumberValue{Val: 4294967297}, 1},
		{NumberValue{Val: 2147483648}, -2147483648},
		{StringValue{Val: "12"}, 12},
	}
	for _, tc := range cases {
		if got := ToInt32(tc.value); got != tc.want {
			t.Errorf("ToInt32(%#v) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestToStringFormats(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{UndefinedValue{}, "undefined"},
		{NullValue{}, "null"},
		{BooleanValue{Val: false}, "false"},
		{NumberValue{Val: 1.5}, "1.5"},
		{NumberValue{Val: 3}, "3"},
		{NumberValue{Val: math.NaN()}, "NaN"},
		{NumberValue{Val: math.Inf(-1)}, "-Infinity"},
		{IntegerValue{Val: -42}, "-42"},
		{StringValue{Val: "hi"}, "hi"},
		{NewObject(), "[object Object]"},
	}
	for _, tc := range cases {
		if got := ToString(tc.value); got != tc.want {
			t.Errorf("ToString(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
	fn := NewNativeFunction("f", func(this, callee Value, args []Value) (Value, error) {
		return UndefinedValue{}, nil
	})
	if got := ToString(fn); got != "function" {
		t.Errorf("function = %q", got)
	}
}

func TestEqualsValueSemantics(t *testing.T) {
	if !Equals(IntegerValue{Val: 1}, NumberValue{Val: 1}) {
		t.Errorf("integer 1 should equal number 1")
	}
	if Equals(IntegerValue{Val: 1}, StringValue{Val: "1"}) {
		t.Errorf("no cross-kind coercion outside numerics")
	}
	if !Equals(StringValue{Val: "a"}, StringValue{Val: "a"}) {
		t.Errorf("equal strings")
	}
	if !Equals(NullValue{}, NullValue{}) || Equals(NullValue{}, UndefinedValue{}) {
		t.Errorf("null/undefined are distinct")
	}
}

func TestEqualsIdentitySemantics(t *testing.T) {
	a := NewObject()
	b := NewObject()
	if !Equals(a, a) {
		t.Errorf("object equals itself")
	}
	if Equals(a, b) {
		t.Errorf("distinct objects never equal")
	}
	if Equals(a, IntegerValue{Val: 0}) {
		t.Errorf("object never equals primitive")
	}
}

func TestTypeOfTags(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{UndefinedValue{}, "undefined"},
		{NullValue{}, "object"},
		{BooleanValue{Val: true}, "boolean"},
		{NumberValue{Val: 1.5}, "number"},
		{IntegerValue{Val: 3}, "number"},
		{StringValue{Val: "s"}, "string"},
		{NewObject(), "object"},
	}
	for _, tc := range cases {
		if got := TypeOf(tc.value); got != tc.want {
			t.Errorf("TypeOf(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
	fn := NewNativeFunction("f", func(this, callee Value, args []Value) (Value, error) {
		return UndefinedValue{}, nil
	})
	if got := TypeOf(fn); got != "function" {
		t.Errorf("function tag = %q", got)
	}
}

func TestPropertyBagInsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.SetField("b", IntegerValue{Val: 1})
	obj.SetField("a", IntegerValue{Val: 2})
	obj.SetField("b", IntegerValue{Val: 3})

	names := obj.FieldNames()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("FieldNames = %v, want [b a]", names)
	}
	v, ok := obj.GetOwnField("b")
	if !ok || ToNumber(v) != 3 {
		t.Fatalf("overwrite lost: %#v", v)
	}

	obj.DeleteField("b")
	if _, ok := obj.GetOwnField("b"); ok {
		t.Fatalf("delete failed")
	}
	if names := obj.FieldNames(); len(names) != 1 || names[0] != "a" {
		t.Fatalf("FieldNames after delete = %v", names)
	}
}

func TestGetFieldWalksPrototypeChain(t *testing.T) {
	proto := NewObject()
	proto.SetField("shared", StringValue{Val: "up"})
	obj := NewObject()
	obj.SetPrototype(proto)

	if got := GetField(obj, "shared"); ToString(got) != "up" {
		t.Fatalf("prototype lookup = %#v", got)
	}
	obj.SetField("shared", StringValue{Val: "own"})
	if got := GetField(obj, "shared"); ToString(got) != "own" {
		t.Fatalf("own property must shadow prototype")
	}
	if got := GetField(obj, "missing"); got.Kind() != KindUndefined {
		t.Fatalf("missing lookup = %#v", got)
	}
}
