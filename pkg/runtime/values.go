package runtime

import (
	"fmt"

	"garter/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindInteger
	KindString
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. Primitive variants
// are value structs and compare structurally; objects and functions are
// pointers shared between environment bindings, properties, and temporaries.
// Cycles in the resulting graphs are reclaimed by Go's tracing collector.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Primitives
//-----------------------------------------------------------------------------

type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type BooleanValue struct {
	Val bool
}

func (v BooleanValue) Kind() Kind { return KindBoolean }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type IntegerValue struct {
	Val int32
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// IsPrimitive reports whether the value is neither an object nor a function.
func IsPrimitive(v Value) bool {
	switch v.Kind() {
	case KindObject, KindFunction:
		return false
	default:
		return true
	}
}

// IsNullOrUndefined reports whether the value has no boxable representation.
func IsNullOrUndefined(v Value) bool {
	k := v.Kind()
	return k == KindNull || k == KindUndefined
}

//-----------------------------------------------------------------------------
// Property storage shared by objects and functions
//-----------------------------------------------------------------------------

// SlotPrototype names the internal slot holding the prototype link used for
// property lookup delegation.
const SlotPrototype = "Prototype"

// SlotPrimitive names the internal slot wrapper objects use to remember the
// primitive they box.
const SlotPrimitive = "PrimitiveValue"

type propertyBag struct {
	props map[string]Value
	keys  []string
	slots map[string]Value
}

func newPropertyBag() propertyBag {
	return propertyBag{
		props: make(map[string]Value),
		slots: make(map[string]Value),
	}
}

// SetField creates or overwrites an own property, preserving insertion order
// for first-time keys.
func (b *propertyBag) SetField(name string, v Value) {
	if _, ok := b.props[name]; !ok {
		b.keys = append(b.keys, name)
	}
	b.props[name] = v
}

// GetOwnField returns an own property without prototype delegation.
func (b *propertyBag) GetOwnField(name string) (Value, bool) {
	v, ok := b.props[name]
	return v, ok
}

// DeleteField removes an own property if present.
func (b *propertyBag) DeleteField(name string) {
	if _, ok := b.props[name]; !ok {
		return
	}
	delete(b.props, name)
	for i, k := range b.keys {
		if k == name {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
}

// FieldNames returns own property names in insertion order.
func (b *propertyBag) FieldNames() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

func (b *propertyBag) SetSlot(name string, v Value) {
	b.slots[name] = v
}

func (b *propertyBag) GetSlot(name string) (Value, bool) {
	v, ok := b.slots[name]
	return v, ok
}

func (b *propertyBag) Prototype() Value {
	if v, ok := b.slots[SlotPrototype]; ok {
		return v
	}
	return NullValue{}
}

func (b *propertyBag) SetPrototype(v Value) {
	b.slots[SlotPrototype] = v
}

// PropertyHolder is satisfied by the two value kinds that carry properties.
type PropertyHolder interface {
	Value
	SetField(name string, v Value)
	GetOwnField(name string) (Value, bool)
	DeleteField(name string)
	FieldNames() []string
	SetSlot(name string, v Value)
	GetSlot(name string) (Value, bool)
	Prototype() Value
	SetPrototype(v Value)
}

// GetField resolves a property on the holder, delegating through the
// prototype chain; absent properties resolve to undefined.
func GetField(holder PropertyHolder, name string) Value {
	for current := Value(holder); ; {
		ph, ok := current.(PropertyHolder)
		if !ok {
			return UndefinedValue{}
		}
		if v, ok := ph.GetOwnField(name); ok {
			return v
		}
		current = ph.Prototype()
	}
}

//-----------------------------------------------------------------------------
// Objects
//-----------------------------------------------------------------------------

type ObjectValue struct {
	propertyBag
}

func (v *ObjectValue) Kind() Kind { return KindObject }

// NewObject allocates an empty object with a null prototype slot.
func NewObject() *ObjectValue {
	obj := &ObjectValue{propertyBag: newPropertyBag()}
	obj.SetPrototype(NullValue{})
	return obj
}

//-----------------------------------------------------------------------------
// Functions & callables
//-----------------------------------------------------------------------------

// NativeFunc is the fixed host-function signature: receiver, the resolved
// callee value, and positional arguments.
type NativeFunc func(this Value, callee Value, args []Value) (Value, error)

// Callable is the two-kind dispatch sum: host-implemented or user-defined.
type Callable interface {
	callable()
}

type NativeCallable struct {
	Name string
	Impl NativeFunc
}

func (NativeCallable) callable() {}

// RegularCallable owns its parameter list and body, plus the scope captured
// at declaration time; invocation frames parent to that capture so closures
// survive escaping their defining scope.
type RegularCallable struct {
	Params []string
	Body   ast.Expression
	Scope  *Scope
}

func (RegularCallable) callable() {}

type FunctionValue struct {
	propertyBag

	Callable Callable
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NewNativeFunction wraps a host function as a callable value.
func NewNativeFunction(name string, impl NativeFunc) *FunctionValue {
	fn := &FunctionValue{propertyBag: newPropertyBag(), Callable: NativeCallable{Name: name, Impl: impl}}
	fn.SetPrototype(NullValue{})
	return fn
}

// NewRegularFunction snapshots the declaration into an independent callable;
// the parameter list is copied so each declaration owns its own.
func NewRegularFunction(params []string, body ast.Expression, scope *Scope) *FunctionValue {
	owned := make([]string, len(params))
	copy(owned, params)
	fn := &FunctionValue{propertyBag: newPropertyBag(), Callable: RegularCallable{Params: owned, Body: body, Scope: scope}}
	fn.SetPrototype(NullValue{})
	return fn
}

//-----------------------------------------------------------------------------
// The failure channel
//-----------------------------------------------------------------------------

// Thrown carries a thrown script value through Go's error channel. Any value
// may be thrown, not only error-shaped objects.
type Thrown struct {
	Value Value
}

func (t Thrown) Error() string {
	return "uncaught: " + Display(t.Value)
}

// Throw wraps a value for propagation.
func Throw(v Value) error {
	return Thrown{Value: v}
}

// Throwf throws a string value built from a format; used for engine-level
// failures such as calling a non-callable.
func Throwf(format string, args ...any) error {
	return Thrown{Value: StringValue{Val: fmt.Sprintf(format, args...)}}
}
