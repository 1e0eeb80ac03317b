package runtime

import (
	"errors"
	"strings"
	"testing"
)

func TestGetBindingValueScopeChain(t *testing.T) {
	env := NewLexicalEnvironment(NewObject())
	env.CreateMutableBinding("x")
	if err := env.InitializeBinding("x", IntegerValue{Val: 1}); err != nil {
		t.Fatalf("init: %v", err)
	}

	env.PushScope()
	v, err := env.GetBindingValue("x")
	if err != nil {
		t.Fatalf("lookup through parent: %v", err)
	}
	if ToNumber(v) != 1 {
		t.Fatalf("x = %#v", v)
	}

	env.CreateMutableBinding("x")
	if err := env.InitializeBinding("x", IntegerValue{Val: 2}); err != nil {
		t.Fatalf("init shadow: %v", err)
	}
	v, _ = env.GetBindingValue("x")
	if ToNumber(v) != 2 {
		t.Fatalf("shadowed x = %#v", v)
	}

	env.Pop()
	v, _ = env.GetBindingValue("x")
	if ToNumber(v) != 1 {
		t.Fatalf("outer x after pop = %#v", v)
	}
}

func TestGetBindingValueGlobalObjectFallback(t *testing.T) {
	global := NewObject()
	global.SetField("answer", IntegerValue{Val: 42})
	env := NewLexicalEnvironment(global)

	v, err := env.GetBindingValue("answer")
	if err != nil {
		t.Fatalf("global object fallback: %v", err)
	}
	if ToNumber(v) != 42 {
		t.Fatalf("answer = %#v", v)
	}
}

func TestGetBindingValueUndefinedNameThrows(t *testing.T) {
	env := NewLexicalEnvironment(NewObject())
	_, err := env.GetBindingValue("ghost")
	if err == nil {
		t.Fatalf("expected throw")
	}
	var thrown Thrown
	if !errors.As(err, &thrown) {
		t.Fatalf("expected Thrown, got %T", err)
	}
	if !strings.Contains(ToString(thrown.Value), "ghost is not defined") {
		t.Fatalf("thrown value = %#v", thrown.Value)
	}
}

func TestImmutableBinding(t *testing.T) {
	env := NewLexicalEnvironment(NewObject())
	env.CreateImmutableBinding("c")
	if err := env.InitializeBinding("c", IntegerValue{Val: 1}); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := env.InitializeBinding("c", IntegerValue{Val: 2}); err == nil {
		t.Fatalf("expected re-init failure")
	}
	if err := env.DefineOrUpdate("c", IntegerValue{Val: 3}); err == nil {
		t.Fatalf("expected const overwrite failure")
	}
}

func TestDefineOrUpdate(t *testing.T) {
	env := NewLexicalEnvironment(NewObject())
	if err := env.DefineOrUpdate("a", IntegerValue{Val: 1}); err != nil {
		t.Fatalf("declare-on-assign: %v", err)
	}
	if err := env.DefineOrUpdate("a", IntegerValue{Val: 2}); err != nil {
		t.Fatalf("update: %v", err)
	}
	v, _ := env.GetBindingValue("a")
	if ToNumber(v) != 2 {
		t.Fatalf("a = %#v", v)
	}
}

func TestFunctionScopeRestoresCallerFrame(t *testing.T) {
	env := NewLexicalEnvironment(NewObject())
	env.CreateMutableBinding("captured")
	if err := env.InitializeBinding("captured", StringValue{Val: "outer"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	defining := env.CurrentScope()

	caller := env.PushScope()
	env.CreateMutableBinding("local")
	if err := env.InitializeBinding("local", StringValue{Val: "caller"}); err != nil {
		t.Fatalf("init local: %v", err)
	}

	frame := env.PushFunctionScope(defining)
	if frame.Parent() != defining {
		t.Fatalf("function frame must parent the captured scope")
	}
	// The caller's locals are invisible inside the function frame.
	if _, err := env.GetBindingValue("local"); err == nil {
		t.Fatalf("caller locals leaked into function frame")
	}
	v, err := env.GetBindingValue("captured")
	if err != nil || ToString(v) != "outer" {
		t.Fatalf("captured lookup = %#v, %v", v, err)
	}

	env.Pop()
	if env.CurrentScope() != caller {
		t.Fatalf("pop must restore the caller frame, not the captured parent")
	}
}

func TestUninitializedBindingReadsUndefined(t *testing.T) {
	env := NewLexicalEnvironment(NewObject())
	env.CreateMutableBinding("pending")
	v, err := env.GetBindingValue("pending")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v.Kind() != KindUndefined {
		t.Fatalf("uninitialized read = %#v", v)
	}
}
