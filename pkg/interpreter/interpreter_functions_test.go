package interpreter

import (
	"testing"

	"garter/interpreter-go/pkg/ast"
	"garter/interpreter-go/pkg/builtins"
	"garter/interpreter-go/pkg/runtime"
)

func TestFunctionCallBindsParameters(t *testing.T) {
	interp := New()
	v := evalProgram(t, interp,
		ast.Fn("sub", []string{"a", "b"},
			ast.Blk(ast.Ret(ast.Bin("-", ast.ID("a"), ast.ID("b"))))),
		ast.Call(ast.ID("sub"), ast.Int(1), ast.Int(2)),
	)
	if v.Kind() != runtime.KindInteger || runtime.ToNumber(v) != -1 {
		t.Fatalf("sub(1, 2) = %#v, want -1", v)
	}
}

func TestFunctionDeclarationBindsName(t *testing.T) {
	interp := New()
	v := evalProgram(t, interp,
		ast.Fn("fact", []string{"n"}, ast.Blk(
			ast.IfElse(ast.Bin("<", ast.ID("n"), ast.Int(2)),
				ast.Int(1),
				ast.Bin("*", ast.ID("n"), ast.Call(ast.ID("fact"), ast.Bin("-", ast.ID("n"), ast.Int(1))))),
		)),
		ast.Call(ast.ID("fact"), ast.Int(5)),
	)
	if runtime.ToNumber(v) != 120 {
		t.Fatalf("fact(5) = %#v", v)
	}
}

func TestMissingArgumentThrows(t *testing.T) {
	interp := New()
	_, err := interp.Evaluate(ast.Blk(
		ast.Fn("f", []string{"a", "b"}, ast.Blk(ast.ID("a"))),
		ast.Call(ast.ID("f"), ast.Int(1)),
	))
	expectThrown(t, err, "missing argument b")
}

func TestExtraArgumentsIgnored(t *testing.T) {
	interp := New()
	v := evalProgram(t, interp,
		ast.Fn("first", []string{"a"}, ast.Blk(ast.Ret(ast.ID("a")))),
		ast.Call(ast.ID("first"), ast.Int(1), ast.Int(2), ast.Int(3)),
	)
	if runtime.ToNumber(v) != 1 {
		t.Fatalf("first(1,2,3) = %#v", v)
	}
}

func TestCallNonFunctionThrows(t *testing.T) {
	interp := New()
	_, err := interp.Evaluate(ast.Blk(
		ast.Assign(ast.ID("n"), ast.Int(1)),
		ast.Call(ast.ID("n")),
	))
	expectThrown(t, err, "is not a function")
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	interp := New()
	var order []string
	record := func(tag string) *runtime.FunctionValue {
		return runtime.NewNativeFunction(tag, func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
			order = append(order, tag)
			return runtime.UndefinedValue{}, nil
		})
	}
	interp.GlobalObject().SetField("first", record("first"))
	interp.GlobalObject().SetField("second", record("second"))
	interp.GlobalObject().SetField("sink", record("sink"))

	evalProgram(t, interp, ast.Call(ast.ID("sink"), ast.Call(ast.ID("first")), ast.Call(ast.ID("second"))))
	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "sink" {
		t.Fatalf("evaluation order = %v", order)
	}
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	interp := New()
	// makeAdder returns a closure over its parameter; the closure is called
	// after makeAdder's frame is gone.
	v := evalProgram(t, interp,
		ast.Fn("makeAdder", []string{"n"}, ast.Blk(
			ast.Ret(ast.Arrow([]string{"m"}, ast.Blk(
				ast.Bin("+", ast.ID("n"), ast.ID("m"))))),
		)),
		ast.Assign(ast.ID("add3"), ast.Call(ast.ID("makeAdder"), ast.Int(3))),
		ast.Call(ast.ID("add3"), ast.Int(4)),
	)
	if runtime.ToNumber(v) != 7 {
		t.Fatalf("add3(4) = %#v", v)
	}
}

func TestCallerLocalsInvisibleToCallee(t *testing.T) {
	interp := New()
	_, err := interp.Evaluate(ast.Blk(
		ast.Fn("outer", nil, ast.Blk(
			ast.Let(ast.Decl("secret", ast.Int(1))),
			ast.Ret(ast.Call(ast.ID("peek"))),
		)),
		ast.Fn("peek", nil, ast.Blk(ast.ID("secret"))),
		ast.Call(ast.ID("outer")),
	))
	expectThrown(t, err, "secret is not defined")
}

func TestRegularCallBindsUndefinedThis(t *testing.T) {
	interp := New()
	v := evalProgram(t, interp,
		ast.Fn("whoami", nil, ast.Blk(ast.TypeOf(ast.ID("this")))),
		ast.Call(ast.ID("whoami")),
	)
	if runtime.ToString(v) != "undefined" {
		t.Fatalf("this in plain call = %#v", v)
	}
}

func TestNativeMethodReceivesReceiver(t *testing.T) {
	interp := New()
	probe := runtime.NewNativeFunction("self", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return this, nil
	})
	v := evalProgram(t, interp,
		ast.Assign(ast.ID("o"), ast.Obj()),
		ast.Assign(ast.Member(ast.ID("o"), "self"), ast.Undef()),
		ast.ID("o"),
	)
	obj := v.(*runtime.ObjectValue)
	obj.SetField("self", probe)

	got := evalProgram(t, interp, ast.Call(ast.Member(ast.ID("o"), "self")))
	if got != v {
		t.Fatalf("native this = %#v, want the receiver", got)
	}
}

func TestCalleeResolvedOnce(t *testing.T) {
	interp := New()
	target := runtime.NewNativeFunction("target", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: "ran"}, nil
	})
	holder := runtime.NewObject()
	holder.SetField("m", target)

	reads := 0
	supplier := runtime.NewNativeFunction("supplier", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		reads++
		return holder, nil
	})
	interp.GlobalObject().SetField("supplier", supplier)

	v := evalProgram(t, interp, ast.Call(ast.Member(ast.Call(ast.ID("supplier")), "m")))
	if runtime.ToString(v) != "ran" {
		t.Fatalf("call = %#v", v)
	}
	if reads != 1 {
		t.Fatalf("callee object evaluated %d times, want 1", reads)
	}
}

func TestConstructSetsPrototypeFromConstructor(t *testing.T) {
	interp := New()
	v := evalProgram(t, interp,
		ast.Fn("F", nil, ast.Blk(ast.RetVoid())),
		ast.Assign(ast.Member(ast.Member(ast.ID("F"), "prototype"), "k"), ast.Int(5)),
		ast.Assign(ast.ID("obj"), ast.New(ast.ID("F"))),
		ast.Member(ast.ID("obj"), "k"),
	)
	if runtime.ToNumber(v) != 5 {
		t.Fatalf("obj.k = %#v, want prototype delegation to yield 5", v)
	}
}

func TestConstructorBodyResultPropagates(t *testing.T) {
	interp := New()
	// The constructed object surfaces only when the body yields this.
	v := evalProgram(t, interp,
		ast.Fn("Make", []string{"x"}, ast.Blk(
			ast.Assign(ast.Member(ast.ID("this"), "x"), ast.ID("x")),
			ast.ID("this"),
		)),
		ast.Assign(ast.ID("p"), ast.New(ast.ID("Make"), ast.Int(9))),
		ast.Member(ast.ID("p"), "x"),
	)
	if runtime.ToNumber(v) != 9 {
		t.Fatalf("p.x = %#v", v)
	}

	// A body ending elsewhere yields that value instead of the new object.
	v = evalProgram(t, interp,
		ast.Fn("Odd", nil, ast.Blk(ast.Int(42))),
		ast.New(ast.ID("Odd")),
	)
	if runtime.ToNumber(v) != 42 {
		t.Fatalf("new Odd() = %#v, want body result", v)
	}
}

func TestConstructNonFunctionThrows(t *testing.T) {
	interp := New()
	_, err := interp.Evaluate(ast.Blk(
		ast.Assign(ast.ID("x"), ast.Int(1)),
		ast.New(ast.ID("x")),
	))
	expectThrown(t, err, "is not a constructor")
}

func TestNativeConstructReturnPassesThrough(t *testing.T) {
	interp := New()
	native := runtime.NewNativeFunction("Prim", func(this, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.IntegerValue{Val: 3}, nil
	})
	native.SetField("prototype", runtime.NewObject())
	interp.GlobalObject().SetField("Prim", native)

	v := evalProgram(t, interp, ast.New(ast.ID("Prim")))
	if v.Kind() != runtime.KindInteger || runtime.ToNumber(v) != 3 {
		t.Fatalf("new Prim() = %#v, want the native's return value verbatim", v)
	}
}

func TestPrimitiveMethodDispatchViaBoxing(t *testing.T) {
	interp := New()
	builtins.Init(interp.GlobalObject(), builtins.Options{})

	v := evalProgram(t, interp, ast.Call(ast.Member(ast.Str("abc"), "toUpperCase")))
	if runtime.ToString(v) != "ABC" {
		t.Fatalf("\"abc\".toUpperCase() = %#v", v)
	}

	v = evalProgram(t, interp, ast.Member(ast.Str("abcd"), "length"))
	if runtime.ToNumber(v) != 4 {
		t.Fatalf("\"abcd\".length = %#v", v)
	}

	v = evalProgram(t, interp, ast.Call(ast.Member(ast.Int(7), "toString")))
	if runtime.ToString(v) != "7" {
		t.Fatalf("(7).toString() = %#v", v)
	}
}
