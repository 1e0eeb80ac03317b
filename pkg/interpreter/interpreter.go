package interpreter

import (
	"math"

	"garter/interpreter-go/pkg/ast"
	"garter/interpreter-go/pkg/runtime"
)

// Interpreter drives recursive evaluation of expression trees against a
// mutable global environment. Failures are thrown script values carried as
// runtime.Thrown errors; no catching construct exists in this core, so every
// throw reaches the caller of Evaluate.
type Interpreter struct {
	env *runtime.LexicalEnvironment
}

// New builds an interpreter around a fresh global object. Builtin
// initializers are expected to populate the global object before user code
// runs.
func New() *Interpreter {
	return &Interpreter{env: runtime.NewLexicalEnvironment(runtime.NewObject())}
}

// Environment exposes the lexical environment.
func (i *Interpreter) Environment() *runtime.LexicalEnvironment {
	return i.env
}

// GlobalObject returns the object builtins register on.
func (i *Interpreter) GlobalObject() *runtime.ObjectValue {
	return i.env.GlobalObject()
}

// Evaluate interprets a single expression node.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BooleanValue{Val: n.Value}, nil
	case *ast.NullLiteral:
		return runtime.NullValue{}, nil
	case *ast.UndefinedLiteral:
		return runtime.UndefinedValue{}, nil
	case *ast.RegexLiteral:
		// Regular expressions are not implemented in this core.
		return runtime.UndefinedValue{}, nil
	case *ast.Block:
		return i.evaluateBlock(n)
	case *ast.Identifier:
		return i.env.GetBindingValue(n.Name)
	case *ast.MemberAccess:
		return i.evaluateMemberAccess(n)
	case *ast.ComputedMemberAccess:
		return i.evaluateComputedMemberAccess(n)
	case *ast.CallExpression:
		return i.evaluateCall(n)
	case *ast.ConstructExpression:
		return i.evaluateConstruct(n)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n)
	case *ast.SwitchExpression:
		return i.evaluateSwitchExpression(n)
	case *ast.ObjectLiteral:
		return i.evaluateObjectLiteral(n)
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n)
	case *ast.FunctionDeclaration:
		return i.evaluateFunctionDeclaration(n)
	case *ast.ArrowFunction:
		fn := runtime.NewRegularFunction(n.Params, n.Body, i.env.CurrentScope())
		fn.SetField("prototype", runtime.NewObject())
		return fn, nil
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	case *ast.TypeOfExpression:
		val, err := i.Evaluate(n.Operand)
		if err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: runtime.TypeOf(val)}, nil
	case *ast.ReturnExpression:
		// No function-boundary unwind exists: return yields its argument in
		// place, exactly like evaluating that expression at that position.
		if n.Argument == nil {
			return runtime.UndefinedValue{}, nil
		}
		return i.Evaluate(n.Argument)
	case *ast.ThrowExpression:
		val, err := i.Evaluate(n.Argument)
		if err != nil {
			return nil, err
		}
		return nil, runtime.Throw(val)
	case *ast.AssignExpression:
		return i.evaluateAssignment(n)
	case *ast.VariableDeclaration:
		return i.evaluateVariableDeclaration(n)
	default:
		return nil, runtime.Throwf("unsupported expression type %s", expr.NodeType())
	}
}

func (i *Interpreter) evaluateBlock(block *ast.Block) (runtime.Value, error) {
	var result runtime.Value = runtime.UndefinedValue{}
	for idx, sub := range block.Body {
		val, err := i.Evaluate(sub)
		if err != nil {
			return nil, err
		}
		if idx == len(block.Body)-1 {
			result = val
		}
	}
	return result, nil
}

func (i *Interpreter) evaluateMemberAccess(expr *ast.MemberAccess) (runtime.Value, error) {
	receiver, err := i.Evaluate(expr.Object)
	if err != nil {
		return nil, err
	}
	holder, err := i.receiverHolder(receiver, expr.Field)
	if err != nil {
		return nil, err
	}
	return runtime.GetField(holder, expr.Field), nil
}

func (i *Interpreter) evaluateComputedMemberAccess(expr *ast.ComputedMemberAccess) (runtime.Value, error) {
	receiver, err := i.Evaluate(expr.Object)
	if err != nil {
		return nil, err
	}
	fieldVal, err := i.Evaluate(expr.Field)
	if err != nil {
		return nil, err
	}
	field := runtime.ToString(fieldVal)
	holder, err := i.receiverHolder(receiver, field)
	if err != nil {
		return nil, err
	}
	return runtime.GetField(holder, field), nil
}

// receiverHolder prepares a value for property lookup, autoboxing primitive
// receivers other than null and undefined.
func (i *Interpreter) receiverHolder(receiver runtime.Value, field string) (runtime.PropertyHolder, error) {
	if runtime.IsNullOrUndefined(receiver) {
		return nil, runtime.Throwf("cannot read property %s of %s", field, runtime.ToString(receiver))
	}
	if runtime.IsPrimitive(receiver) {
		boxed, err := i.Box(receiver)
		if err != nil {
			return nil, err
		}
		holder, ok := boxed.(runtime.PropertyHolder)
		if !ok {
			return nil, runtime.Throwf("cannot read property %s of %s", field, runtime.TypeOf(receiver))
		}
		return holder, nil
	}
	holder, ok := receiver.(runtime.PropertyHolder)
	if !ok {
		return nil, runtime.Throwf("cannot read property %s of %s", field, runtime.TypeOf(receiver))
	}
	return holder, nil
}

func (i *Interpreter) evaluateCall(call *ast.CallExpression) (runtime.Value, error) {
	var thisVal, funcVal runtime.Value

	// The callee's shape decides the receiver: member accesses bind their
	// (autoboxed-if-needed) object, anything else binds the global object.
	switch callee := call.Callee.(type) {
	case *ast.MemberAccess:
		receiver, err := i.Evaluate(callee.Object)
		if err != nil {
			return nil, err
		}
		holder, err := i.receiverHolder(receiver, callee.Field)
		if err != nil {
			return nil, err
		}
		thisVal = holder
		funcVal = runtime.GetField(holder, callee.Field)
	case *ast.ComputedMemberAccess:
		receiver, err := i.Evaluate(callee.Object)
		if err != nil {
			return nil, err
		}
		fieldVal, err := i.Evaluate(callee.Field)
		if err != nil {
			return nil, err
		}
		field := runtime.ToString(fieldVal)
		holder, err := i.receiverHolder(receiver, field)
		if err != nil {
			return nil, err
		}
		thisVal = holder
		funcVal = runtime.GetField(holder, field)
	default:
		var err error
		thisVal = i.env.GlobalObject()
		funcVal, err = i.Evaluate(call.Callee)
		if err != nil {
			return nil, err
		}
	}

	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.Evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	return i.CallFunction(funcVal, thisVal, args)
}

// CallFunction dispatches on the callable kind. The callee expression is
// resolved exactly once; natives receive the resolved function value as
// their callee argument.
func (i *Interpreter) CallFunction(funcVal, thisVal runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fn, ok := funcVal.(*runtime.FunctionValue)
	if !ok {
		return nil, runtime.Throwf("%s is not a function", runtime.TypeOf(funcVal))
	}
	switch callable := fn.Callable.(type) {
	case runtime.NativeCallable:
		return callable.Impl(thisVal, fn, args)
	case runtime.RegularCallable:
		return i.invokeRegular(callable, runtime.UndefinedValue{}, args)
	default:
		return nil, runtime.Throwf("function has no callable implementation")
	}
}

// invokeRegular runs a user-defined callable: a fresh frame parented to the
// captured defining scope, positional parameter bindings, one body
// evaluation.
func (i *Interpreter) invokeRegular(callable runtime.RegularCallable, thisVal runtime.Value, args []runtime.Value) (runtime.Value, error) {
	if len(args) < len(callable.Params) {
		return nil, runtime.Throwf("missing argument %s in function call", callable.Params[len(args)])
	}
	i.env.PushFunctionScope(callable.Scope)
	defer i.env.Pop()

	i.env.CreateMutableBinding("this")
	if err := i.env.InitializeBinding("this", thisVal); err != nil {
		return nil, err
	}
	for idx, name := range callable.Params {
		i.env.CreateMutableBinding(name)
		if err := i.env.InitializeBinding(name, args[idx]); err != nil {
			return nil, err
		}
	}
	return i.Evaluate(callable.Body)
}

func (i *Interpreter) evaluateConstruct(expr *ast.ConstructExpression) (runtime.Value, error) {
	funcVal, err := i.Evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(expr.Arguments))
	for _, argExpr := range expr.Arguments {
		val, err := i.Evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.Construct(funcVal, args)
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop) (runtime.Value, error) {
	var result runtime.Value = runtime.UndefinedValue{}
	for {
		cond, err := i.Evaluate(loop.Condition)
		if err != nil {
			return nil, err
		}
		if !runtime.ToBoolean(cond) {
			return result, nil
		}
		val, err := i.Evaluate(loop.Body)
		if err != nil {
			return nil, err
		}
		result = val
	}
}

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression) (runtime.Value, error) {
	cond, err := i.Evaluate(expr.Condition)
	if err != nil {
		return nil, err
	}
	if runtime.ToBoolean(cond) {
		return i.Evaluate(expr.Consequent)
	}
	if expr.Alternate == nil {
		return runtime.UndefinedValue{}, nil
	}
	return i.Evaluate(expr.Alternate)
}

func (i *Interpreter) evaluateSwitchExpression(expr *ast.SwitchExpression) (runtime.Value, error) {
	discriminant, err := i.Evaluate(expr.Discriminant)
	if err != nil {
		return nil, err
	}
	for _, clause := range expr.Cases {
		test, err := i.Evaluate(clause.Test)
		if err != nil {
			return nil, err
		}
		if !runtime.Equals(discriminant, test) {
			continue
		}
		// First match wins; no fallthrough across cases.
		var result runtime.Value = runtime.UndefinedValue{}
		for idx, sub := range clause.Body {
			val, err := i.Evaluate(sub)
			if err != nil {
				return nil, err
			}
			if idx == len(clause.Body)-1 {
				result = val
			}
		}
		return result, nil
	}
	if expr.Default == nil {
		return runtime.UndefinedValue{}, nil
	}
	var result runtime.Value = runtime.UndefinedValue{}
	for idx, sub := range expr.Default {
		val, err := i.Evaluate(sub)
		if err != nil {
			return nil, err
		}
		if idx == len(expr.Default)-1 {
			result = val
		}
	}
	return result, nil
}

func (i *Interpreter) evaluateObjectLiteral(lit *ast.ObjectLiteral) (runtime.Value, error) {
	obj := runtime.NewObject()
	for _, prop := range lit.Properties {
		val, err := i.Evaluate(prop.Value)
		if err != nil {
			return nil, err
		}
		obj.SetField(prop.Key, val)
	}
	return obj, nil
}

func (i *Interpreter) evaluateArrayLiteral(lit *ast.ArrayLiteral) (runtime.Value, error) {
	arr := runtime.NewObject()
	for idx, el := range lit.Elements {
		val, err := i.Evaluate(el)
		if err != nil {
			return nil, err
		}
		arr.SetField(runtime.ToString(runtime.IntegerValue{Val: int32(idx)}), val)
	}
	if ctor, ok := i.env.GlobalObject().GetOwnField("Array"); ok {
		if holder, isHolder := ctor.(runtime.PropertyHolder); isHolder {
			arr.SetPrototype(runtime.GetField(holder, "prototype"))
		}
	}
	arr.SetField("length", runtime.IntegerValue{Val: int32(len(lit.Elements))})
	return arr, nil
}

func (i *Interpreter) evaluateFunctionDeclaration(decl *ast.FunctionDeclaration) (runtime.Value, error) {
	fn := runtime.NewRegularFunction(decl.Params, decl.Body, i.env.CurrentScope())
	fn.SetField("prototype", runtime.NewObject())
	if decl.Name != nil {
		// The name binding enables simple recursive self-reference.
		if err := i.env.DefineOrUpdate(decl.Name.Name, fn); err != nil {
			return nil, err
		}
	}
	return fn, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.Evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.Evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case "+", "-", "*", "/", "%":
		return evaluateNumericOp(expr.Operator, left, right), nil
	case "&", "|", "^", "<<", ">>":
		return evaluateBitwiseOp(expr.Operator, left, right), nil
	case "==", "===":
		return runtime.BooleanValue{Val: runtime.Equals(left, right)}, nil
	case "!=", "!==":
		return runtime.BooleanValue{Val: !runtime.Equals(left, right)}, nil
	case "<", "<=", ">", ">=":
		return evaluateComparison(expr.Operator, left, right), nil
	case "&&":
		// Both operands evaluate eagerly; no short-circuit skip of effects.
		return runtime.BooleanValue{Val: runtime.ToBoolean(left) && runtime.ToBoolean(right)}, nil
	case "||":
		return runtime.BooleanValue{Val: runtime.ToBoolean(left) || runtime.ToBoolean(right)}, nil
	default:
		return nil, runtime.Throwf("unsupported binary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := i.Evaluate(expr.Operand)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "-":
		return runtime.NumberValue{Val: -runtime.ToNumber(operand)}, nil
	case "+":
		return runtime.NumberValue{Val: runtime.ToNumber(operand)}, nil
	case "!":
		return runtime.BooleanValue{Val: !runtime.ToBoolean(operand)}, nil
	default:
		return nil, runtime.Throwf("unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignExpression) (runtime.Value, error) {
	value, err := i.Evaluate(assign.Value)
	if err != nil {
		return nil, err
	}
	switch target := assign.Target.(type) {
	case *ast.Identifier:
		// Every assignment is an implicit declaration.
		if err := i.env.DefineOrUpdate(target.Name, value); err != nil {
			return nil, err
		}
	case *ast.MemberAccess:
		receiver, err := i.Evaluate(target.Object)
		if err != nil {
			return nil, err
		}
		if holder, ok := receiver.(runtime.PropertyHolder); ok {
			holder.SetField(target.Field, value)
		}
	default:
		// Any other target shape is a silent no-op.
	}
	return value, nil
}

func (i *Interpreter) evaluateVariableDeclaration(decl *ast.VariableDeclaration) (runtime.Value, error) {
	for _, d := range decl.Declarators {
		var val runtime.Value = runtime.NullValue{}
		if d.Init != nil {
			v, err := i.Evaluate(d.Init)
			if err != nil {
				return nil, err
			}
			val = v
		}
		if decl.Kind == ast.DeclarationConst {
			i.env.CreateImmutableBinding(d.Name)
		} else {
			i.env.CreateMutableBinding(d.Name)
		}
		if err := i.env.InitializeBinding(d.Name, val); err != nil {
			return nil, err
		}
	}
	return runtime.UndefinedValue{}, nil
}

func evaluateNumericOp(op string, left, right runtime.Value) runtime.Value {
	if op == "+" {
		// Concatenation wins when either operand is a string.
		if left.Kind() == runtime.KindString || right.Kind() == runtime.KindString {
			return runtime.StringValue{Val: runtime.ToString(left) + runtime.ToString(right)}
		}
	}
	li, leftInt := left.(runtime.IntegerValue)
	ri, rightInt := right.(runtime.IntegerValue)
	if leftInt && rightInt {
		switch op {
		case "+":
			return runtime.IntegerValue{Val: li.Val + ri.Val}
		case "-":
			return runtime.IntegerValue{Val: li.Val - ri.Val}
		case "*":
			return runtime.IntegerValue{Val: li.Val * ri.Val}
		}
	}
	lf := runtime.ToNumber(left)
	rf := runtime.ToNumber(right)
	switch op {
	case "+":
		return runtime.NumberValue{Val: lf + rf}
	case "-":
		return runtime.NumberValue{Val: lf - rf}
	case "*":
		return runtime.NumberValue{Val: lf * rf}
	case "/":
		return runtime.NumberValue{Val: lf / rf}
	default:
		return runtime.NumberValue{Val: math.Mod(lf, rf)}
	}
}

func evaluateBitwiseOp(op string, left, right runtime.Value) runtime.Value {
	lv := runtime.ToInt32(left)
	rv := runtime.ToInt32(right)
	switch op {
	case "&":
		return runtime.IntegerValue{Val: lv & rv}
	case "|":
		return runtime.IntegerValue{Val: lv | rv}
	case "^":
		return runtime.IntegerValue{Val: lv ^ rv}
	case "<<":
		return runtime.IntegerValue{Val: lv << (uint32(rv) & 31)}
	default:
		return runtime.IntegerValue{Val: lv >> (uint32(rv) & 31)}
	}
}

func evaluateComparison(op string, left, right runtime.Value) runtime.Value {
	lf := runtime.ToNumber(left)
	rf := runtime.ToNumber(right)
	var result bool
	switch op {
	case "<":
		result = lf < rf
	case "<=":
		result = lf <= rf
	case ">":
		result = lf > rf
	default:
		result = lf >= rf
	}
	return runtime.BooleanValue{Val: result}
}
