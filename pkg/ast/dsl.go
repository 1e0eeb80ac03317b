package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Int(value int32) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Undef() *UndefinedLiteral {
	return NewUndefinedLiteral()
}

func Regex(pattern, flags string) *RegexLiteral {
	return NewRegexLiteral(pattern, flags)
}

// Structure helpers.

func Blk(body ...Expression) *Block {
	return NewBlock(body)
}

func Member(object Expression, field string) *MemberAccess {
	return NewMemberAccess(object, field)
}

func Index(object, field Expression) *ComputedMemberAccess {
	return NewComputedMemberAccess(object, field)
}

func Call(callee Expression, arguments ...Expression) *CallExpression {
	return NewCallExpression(callee, arguments)
}

func New(callee Expression, arguments ...Expression) *ConstructExpression {
	return NewConstructExpression(callee, arguments)
}

func While(condition, body Expression) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func If(condition, consequent Expression) *IfExpression {
	return NewIfExpression(condition, consequent, nil)
}

func IfElse(condition, consequent, alternate Expression) *IfExpression {
	return NewIfExpression(condition, consequent, alternate)
}

func Case(test Expression, body ...Expression) *SwitchCase {
	return NewSwitchCase(test, body)
}

func Switch(discriminant Expression, cases ...*SwitchCase) *SwitchExpression {
	return NewSwitchExpression(discriminant, cases, nil)
}

func SwitchDefault(discriminant Expression, cases []*SwitchCase, defaultBody ...Expression) *SwitchExpression {
	return NewSwitchExpression(discriminant, cases, defaultBody)
}

func Prop(key string, value Expression) *ObjectProperty {
	return NewObjectProperty(key, value)
}

func Obj(properties ...*ObjectProperty) *ObjectLiteral {
	return NewObjectLiteral(properties)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

// Function helpers.

func Fn(name string, params []string, body Expression) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, body)
}

func FnExpr(params []string, body Expression) *FunctionDeclaration {
	return NewFunctionDeclaration(nil, params, body)
}

func Arrow(params []string, body Expression) *ArrowFunction {
	return NewArrowFunction(params, body)
}

// Operator helpers.

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Unary(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func TypeOf(operand Expression) *TypeOfExpression {
	return NewTypeOfExpression(operand)
}

// Statement-flavoured helpers.

func Ret(argument Expression) *ReturnExpression {
	return NewReturnExpression(argument)
}

func RetVoid() *ReturnExpression {
	return NewReturnExpression(nil)
}

func Throw(argument Expression) *ThrowExpression {
	return NewThrowExpression(argument)
}

func Assign(target, value Expression) *AssignExpression {
	return NewAssignExpression(target, value)
}

func Decl(name string, init Expression) *Declarator {
	return NewDeclarator(name, init)
}

func Var(declarators ...*Declarator) *VariableDeclaration {
	return NewVariableDeclaration(DeclarationVar, declarators)
}

func Let(declarators ...*Declarator) *VariableDeclaration {
	return NewVariableDeclaration(DeclarationLet, declarators)
}

func Const(declarators ...*Declarator) *VariableDeclaration {
	return NewVariableDeclaration(DeclarationConst, declarators)
}
