package ast

type NodeType string

const (
	NodeIdentifier           NodeType = "Identifier"
	NodeNumberLiteral        NodeType = "NumberLiteral"
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeNullLiteral          NodeType = "NullLiteral"
	NodeUndefinedLiteral     NodeType = "UndefinedLiteral"
	NodeRegexLiteral         NodeType = "RegexLiteral"
	NodeBlock                NodeType = "Block"
	NodeMemberAccess         NodeType = "MemberAccess"
	NodeComputedMemberAccess NodeType = "ComputedMemberAccess"
	NodeCallExpression       NodeType = "CallExpression"
	NodeConstructExpression  NodeType = "ConstructExpression"
	NodeWhileLoop            NodeType = "WhileLoop"
	NodeIfExpression         NodeType = "IfExpression"
	NodeSwitchCase           NodeType = "SwitchCase"
	NodeSwitchExpression     NodeType = "SwitchExpression"
	NodeObjectProperty       NodeType = "ObjectProperty"
	NodeObjectLiteral        NodeType = "ObjectLiteral"
	NodeArrayLiteral         NodeType = "ArrayLiteral"
	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeArrowFunction        NodeType = "ArrowFunction"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeTypeOfExpression     NodeType = "TypeOfExpression"
	NodeReturnExpression     NodeType = "ReturnExpression"
	NodeThrowExpression      NodeType = "ThrowExpression"
	NodeAssignExpression     NodeType = "AssignExpression"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Expression is the interface every evaluable node satisfies. The evaluator
// treats the whole tree as expressions; there is no statement distinction.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int32 `json:"value"`
}

func NewIntegerLiteral(value int32) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

type UndefinedLiteral struct {
	nodeImpl
	expressionMarker
}

func NewUndefinedLiteral() *UndefinedLiteral {
	return &UndefinedLiteral{nodeImpl: newNodeImpl(NodeUndefinedLiteral)}
}

// RegexLiteral is parsed but not executable; evaluating one yields undefined.
type RegexLiteral struct {
	nodeImpl
	expressionMarker

	Pattern string `json:"pattern"`
	Flags   string `json:"flags,omitempty"`
}

func NewRegexLiteral(pattern, flags string) *RegexLiteral {
	return &RegexLiteral{nodeImpl: newNodeImpl(NodeRegexLiteral), Pattern: pattern, Flags: flags}
}

// Block

type Block struct {
	nodeImpl
	expressionMarker

	Body []Expression `json:"body"`
}

func NewBlock(body []Expression) *Block {
	if body == nil {
		body = []Expression{}
	}
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

// Member access

type MemberAccess struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Field  string     `json:"field"`
}

func NewMemberAccess(object Expression, field string) *MemberAccess {
	return &MemberAccess{nodeImpl: newNodeImpl(NodeMemberAccess), Object: object, Field: field}
}

type ComputedMemberAccess struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Field  Expression `json:"field"`
}

func NewComputedMemberAccess(object, field Expression) *ComputedMemberAccess {
	return &ComputedMemberAccess{nodeImpl: newNodeImpl(NodeComputedMemberAccess), Object: object, Field: field}
}

// Calls and construction

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	if arguments == nil {
		arguments = []Expression{}
	}
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments}
}

type ConstructExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewConstructExpression(callee Expression, arguments []Expression) *ConstructExpression {
	if arguments == nil {
		arguments = []Expression{}
	}
	return &ConstructExpression{nodeImpl: newNodeImpl(NodeConstructExpression), Callee: callee, Arguments: arguments}
}

// Control flow

type WhileLoop struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Body      Expression `json:"body"`
}

func NewWhileLoop(condition, body Expression) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition  Expression `json:"condition"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate,omitempty"` // nil when no else branch
}

func NewIfExpression(condition, consequent, alternate Expression) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Consequent: consequent, Alternate: alternate}
}

type SwitchCase struct {
	nodeImpl

	Test Expression   `json:"test"`
	Body []Expression `json:"body"`
}

func NewSwitchCase(test Expression, body []Expression) *SwitchCase {
	if body == nil {
		body = []Expression{}
	}
	return &SwitchCase{nodeImpl: newNodeImpl(NodeSwitchCase), Test: test, Body: body}
}

type SwitchExpression struct {
	nodeImpl
	expressionMarker

	Discriminant Expression    `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
	Default      []Expression  `json:"default,omitempty"` // nil when no default block
}

func NewSwitchExpression(discriminant Expression, cases []*SwitchCase, defaultBody []Expression) *SwitchExpression {
	if cases == nil {
		cases = []*SwitchCase{}
	}
	return &SwitchExpression{nodeImpl: newNodeImpl(NodeSwitchExpression), Discriminant: discriminant, Cases: cases, Default: defaultBody}
}

// Object and array literals

type ObjectProperty struct {
	nodeImpl

	Key   string     `json:"key"`
	Value Expression `json:"value"`
}

func NewObjectProperty(key string, value Expression) *ObjectProperty {
	return &ObjectProperty{nodeImpl: newNodeImpl(NodeObjectProperty), Key: key, Value: value}
}

type ObjectLiteral struct {
	nodeImpl
	expressionMarker

	Properties []*ObjectProperty `json:"properties"`
}

func NewObjectLiteral(properties []*ObjectProperty) *ObjectLiteral {
	if properties == nil {
		properties = []*ObjectProperty{}
	}
	return &ObjectLiteral{nodeImpl: newNodeImpl(NodeObjectLiteral), Properties: properties}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	if elements == nil {
		elements = []Expression{}
	}
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

// Functions

type FunctionDeclaration struct {
	nodeImpl
	expressionMarker

	Name   *Identifier `json:"name,omitempty"` // nil for anonymous function expressions
	Params []string    `json:"params"`
	Body   Expression  `json:"body"`
}

func NewFunctionDeclaration(name *Identifier, params []string, body Expression) *FunctionDeclaration {
	if params == nil {
		params = []string{}
	}
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

type ArrowFunction struct {
	nodeImpl
	expressionMarker

	Params []string   `json:"params"`
	Body   Expression `json:"body"`
}

func NewArrowFunction(params []string, body Expression) *ArrowFunction {
	if params == nil {
		params = []string{}
	}
	return &ArrowFunction{nodeImpl: newNodeImpl(NodeArrowFunction), Params: params, Body: body}
}

// Operators

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type TypeOfExpression struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"operand"`
}

func NewTypeOfExpression(operand Expression) *TypeOfExpression {
	return &TypeOfExpression{nodeImpl: newNodeImpl(NodeTypeOfExpression), Operand: operand}
}

// Return, throw, assignment

type ReturnExpression struct {
	nodeImpl
	expressionMarker

	Argument Expression `json:"argument,omitempty"` // nil for bare return
}

func NewReturnExpression(argument Expression) *ReturnExpression {
	return &ReturnExpression{nodeImpl: newNodeImpl(NodeReturnExpression), Argument: argument}
}

type ThrowExpression struct {
	nodeImpl
	expressionMarker

	Argument Expression `json:"argument"`
}

func NewThrowExpression(argument Expression) *ThrowExpression {
	return &ThrowExpression{nodeImpl: newNodeImpl(NodeThrowExpression), Argument: argument}
}

type AssignExpression struct {
	nodeImpl
	expressionMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssignExpression(target, value Expression) *AssignExpression {
	return &AssignExpression{nodeImpl: newNodeImpl(NodeAssignExpression), Target: target, Value: value}
}

// Variable declarations

type DeclarationKind string

const (
	DeclarationVar   DeclarationKind = "var"
	DeclarationLet   DeclarationKind = "let"
	DeclarationConst DeclarationKind = "const"
)

type Declarator struct {
	Name string     `json:"name"`
	Init Expression `json:"init,omitempty"` // nil initializers default to null at runtime
}

func NewDeclarator(name string, init Expression) *Declarator {
	return &Declarator{Name: name, Init: init}
}

type VariableDeclaration struct {
	nodeImpl
	expressionMarker

	Kind        DeclarationKind `json:"kind"`
	Declarators []*Declarator   `json:"declarators"`
}

func NewVariableDeclaration(kind DeclarationKind, declarators []*Declarator) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Kind: kind, Declarators: declarators}
}
