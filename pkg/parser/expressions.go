package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"garter/interpreter-go/pkg/ast"
)

func parseExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: nil expression")
	}

	switch node.Kind() {
	case "identifier":
		return ast.ID(sliceContent(node, source)), nil
	case "number":
		return parseNumberLiteral(node, source)
	case "string":
		return parseStringLiteral(node, source)
	case "true":
		return ast.Bool(true), nil
	case "false":
		return ast.Bool(false), nil
	case "null":
		return ast.Null(), nil
	case "undefined":
		return ast.Undef(), nil
	case "regex":
		return parseRegexLiteral(node, source)
	case "this":
		return ast.ID("this"), nil
	case "object":
		return parseObjectLiteral(node, source)
	case "array":
		return parseArrayLiteral(node, source)
	case "parenthesized_expression":
		return parseParenthesized(node, source)
	case "binary_expression":
		return parseBinaryExpression(node, source)
	case "unary_expression":
		return parseUnaryExpression(node, source)
	case "ternary_expression":
		return parseTernaryExpression(node, source)
	case "assignment_expression":
		return parseAssignmentExpression(node, source)
	case "augmented_assignment_expression":
		return parseAugmentedAssignment(node, source)
	case "update_expression":
		return parseUpdateExpression(node, source)
	case "member_expression":
		return parseMemberExpression(node, source)
	case "subscript_expression":
		return parseSubscriptExpression(node, source)
	case "call_expression":
		return parseCallExpression(node, source)
	case "new_expression":
		return parseNewExpression(node, source)
	case "function_expression":
		return parseFunctionExpression(node, source)
	case "arrow_function":
		return parseArrowFunction(node, source)
	default:
		return nil, fmt.Errorf("parser: unsupported expression %q", node.Kind())
	}
}

func parseParenthesized(node *sitter.Node, source []byte) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing parenthesized expression")
	}
	if node.Kind() != "parenthesized_expression" {
		return parseExpression(node, source)
	}
	inner := firstNamedChild(node)
	if inner == nil {
		return nil, fmt.Errorf("parser: empty parentheses")
	}
	return parseExpression(inner, source)
}

func parseObjectLiteral(node *sitter.Node, source []byte) (ast.Expression, error) {
	properties := make([]*ast.ObjectProperty, 0)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		switch child.Kind() {
		case "pair":
			key, err := parsePropertyKey(child.ChildByFieldName("key"), source)
			if err != nil {
				return nil, err
			}
			value, err := parseExpression(child.ChildByFieldName("value"), source)
			if err != nil {
				return nil, err
			}
			properties = append(properties, ast.NewObjectProperty(key, value))
		case "shorthand_property_identifier":
			name := sliceContent(child, source)
			properties = append(properties, ast.NewObjectProperty(name, ast.ID(name)))
		default:
			return nil, fmt.Errorf("parser: unsupported object member %q", child.Kind())
		}
	}
	return ast.NewObjectLiteral(properties), nil
}

func parsePropertyKey(node *sitter.Node, source []byte) (string, error) {
	if node == nil {
		return "", fmt.Errorf("parser: object pair missing key")
	}
	switch node.Kind() {
	case "property_identifier", "number":
		return sliceContent(node, source), nil
	case "string":
		return decodeStringContent(node, source)
	default:
		return "", fmt.Errorf("parser: unsupported property key %q", node.Kind())
	}
}

func parseArrayLiteral(node *sitter.Node, source []byte) (ast.Expression, error) {
	elements := make([]ast.Expression, 0)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		el, err := parseExpression(child, source)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return ast.NewArrayLiteral(elements), nil
}

func parseBinaryExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	left, err := parseExpression(node.ChildByFieldName("left"), source)
	if err != nil {
		return nil, err
	}
	right, err := parseExpression(node.ChildByFieldName("right"), source)
	if err != nil {
		return nil, err
	}
	operator := sliceContent(node.ChildByFieldName("operator"), source)
	if operator == "" {
		return nil, fmt.Errorf("parser: binary expression missing operator")
	}
	return ast.NewBinaryExpression(operator, left, right), nil
}

func parseUnaryExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	operand, err := parseExpression(node.ChildByFieldName("argument"), source)
	if err != nil {
		return nil, err
	}
	operator := sliceContent(node.ChildByFieldName("operator"), source)
	if operator == "typeof" {
		return ast.NewTypeOfExpression(operand), nil
	}
	switch operator {
	case "-", "+", "!":
		return ast.NewUnaryExpression(operator, operand), nil
	default:
		return nil, fmt.Errorf("parser: unsupported unary operator %q", operator)
	}
}

func parseTernaryExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	condition, err := parseExpression(node.ChildByFieldName("condition"), source)
	if err != nil {
		return nil, err
	}
	consequent, err := parseExpression(node.ChildByFieldName("consequence"), source)
	if err != nil {
		return nil, err
	}
	alternate, err := parseExpression(node.ChildByFieldName("alternative"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewIfExpression(condition, consequent, alternate), nil
}

func parseAssignmentExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	target, err := parseAssignTarget(node.ChildByFieldName("left"), source)
	if err != nil {
		return nil, err
	}
	value, err := parseExpression(node.ChildByFieldName("right"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewAssignExpression(target, value), nil
}

// parseAugmentedAssignment lowers "a += b" into "a = a + b".
func parseAugmentedAssignment(node *sitter.Node, source []byte) (ast.Expression, error) {
	target, err := parseAssignTarget(node.ChildByFieldName("left"), source)
	if err != nil {
		return nil, err
	}
	value, err := parseExpression(node.ChildByFieldName("right"), source)
	if err != nil {
		return nil, err
	}
	operator := sliceContent(node.ChildByFieldName("operator"), source)
	if len(operator) < 2 || operator[len(operator)-1] != '=' {
		return nil, fmt.Errorf("parser: unsupported augmented assignment %q", operator)
	}
	read, err := parseAssignTarget(node.ChildByFieldName("left"), source)
	if err != nil {
		return nil, err
	}
	combined := ast.NewBinaryExpression(operator[:len(operator)-1], read, value)
	return ast.NewAssignExpression(target, combined), nil
}

// parseUpdateExpression lowers "i++" into "i = i + 1".
func parseUpdateExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	target, err := parseAssignTarget(node.ChildByFieldName("argument"), source)
	if err != nil {
		return nil, err
	}
	read, err := parseAssignTarget(node.ChildByFieldName("argument"), source)
	if err != nil {
		return nil, err
	}
	operator := sliceContent(node.ChildByFieldName("operator"), source)
	var binary string
	switch operator {
	case "++":
		binary = "+"
	case "--":
		binary = "-"
	default:
		return nil, fmt.Errorf("parser: unsupported update operator %q", operator)
	}
	combined := ast.NewBinaryExpression(binary, read, ast.Int(1))
	return ast.NewAssignExpression(target, combined), nil
}

func parseAssignTarget(node *sitter.Node, source []byte) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing assignment target")
	}
	switch node.Kind() {
	case "identifier", "member_expression", "subscript_expression":
		return parseExpression(node, source)
	default:
		return nil, fmt.Errorf("parser: unsupported assignment target %q", node.Kind())
	}
}

func parseMemberExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	object, err := parseExpression(node.ChildByFieldName("object"), source)
	if err != nil {
		return nil, err
	}
	property := node.ChildByFieldName("property")
	if property == nil || property.Kind() != "property_identifier" {
		return nil, fmt.Errorf("parser: unsupported member property")
	}
	return ast.NewMemberAccess(object, sliceContent(property, source)), nil
}

func parseSubscriptExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	object, err := parseExpression(node.ChildByFieldName("object"), source)
	if err != nil {
		return nil, err
	}
	index, err := parseExpression(node.ChildByFieldName("index"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewComputedMemberAccess(object, index), nil
}

func parseCallExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	callee, err := parseExpression(node.ChildByFieldName("function"), source)
	if err != nil {
		return nil, err
	}
	args, err := parseArguments(node.ChildByFieldName("arguments"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewCallExpression(callee, args), nil
}

func parseNewExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	callee, err := parseExpression(node.ChildByFieldName("constructor"), source)
	if err != nil {
		return nil, err
	}
	args := make([]ast.Expression, 0)
	if argsNode := node.ChildByFieldName("arguments"); argsNode != nil {
		parsed, err := parseArguments(argsNode, source)
		if err != nil {
			return nil, err
		}
		args = parsed
	}
	return ast.NewConstructExpression(callee, args), nil
}

func parseArguments(node *sitter.Node, source []byte) ([]ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing argument list")
	}
	args := make([]ast.Expression, 0)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		arg, err := parseExpression(child, source)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func parseFunctionExpression(node *sitter.Node, source []byte) (ast.Expression, error) {
	params, err := parseFormalParameters(node.ChildByFieldName("parameters"), source)
	if err != nil {
		return nil, err
	}
	body, err := parseStatementBlock(node.ChildByFieldName("body"), source)
	if err != nil {
		return nil, err
	}
	var name *ast.Identifier
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = ast.ID(sliceContent(nameNode, source))
	}
	return ast.NewFunctionDeclaration(name, params, body), nil
}

func parseArrowFunction(node *sitter.Node, source []byte) (ast.Expression, error) {
	var params []string
	if single := node.ChildByFieldName("parameter"); single != nil {
		if single.Kind() != "identifier" {
			return nil, fmt.Errorf("parser: unsupported arrow parameter %q", single.Kind())
		}
		params = []string{sliceContent(single, source)}
	} else {
		parsed, err := parseFormalParameters(node.ChildByFieldName("parameters"), source)
		if err != nil {
			return nil, err
		}
		params = parsed
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: arrow function missing body")
	}
	if bodyNode.Kind() == "statement_block" {
		body, err := parseStatementBlock(bodyNode, source)
		if err != nil {
			return nil, err
		}
		return ast.NewArrowFunction(params, body), nil
	}
	// Expression-bodied arrows return their expression result.
	value, err := parseExpression(bodyNode, source)
	if err != nil {
		return nil, err
	}
	return ast.NewArrowFunction(params, ast.NewBlock([]ast.Expression{value})), nil
}
