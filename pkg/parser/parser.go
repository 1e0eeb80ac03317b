package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"garter/interpreter-go/pkg/ast"
)

// ScriptParser wraps a tree-sitter parser configured for JavaScript scripts.
type ScriptParser struct {
	parser *sitter.Parser
}

// NewScriptParser constructs a parser with the JavaScript grammar loaded.
func NewScriptParser() (*ScriptParser, error) {
	lang := sitter.NewLanguage(tree_sitter_javascript.Language())
	if lang == nil {
		return nil, fmt.Errorf("parser: javascript language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &ScriptParser{parser: p}, nil
}

// Close releases parser resources.
func (p *ScriptParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// ParseScript parses JavaScript source into a program block.
func (p *ScriptParser) ParseScript(source []byte) (*ast.Block, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "program" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, fmt.Errorf("parser: syntax errors present")
	}

	body := make([]ast.Expression, 0)
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		if isIgnorableNode(node) {
			continue
		}
		stmt, err := parseStatement(node, source)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}

	return ast.NewBlock(body), nil
}

func parseStatement(node *sitter.Node, source []byte) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: nil statement")
	}

	switch node.Kind() {
	case "expression_statement":
		inner := firstNamedChild(node)
		if inner == nil {
			return nil, fmt.Errorf("parser: empty expression statement")
		}
		return parseExpression(inner, source)
	case "variable_declaration":
		return parseVariableDeclaration(node, source, ast.DeclarationVar)
	case "lexical_declaration":
		return parseLexicalDeclaration(node, source)
	case "function_declaration":
		return parseFunctionDeclaration(node, source)
	case "if_statement":
		return parseIfStatement(node, source)
	case "while_statement":
		return parseWhileStatement(node, source)
	case "switch_statement":
		return parseSwitchStatement(node, source)
	case "return_statement":
		if arg := firstNamedChild(node); arg != nil {
			value, err := parseExpression(arg, source)
			if err != nil {
				return nil, err
			}
			return ast.NewReturnExpression(value), nil
		}
		return ast.NewReturnExpression(nil), nil
	case "throw_statement":
		arg := firstNamedChild(node)
		if arg == nil {
			return nil, fmt.Errorf("parser: throw missing argument")
		}
		value, err := parseExpression(arg, source)
		if err != nil {
			return nil, err
		}
		return ast.NewThrowExpression(value), nil
	case "statement_block":
		return parseStatementBlock(node, source)
	case "empty_statement":
		return nil, nil
	default:
		return nil, fmt.Errorf("parser: unsupported statement %q", node.Kind())
	}
}

func parseStatementBlock(node *sitter.Node, source []byte) (*ast.Block, error) {
	body := make([]ast.Expression, 0)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		stmt, err := parseStatement(child, source)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	return ast.NewBlock(body), nil
}

func parseVariableDeclaration(node *sitter.Node, source []byte, kind ast.DeclarationKind) (ast.Expression, error) {
	declarators := make([]*ast.Declarator, 0)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		if child.Kind() != "variable_declarator" {
			return nil, fmt.Errorf("parser: unexpected declaration child %q", child.Kind())
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil || nameNode.Kind() != "identifier" {
			return nil, fmt.Errorf("parser: declaration requires an identifier name")
		}
		var init ast.Expression
		if valueNode := child.ChildByFieldName("value"); valueNode != nil {
			parsed, err := parseExpression(valueNode, source)
			if err != nil {
				return nil, err
			}
			init = parsed
		}
		declarators = append(declarators, ast.NewDeclarator(sliceContent(nameNode, source), init))
	}
	if len(declarators) == 0 {
		return nil, fmt.Errorf("parser: declaration with no declarators")
	}
	return ast.NewVariableDeclaration(kind, declarators), nil
}

func parseLexicalDeclaration(node *sitter.Node, source []byte) (ast.Expression, error) {
	kind := ast.DeclarationLet
	if keyword := node.ChildByFieldName("kind"); keyword != nil && sliceContent(keyword, source) == "const" {
		kind = ast.DeclarationConst
	} else if keyword == nil && node.ChildCount() > 0 && sliceContent(node.Child(0), source) == "const" {
		kind = ast.DeclarationConst
	}
	return parseVariableDeclaration(node, source, kind)
}

func parseFunctionDeclaration(node *sitter.Node, source []byte) (ast.Expression, error) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, fmt.Errorf("parser: function declaration missing name")
	}
	params, err := parseFormalParameters(node.ChildByFieldName("parameters"), source)
	if err != nil {
		return nil, err
	}
	body, err := parseStatementBlock(node.ChildByFieldName("body"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration(ast.ID(sliceContent(nameNode, source)), params, body), nil
}

func parseFormalParameters(node *sitter.Node, source []byte) ([]string, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing parameter list")
	}
	params := make([]string, 0)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		if child.Kind() != "identifier" {
			return nil, fmt.Errorf("parser: unsupported parameter %q", child.Kind())
		}
		params = append(params, sliceContent(child, source))
	}
	return params, nil
}

func parseIfStatement(node *sitter.Node, source []byte) (ast.Expression, error) {
	condition, err := parseParenthesized(node.ChildByFieldName("condition"), source)
	if err != nil {
		return nil, err
	}
	consequent, err := parseStatement(node.ChildByFieldName("consequence"), source)
	if err != nil {
		return nil, err
	}
	alternativeNode := node.ChildByFieldName("alternative")
	if alternativeNode == nil {
		return ast.NewIfExpression(condition, consequent, nil), nil
	}
	// else_clause wraps the alternative statement, including "else if" chains.
	inner := firstNamedChild(alternativeNode)
	if inner == nil {
		return nil, fmt.Errorf("parser: empty else clause")
	}
	alternate, err := parseStatement(inner, source)
	if err != nil {
		return nil, err
	}
	return ast.NewIfExpression(condition, consequent, alternate), nil
}

func parseWhileStatement(node *sitter.Node, source []byte) (ast.Expression, error) {
	condition, err := parseParenthesized(node.ChildByFieldName("condition"), source)
	if err != nil {
		return nil, err
	}
	body, err := parseStatement(node.ChildByFieldName("body"), source)
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(condition, body), nil
}

func parseSwitchStatement(node *sitter.Node, source []byte) (ast.Expression, error) {
	discriminant, err := parseParenthesized(node.ChildByFieldName("value"), source)
	if err != nil {
		return nil, err
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, fmt.Errorf("parser: switch missing body")
	}

	cases := make([]*ast.SwitchCase, 0)
	var defaultBody []ast.Expression
	for i := uint(0); i < bodyNode.NamedChildCount(); i++ {
		child := bodyNode.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		switch child.Kind() {
		case "switch_case":
			test, err := parseExpression(child.ChildByFieldName("value"), source)
			if err != nil {
				return nil, err
			}
			body, err := parseSwitchClauseBody(child, source)
			if err != nil {
				return nil, err
			}
			cases = append(cases, ast.NewSwitchCase(test, body))
		case "switch_default":
			body, err := parseSwitchClauseBody(child, source)
			if err != nil {
				return nil, err
			}
			defaultBody = body
		default:
			return nil, fmt.Errorf("parser: unexpected switch clause %q", child.Kind())
		}
	}
	return ast.NewSwitchExpression(discriminant, cases, defaultBody), nil
}

func parseSwitchClauseBody(node *sitter.Node, source []byte) ([]ast.Expression, error) {
	bodyNode := node.ChildByFieldName("body")
	statements := make([]ast.Expression, 0)
	appendFrom := func(n *sitter.Node) error {
		stmt, err := parseStatement(n, source)
		if err != nil {
			return err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
		return nil
	}
	if bodyNode != nil {
		for i := uint(0); i < bodyNode.NamedChildCount(); i++ {
			child := bodyNode.NamedChild(i)
			if isIgnorableNode(child) {
				continue
			}
			if err := appendFrom(child); err != nil {
				return nil, err
			}
		}
		return statements, nil
	}
	// The grammar attaches clause statements as trailing named children.
	valueNode := node.ChildByFieldName("value")
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) || sameNode(child, valueNode) {
			continue
		}
		// break terminates a clause without carrying semantics of its own.
		if child.Kind() == "break_statement" {
			continue
		}
		if err := appendFrom(child); err != nil {
			return nil, err
		}
	}
	return statements, nil
}
