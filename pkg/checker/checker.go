// Package checker implements a static analysis pass over parsed scripts.
// It never rejects a program; it reports Diagnostics for constructs that
// are almost certainly mistakes (assigning to a const, duplicate names,
// statements that can never run) so the driver can surface them as
// warnings before evaluation.
package checker

import (
	"fmt"

	"garter/interpreter-go/pkg/ast"
)

// Diagnostic describes one suspicious construct found in a script.
type Diagnostic struct {
	Message string
	Node    ast.Node
}

// Checker walks a program and collects diagnostics. A Checker is not safe
// for concurrent use; create one per program or guard it externally.
type Checker struct {
	diagnostics []Diagnostic
	scopes      []map[string]ast.DeclarationKind
}

func New() *Checker {
	return &Checker{}
}

// Check analyzes the program and returns its diagnostics in source order.
// State from previous runs is discarded.
func (c *Checker) Check(program *ast.Block) []Diagnostic {
	c.diagnostics = nil
	c.scopes = []map[string]ast.DeclarationKind{make(map[string]ast.DeclarationKind)}
	c.checkBody(program.Body)
	return c.diagnostics
}

func (c *Checker) report(node ast.Node, format string, args ...any) {
	c.diagnostics = append(c.diagnostics, Diagnostic{Message: fmt.Sprintf(format, args...), Node: node})
}

// Scope handling mirrors the evaluator: only function bodies introduce a
// frame, blocks reuse the enclosing one, and plain assignment declares a
// binding when none is visible.

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, make(map[string]ast.DeclarationKind))
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) currentScope() map[string]ast.DeclarationKind {
	return c.scopes[len(c.scopes)-1]
}

// lookup finds the innermost visible declaration of name.
func (c *Checker) lookup(name string) (ast.DeclarationKind, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if kind, ok := c.scopes[i][name]; ok {
			return kind, true
		}
	}
	return "", false
}

func (c *Checker) declare(node ast.Node, name string, kind ast.DeclarationKind) {
	scope := c.currentScope()
	if existing, ok := scope[name]; ok {
		if existing == ast.DeclarationConst || kind == ast.DeclarationConst {
			c.report(node, "%q redeclared in the same scope", name)
		}
	}
	scope[name] = kind
}

func (c *Checker) checkBody(body []ast.Expression) {
	for i, expr := range body {
		c.checkExpression(expr)
		if i < len(body)-1 && terminates(expr) {
			c.report(body[i+1], "unreachable code")
			break
		}
	}
}

// terminates reports whether control never falls past expr to the next
// statement in its block. Return is modeled as terminating even though the
// evaluator yields its value in place, because code written after one is
// almost always a leftover.
func terminates(expr ast.Expression) bool {
	switch node := expr.(type) {
	case *ast.ReturnExpression, *ast.ThrowExpression:
		return true
	case *ast.Block:
		for _, inner := range node.Body {
			if terminates(inner) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (c *Checker) checkExpression(expr ast.Expression) {
	switch node := expr.(type) {
	case nil:
		return
	case *ast.Identifier, *ast.NumberLiteral, *ast.IntegerLiteral, *ast.StringLiteral,
		*ast.BooleanLiteral, *ast.NullLiteral, *ast.UndefinedLiteral, *ast.RegexLiteral:
		return
	case *ast.Block:
		c.checkBody(node.Body)
	case *ast.VariableDeclaration:
		c.checkVariableDeclaration(node)
	case *ast.AssignExpression:
		c.checkAssignment(node)
	case *ast.MemberAccess:
		c.checkExpression(node.Object)
	case *ast.ComputedMemberAccess:
		c.checkExpression(node.Object)
		c.checkExpression(node.Field)
	case *ast.CallExpression:
		c.checkExpression(node.Callee)
		for _, arg := range node.Arguments {
			c.checkExpression(arg)
		}
	case *ast.ConstructExpression:
		c.checkExpression(node.Callee)
		for _, arg := range node.Arguments {
			c.checkExpression(arg)
		}
	case *ast.WhileLoop:
		c.checkExpression(node.Condition)
		c.checkExpression(node.Body)
	case *ast.IfExpression:
		c.checkExpression(node.Condition)
		c.checkExpression(node.Consequent)
		if node.Alternate != nil {
			c.checkExpression(node.Alternate)
		}
	case *ast.SwitchExpression:
		c.checkSwitch(node)
	case *ast.ObjectLiteral:
		c.checkObjectLiteral(node)
	case *ast.ArrayLiteral:
		for _, element := range node.Elements {
			c.checkExpression(element)
		}
	case *ast.FunctionDeclaration:
		if node.Name != nil {
			c.declare(node, node.Name.Name, ast.DeclarationVar)
		}
		c.checkFunction(node, node.Params, node.Body, node.Name)
	case *ast.ArrowFunction:
		c.checkFunction(node, node.Params, node.Body, nil)
	case *ast.BinaryExpression:
		c.checkExpression(node.Left)
		c.checkExpression(node.Right)
	case *ast.UnaryExpression:
		c.checkExpression(node.Operand)
	case *ast.TypeOfExpression:
		c.checkExpression(node.Operand)
	case *ast.ReturnExpression:
		if node.Argument != nil {
			c.checkExpression(node.Argument)
		}
	case *ast.ThrowExpression:
		c.checkExpression(node.Argument)
	default:
		// Unknown nodes are the parser's problem, not the checker's.
	}
}

func (c *Checker) checkVariableDeclaration(decl *ast.VariableDeclaration) {
	seen := make(map[string]bool, len(decl.Declarators))
	for _, declarator := range decl.Declarators {
		if seen[declarator.Name] {
			c.report(decl, "%q declared twice in one declaration", declarator.Name)
		}
		seen[declarator.Name] = true
		if declarator.Init != nil {
			c.checkExpression(declarator.Init)
		}
		c.declare(decl, declarator.Name, decl.Kind)
	}
}

func (c *Checker) checkAssignment(assign *ast.AssignExpression) {
	c.checkExpression(assign.Value)
	switch target := assign.Target.(type) {
	case *ast.Identifier:
		kind, ok := c.lookup(target.Name)
		if ok && kind == ast.DeclarationConst {
			c.report(assign, "assignment to constant %q", target.Name)
			return
		}
		if !ok {
			c.currentScope()[target.Name] = ast.DeclarationVar
		}
	default:
		c.checkExpression(assign.Target)
	}
}

func (c *Checker) checkFunction(node ast.Node, params []string, body ast.Expression, name *ast.Identifier) {
	seen := make(map[string]bool, len(params))
	for _, param := range params {
		if seen[param] {
			c.report(node, "duplicate parameter %q", param)
		}
		seen[param] = true
	}
	c.pushScope()
	defer c.popScope()
	if name != nil {
		c.currentScope()[name.Name] = ast.DeclarationVar
	}
	for _, param := range params {
		c.currentScope()[param] = ast.DeclarationVar
	}
	c.checkExpression(body)
}

func (c *Checker) checkSwitch(node *ast.SwitchExpression) {
	c.checkExpression(node.Discriminant)
	seen := make(map[string]bool, len(node.Cases))
	for _, clause := range node.Cases {
		if key, ok := literalKey(clause.Test); ok {
			if seen[key] {
				c.report(clause, "duplicate case %s can never match", key)
			}
			seen[key] = true
		}
		c.checkExpression(clause.Test)
		c.checkBody(clause.Body)
	}
	if node.Default != nil {
		c.checkBody(node.Default)
	}
}

// literalKey produces a comparison key for case tests that are plain
// literals. Only those can be proven duplicates statically.
func literalKey(expr ast.Expression) (string, bool) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return fmt.Sprintf("%d", node.Value), true
	case *ast.NumberLiteral:
		return fmt.Sprintf("%g", node.Value), true
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", node.Value), true
	case *ast.BooleanLiteral:
		return fmt.Sprintf("%t", node.Value), true
	case *ast.NullLiteral:
		return "null", true
	default:
		return "", false
	}
}

func (c *Checker) checkObjectLiteral(node *ast.ObjectLiteral) {
	seen := make(map[string]bool, len(node.Properties))
	for _, property := range node.Properties {
		if seen[property.Key] {
			c.report(node, "duplicate object key %q", property.Key)
		}
		seen[property.Key] = true
		c.checkExpression(property.Value)
	}
}
