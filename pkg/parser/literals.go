package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"garter/interpreter-go/pkg/ast"
)

func parseNumberLiteral(node *sitter.Node, source []byte) (ast.Expression, error) {
	content := sliceContent(node, source)
	if content == "" {
		return nil, fmt.Errorf("parser: empty number literal")
	}

	sanitized := strings.ReplaceAll(content, "_", "")
	lower := strings.ToLower(sanitized)

	var (
		intBase int
		digits  string
	)
	switch {
	case strings.HasPrefix(lower, "0b"):
		intBase, digits = 2, strings.TrimPrefix(lower, "0b")
	case strings.HasPrefix(lower, "0o"):
		intBase, digits = 8, strings.TrimPrefix(lower, "0o")
	case strings.HasPrefix(lower, "0x"):
		intBase, digits = 16, strings.TrimPrefix(lower, "0x")
	}
	if intBase != 0 {
		value, err := strconv.ParseInt(digits, intBase, 64)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid number literal %q", content)
		}
		return integerOrNumber(float64(value)), nil
	}

	if !strings.ContainsAny(lower, ".e") {
		if value, err := strconv.ParseInt(sanitized, 10, 64); err == nil {
			return integerOrNumber(float64(value)), nil
		}
	}

	value, err := strconv.ParseFloat(sanitized, 64)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid number literal %q", content)
	}
	return ast.Num(value), nil
}

// integerOrNumber keeps literals that fit the 32-bit integer kind as
// integers, matching the runtime's split numeric model.
func integerOrNumber(value float64) ast.Expression {
	if value == math.Trunc(value) && value >= math.MinInt32 && value <= math.MaxInt32 {
		return ast.Int(int32(value))
	}
	return ast.Num(value)
}

func parseStringLiteral(node *sitter.Node, source []byte) (ast.Expression, error) {
	content, err := decodeStringContent(node, source)
	if err != nil {
		return nil, err
	}
	return ast.Str(content), nil
}

// decodeStringContent assembles a string value from fragment and escape
// children, which handles both quote styles.
func decodeStringContent(node *sitter.Node, source []byte) (string, error) {
	if node == nil || node.Kind() != "string" {
		return "", fmt.Errorf("parser: expected string literal")
	}
	var b strings.Builder
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "string_fragment":
			b.WriteString(sliceContent(child, source))
		case "escape_sequence":
			decoded, err := decodeEscapeSequence(sliceContent(child, source))
			if err != nil {
				return "", err
			}
			b.WriteString(decoded)
		default:
			return "", fmt.Errorf("parser: unexpected string child %q", child.Kind())
		}
	}
	return b.String(), nil
}

func decodeEscapeSequence(seq string) (string, error) {
	if len(seq) < 2 || seq[0] != '\\' {
		return "", fmt.Errorf("parser: invalid escape sequence %q", seq)
	}
	switch seq[1] {
	case 'n':
		return "\n", nil
	case 't':
		return "\t", nil
	case 'r':
		return "\r", nil
	case 'b':
		return "\b", nil
	case 'f':
		return "\f", nil
	case 'v':
		return "\v", nil
	case '0':
		return "\x00", nil
	case 'x':
		if len(seq) != 4 {
			return "", fmt.Errorf("parser: invalid escape sequence %q", seq)
		}
		code, err := strconv.ParseUint(seq[2:], 16, 8)
		if err != nil {
			return "", fmt.Errorf("parser: invalid escape sequence %q", seq)
		}
		return string(rune(code)), nil
	case 'u':
		payload := seq[2:]
		if strings.HasPrefix(payload, "{") && strings.HasSuffix(payload, "}") {
			payload = payload[1 : len(payload)-1]
		}
		code, err := strconv.ParseUint(payload, 16, 32)
		if err != nil {
			return "", fmt.Errorf("parser: invalid escape sequence %q", seq)
		}
		return string(rune(code)), nil
	default:
		// Escaped quotes, backslashes, and line continuations pass through.
		return seq[1:], nil
	}
}

func parseRegexLiteral(node *sitter.Node, source []byte) (ast.Expression, error) {
	pattern := sliceContent(node.ChildByFieldName("pattern"), source)
	flags := sliceContent(node.ChildByFieldName("flags"), source)
	if pattern == "" {
		return nil, fmt.Errorf("parser: empty regex literal")
	}
	return ast.Regex(pattern, flags), nil
}
