// Package dump writes token streams and syntax trees as YAML.
//
// Output is built as yaml.Node trees rather than by marshaling structs, so
// keys keep a fixed order: every tree node starts with its kind, followed by
// its fields in declaration order. Optional fields that are absent are left
// out.
package dump

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hassan/exx/internal/lexer"
	"github.com/hassan/exx/internal/parser/ast"
)

// Tokens writes one YAML sequence entry per token. source is used to show
// the raw text each token covers next to its decoded lexeme.
func Tokens(w io.Writer, source string, tokens []lexer.Token) error {
	return encode(w, TokensNode(source, tokens))
}

// Program writes the statements as a YAML sequence.
func Program(w io.Writer, stmts []ast.Stmt) error {
	return encode(w, ProgramNode(stmts))
}

// TokensNode builds the YAML tree Tokens writes.
func TokensNode(source string, tokens []lexer.Token) *yaml.Node {
	seq := sequence()
	for _, tok := range tokens {
		m := mapping(
			"type", str(tok.Type.String()),
			"lexeme", str(tok.Lexeme),
		)
		if raw := tok.Span.Slice(source); raw != tok.Lexeme {
			add(m, "source", str(raw))
		}
		add(m, "span", str(tok.Span.String()))

		if tok.HasErrors() {
			errs := sequence()
			for _, d := range tok.Errors {
				errs.Content = append(errs.Content, mapping(
					"code", str(d.Kind.Code()),
					"message", str(d.Kind.Message()),
					"span", str(d.Span.String()),
				))
			}
			add(m, "errors", errs)
		}
		seq.Content = append(seq.Content, m)
	}
	return seq
}

// ProgramNode builds the YAML tree Program writes.
func ProgramNode(stmts []ast.Stmt) *yaml.Node {
	return stmtList(stmts)
}

func encode(w io.Writer, node *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func stmtList(stmts []ast.Stmt) *yaml.Node {
	seq := sequence()
	for _, s := range stmts {
		seq.Content = append(seq.Content, stmtNode(s))
	}
	return seq
}

func exprList(exprs []ast.Expr) *yaml.Node {
	seq := sequence()
	for _, e := range exprs {
		seq.Content = append(seq.Content, exprNode(e))
	}
	return seq
}

func paramList(params []ast.Parameter) *yaml.Node {
	seq := sequence()
	for _, p := range params {
		m := mapping("name", str(p.Name))
		addType(m, "type", p.Type)
		seq.Content = append(seq.Content, m)
	}
	return seq
}

func stmtNode(s ast.Stmt) *yaml.Node {
	switch s := s.(type) {
	case *ast.VariableDecl:
		m := mapping(
			"kind", str("VariableDecl"),
			"mutable", boolean(s.Mutable),
			"name", str(s.Name),
		)
		addType(m, "type", s.Type)
		addExpr(m, "initializer", s.Initializer)
		return m

	case *ast.FunctionDecl:
		m := mapping(
			"kind", str("FunctionDecl"),
			"name", str(s.Name),
			"params", paramList(s.Params),
		)
		addType(m, "return_type", s.ReturnType)
		add(m, "body", stmtList(s.Body))
		return m

	case *ast.ClassDecl:
		fields := sequence()
		for _, f := range s.Fields {
			fields.Content = append(fields.Content, stmtNode(f))
		}
		methods := sequence()
		for _, fn := range s.Methods {
			methods.Content = append(methods.Content, stmtNode(fn))
		}
		return mapping(
			"kind", str("ClassDecl"),
			"name", str(s.Name),
			"fields", fields,
			"methods", methods,
		)

	case *ast.ModuleDecl:
		return mapping(
			"kind", str("ModuleDecl"),
			"name", str(s.Name),
			"declarations", stmtList(s.Declarations),
		)

	case *ast.ImportStmt:
		return mapping("kind", str("Import"), "module", str(s.Module))

	case *ast.ReturnStmt:
		m := mapping("kind", str("Return"))
		addExpr(m, "value", s.Value)
		return m

	case *ast.ExpressionStmt:
		return mapping("kind", str("Expression"), "expr", exprNode(s.Expr))

	default:
		panic(fmt.Sprintf("dump: unexpected statement %T", s))
	}
}

func exprNode(e ast.Expr) *yaml.Node {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return mapping(
			"kind", str("Binary"),
			"op", str(e.Op.String()),
			"left", exprNode(e.Left),
			"right", exprNode(e.Right),
		)

	case *ast.UnaryExpr:
		return mapping(
			"kind", str("Unary"),
			"op", str(e.Op.String()),
			"operand", exprNode(e.Operand),
		)

	case *ast.LiteralExpr:
		return mapping("kind", str("Literal"), "value", literal(e.Value))

	case *ast.IdentifierExpr:
		return mapping("kind", str("Identifier"), "name", str(e.Name))

	case *ast.GroupingExpr:
		return mapping("kind", str("Grouping"), "inner", exprNode(e.Inner))

	case *ast.BlockExpr:
		return mapping("kind", str("Block"), "body", stmtList(e.Body))

	case *ast.PropertyAccessExpr:
		return mapping(
			"kind", str("PropertyAccess"),
			"object", exprNode(e.Object),
			"name", str(e.Name),
		)

	case *ast.CallExpr:
		return mapping(
			"kind", str("Call"),
			"callee", exprNode(e.Callee),
			"args", exprList(e.Args),
		)

	case *ast.LambdaExpr:
		return mapping(
			"kind", str("Lambda"),
			"params", paramList(e.Params),
			"body", exprNode(e.Body),
		)

	case *ast.StructLiteralExpr:
		fields := sequence()
		for _, f := range e.Fields {
			fields.Content = append(fields.Content, mapping(
				"name", str(f.Name),
				"value", exprNode(f.Value),
			))
		}
		return mapping(
			"kind", str("StructLiteral"),
			"name", str(e.Name),
			"fields", fields,
		)

	default:
		panic(fmt.Sprintf("dump: unexpected expression %T", e))
	}
}

func literal(lit ast.Literal) *yaml.Node {
	switch v := lit.(type) {
	case ast.NumberLiteral:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
	case ast.StringLiteral:
		return str(string(v))
	case ast.BooleanLiteral:
		return boolean(bool(v))
	default:
		panic(fmt.Sprintf("dump: unexpected literal %T", lit))
	}
}

// YAML node helpers

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// mapping builds a mapping node from alternating key strings and value
// nodes.
func mapping(pairs ...any) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		add(m, pairs[i].(string), pairs[i+1].(*yaml.Node))
	}
	return m
}

func add(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}

func addType(m *yaml.Node, key string, t ast.Type) {
	if t != nil {
		add(m, key, str(t.String()))
	}
}

func addExpr(m *yaml.Node, key string, e ast.Expr) {
	if e != nil {
		add(m, key, exprNode(e))
	}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}
