package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hassan/exx/internal/lexer"
	"github.com/hassan/exx/internal/parser/ast"
)

// Small constructors keep the expected trees readable.

func ident(name string) *ast.IdentifierExpr { return &ast.IdentifierExpr{Name: name} }

func num(v float64) *ast.LiteralExpr { return &ast.LiteralExpr{Value: ast.NumberLiteral(v)} }

func str(s string) *ast.LiteralExpr { return &ast.LiteralExpr{Value: ast.StringLiteral(s)} }

func boolean(b bool) *ast.LiteralExpr { return &ast.LiteralExpr{Value: ast.BooleanLiteral(b)} }

func simple(name string) *ast.SimpleType { return &ast.SimpleType{Name: name} }

func binary(left ast.Expr, op ast.BinaryOp, right ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Left: left, Op: op, Right: right}
}

func call(callee ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Callee: callee, Args: args}
}

func access(object ast.Expr, name string) *ast.PropertyAccessExpr {
	return &ast.PropertyAccessExpr{Object: object, Name: name}
}

func mustParse(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	stmts, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", source, err)
	}
	return stmts
}

func mustParseExpr(t *testing.T, source string) ast.Expr {
	t.Helper()
	expr, err := ParseExpr(source)
	if err != nil {
		t.Fatalf("ParseExpr(%q) error = %v", source, err)
	}
	return expr
}

func assertTree(t *testing.T, want, got any) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_VariableDeclaration(t *testing.T) {
	got := mustParse(t, "let a: number = 23;")

	want := []ast.Stmt{
		&ast.VariableDecl{
			Mutable:     false,
			Name:        "a",
			Type:        simple("number"),
			Initializer: num(23),
		},
	}
	assertTree(t, want, got)
}

func TestParser_VariableForms(t *testing.T) {
	tests := []struct {
		source string
		want   *ast.VariableDecl
	}{
		{"var count = 0;", &ast.VariableDecl{Mutable: true, Name: "count", Initializer: num(0)}},
		{"let name: string;", &ast.VariableDecl{Name: "name", Type: simple("string")}},
		{"var x;", &ast.VariableDecl{Mutable: true, Name: "x"}},
		{`let s = "hi";`, &ast.VariableDecl{Name: "s", Initializer: str("hi")}},
		{"let ok = true;", &ast.VariableDecl{Name: "ok", Initializer: boolean(true)}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assertTree(t, []ast.Stmt{tt.want}, mustParse(t, tt.source))
		})
	}
}

func TestParser_LambdaVersusGrouping(t *testing.T) {
	got := mustParseExpr(t, "(f, x) -> f(x)")

	want := &ast.LambdaExpr{
		Params: []ast.Parameter{{Name: "f"}, {Name: "x"}},
		Body:   call(ident("f"), ident("x")),
	}
	assertTree(t, want, got)
}

func TestParser_Lambdas(t *testing.T) {
	tests := []struct {
		source string
		want   ast.Expr
	}{
		{
			source: "() -> 1",
			want:   &ast.LambdaExpr{Body: num(1)},
		},
		{
			source: "(x: number) -> x * 2",
			want: &ast.LambdaExpr{
				Params: []ast.Parameter{{Name: "x", Type: simple("number")}},
				Body:   binary(ident("x"), ast.OpMul, num(2)),
			},
		},
		{
			source: "(g: (number) -> number, x) -> g((x))",
			want: &ast.LambdaExpr{
				Params: []ast.Parameter{
					{Name: "g", Type: &ast.FunctionType{Params: []ast.Type{simple("number")}, Return: simple("number")}},
					{Name: "x"},
				},
				Body: call(ident("g"), &ast.GroupingExpr{Inner: ident("x")}),
			},
		},
		{
			source: "(x) -> (y) -> x + y",
			want: &ast.LambdaExpr{
				Params: []ast.Parameter{{Name: "x"}},
				Body: &ast.LambdaExpr{
					Params: []ast.Parameter{{Name: "y"}},
					Body:   binary(ident("x"), ast.OpAdd, ident("y")),
				},
			},
		},
		{
			source: "(x)",
			want:   &ast.GroupingExpr{Inner: ident("x")},
		},
		{
			source: "(f(x)) + 1",
			want:   binary(&ast.GroupingExpr{Inner: call(ident("f"), ident("x"))}, ast.OpAdd, num(1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assertTree(t, tt.want, mustParseExpr(t, tt.source))
		})
	}
}

func TestParser_Precedence(t *testing.T) {
	tests := []struct {
		source string
		want   ast.Expr
	}{
		{"1 + 2 * 3", binary(num(1), ast.OpAdd, binary(num(2), ast.OpMul, num(3)))},
		{"1 * 2 + 3", binary(binary(num(1), ast.OpMul, num(2)), ast.OpAdd, num(3))},
		{"a - b - c", binary(binary(ident("a"), ast.OpSub, ident("b")), ast.OpSub, ident("c"))},
		{"a / b % c", binary(binary(ident("a"), ast.OpDiv, ident("b")), ast.OpMod, ident("c"))},
		{"a || b && c", binary(ident("a"), ast.OpOr, binary(ident("b"), ast.OpAnd, ident("c")))},
		{"a && b || c", binary(binary(ident("a"), ast.OpAnd, ident("b")), ast.OpOr, ident("c"))},
		{"a == b < c", binary(ident("a"), ast.OpEqualEqual, binary(ident("b"), ast.OpLess, ident("c")))},
		{"a != b == c", binary(binary(ident("a"), ast.OpNotEqual, ident("b")), ast.OpEqualEqual, ident("c"))},
		{"a <= b + 1", binary(ident("a"), ast.OpLessEqual, binary(ident("b"), ast.OpAdd, num(1)))},
		{"a > b >= c", binary(binary(ident("a"), ast.OpGreater, ident("b")), ast.OpGreaterEqual, ident("c"))},
		{"(1 + 2) * 3", binary(&ast.GroupingExpr{Inner: binary(num(1), ast.OpAdd, num(2))}, ast.OpMul, num(3))},
		{
			"-a * b",
			binary(&ast.UnaryExpr{Op: ast.OpNegate, Operand: ident("a")}, ast.OpMul, ident("b")),
		},
		{
			"! -x",
			&ast.UnaryExpr{Op: ast.OpNot, Operand: &ast.UnaryExpr{Op: ast.OpNegate, Operand: ident("x")}},
		},
		{
			"- -x",
			&ast.UnaryExpr{Op: ast.OpNegate, Operand: &ast.UnaryExpr{Op: ast.OpNegate, Operand: ident("x")}},
		},
		{
			"!(-x)",
			&ast.UnaryExpr{Op: ast.OpNot, Operand: &ast.GroupingExpr{Inner: &ast.UnaryExpr{Op: ast.OpNegate, Operand: ident("x")}}},
		},
		{
			"-f(x)",
			&ast.UnaryExpr{Op: ast.OpNegate, Operand: call(ident("f"), ident("x"))},
		},
		{
			"!a == b",
			binary(&ast.UnaryExpr{Op: ast.OpNot, Operand: ident("a")}, ast.OpEqualEqual, ident("b")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assertTree(t, tt.want, mustParseExpr(t, tt.source))
		})
	}
}

func TestParser_PostfixChains(t *testing.T) {
	tests := []struct {
		source string
		want   ast.Expr
	}{
		{"f()", call(ident("f"))},
		{"f(1, 2)", call(ident("f"), num(1), num(2))},
		{"f(x)(y)", call(call(ident("f"), ident("x")), ident("y"))},
		{"a.b", access(ident("a"), "b")},
		{"a.b(c).d", access(call(access(ident("a"), "b"), ident("c")), "d")},
		{`"s".len()`, call(access(str("s"), "len"))},
		{"(a).b", access(&ast.GroupingExpr{Inner: ident("a")}, "b")},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assertTree(t, tt.want, mustParseExpr(t, tt.source))
		})
	}
}

func TestParser_StructLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   ast.Expr
	}{
		{"Point {}", &ast.StructLiteralExpr{Name: "Point"}},
		{
			"Point { x, y }",
			&ast.StructLiteralExpr{Name: "Point", Fields: []ast.FieldInit{
				{Name: "x", Value: ident("x")},
				{Name: "y", Value: ident("y")},
			}},
		},
		{
			"Point { x: 1 + 2, y }",
			&ast.StructLiteralExpr{Name: "Point", Fields: []ast.FieldInit{
				{Name: "x", Value: binary(num(1), ast.OpAdd, num(2))},
				{Name: "y", Value: ident("y")},
			}},
		},
		{
			"Point { x: 1, }.x",
			access(&ast.StructLiteralExpr{Name: "Point", Fields: []ast.FieldInit{
				{Name: "x", Value: num(1)},
			}}, "x"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assertTree(t, tt.want, mustParseExpr(t, tt.source))
		})
	}
}

func TestParser_BlockExpression(t *testing.T) {
	got := mustParseExpr(t, "{ let x = 1; x + 1; }")

	want := &ast.BlockExpr{Body: []ast.Stmt{
		&ast.VariableDecl{Name: "x", Initializer: num(1)},
		&ast.ExpressionStmt{Expr: binary(ident("x"), ast.OpAdd, num(1))},
	}}
	assertTree(t, want, got)
}

func TestParser_Declarations(t *testing.T) {
	source := `
import io;

module geometry {
    class Point {
        let x: number;
        var y: number = 0;

        fn norm() -> number {
            return x * x + y * y;
        }

        fn reset() {
            return;
        }
    }
}

fn apply(f: (number) -> number, v: number) -> number {
    return f(v);
}

io.print(apply((n) -> n * 2, 21));
`
	got := mustParse(t, source)

	want := []ast.Stmt{
		&ast.ImportStmt{Module: "io"},
		&ast.ModuleDecl{
			Name: "geometry",
			Declarations: []ast.Stmt{
				&ast.ClassDecl{
					Name: "Point",
					Fields: []*ast.VariableDecl{
						{Name: "x", Type: simple("number")},
						{Mutable: true, Name: "y", Type: simple("number"), Initializer: num(0)},
					},
					Methods: []*ast.FunctionDecl{
						{
							Name:       "norm",
							ReturnType: simple("number"),
							Body: []ast.Stmt{
								&ast.ReturnStmt{Value: binary(
									binary(ident("x"), ast.OpMul, ident("x")),
									ast.OpAdd,
									binary(ident("y"), ast.OpMul, ident("y")),
								)},
							},
						},
						{
							Name: "reset",
							Body: []ast.Stmt{&ast.ReturnStmt{}},
						},
					},
				},
			},
		},
		&ast.FunctionDecl{
			Name: "apply",
			Params: []ast.Parameter{
				{Name: "f", Type: &ast.FunctionType{Params: []ast.Type{simple("number")}, Return: simple("number")}},
				{Name: "v", Type: simple("number")},
			},
			ReturnType: simple("number"),
			Body: []ast.Stmt{
				&ast.ReturnStmt{Value: call(ident("f"), ident("v"))},
			},
		},
		&ast.ExpressionStmt{Expr: call(
			access(ident("io"), "print"),
			call(ident("apply"),
				&ast.LambdaExpr{
					Params: []ast.Parameter{{Name: "n"}},
					Body:   binary(ident("n"), ast.OpMul, num(2)),
				},
				num(21),
			),
		)},
	}
	assertTree(t, want, got)
}

func TestParser_EmptyProgram(t *testing.T) {
	stmts := mustParse(t, "  // nothing here\n")
	if stmts == nil || len(stmts) != 0 {
		t.Errorf("expected an empty, non-nil program, got %#v", stmts)
	}
}

func TestParser_Types(t *testing.T) {
	tests := []struct {
		source string
		want   ast.Type
	}{
		{"let v: number;", simple("number")},
		{"let v: () -> number;", &ast.FunctionType{Return: simple("number")}},
		{
			"let v: (number, string) -> bool;",
			&ast.FunctionType{Params: []ast.Type{simple("number"), simple("string")}, Return: simple("bool")},
		},
		{
			"let v: Map<string, number>;",
			&ast.GenericType{Name: "Map", Args: []ast.Type{simple("string"), simple("number")}},
		},
		{
			"let v: List<(number) -> number>;",
			&ast.GenericType{Name: "List", Args: []ast.Type{
				&ast.FunctionType{Params: []ast.Type{simple("number")}, Return: simple("number")},
			}},
		},
		{
			"let v: List<List<number> >;",
			&ast.GenericType{Name: "List", Args: []ast.Type{
				&ast.GenericType{Name: "List", Args: []ast.Type{simple("number")}},
			}},
		},
		{
			"let v: (number) -> (number) -> number;",
			&ast.FunctionType{
				Params: []ast.Type{simple("number")},
				Return: &ast.FunctionType{Params: []ast.Type{simple("number")}, Return: simple("number")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			stmts := mustParse(t, tt.source)
			if len(stmts) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(stmts))
			}
			decl, ok := stmts[0].(*ast.VariableDecl)
			if !ok {
				t.Fatalf("expected *ast.VariableDecl, got %T", stmts[0])
			}
			assertTree(t, tt.want, decl.Type)
			if got, want := decl.Type.String(), tt.want.String(); got != want {
				t.Errorf("Type.String() = %q, want %q", got, want)
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"unbalanced class", "class A { let x: number;", "Expected '}' after class body"},
		{"bad class member", "class A { x; }", "Expected field declaration starting with 'let' or 'var', or a method declaration starting with 'fn'."},
		{"class name", "class { }", "Expected class name"},
		{"class brace", "class A let", "Expected '{' after class name"},
		{"variable name", "let = 1;", "Expected variable name"},
		{"variable semicolon", "let x = 1", "Expected ';' after variable declaration"},
		{"import name", "import ;", "Expected module name after 'import'"},
		{"import semicolon", "import io", "Expected ';' after import declaration"},
		{"module name", "module { }", "Expected module name"},
		{"module brace", "module m }", "Expected '{' after module name"},
		{"module body", "module m { let x;", "Expected '}' after module body"},
		{"function name", "fn (", "Expected function name"},
		{"function paren", "fn f {", "Expected '(' after function name"},
		{"parameter name", "fn f(1) {}", "Expected parameter name"},
		{"parameter close", "fn f(a b) {}", "Expected ')' after parameters"},
		{"function body open", "fn f() 1", "Expected '{' before function body"},
		{"function body close", "fn f() {", "Expected '}' after function body"},
		{"return semicolon", "return 1", "Expected ';' after return statement"},
		{"expression semicolon", "f(x)", "Expected ';' after expression"},
		{"function type close", "let f: (number -> bool;", "Expected ')' in function type"},
		{"function type arrow", "let f: (number) bool;", "Expected '->' in function type"},
		{"type name", "let x: 1;", "Expected type name"},
		{"generic close", "let x: List<number;", "Expected '>' in generic type"},
		{"struct field name", "P { 1 };", "Expected field name in struct literal"},
		{"struct close", "P { x y };", "Expected '}' after struct literal"},
		{"grouping close", "(a + b;", "Expected ')' after expression"},
		{"block close", "{ let x = 1;", "Expected '}' after block"},
		{"stray paren", ");", "Unexpected token: RightParen"},
		{"missing operand", "let x = 1 + ;", "Unexpected token: Semicolon"},
		{"reserved word", "if;", "Unexpected token: If"},
		{"end of input", "let x =", "Unexpected token: EOF"},
		{"property name", "a.1;", "Expected property name after '.'"},
		{"call close", "f(a b);", "Expected ')' after arguments"},
		{"lambda parameter", "(1) -> x;", "Expected parameter name"},
		{"lambda body", "(a) -> ;", "Unexpected token: Semicolon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := Parse(tt.source)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error %q", tt.source, tt.message)
			}
			if stmts != nil {
				t.Errorf("expected no partial tree, got %v", stmts)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Message != tt.message {
				t.Errorf("message = %q, want %q", parseErr.Message, tt.message)
			}
		})
	}
}

func TestParser_ErrorSpan(t *testing.T) {
	tests := []struct {
		source string
		offset int
		text   string
		error  string
	}{
		{"let = 1;", 4, "=", "1:5: Expected variable name"},
		{"let x = 1", 9, "", "1:10: Expected ';' after variable declaration"},
		{"let x = 1;\nlet y = );", 19, ")", "2:9: Unexpected token: RightParen"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := Parse(tt.source)

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if parseErr.Span.Start.Offset != tt.offset {
				t.Errorf("span starts at %d, want %d", parseErr.Span.Start.Offset, tt.offset)
			}
			if got := parseErr.Span.Slice(tt.source); got != tt.text {
				t.Errorf("span covers %q, want %q", got, tt.text)
			}
			if err.Error() != tt.error {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.error)
			}
		})
	}
}

func TestParser_InvalidNumberLiteral(t *testing.T) {
	tokens := []Token{{Kind: KindNumber, Text: "1.2.3"}}

	_, err := New(tokens).ParseExpression()

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Message != "Invalid number literal: 1.2.3" {
		t.Errorf("message = %q", parseErr.Message)
	}
	if err.Error() != parseErr.Message {
		t.Errorf("error without a span should be the bare message, got %q", err.Error())
	}
}

func TestParser_AdjacentPrefixOperators(t *testing.T) {
	// Operator characters are scanned greedily, so a run of prefix operators
	// without spaces is a single invalid operator.
	for _, source := range []string{"!-x", "--x", "-!x"} {
		t.Run(source, func(t *testing.T) {
			_, err := ParseExpr(source)

			var adaptErr *AdaptError
			if !errors.As(err, &adaptErr) {
				t.Fatalf("expected *AdaptError, got %T: %v", err, err)
			}
			if !adaptErr.Token.HasErrors() {
				t.Fatalf("expected the token to carry a diagnostic, got %v", adaptErr.Token)
			}
			if code := adaptErr.Token.Errors[0].Kind.Code(); code != "E002" {
				t.Errorf("code = %s, want E002", code)
			}
			if adaptErr.Token.Lexeme != source[:2] {
				t.Errorf("lexeme = %q, want %q", adaptErr.Token.Lexeme, source[:2])
			}
		})
	}
}

func TestParser_NumberLiteralOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{"overflow", "1" + strings.Repeat("0", 400), math.Inf(1)},
		{"underflow", "0." + strings.Repeat("0", 400) + "1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := Parse("let x = " + tt.source + ";")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			want := []ast.Stmt{&ast.VariableDecl{Name: "x", Initializer: num(tt.want)}}
			assertTree(t, want, stmts)
		})
	}
}

func TestParser_ExpressionMustConsumeInput(t *testing.T) {
	_, err := ParseExpr("a b")

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if want := "Unexpected token after expression: identifier(b)"; parseErr.Message != want {
		t.Errorf("message = %q, want %q", parseErr.Message, want)
	}
}

func TestParser_LexicalErrorsStopParse(t *testing.T) {
	_, err := Parse(`let s = "abc`)

	var adaptErr *AdaptError
	if !errors.As(err, &adaptErr) {
		t.Fatalf("expected *AdaptError, got %T: %v", err, err)
	}
}

func TestParser_StringDiagnosticsStopParse(t *testing.T) {
	stmts, err := Parse(`let s = "a\qb";`)

	var adaptErr *AdaptError
	if !errors.As(err, &adaptErr) {
		t.Fatalf("expected *AdaptError, got %T: %v (stmts %v)", err, err, stmts)
	}
	if adaptErr.Token.Type != lexer.TokenString {
		t.Errorf("expected the string token, got %v", adaptErr.Token)
	}
	if code := adaptErr.Token.Errors[0].Kind.Code(); code != "E003" {
		t.Errorf("code = %s, want E003", code)
	}
	if stmts != nil {
		t.Errorf("failed parse must not return statements, got %v", stmts)
	}
}

func TestParser_LenientTokens(t *testing.T) {
	tokens, err := Adapt(lexer.Tokenize("let x = @;"), AdaptOptions{Lenient: true})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	stmts, err := New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	want := []ast.Stmt{&ast.VariableDecl{Name: "x", Initializer: ident(UnknownIdentifier)}}
	assertTree(t, want, stmts)
}

func TestParser_NewAppendsEOF(t *testing.T) {
	tokens := []Token{
		{Kind: KindIdentifier, Text: "a"},
		{Kind: KindPlus},
		{Kind: KindNumber, Text: "1"},
	}

	expr, err := New(tokens).ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression() error = %v", err)
	}
	assertTree(t, binary(ident("a"), ast.OpAdd, num(1)), expr)

	if len(tokens) != 3 || cap(tokens) != 3 {
		t.Errorf("New modified the caller's slice: len %d cap %d", len(tokens), cap(tokens))
	}
}

func TestParser_Idempotent(t *testing.T) {
	source := "class P { let x: number; fn get() -> number { return P { x }.x; } }"
	first := mustParse(t, source)
	second := mustParse(t, source)
	assertTree(t, first, second)
}
