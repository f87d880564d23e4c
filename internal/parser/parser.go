// Package parser implements a recursive descent parser for exx.
//
// PARSING STRATEGY:
// 1. Recursive descent for declarations and statements
// 2. Precedence climbing for binary expressions (see precedence.go)
// 3. A bounded, non-consuming lookahead to tell a lambda parameter list
//    from a parenthesized expression
//
// ERROR HANDLING STRATEGY:
// The parser fails fast. The first grammatical error aborts the parse and is
// returned as a *ParseError; no partial tree is produced and there is no
// synchronization. Lexical diagnostics are not the parser's concern: they are
// reported by the lexer before parsing starts.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hassan/exx/internal/lexer"
	"github.com/hassan/exx/internal/parser/ast"
)

// ParseError is the single error a failed parse returns.
type ParseError struct {
	Message string

	// Span is the source range of the token the parser stopped at. It is the
	// zero Span when the tokens were built by hand without positions.
	Span lexer.Span
}

// Error implements the error interface as "line:col: message", or just the
// message when the span is unknown.
func (e *ParseError) Error() string {
	if !e.Span.Start.IsValid() {
		return e.Message
	}
	return e.Span.Start.String() + ": " + e.Message
}

// Parser converts a token sequence into a list of statements.
//
// The parser owns a fully materialized token buffer and an index cursor. It
// performs no I/O and holds no state outside the instance, so independent
// parsers can run concurrently.
type Parser struct {
	// tokens always ends with a KindEOF token.
	tokens []Token

	// current is the index of the next token to consume.
	current int
}

// New creates a parser over tokens. A KindEOF token is appended when the
// sequence does not already end with one.
func New(tokens []Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != KindEOF {
		end := lexer.Position{}
		if n > 0 {
			end = tokens[n-1].Span.End
		}
		tokens = append(tokens[:n:n], Token{Kind: KindEOF, Span: lexer.NewSpan(end, end)})
	}
	return &Parser{tokens: tokens}
}

// Parse lexes, adapts and parses source as a program. The first token with
// a lexical diagnostic is returned as an *AdaptError; use the lexer
// directly to see every diagnostic.
func Parse(source string) ([]ast.Stmt, error) {
	tokens, err := Adapt(lexer.Tokenize(source), AdaptOptions{})
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

// ParseExpr lexes, adapts and parses source as a single expression.
func ParseExpr(source string) (ast.Expr, error) {
	tokens, err := Adapt(lexer.Tokenize(source), AdaptOptions{})
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseExpression()
}

// ParseProgram parses every declaration up to the end of input.
//
// GRAMMAR:
//
//	program = declaration* EOF
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	stmts := make([]ast.Stmt, 0)
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseExpression parses one expression that must span the whole input.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.errorAtCurrent(fmt.Sprintf("Unexpected token after expression: %s", p.peek()))
	}
	return expr, nil
}

// declaration parses one declaration or statement.
//
// GRAMMAR:
//
//	declaration = importDecl | moduleDecl | classDecl | functionDecl
//	            | returnStmt | variableDecl | expressionStmt
func (p *Parser) declaration() (ast.Stmt, error) {
	switch {
	case p.match(KindImport):
		return p.importDeclaration()
	case p.match(KindModule):
		return p.moduleDeclaration()
	case p.match(KindClass):
		return p.classDeclaration()
	case p.match(KindFn):
		return p.functionDeclaration()
	case p.match(KindReturn):
		return p.returnStatement()
	case p.match(KindLet, KindVar):
		return p.variableDeclaration()
	default:
		return p.expressionStatement()
	}
}

// importDeclaration parses: import name;
func (p *Parser) importDeclaration() (ast.Stmt, error) {
	name, err := p.consumeIdentifier("Expected module name after 'import'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(KindSemicolon, "Expected ';' after import declaration"); err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Module: name}, nil
}

// moduleDeclaration parses: module name { declaration* }
func (p *Parser) moduleDeclaration() (ast.Stmt, error) {
	name, err := p.consumeIdentifier("Expected module name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(KindLeftBrace, "Expected '{' after module name"); err != nil {
		return nil, err
	}

	decls, err := p.declarationsUntilBrace()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(KindRightBrace, "Expected '}' after module body"); err != nil {
		return nil, err
	}
	return &ast.ModuleDecl{Name: name, Declarations: decls}, nil
}

// classDeclaration parses a class body of fields and methods:
//
//	class Point {
//	    let x: number;
//	    fn norm() -> number { ... }
//	}
func (p *Parser) classDeclaration() (ast.Stmt, error) {
	name, err := p.consumeIdentifier("Expected class name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(KindLeftBrace, "Expected '{' after class name"); err != nil {
		return nil, err
	}

	class := &ast.ClassDecl{
		Name:    name,
		Fields:  make([]*ast.VariableDecl, 0),
		Methods: make([]*ast.FunctionDecl, 0),
	}

	for !p.check(KindRightBrace) && !p.isAtEnd() {
		switch {
		case p.match(KindFn):
			method, err := p.functionDeclaration()
			if err != nil {
				return nil, err
			}
			class.Methods = append(class.Methods, method)
		case p.match(KindLet, KindVar):
			field, err := p.variableDeclaration()
			if err != nil {
				return nil, err
			}
			class.Fields = append(class.Fields, field)
		default:
			return nil, p.errorAtCurrent("Expected field declaration starting with 'let' or 'var', or a method declaration starting with 'fn'.")
		}
	}

	if _, err := p.consume(KindRightBrace, "Expected '}' after class body"); err != nil {
		return nil, err
	}
	return class, nil
}

// functionDeclaration parses: fn name(params) (-> type)? { declaration* }
// The 'fn' keyword has already been consumed.
func (p *Parser) functionDeclaration() (*ast.FunctionDecl, error) {
	name, err := p.consumeIdentifier("Expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(KindLeftParen, "Expected '(' after function name"); err != nil {
		return nil, err
	}

	params, err := p.parameters()
	if err != nil {
		return nil, err
	}

	var returnType ast.Type
	if p.match(KindArrow) {
		if returnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(KindLeftBrace, "Expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.declarationsUntilBrace()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(KindRightBrace, "Expected '}' after function body"); err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}, nil
}

// parameters parses a parameter list after its '(' up to and including the
// closing ')':
//
//	name (: type)?, name (: type)?, ...
func (p *Parser) parameters() ([]ast.Parameter, error) {
	params := make([]ast.Parameter, 0)

	if !p.check(KindRightParen) {
		for {
			name, err := p.consumeIdentifier("Expected parameter name")
			if err != nil {
				return nil, err
			}

			var typ ast.Type
			if p.match(KindColon) {
				if typ, err = p.parseType(); err != nil {
					return nil, err
				}
			}
			params = append(params, ast.Parameter{Name: name, Type: typ})

			if !p.match(KindComma) {
				break
			}
		}
	}

	if _, err := p.consume(KindRightParen, "Expected ')' after parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

// variableDeclaration parses: (let|var) name (: type)? (= expr)? ;
// The keyword has already been consumed and decides mutability.
func (p *Parser) variableDeclaration() (*ast.VariableDecl, error) {
	mutable := p.previous().Kind == KindVar

	name, err := p.consumeIdentifier("Expected variable name")
	if err != nil {
		return nil, err
	}

	decl := &ast.VariableDecl{Mutable: mutable, Name: name}

	if p.match(KindColon) {
		if decl.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if p.match(KindEqual) {
		if decl.Initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(KindSemicolon, "Expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return decl, nil
}

// returnStatement parses: return expr? ;
func (p *Parser) returnStatement() (ast.Stmt, error) {
	stmt := &ast.ReturnStmt{}

	if !p.check(KindSemicolon) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}

	if _, err := p.consume(KindSemicolon, "Expected ';' after return statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// expressionStatement parses: expr ;
func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(KindSemicolon, "Expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr}, nil
}

// declarationsUntilBrace parses declarations up to, but not including, a
// closing '}' or the end of input.
func (p *Parser) declarationsUntilBrace() ([]ast.Stmt, error) {
	stmts := make([]ast.Stmt, 0)
	for !p.check(KindRightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// Expression parsing
//
// Binary operators are parsed by precedence climbing: parseBinary reads a
// unary operand, then folds in every following operator whose precedence is
// at least minPrec. The right operand of an operator at level L is parsed
// with minimum L+1, which makes each level left-associative.

// expression parses an expression of any precedence.
func (p *Parser) expression() (ast.Expr, error) {
	return p.parseBinary(PrecOr)
}

// parseBinary parses an expression whose operators all bind at least as
// tightly as minPrec.
func (p *Parser) parseBinary(minPrec Precedence) (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		prec := getPrecedence(p.peek().Kind)
		if prec == PrecNone || prec < minPrec {
			return left, nil
		}

		op := binaryOps[p.advance().Kind]
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
}

// unary parses a prefix operator chain. Prefix operators are
// right-associative: - -x is -(-x).
func (p *Parser) unary() (ast.Expr, error) {
	if op, ok := unaryOps[p.peek().Kind]; ok {
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.postfix()
}

// postfix parses a primary followed by any number of calls and property
// accesses, applied left to right: a.b(c).d
func (p *Parser) postfix() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(KindLeftParen):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(KindDot):
			name, err := p.consumeIdentifier("Expected property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &ast.PropertyAccessExpr{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

// finishCall parses call arguments after the '('.
func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	args := make([]ast.Expr, 0)

	if !p.check(KindRightParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if !p.match(KindComma) {
				break
			}
		}
	}

	if _, err := p.consume(KindRightParen, "Expected ')' after arguments"); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Callee: callee, Args: args}, nil
}

// primary parses the expressions that start with a single token:
// literals, identifiers, struct literals, grouping, lambdas and blocks.
func (p *Parser) primary() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindNumber:
		p.advance()
		// Digit runs too large for a float64 become ±Inf, too small 0.
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, p.errorAt(tok, "Invalid number literal: "+tok.Text)
		}
		return &ast.LiteralExpr{Value: ast.NumberLiteral(value)}, nil

	case KindString:
		p.advance()
		return &ast.LiteralExpr{Value: ast.StringLiteral(tok.Text)}, nil

	case KindBoolean:
		p.advance()
		return &ast.LiteralExpr{Value: ast.BooleanLiteral(tok.Text == "true")}, nil

	case KindIdentifier:
		p.advance()
		if p.match(KindLeftBrace) {
			return p.structLiteral(tok.Text)
		}
		return &ast.IdentifierExpr{Name: tok.Text}, nil

	case KindLeftParen:
		p.advance()
		if p.isLambda() {
			return p.lambda()
		}
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(KindRightParen, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.GroupingExpr{Inner: inner}, nil

	case KindLeftBrace:
		p.advance()
		body, err := p.declarationsUntilBrace()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(KindRightBrace, "Expected '}' after block"); err != nil {
			return nil, err
		}
		return &ast.BlockExpr{Body: body}, nil

	default:
		return nil, p.errorAt(tok, fmt.Sprintf("Unexpected token: %s", tok))
	}
}

// structLiteral parses the fields of Name { ... } after the '{'. A field is
// either name: expr, or the shorthand name, which stands for name: name.
func (p *Parser) structLiteral(name string) (ast.Expr, error) {
	fields := make([]ast.FieldInit, 0)

	for !p.check(KindRightBrace) && !p.isAtEnd() {
		fieldName, err := p.consumeIdentifier("Expected field name in struct literal")
		if err != nil {
			return nil, err
		}

		var value ast.Expr = &ast.IdentifierExpr{Name: fieldName}
		if p.match(KindColon) {
			if value, err = p.expression(); err != nil {
				return nil, err
			}
		}
		fields = append(fields, ast.FieldInit{Name: fieldName, Value: value})

		if !p.match(KindComma) {
			break
		}
	}

	if _, err := p.consume(KindRightBrace, "Expected '}' after struct literal"); err != nil {
		return nil, err
	}
	return &ast.StructLiteralExpr{Name: name, Fields: fields}, nil
}

// lambda parses (params) -> expr after the '('.
func (p *Parser) lambda() (ast.Expr, error) {
	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(KindArrow, "Expected '->' after lambda parameters"); err != nil {
		return nil, err
	}
	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.LambdaExpr{Params: params, Body: body}, nil
}

// isLambda reports whether the '(' just consumed opens a lambda parameter
// list. It scans forward from the cursor, tracking parenthesis depth, to the
// matching ')' and checks that '->' follows. The cursor is not moved.
func (p *Parser) isLambda() bool {
	depth := 1
	for i := p.current; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case KindLeftParen:
			depth++
		case KindRightParen:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Kind == KindArrow
			}
		case KindEOF:
			return false
		}
	}
	return false
}

// Token cursor helpers

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == KindEOF
}

// advance consumes the current token and returns it. At EOF the cursor stays
// put and the EOF token is returned.
func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

// check reports whether the current token has the given kind. It is always
// false at EOF.
func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

// match consumes the current token if it has any of the given kinds.
func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// consume expects the current token to have the given kind.
func (p *Parser) consume(kind TokenKind, message string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.errorAtCurrent(message)
}

func (p *Parser) consumeIdentifier(message string) (string, error) {
	tok, err := p.consume(KindIdentifier, message)
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}

func (p *Parser) errorAtCurrent(message string) *ParseError {
	return p.errorAt(p.peek(), message)
}

func (p *Parser) errorAt(tok Token, message string) *ParseError {
	return &ParseError{Message: message, Span: tok.Span}
}
